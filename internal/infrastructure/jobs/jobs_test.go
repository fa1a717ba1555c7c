package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medinventory-api/internal/application/dto"
)

type fakeMarker struct {
	calls int
	actor dto.Actor
	err   error
}

func (f *fakeMarker) MarkOverdue(_ context.Context, actor dto.Actor) (*dto.MarkOverdueResponse, error) {
	f.calls++
	f.actor = actor
	if f.err != nil {
		return nil, f.err
	}
	return &dto.MarkOverdueResponse{Updated: 2, InvoiceIDs: []string{"a", "b"}}, nil
}

func TestMarkOverdueJob_Handle(t *testing.T) {
	marker := &fakeMarker{}
	job := NewMarkOverdueJob(marker, nil)

	task, err := NewMarkOverdueTask(time.Date(2025, 3, 1, 1, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, TaskMarkOverdue, task.Type())

	require.NoError(t, job.Handle(context.Background(), task))
	assert.Equal(t, 1, marker.calls)
	assert.Equal(t, dto.SystemActor, marker.actor)
}

func TestMarkOverdueJob_Errors(t *testing.T) {
	marker := &fakeMarker{}
	job := NewMarkOverdueJob(marker, nil)

	err := job.Handle(context.Background(), asynq.NewTask(TaskMarkOverdue, []byte("{bad")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
	assert.Zero(t, marker.calls)

	marker.err = errors.New("db down")
	err = job.Handle(context.Background(), asynq.NewTask(TaskMarkOverdue, nil))
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestNewWorker_InvalidCron(t *testing.T) {
	task, err := NewMarkOverdueTask(time.Now())
	require.NoError(t, err)
	_, err = NewWorker(WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: "127.0.0.1:0"},
		Cron:      []CronRegistration{{Spec: "not a cron", Task: task}},
	})
	assert.Error(t, err)
}

func TestWorkerRun_ReturnsOnCancel(t *testing.T) {
	mr := miniredis.RunT(t)
	w, err := NewWorker(WorkerConfig{
		RedisOpts:   asynq.RedisClientOpt{Addr: mr.Addr()},
		Concurrency: 1,
		Handlers:    []TaskHandler{{Type: TaskMarkOverdue, Handler: NewMarkOverdueJob(&fakeMarker{}, nil).Handle}},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(15 * time.Second):
		t.Fatal("Run no terminó tras cancelar el contexto")
	}
}

func TestWorkerRun_Nil(t *testing.T) {
	var w *Worker
	assert.Error(t, w.Run(context.Background()))
}
