// Package jobs contiene las tareas en segundo plano (asynq) y el worker que las ejecuta.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/medinventory-api/internal/application/dto"
	"github.com/jhoicas/medinventory-api/pkg/logger"
)

const (
	// QueueDefault cola por defecto.
	QueueDefault = "default"
	// TaskMarkOverdue marca como vencidas las facturas emitidas o parciales fuera de plazo.
	TaskMarkOverdue = "invoices:mark_overdue"
)

// OverdueMarker es la parte del caso de uso de facturas que usa la tarea.
type OverdueMarker interface {
	MarkOverdue(ctx context.Context, actor dto.Actor) (*dto.MarkOverdueResponse, error)
}

// MarkOverduePayload metadatos de programación.
type MarkOverduePayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewMarkOverdueTask construye la tarea.
func NewMarkOverdueTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(MarkOverduePayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMarkOverdue, body, asynq.Queue(QueueDefault), asynq.MaxRetry(3)), nil
}

// MarkOverdueJob ejecuta el barrido de facturas vencidas.
type MarkOverdueJob struct {
	invoices OverdueMarker
	log      *logger.Logger
}

func NewMarkOverdueJob(invoices OverdueMarker, log *logger.Logger) *MarkOverdueJob {
	if log == nil {
		log = logger.Nop()
	}
	return &MarkOverdueJob{invoices: invoices, log: log.Component("jobs.mark_overdue")}
}

// Handle procesa la tarea. Un payload ilegible no se reintenta.
func (j *MarkOverdueJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload MarkOverduePayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("payload inválido: %v: %w", err, asynq.SkipRetry)
		}
	}
	res, err := j.invoices.MarkOverdue(ctx, dto.SystemActor)
	if err != nil {
		return fmt.Errorf("mark overdue: %w", err)
	}
	j.log.Info().
		Int("updated", res.Updated).
		Time("scheduled_for", payload.ScheduledFor).
		Msg("facturas vencidas actualizadas")
	return nil
}
