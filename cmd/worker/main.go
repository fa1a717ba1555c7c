// worker procesa tareas en segundo plano (asynq sobre Redis) y programa el
// barrido diario de facturas vencidas.
//
// Uso: go run ./cmd/worker [-enqueue-overdue]
package main

import (
	"context"
	"errors"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/medinventory-api/internal/application/auth"
	"github.com/jhoicas/medinventory-api/internal/bootstrap"
	"github.com/jhoicas/medinventory-api/internal/infrastructure/jobs"
	"github.com/jhoicas/medinventory-api/internal/infrastructure/postgres"
	"github.com/jhoicas/medinventory-api/pkg/config"
	"github.com/jhoicas/medinventory-api/pkg/logger"
)

func main() {
	enqueueNow := flag.Bool("enqueue-overdue", false, "encola un barrido de vencidas al arrancar")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		panic("configuración inválida: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name + "-worker",
	})
	if cfg.Redis.Addr == "" {
		log.Fatal().Msg("REDIS_ADDR es obligatorio para el worker")
	}
	if cfg.DB.Driver != config.DriverPostgres {
		log.Fatal().Str("db_driver", cfg.DB.Driver).Msg("el worker requiere PostgreSQL")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	svc := bootstrap.NewServices(bootstrap.PostgresRepositories(pool), bootstrap.Options{
		JWT:               auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
		ExpiryWarningDays: cfg.Inventory.ExpiryWarningDays,
		Logger:            log,
	})

	redisOpts := asynq.RedisClientOpt{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
	overdue := jobs.NewMarkOverdueJob(svc.Invoices, log)
	task, err := jobs.NewMarkOverdueTask(time.Now().UTC())
	if err != nil {
		log.Fatal().Err(err).Msg("tarea de vencidas")
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:   redisOpts,
		Concurrency: cfg.Worker.Concurrency,
		Logger:      log,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskMarkOverdue, Handler: overdue.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.Worker.OverdueCron, Task: task},
		},
	})
	if err != nil {
		log.Fatal().Err(err).Str("cron", cfg.Worker.OverdueCron).Msg("inicializar worker")
	}

	if *enqueueNow {
		client := jobs.NewClient(redisOpts)
		info, err := client.EnqueueMarkOverdue(ctx)
		if err != nil {
			log.Error().Err(err).Msg("encolar barrido de vencidas")
		} else {
			log.Info().Str("task_id", info.ID).Msg("barrido de vencidas encolado")
		}
		_ = client.Close()
	}

	log.Info().Str("cron", cfg.Worker.OverdueCron).Int("concurrency", cfg.Worker.Concurrency).Msg("worker listo")
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("worker finalizado con error")
	}
}
