package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/medinventory-api/internal/application/auth"
	"github.com/jhoicas/medinventory-api/internal/bootstrap"
	"github.com/jhoicas/medinventory-api/internal/infrastructure/cache"
	"github.com/jhoicas/medinventory-api/internal/infrastructure/memory"
	"github.com/jhoicas/medinventory-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/medinventory-api/internal/interfaces/http"
	"github.com/jhoicas/medinventory-api/pkg/config"
	"github.com/jhoicas/medinventory-api/pkg/logger"
)

func main() {
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
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		repos bootstrap.Repositories
		pool  *pgxpool.Pool
	)
	switch cfg.DB.Driver {
	case config.DriverMemory:
		log.Warn().Msg("persistencia en memoria: los datos se pierden al reiniciar")
		repos = bootstrap.MemoryRepositories(memory.NewStore())
	default:
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		repos = bootstrap.PostgresRepositories(pool)
	}

	opts := bootstrap.Options{
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		ExpiryWarningDays: cfg.Inventory.ExpiryWarningDays,
		CacheTTL:          cfg.Redis.CacheTTL,
		PDFIssuer:         cfg.App.Name,
		Logger:            log,
	}
	// Redis es opcional: sin REDIS_ADDR el dashboard se calcula en cada petición.
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, dashboard sin cache")
		} else {
			defer client.Close()
			opts.Cache = cache.NewRedisCache(client, "medinventory:")
		}
	}

	svc := bootstrap.NewServices(repos, opts)

	app := httpRouter.NewServer(svc.RouterDeps(cfg.JWT.Secret), httpRouter.ServerOptions{
		AppName:     cfg.App.Name,
		Logger:      log,
		Metrics:     httpRouter.NewMetrics(),
		SwaggerFile: "./docs/swagger.json",
		Health:      healthHandler(cfg.App.Name, pool),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// healthHandler incluye el ping a PostgreSQL cuando hay pool.
func healthHandler(service string, pool *pgxpool.Pool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if pool != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := pool.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": service, "database": "down"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": service})
	}
}
