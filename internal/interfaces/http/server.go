package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/medinventory-api/pkg/logger"
)

// ServerOptions configuración de la app Fiber.
type ServerOptions struct {
	AppName     string
	Logger      *logger.Logger
	Metrics     *Metrics // nil desactiva /metrics
	SwaggerFile string   // vacío o inexistente desactiva /docs
	Health      fiber.Handler
}

// NewServer arma la app con middlewares, /health, /metrics, /docs y las rutas de la API.
func NewServer(deps RouterDeps, opts ServerOptions) *fiber.App {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      opts.AppName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(opts.Logger))
	if opts.Metrics != nil {
		app.Use(opts.Metrics.Middleware())
		app.Get("/metrics", opts.Metrics.Handler())
	}

	// Swagger UI en local: http://localhost:<port>/docs
	if opts.SwaggerFile != "" {
		if _, err := os.Stat(opts.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: opts.SwaggerFile,
				Path:     "docs",
				Title:    opts.AppName + " API",
			}))
		}
	}

	health := opts.Health
	if health == nil {
		health = func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok", "service": opts.AppName})
		}
	}
	app.Get("/health", health)

	Router(app, deps)
	return app
}
