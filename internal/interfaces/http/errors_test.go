package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/medinventory-api/internal/interfaces/http"
	"github.com/jhoicas/medinventory-api/pkg/logger"
)

// Los 500 se registran con el logger inyectado, no con el global.
func TestErrorHandler_LogsInternalErrorsWithInjectedLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Config{Level: "info", Service: "medinventory-test"})

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(apphttp.RequestLogger(log))
	app.Get("/falla", func(c *fiber.Ctx) error { return errors.New("disco lleno") })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/falla", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var found map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var ev map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &ev))
		if ev["message"] == "error interno" {
			found = ev
		}
	}
	require.NotNil(t, found, "se esperaba el evento de error interno en %q", buf.String())
	assert.Equal(t, "error", found["level"])
	assert.Equal(t, "disco lleno", found["error"])
	assert.Equal(t, "/falla", found["path"])
	assert.Equal(t, "http", found["component"])
	assert.Equal(t, "medinventory-test", found["service"])
}

// Sin RequestLogger el error se responde igual, sin registrar nada.
func TestErrorHandler_WithoutLoggerStillResponds(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/falla", func(c *fiber.Ctx) error { return errors.New("disco lleno") })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/falla", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
