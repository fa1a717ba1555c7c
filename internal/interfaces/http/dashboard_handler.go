package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/medinventory-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los indicadores del dashboard.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (totales de productos y clientes, bajo stock,
// por vencer en 90 días, últimas 5 asignaciones y actividades, facturas pendientes).
// Puede venir del cache de Redis durante el TTL configurado.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
