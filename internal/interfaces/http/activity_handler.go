package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medinventory-api/internal/application/activity"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
)

// ActivityHandler consulta del log de actividad (solo lectura).
type ActivityHandler struct {
	uc *activity.ActivityUseCase
}

func NewActivityHandler(uc *activity.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// List GET /api/activity?entity_type=&entity_id=&user_id=&limit= (más recientes primero).
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	out, err := h.uc.List(c.UserContext(), repository.ActivityFilter{
		EntityType: c.Query("entity_type"),
		EntityID:   c.Query("entity_id"),
		UserID:     c.Query("user_id"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
