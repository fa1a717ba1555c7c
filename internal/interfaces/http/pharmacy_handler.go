package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medinventory-api/internal/application/billing"
	"github.com/jhoicas/medinventory-api/internal/application/dto"
)

// PharmacyHandler CRUD de farmacias (entidades facturables).
type PharmacyHandler struct {
	uc *billing.PharmacyUseCase
}

func NewPharmacyHandler(uc *billing.PharmacyUseCase) *PharmacyHandler {
	return &PharmacyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear farmacia
// @Tags         pharmacies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePharmacyRequest  true  "Datos de la farmacia"
// @Success      201   {object}  dto.PharmacyResponse
// @Failure      409   {object}  dto.ErrorResponse  "registration_number duplicado"
// @Router       /api/pharmacies [post]
func (h *PharmacyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePharmacyRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *PharmacyHandler) GetByID(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *PharmacyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("search"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *PharmacyHandler) Update(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdatePharmacyRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *PharmacyHandler) Delete(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetActor(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
