package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medinventory-api/internal/application/billing"
)

// PaymentHandler listado global de abonos y eliminación.
type PaymentHandler struct {
	uc *billing.PaymentUseCase
}

func NewPaymentHandler(uc *billing.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// List GET /api/payments?invoice_id=
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	invoiceID, err := optionalIDQuery(c, "invoice_id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), invoiceID, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete no recalcula el pagado ni el estado de la factura.
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetActor(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
