package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medinventory-api/internal/application/dto"
	"github.com/jhoicas/medinventory-api/internal/application/inventory"
)

// InventoryHandler entradas de stock, kardex y alertas de reposición.
type InventoryHandler struct {
	stock         *inventory.StockUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stock *inventory.StockUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{stock: stock, replenishment: replenishment}
}

// AddStock godoc
// @Summary      Registrar entrada de stock
// @Description  Suma existencias; con unit_cost recalcula el costo promedio ponderado.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AddStockRequest  true  "Cantidad y costo"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [post]
func (h *InventoryHandler) AddStock(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.AddStockRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.stock.AddStock(c.UserContext(), GetActor(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Movements godoc
// @Summary      Kardex del producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}  dto.StockMovementResponse
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.stock.Movements(c.UserContext(), id, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock productos con existencia <= punto de reorden.
// GET /api/products/low-stock
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.replenishment.LowStock(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Expiring productos que vencen en los próximos ?days días (default configurado).
// GET /api/products/expiring
func (h *InventoryHandler) Expiring(c *fiber.Ctx) error {
	days := c.QueryInt("days", 0)
	if days < 0 {
		return respondError(c, badRequest("VALIDATION", "days debe ser positivo"))
	}
	out, err := h.replenishment.Expiring(c.UserContext(), days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReorderSuggestions pedidos sugeridos para productos en bajo stock.
// GET /api/products/reorder-suggestions
func (h *InventoryHandler) ReorderSuggestions(c *fiber.Ctx) error {
	out, err := h.replenishment.ReorderSuggestions(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
