package repository

import (
	"context"

	"github.com/jhoicas/medinventory-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del kardex.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error)
}
