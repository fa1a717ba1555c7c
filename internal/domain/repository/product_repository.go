package repository

import (
	"context"

	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductFilter filtra el listado de productos. Limit 0 = sin límite.
type ProductFilter struct {
	Category string
	Search   string // nombre, fabricante o lote
	Limit    int
	Offset   int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID retorna (nil, nil) cuando no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id string, quantity int, costPerUnit decimal.Decimal) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
}
