package repository

import (
	"context"
	"time"

	"github.com/jhoicas/medinventory-api/internal/domain/entity"
)

// AssignmentFilter filtra asignaciones. From/To son inclusivos.
type AssignmentFilter struct {
	From     *time.Time
	To       *time.Time
	ClientID string
	Category string // categoría del snapshot del producto
	Limit    int
	Offset   int
}

// AssignmentRepository define el puerto de persistencia para Assignment.
// List ordena de la más reciente a la más antigua.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *entity.Assignment) error
	GetByID(ctx context.Context, id string) (*entity.Assignment, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter AssignmentFilter) ([]*entity.Assignment, error)
}
