package repository

import (
	"context"

	"github.com/jhoicas/medinventory-api/internal/domain/entity"
)

// ActivityFilter filtra el log de actividad.
type ActivityFilter struct {
	EntityType string
	EntityID   string
	UserID     string
	Limit      int
	Offset     int
}

// ActivityRepository es append-only: no hay Update ni Delete.
// List ordena del más reciente al más antiguo.
type ActivityRepository interface {
	Create(ctx context.Context, log *entity.ActivityLog) error
	List(ctx context.Context, filter ActivityFilter) ([]*entity.ActivityLog, error)
}
