package repository

import (
	"context"

	"github.com/jhoicas/medinventory-api/internal/domain/entity"
)

// ClientFilter filtra el listado de clientes.
type ClientFilter struct {
	Type   string
	Search string
	Limit  int
	Offset int
}

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ClientFilter) ([]*entity.Client, error)
}
