package repository

import (
	"context"

	"github.com/jhoicas/medinventory-api/internal/domain/entity"
)

// PaymentFilter filtra abonos; InvoiceID vacío lista todos.
type PaymentFilter struct {
	InvoiceID string
	Limit     int
	Offset    int
}

// PaymentRepository define el puerto de persistencia para Payment.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter PaymentFilter) ([]*entity.Payment, error)
}
