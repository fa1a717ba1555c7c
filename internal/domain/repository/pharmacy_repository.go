package repository

import (
	"context"

	"github.com/jhoicas/medinventory-api/internal/domain/entity"
)

// PharmacyFilter filtra el listado de farmacias.
type PharmacyFilter struct {
	Search string
	Limit  int
	Offset int
}

// PharmacyRepository define el puerto de persistencia para Pharmacy.
// Create y Update retornan domain.ErrDuplicate si el registro ya existe.
type PharmacyRepository interface {
	Create(ctx context.Context, pharmacy *entity.Pharmacy) error
	GetByID(ctx context.Context, id string) (*entity.Pharmacy, error)
	GetByRegistrationNumber(ctx context.Context, registrationNumber string) (*entity.Pharmacy, error)
	Update(ctx context.Context, pharmacy *entity.Pharmacy) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter PharmacyFilter) ([]*entity.Pharmacy, error)
}
