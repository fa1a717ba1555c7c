package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/medinventory-api/internal/application/activity"
	"github.com/jhoicas/medinventory-api/internal/application/dto"
	"github.com/jhoicas/medinventory-api/internal/domain"
	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
)

// PharmacyUseCase casos de uso para farmacias (facturación).
type PharmacyUseCase struct {
	repo     repository.PharmacyRepository
	activity *activity.ActivityUseCase
}

// NewPharmacyUseCase construye el caso de uso.
func NewPharmacyUseCase(repo repository.PharmacyRepository, act *activity.ActivityUseCase) *PharmacyUseCase {
	return &PharmacyUseCase{repo: repo, activity: act}
}

// Create crea una farmacia. El número de registro no puede repetirse.
func (uc *PharmacyUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreatePharmacyRequest) (*dto.PharmacyResponse, error) {
	if err := validatePharmacy(in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByRegistrationNumber(ctx, strings.TrimSpace(in.RegistrationNumber))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	p := &entity.Pharmacy{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	applyPharmacy(p, in)
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.activity.Record(ctx, actor, entity.ActionCreated, entity.EntityPharmacy, p.ID,
		fmt.Sprintf("Created pharmacy: %s", p.Name))
	return toPharmacyResponse(p), nil
}

// GetByID obtiene una farmacia.
func (uc *PharmacyUseCase) GetByID(ctx context.Context, id string) (*dto.PharmacyResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPharmacyResponse(p), nil
}

// Update reemplaza los datos de la farmacia. Las facturas emitidas conservan su snapshot.
func (uc *PharmacyUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdatePharmacyRequest) (*dto.PharmacyResponse, error) {
	if err := validatePharmacy(in); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	other, err := uc.repo.GetByRegistrationNumber(ctx, strings.TrimSpace(in.RegistrationNumber))
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != p.ID {
		return nil, domain.ErrDuplicate
	}
	applyPharmacy(p, in)
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.activity.Record(ctx, actor, entity.ActionUpdated, entity.EntityPharmacy, p.ID,
		fmt.Sprintf("Updated pharmacy: %s", p.Name))
	return toPharmacyResponse(p), nil
}

// Delete elimina la farmacia.
func (uc *PharmacyUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.activity.Record(ctx, actor, entity.ActionDeleted, entity.EntityPharmacy, id,
		fmt.Sprintf("Deleted pharmacy: %s", p.Name))
	return nil
}

// List lista farmacias con búsqueda por nombre o registro.
func (uc *PharmacyUseCase) List(ctx context.Context, search string, page dto.PageRequest) ([]dto.PharmacyResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, repository.PharmacyFilter{Search: search, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	out := make([]dto.PharmacyResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPharmacyResponse(p))
	}
	return out, nil
}

func validatePharmacy(in dto.CreatePharmacyRequest) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.RegistrationNumber) == "" {
		return domain.ErrInvalidInput
	}
	if in.CreditLimit.IsNegative() || in.PaymentTerms < 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

func applyPharmacy(p *entity.Pharmacy, in dto.CreatePharmacyRequest) {
	p.Name = strings.TrimSpace(in.Name)
	p.ContactPerson = in.ContactPerson
	p.ContactNumber = in.ContactNumber
	p.Email = in.Email
	p.Address = in.Address
	p.RegistrationNumber = strings.TrimSpace(in.RegistrationNumber)
	p.CreditLimit = in.CreditLimit
	p.PaymentTerms = in.PaymentTerms
}

func toPharmacyResponse(p *entity.Pharmacy) *dto.PharmacyResponse {
	return &dto.PharmacyResponse{
		ID:                 p.ID,
		Name:               p.Name,
		ContactPerson:      p.ContactPerson,
		ContactNumber:      p.ContactNumber,
		Email:              p.Email,
		Address:            p.Address,
		RegistrationNumber: p.RegistrationNumber,
		CreditLimit:        p.CreditLimit,
		PaymentTerms:       p.PaymentTerms,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
