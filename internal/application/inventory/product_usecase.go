// Package inventory contiene los casos de uso de productos, stock y asignaciones.
package inventory

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
	"github.com/jhoicas/medinventory-api/internal/domain/inventory"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos.
type ProductUseCase struct {
	repo              repository.ProductRepository
	activity          *activity.ActivityUseCase
	expiryWarningDays int
	now               func() time.Time
}

// NewProductUseCase construye el caso de uso. expiryWarningDays <= 0 usa 30 días.
func NewProductUseCase(repo repository.ProductRepository, act *activity.ActivityUseCase, expiryWarningDays int) *ProductUseCase {
	if expiryWarningDays <= 0 {
		expiryWarningDays = inventory.DefaultExpiryWarningDays
	}
	return &ProductUseCase{repo: repo, activity: act, expiryWarningDays: expiryWarningDays, now: time.Now}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	expiry, err := dto.ParseDate(in.ExpiryDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 || in.ReorderLevel < 0 || in.CostPerUnit.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Category:     strings.TrimSpace(in.Category),
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		Manufacturer: in.Manufacturer,
		BatchNumber:  in.BatchNumber,
		ExpiryDate:   expiry,
		ReorderLevel: in.ReorderLevel,
		CostPerUnit:  in.CostPerUnit,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.activity.Record(ctx, actor, entity.ActionCreated, entity.EntityProduct, product.ID,
		fmt.Sprintf("Created product: %s", product.Name))
	return uc.toResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(product), nil
}

// Update aplica los campos presentes en la request.
func (uc *ProductUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.Quantity = *in.Quantity
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.Manufacturer != nil {
		product.Manufacturer = *in.Manufacturer
	}
	if in.BatchNumber != nil {
		product.BatchNumber = *in.BatchNumber
	}
	if in.ExpiryDate != nil {
		expiry, err := dto.ParseDate(*in.ExpiryDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		product.ExpiryDate = expiry
	}
	if in.ReorderLevel != nil {
		if *in.ReorderLevel < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.ReorderLevel = *in.ReorderLevel
	}
	if in.CostPerUnit != nil {
		if in.CostPerUnit.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.CostPerUnit = *in.CostPerUnit
	}
	product.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.activity.Record(ctx, actor, entity.ActionUpdated, entity.EntityProduct, product.ID,
		fmt.Sprintf("Updated product: %s", product.Name))
	return uc.toResponse(product), nil
}

// Delete elimina el producto. Facturas y asignaciones conservan su snapshot.
func (uc *ProductUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.activity.Record(ctx, actor, entity.ActionDeleted, entity.EntityProduct, id,
		fmt.Sprintf("Deleted product: %s", product.Name))
	return nil
}

// List lista productos con filtros de categoría y búsqueda.
func (uc *ProductUseCase) List(ctx context.Context, category, search string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.repo.List(ctx, repository.ProductFilter{
		Category: category,
		Search:   search,
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *uc.toResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *ProductUseCase) toResponse(p *entity.Product) *dto.ProductResponse {
	return ToProductResponse(p, uc.now(), uc.expiryWarningDays)
}

// ToProductResponse convierte la entidad calculando las banderas de alerta a la fecha now.
func ToProductResponse(p *entity.Product, now time.Time, expiryWarningDays int) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Quantity:      p.Quantity,
		Unit:          p.Unit,
		Manufacturer:  p.Manufacturer,
		BatchNumber:   p.BatchNumber,
		ExpiryDate:    dto.FormatDate(p.ExpiryDate),
		ReorderLevel:  p.ReorderLevel,
		CostPerUnit:   p.CostPerUnit,
		LowStock:      inventory.IsLowStock(p.Quantity, p.ReorderLevel),
		Expired:       inventory.IsExpired(p.ExpiryDate, now),
		ExpiringSoon:  inventory.IsExpiringSoon(p.ExpiryDate, now, expiryWarningDays),
		DaysRemaining: inventory.DaysRemaining(p.ExpiryDate, now),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
