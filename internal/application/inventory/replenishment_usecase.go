package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/medinventory-api/internal/application/dto"
	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/domain/inventory"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
)

// ReplenishmentUseCase consulta alertas de stock y vencimiento y sugiere reposición.
type ReplenishmentUseCase struct {
	productRepo       repository.ProductRepository
	expiryWarningDays int
	now               func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository, expiryWarningDays int) *ReplenishmentUseCase {
	if expiryWarningDays <= 0 {
		expiryWarningDays = inventory.DefaultExpiryWarningDays
	}
	return &ReplenishmentUseCase{productRepo: productRepo, expiryWarningDays: expiryWarningDays, now: time.Now}
}

// LowStock productos con existencia <= punto de reorden, menor existencia primero.
func (uc *ReplenishmentUseCase) LowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	now := uc.now()
	var out []*entity.Product
	for _, p := range products {
		if inventory.IsLowStock(p.Quantity, p.ReorderLevel) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity < out[j].Quantity })
	return uc.toResponses(out, now), nil
}

// Expiring productos que vencen dentro de days días (sin vencidos), más próximo primero.
// days <= 0 usa el umbral configurado.
func (uc *ReplenishmentUseCase) Expiring(ctx context.Context, days int) ([]dto.ProductResponse, error) {
	if days <= 0 {
		days = uc.expiryWarningDays
	}
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	now := uc.now()
	var out []*entity.Product
	for _, p := range products {
		if inventory.IsExpiringSoon(p.ExpiryDate, now, days) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExpiryDate.Before(out[j].ExpiryDate) })
	return uc.toResponses(out, now), nil
}

// ReorderSuggestions: para cada producto en bajo stock, pedido = stock ideal - existencia,
// con stock ideal = punto de reorden * 1.5. Ordenado por mayor pedido sugerido.
func (uc *ReplenishmentUseCase) ReorderSuggestions(ctx context.Context) ([]dto.ReorderSuggestionDTO, error) {
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReorderSuggestionDTO, 0)
	for _, p := range products {
		ideal, suggested := inventory.SuggestedReorder(p.Quantity, p.ReorderLevel)
		if suggested == 0 {
			continue
		}
		out = append(out, dto.ReorderSuggestionDTO{
			ProductID:      p.ID,
			ProductName:    p.Name,
			Category:       p.Category,
			CurrentStock:   p.Quantity,
			ReorderLevel:   p.ReorderLevel,
			IdealStock:     ideal,
			SuggestedOrder: suggested,
			Unit:           p.Unit,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SuggestedOrder > out[j].SuggestedOrder })
	return out, nil
}

func (uc *ReplenishmentUseCase) toResponses(products []*entity.Product, now time.Time) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *ToProductResponse(p, now, uc.expiryWarningDays))
	}
	return out
}
