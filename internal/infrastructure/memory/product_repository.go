package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/medinventory-api/internal/domain"
	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ProductRepo implementa repository.ProductRepository en memoria.
type ProductRepo struct {
	s    *Store
	inTx bool
}

var _ repository.ProductRepository = (*ProductRepo)(nil)

func NewProductRepo(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.s.lockWrite(r.inTx)()
	for _, x := range r.s.state.products {
		if x.ID == p.ID {
			return domain.ErrDuplicate
		}
	}
	r.s.state.products = append(r.s.state.products, *p)
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, x := range r.s.state.products {
		if x.ID == id {
			out := x
			return &out, nil
		}
	}
	return nil, nil
}

// GetForUpdate equivale a GetByID: TxRunner ya serializa las transacciones.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.s.lockWrite(r.inTx)()
	for i, x := range r.s.state.products {
		if x.ID == p.ID {
			r.s.state.products[i] = *p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *ProductRepo) UpdateStock(_ context.Context, id string, quantity int, cost decimal.Decimal) error {
	defer r.s.lockWrite(r.inTx)()
	for i, x := range r.s.state.products {
		if x.ID == id {
			r.s.state.products[i].Quantity = quantity
			r.s.state.products[i].CostPerUnit = cost
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.inTx)()
	for i, x := range r.s.state.products {
		if x.ID == id {
			r.s.state.products = append(r.s.state.products[:i:i], r.s.state.products[i+1:]...)
			return nil
		}
	}
	return nil
}

// List ordena por nombre.
func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []entity.Product
	for _, x := range r.s.state.products {
		if f.Category != "" && x.Category != f.Category {
			continue
		}
		if f.Search != "" && !contains(x.Name, f.Search) && !contains(x.Manufacturer, f.Search) && !contains(x.BatchNumber, f.Search) {
			continue
		}
		matched = append(matched, x)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	matched = page(matched, f.Limit, f.Offset)
	out := make([]*entity.Product, 0, len(matched))
	for i := range matched {
		out = append(out, &matched[i])
	}
	return out, nil
}
