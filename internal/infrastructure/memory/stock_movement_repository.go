package memory

import (
	"context"
	"time"

	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
)

// StockMovementRepo implementa repository.StockMovementRepository en memoria.
type StockMovementRepo struct {
	s    *Store
	inTx bool
}

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

func NewStockMovementRepo(s *Store) *StockMovementRepo {
	return &StockMovementRepo{s: s}
}

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	defer r.s.lockWrite(r.inTx)()
	r.s.state.movements = append(r.s.state.movements, *m)
	return nil
}

func (r *StockMovementRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []entity.StockMovement
	for _, x := range r.s.state.movements {
		if x.ProductID == productID {
			matched = append(matched, x)
		}
	}
	matched = page(newestFirst(matched, func(m entity.StockMovement) time.Time { return m.CreatedAt }), limit, offset)
	out := make([]*entity.StockMovement, 0, len(matched))
	for i := range matched {
		out = append(out, &matched[i])
	}
	return out, nil
}
