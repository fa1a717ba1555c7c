package memory

import (
	"context"
	"time"

	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
)

// PaymentRepo implementa repository.PaymentRepository en memoria.
type PaymentRepo struct {
	s    *Store
	inTx bool
}

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

func NewPaymentRepo(s *Store) *PaymentRepo {
	return &PaymentRepo{s: s}
}

func (r *PaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	defer r.s.lockWrite(r.inTx)()
	r.s.state.payments = append(r.s.state.payments, *p)
	return nil
}

func (r *PaymentRepo) GetByID(_ context.Context, id string) (*entity.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, x := range r.s.state.payments {
		if x.ID == id {
			out := x
			return &out, nil
		}
	}
	return nil, nil
}

func (r *PaymentRepo) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.inTx)()
	for i, x := range r.s.state.payments {
		if x.ID == id {
			r.s.state.payments = append(r.s.state.payments[:i:i], r.s.state.payments[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *PaymentRepo) List(_ context.Context, f repository.PaymentFilter) ([]*entity.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []entity.Payment
	for _, x := range r.s.state.payments {
		if f.InvoiceID != "" && x.InvoiceID != f.InvoiceID {
			continue
		}
		matched = append(matched, x)
	}
	matched = page(newestFirst(matched, func(p entity.Payment) time.Time { return p.CreatedAt }), f.Limit, f.Offset)
	out := make([]*entity.Payment, 0, len(matched))
	for i := range matched {
		out = append(out, &matched[i])
	}
	return out, nil
}
