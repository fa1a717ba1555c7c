package memory

import (
	"context"
	"time"

	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// StatsRepo implementa repository.StatsRepository en memoria.
type StatsRepo struct {
	s *Store
}

var _ repository.StatsRepository = (*StatsRepo)(nil)

func NewStatsRepo(s *Store) *StatsRepo {
	return &StatsRepo{s: s}
}

func (r *StatsRepo) CountProducts(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.state.products), nil
}

func (r *StatsRepo) CountLowStock(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, p := range r.s.state.products {
		if p.Quantity <= p.ReorderLevel {
			n++
		}
	}
	return n, nil
}

func (r *StatsRepo) CountExpiring(_ context.Context, now, until time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, p := range r.s.state.products {
		if p.ExpiryDate.After(now) && !p.ExpiryDate.After(until) {
			n++
		}
	}
	return n, nil
}

func (r *StatsRepo) CountClients(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.state.clients), nil
}

func (r *StatsRepo) CountActiveUsers(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, u := range r.s.state.users {
		if u.Status == entity.UserStatusActive {
			n++
		}
	}
	return n, nil
}

func (r *StatsRepo) CountInvoices(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.state.invoices), nil
}

func (r *StatsRepo) PendingPayments(_ context.Context) (int, decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n, total := 0, decimal.Zero
	for _, inv := range r.s.state.invoices {
		switch inv.Status {
		case entity.InvoiceStatusIssued, entity.InvoiceStatusPartial, entity.InvoiceStatusOverdue:
			n++
			total = total.Add(inv.TotalAmount.Sub(inv.PaidAmount))
		}
	}
	return n, total, nil
}
