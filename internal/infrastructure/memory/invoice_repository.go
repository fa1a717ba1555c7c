package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/medinventory-api/internal/domain"
	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
)

// InvoiceRepo implementa repository.InvoiceRepository en memoria.
type InvoiceRepo struct {
	s    *Store
	inTx bool
}

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

func NewInvoiceRepo(s *Store) *InvoiceRepo {
	return &InvoiceRepo{s: s}
}

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	defer r.s.lockWrite(r.inTx)()
	for _, x := range r.s.state.invoices {
		if x.InvoiceNumber == inv.InvoiceNumber || x.ID == inv.ID {
			return domain.ErrDuplicate
		}
	}
	header := *inv
	header.Items = nil
	r.s.state.invoices = append(r.s.state.invoices, header)
	for _, it := range inv.Items {
		r.s.state.items = append(r.s.state.items, *it)
	}
	return nil
}

func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, x := range r.s.state.invoices {
		if x.ID == id {
			out := x
			out.Items = r.itemsOf(id)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

// itemsOf requiere mu tomado.
func (r *InvoiceRepo) itemsOf(invoiceID string) []*entity.InvoiceItem {
	var out []*entity.InvoiceItem
	for _, it := range r.s.state.items {
		if it.InvoiceID == invoiceID {
			c := it
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func (r *InvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	defer r.s.lockWrite(r.inTx)()
	for i, x := range r.s.state.invoices {
		if x.ID == inv.ID {
			header := *inv
			header.Items = nil
			r.s.state.invoices[i] = header
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *InvoiceRepo) CreateItem(_ context.Context, it *entity.InvoiceItem) error {
	defer r.s.lockWrite(r.inTx)()
	r.s.state.items = append(r.s.state.items, *it)
	return nil
}

func (r *InvoiceRepo) DeleteItem(_ context.Context, invoiceID, itemID string) error {
	defer r.s.lockWrite(r.inTx)()
	for i, it := range r.s.state.items {
		if it.ID == itemID && it.InvoiceID == invoiceID {
			r.s.state.items = append(r.s.state.items[:i:i], r.s.state.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// Delete elimina la factura y sus líneas.
func (r *InvoiceRepo) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.inTx)()
	for i, x := range r.s.state.invoices {
		if x.ID == id {
			r.s.state.invoices = append(r.s.state.invoices[:i:i], r.s.state.invoices[i+1:]...)
			break
		}
	}
	kept := r.s.state.items[:0:0]
	for _, it := range r.s.state.items {
		if it.InvoiceID != id {
			kept = append(kept, it)
		}
	}
	r.s.state.items = kept
	return nil
}

func (r *InvoiceRepo) List(_ context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []entity.Invoice
	for _, x := range r.s.state.invoices {
		if f.PharmacyID != "" && x.PharmacyID != f.PharmacyID {
			continue
		}
		if f.Status != "" && x.Status != f.Status {
			continue
		}
		if f.Search != "" && !contains(x.InvoiceNumber, f.Search) && !contains(x.Pharmacy.Name, f.Search) {
			continue
		}
		matched = append(matched, x)
	}
	matched = page(newestFirst(matched, func(i entity.Invoice) time.Time { return i.CreatedAt }), f.Limit, f.Offset)
	out := make([]*entity.Invoice, 0, len(matched))
	for i := range matched {
		out = append(out, &matched[i])
	}
	return out, nil
}

func (r *InvoiceRepo) MarkOverdue(_ context.Context, before time.Time) ([]string, error) {
	defer r.s.lockWrite(r.inTx)()
	var ids []string
	for i, x := range r.s.state.invoices {
		if (x.Status == entity.InvoiceStatusIssued || x.Status == entity.InvoiceStatusPartial) && x.DueDate.Before(before) {
			r.s.state.invoices[i].Status = entity.InvoiceStatusOverdue
			r.s.state.invoices[i].UpdatedAt = time.Now()
			ids = append(ids, x.ID)
		}
	}
	return ids, nil
}
