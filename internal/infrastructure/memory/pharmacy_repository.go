package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/medinventory-api/internal/domain"
	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
)

// PharmacyRepo implementa repository.PharmacyRepository en memoria.
type PharmacyRepo struct {
	s    *Store
	inTx bool
}

var _ repository.PharmacyRepository = (*PharmacyRepo)(nil)

func NewPharmacyRepo(s *Store) *PharmacyRepo {
	return &PharmacyRepo{s: s}
}

func (r *PharmacyRepo) Create(_ context.Context, p *entity.Pharmacy) error {
	defer r.s.lockWrite(r.inTx)()
	for _, x := range r.s.state.pharmacies {
		if x.RegistrationNumber == p.RegistrationNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.state.pharmacies = append(r.s.state.pharmacies, *p)
	return nil
}

func (r *PharmacyRepo) GetByID(_ context.Context, id string) (*entity.Pharmacy, error) {
	return r.find(func(p entity.Pharmacy) bool { return p.ID == id }), nil
}

func (r *PharmacyRepo) GetByRegistrationNumber(_ context.Context, reg string) (*entity.Pharmacy, error) {
	return r.find(func(p entity.Pharmacy) bool { return p.RegistrationNumber == reg }), nil
}

func (r *PharmacyRepo) find(match func(entity.Pharmacy) bool) *entity.Pharmacy {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, x := range r.s.state.pharmacies {
		if match(x) {
			out := x
			return &out
		}
	}
	return nil
}

func (r *PharmacyRepo) Update(_ context.Context, p *entity.Pharmacy) error {
	defer r.s.lockWrite(r.inTx)()
	idx := -1
	for i, x := range r.s.state.pharmacies {
		if x.ID == p.ID {
			idx = i
		} else if x.RegistrationNumber == p.RegistrationNumber {
			return domain.ErrDuplicate
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}
	r.s.state.pharmacies[idx] = *p
	return nil
}

func (r *PharmacyRepo) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.inTx)()
	for i, x := range r.s.state.pharmacies {
		if x.ID == id {
			r.s.state.pharmacies = append(r.s.state.pharmacies[:i:i], r.s.state.pharmacies[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *PharmacyRepo) List(_ context.Context, f repository.PharmacyFilter) ([]*entity.Pharmacy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []entity.Pharmacy
	for _, x := range r.s.state.pharmacies {
		if f.Search != "" && !contains(x.Name, f.Search) && !contains(x.RegistrationNumber, f.Search) {
			continue
		}
		matched = append(matched, x)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	matched = page(matched, f.Limit, f.Offset)
	out := make([]*entity.Pharmacy, 0, len(matched))
	for i := range matched {
		out = append(out, &matched[i])
	}
	return out, nil
}
