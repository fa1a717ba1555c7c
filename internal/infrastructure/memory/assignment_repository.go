package memory

import (
	"context"
	"time"

	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
)

// AssignmentRepo implementa repository.AssignmentRepository en memoria.
type AssignmentRepo struct {
	s    *Store
	inTx bool
}

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

func NewAssignmentRepo(s *Store) *AssignmentRepo {
	return &AssignmentRepo{s: s}
}

func (r *AssignmentRepo) Create(_ context.Context, a *entity.Assignment) error {
	defer r.s.lockWrite(r.inTx)()
	r.s.state.assignments = append(r.s.state.assignments, *a)
	return nil
}

func (r *AssignmentRepo) GetByID(_ context.Context, id string) (*entity.Assignment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, x := range r.s.state.assignments {
		if x.ID == id {
			out := x
			return &out, nil
		}
	}
	return nil, nil
}

func (r *AssignmentRepo) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.inTx)()
	for i, x := range r.s.state.assignments {
		if x.ID == id {
			r.s.state.assignments = append(r.s.state.assignments[:i:i], r.s.state.assignments[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *AssignmentRepo) List(_ context.Context, f repository.AssignmentFilter) ([]*entity.Assignment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []entity.Assignment
	for _, x := range r.s.state.assignments {
		if f.From != nil && x.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && x.CreatedAt.After(*f.To) {
			continue
		}
		if f.ClientID != "" && x.ClientID != f.ClientID {
			continue
		}
		if f.Category != "" && x.Product.Category != f.Category {
			continue
		}
		matched = append(matched, x)
	}
	matched = page(newestFirst(matched, func(a entity.Assignment) time.Time { return a.CreatedAt }), f.Limit, f.Offset)
	out := make([]*entity.Assignment, 0, len(matched))
	for i := range matched {
		out = append(out, &matched[i])
	}
	return out, nil
}
