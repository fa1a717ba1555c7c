package memory

import (
	"context"
	"time"

	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
)

// ActivityRepo implementa repository.ActivityRepository en memoria (append-only).
type ActivityRepo struct {
	s    *Store
	inTx bool
}

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

func NewActivityRepo(s *Store) *ActivityRepo {
	return &ActivityRepo{s: s}
}

func (r *ActivityRepo) Create(_ context.Context, l *entity.ActivityLog) error {
	defer r.s.lockWrite(r.inTx)()
	r.s.state.activity = append(r.s.state.activity, *l)
	return nil
}

func (r *ActivityRepo) List(_ context.Context, f repository.ActivityFilter) ([]*entity.ActivityLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []entity.ActivityLog
	for _, x := range r.s.state.activity {
		if f.EntityType != "" && x.EntityType != f.EntityType {
			continue
		}
		if f.EntityID != "" && x.EntityID != f.EntityID {
			continue
		}
		if f.UserID != "" && x.UserID != f.UserID {
			continue
		}
		matched = append(matched, x)
	}
	matched = page(newestFirst(matched, func(l entity.ActivityLog) time.Time { return l.CreatedAt }), f.Limit, f.Offset)
	out := make([]*entity.ActivityLog, 0, len(matched))
	for i := range matched {
		out = append(out, &matched[i])
	}
	return out, nil
}
