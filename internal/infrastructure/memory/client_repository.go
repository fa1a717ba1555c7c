package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/medinventory-api/internal/domain"
	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
)

// ClientRepo implementa repository.ClientRepository en memoria.
type ClientRepo struct {
	s    *Store
	inTx bool
}

var _ repository.ClientRepository = (*ClientRepo)(nil)

func NewClientRepo(s *Store) *ClientRepo {
	return &ClientRepo{s: s}
}

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	defer r.s.lockWrite(r.inTx)()
	r.s.state.clients = append(r.s.state.clients, *c)
	return nil
}

func (r *ClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, x := range r.s.state.clients {
		if x.ID == id {
			out := x
			return &out, nil
		}
	}
	return nil, nil
}

func (r *ClientRepo) Update(_ context.Context, c *entity.Client) error {
	defer r.s.lockWrite(r.inTx)()
	for i, x := range r.s.state.clients {
		if x.ID == c.ID {
			r.s.state.clients[i] = *c
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *ClientRepo) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.inTx)()
	for i, x := range r.s.state.clients {
		if x.ID == id {
			r.s.state.clients = append(r.s.state.clients[:i:i], r.s.state.clients[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *ClientRepo) List(_ context.Context, f repository.ClientFilter) ([]*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []entity.Client
	for _, x := range r.s.state.clients {
		if f.Type != "" && x.Type != f.Type {
			continue
		}
		if f.Search != "" && !contains(x.Name, f.Search) && !contains(x.Identifier(), f.Search) && !contains(x.Email, f.Search) {
			continue
		}
		matched = append(matched, x)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	matched = page(matched, f.Limit, f.Offset)
	out := make([]*entity.Client, 0, len(matched))
	for i := range matched {
		out = append(out, &matched[i])
	}
	return out, nil
}
