package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/medinventory-api/internal/domain"
	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
)

// UserRepo implementa repository.UserRepository en memoria.
type UserRepo struct {
	s    *Store
	inTx bool
}

var _ repository.UserRepository = (*UserRepo)(nil)

func NewUserRepo(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	defer r.s.lockWrite(r.inTx)()
	for _, x := range r.s.state.users {
		if strings.EqualFold(x.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.state.users = append(r.s.state.users, *u)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id }), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r *UserRepo) find(match func(entity.User) bool) *entity.User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, x := range r.s.state.users {
		if match(x) {
			out := x
			return &out
		}
	}
	return nil
}

func (r *UserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	users := append([]entity.User(nil), r.s.state.users...)
	sort.SliceStable(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	users = page(users, limit, offset)
	out := make([]*entity.User, 0, len(users))
	for i := range users {
		out = append(out, &users[i])
	}
	return out, nil
}
