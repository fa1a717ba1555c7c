// Package auth implementa el proveedor de identidad local: registro, login y sesión.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/medinventory-api/internal/application/activity"
	"github.com/jhoicas/medinventory-api/internal/application/dto"
	"github.com/jhoicas/medinventory-api/internal/domain"
	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
	"github.com/jhoicas/medinventory-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials mensaje del proveedor ante email o contraseña incorrectos.
var ErrInvalidCredentials = fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, sesión y usuarios.
type AuthUseCase struct {
	userRepo repository.UserRepository
	activity *activity.ActivityUseCase
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, act *activity.ActivityUseCase, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, activity: act, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario con rol por defecto: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	return uc.createUser(ctx, in, entity.RoleAuthenticated)
}

// CreateUser crea un usuario con un rol explícito (seed y administración).
func (uc *AuthUseCase) CreateUser(ctx context.Context, in dto.RegisterRequest, role string) (*dto.UserResponse, error) {
	switch role {
	case entity.RoleSuperAdmin, entity.RoleAdmin, entity.RoleAuthenticated:
	default:
		return nil, domain.ErrInvalidInput
	}
	return uc.createUser(ctx, in, role)
}

func (uc *AuthUseCase) createUser(ctx context.Context, in dto.RegisterRequest, role string) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.activity.Record(ctx, dto.Actor{ID: user.ID, Name: user.Name}, entity.ActionCreated, entity.EntityUser, user.ID,
		fmt.Sprintf("Registered user: %s", user.Email))
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email inexistente y contraseña incorrecta producen el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Name, roleOf(user), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      *toUserResponse(user),
	}, nil
}

// Session retorna el usuario dueño del token vigente.
func (uc *AuthUseCase) Session(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// ListUsers lista usuarios (solo administradores).
func (uc *AuthUseCase) ListUsers(ctx context.Context, page dto.PageRequest) ([]dto.UserResponse, error) {
	page.DefaultPage()
	users, err := uc.userRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// roleOf aplica el rol por defecto cuando el usuario no tiene uno asignado.
func roleOf(u *entity.User) string {
	if u.Role == "" {
		return entity.RoleAuthenticated
	}
	return u.Role
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      roleOf(u),
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
