package entity

import "time"

// Roles válidos para User. RoleAuthenticated es el rol por defecto.
const (
	RoleSuperAdmin    = "superadmin"
	RoleAdmin         = "admin"
	RoleAuthenticated = "authenticated"
)

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
