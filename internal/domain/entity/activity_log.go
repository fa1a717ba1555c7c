package entity

import "time"

// Tipos de entidad auditados.
const (
	EntityProduct    = "product"
	EntityClient     = "client"
	EntityAssignment = "assignment"
	EntityUser       = "user"
	EntityInvoice    = "invoice"
	EntityPayment    = "payment"
	EntityPharmacy   = "pharmacy"
)

// Acciones auditadas.
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionAssigned = "assigned"
	ActionPaid     = "paid"
)

// ActivityLog es un registro de auditoría. Solo se insertan, nunca se editan.
type ActivityLog struct {
	ID         string
	UserID     string
	UserName   string
	Action     string
	EntityType string
	EntityID   string
	Details    string
	CreatedAt  time.Time
}
