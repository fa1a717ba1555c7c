package dto

import "time"

// CreateAssignmentRequest body para POST /api/assignments.
type CreateAssignmentRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	ClientID  string `json:"client_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Notes     string `json:"notes" validate:"max=500"`
}

// AssignmentFilterRequest query de GET /api/assignments.
type AssignmentFilterRequest struct {
	StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	ClientID  string `query:"client_id" validate:"omitempty,uuid"`
	Category  string `query:"category"`
}

// AssignmentResponse asignación con los snapshots de producto y cliente.
type AssignmentResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Category       string    `json:"category"`
	BatchNumber    string    `json:"batch_number"`
	Unit           string    `json:"unit"`
	ClientID       string    `json:"client_id"`
	ClientName     string    `json:"client_name"`
	ClientType     string    `json:"client_type"`
	Quantity       int       `json:"quantity"`
	AssignedByID   string    `json:"assigned_by_id"`
	AssignedByName string    `json:"assigned_by_name"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}
