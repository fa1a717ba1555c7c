package dto

import "time"

// CreateClientRequest body para POST /api/clients.
// patient_id es obligatorio si type=patient; department_id si type=department.
type CreateClientRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	Type          string `json:"type" validate:"required,oneof=patient department"`
	ContactPerson string `json:"contact_person" validate:"max=200"`
	ContactNumber string `json:"contact_number" validate:"max=50"`
	Email         string `json:"email" validate:"omitempty,email"`
	PatientID     string `json:"patient_id" validate:"required_if=Type patient,max=100"`
	DepartmentID  string `json:"department_id" validate:"required_if=Type department,max=100"`
}

// UpdateClientRequest body para PUT /api/clients/:id.
type UpdateClientRequest = CreateClientRequest

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	ContactPerson string    `json:"contact_person"`
	ContactNumber string    `json:"contact_number"`
	Email         string    `json:"email"`
	PatientID     string    `json:"patient_id,omitempty"`
	DepartmentID  string    `json:"department_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
