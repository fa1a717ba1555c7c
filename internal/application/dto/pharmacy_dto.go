package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePharmacyRequest body para POST /api/pharmacies.
type CreatePharmacyRequest struct {
	Name               string          `json:"name" validate:"required,max=200"`
	ContactPerson      string          `json:"contact_person" validate:"max=200"`
	ContactNumber      string          `json:"contact_number" validate:"max=50"`
	Email              string          `json:"email" validate:"omitempty,email"`
	Address            string          `json:"address" validate:"max=500"`
	RegistrationNumber string          `json:"registration_number" validate:"required,max=100"`
	CreditLimit        decimal.Decimal `json:"credit_limit"`
	PaymentTerms       int             `json:"payment_terms" validate:"min=0,max=365"`
}

// UpdatePharmacyRequest body para PUT /api/pharmacies/:id.
type UpdatePharmacyRequest = CreatePharmacyRequest

// PharmacyResponse farmacia en respuestas.
type PharmacyResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	ContactPerson      string          `json:"contact_person"`
	ContactNumber      string          `json:"contact_number"`
	Email              string          `json:"email"`
	Address            string          `json:"address"`
	RegistrationNumber string          `json:"registration_number"`
	CreditLimit        decimal.Decimal `json:"credit_limit"`
	PaymentTerms       int             `json:"payment_terms"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
