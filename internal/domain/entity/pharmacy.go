package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pharmacy es la entidad externa a la que se factura el suministro.
// RegistrationNumber es único; PaymentTerms está en días.
type Pharmacy struct {
	ID                 string
	Name               string
	ContactPerson      string
	ContactNumber      string
	Email              string
	Address            string
	RegistrationNumber string
	CreditLimit        decimal.Decimal
	PaymentTerms       int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PharmacySnapshot es la copia de la farmacia guardada en la factura.
type PharmacySnapshot struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	ContactPerson      string `json:"contact_person"`
	ContactNumber      string `json:"contact_number"`
	Email              string `json:"email"`
	Address            string `json:"address"`
	RegistrationNumber string `json:"registration_number"`
	PaymentTerms       int    `json:"payment_terms"`
}

func (p *Pharmacy) Snapshot() PharmacySnapshot {
	return PharmacySnapshot{
		ID:                 p.ID,
		Name:               p.Name,
		ContactPerson:      p.ContactPerson,
		ContactNumber:      p.ContactNumber,
		Email:              p.Email,
		Address:            p.Address,
		RegistrationNumber: p.RegistrationNumber,
		PaymentTerms:       p.PaymentTerms,
	}
}
