package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago.
const (
	PaymentMethodCash         = "cash"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCheck        = "check"
	PaymentMethodCreditCard   = "credit_card"
)

// IsValidPaymentMethod indica si m es un método de pago soportado.
func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCheck, PaymentMethodCreditCard:
		return true
	}
	return false
}

// Payment es un abono aplicado a una factura.
type Payment struct {
	ID              string
	InvoiceID       string
	InvoiceNumber   string
	PaymentDate     time.Time
	Amount          decimal.Decimal
	Method          string
	ReferenceNumber string
	Notes           string
	CreatedByID     string
	CreatedAt       time.Time
}
