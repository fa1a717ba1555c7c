package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la factura.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusIssued    = "issued"
	InvoiceStatusPartial   = "partial"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

var invoiceStatuses = map[string]bool{
	InvoiceStatusDraft:     true,
	InvoiceStatusIssued:    true,
	InvoiceStatusPartial:   true,
	InvoiceStatusPaid:      true,
	InvoiceStatusOverdue:   true,
	InvoiceStatusCancelled: true,
}

// IsValidInvoiceStatus indica si s pertenece al conjunto de estados.
func IsValidInvoiceStatus(s string) bool {
	return invoiceStatuses[s]
}

// Invoice representa la factura emitida a una farmacia.
// Los porcentajes van de 0 a 100; los montos se derivan de Items.
type Invoice struct {
	ID                 string
	InvoiceNumber      string
	PharmacyID         string
	Pharmacy           PharmacySnapshot
	IssueDate          time.Time
	DueDate            time.Time
	Items              []*InvoiceItem
	Subtotal           decimal.Decimal
	DiscountPercentage decimal.Decimal
	DiscountAmount     decimal.Decimal
	TaxPercentage      decimal.Decimal
	TaxAmount          decimal.Decimal
	TotalAmount        decimal.Decimal
	PaidAmount         decimal.Decimal
	Status             string
	Notes              string
	CreatedByID        string
	CreatedByName      string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Balance es el saldo pendiente (negativo si hubo sobrepago).
func (i *Invoice) Balance() decimal.Decimal {
	return i.TotalAmount.Sub(i.PaidAmount)
}
