package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItem es una línea de factura. Position conserva el orden de captura.
type InvoiceItem struct {
	ID                 string
	InvoiceID          string
	Position           int
	ProductID          string
	Product            ProductSnapshot
	Quantity           int
	UnitPrice          decimal.Decimal
	DiscountPercentage decimal.Decimal
	DiscountAmount     decimal.Decimal
	TotalAmount        decimal.Decimal
	CreatedAt          time.Time
}
