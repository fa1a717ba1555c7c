package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body para POST /api/invoices.
// Sin due_date se usa issue_date + plazo de pago de la farmacia.
type CreateInvoiceRequest struct {
	PharmacyID         string               `json:"pharmacy_id" validate:"required,uuid"`
	IssueDate          string               `json:"issue_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate            string               `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	DiscountPercentage decimal.Decimal      `json:"discount_percentage"`
	TaxPercentage      decimal.Decimal      `json:"tax_percentage"`
	Notes              string               `json:"notes" validate:"max=1000"`
	Items              []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

// InvoiceItemRequest línea de factura. Sin unit_price se usa el costo del producto.
type InvoiceItemRequest struct {
	ProductID          string           `json:"product_id" validate:"required,uuid"`
	Quantity           int              `json:"quantity" validate:"required,min=1"`
	UnitPrice          *decimal.Decimal `json:"unit_price,omitempty"`
	DiscountPercentage decimal.Decimal  `json:"discount_percentage"`
}

// UpdateInvoiceRequest body para PUT /api/invoices/:id. Recalcula totales.
type UpdateInvoiceRequest struct {
	DueDate            *string          `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes              *string          `json:"notes,omitempty" validate:"omitempty,max=1000"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	TaxPercentage      *decimal.Decimal `json:"tax_percentage,omitempty"`
}

// UpdateInvoiceStatusRequest body para PATCH /api/invoices/:id/status.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft issued partial paid overdue cancelled"`
}

// InvoiceResponse factura con líneas.
type InvoiceResponse struct {
	ID                 string                `json:"id"`
	InvoiceNumber      string                `json:"invoice_number"`
	PharmacyID         string                `json:"pharmacy_id"`
	PharmacyName       string                `json:"pharmacy_name"`
	Pharmacy           *PharmacySnapshotDTO  `json:"pharmacy,omitempty"`
	IssueDate          string                `json:"issue_date"`
	DueDate            string                `json:"due_date"`
	Subtotal           decimal.Decimal       `json:"subtotal"`
	DiscountPercentage decimal.Decimal       `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal       `json:"discount_amount"`
	TaxPercentage      decimal.Decimal       `json:"tax_percentage"`
	TaxAmount          decimal.Decimal       `json:"tax_amount"`
	TotalAmount        decimal.Decimal       `json:"total_amount"`
	PaidAmount         decimal.Decimal       `json:"paid_amount"`
	Balance            decimal.Decimal       `json:"balance"`
	Status             string                `json:"status"`
	Notes              string                `json:"notes"`
	CreatedByID        string                `json:"created_by_id"`
	CreatedByName      string                `json:"created_by_name"`
	Items              []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

// PharmacySnapshotDTO datos de la farmacia al momento de facturar.
type PharmacySnapshotDTO struct {
	Name               string `json:"name"`
	ContactPerson      string `json:"contact_person"`
	ContactNumber      string `json:"contact_number"`
	Email              string `json:"email"`
	Address            string `json:"address"`
	RegistrationNumber string `json:"registration_number"`
}

// InvoiceItemResponse línea de factura en la respuesta.
type InvoiceItemResponse struct {
	ID                 string          `json:"id"`
	ProductID          string          `json:"product_id"`
	ProductName        string          `json:"product_name"`
	BatchNumber        string          `json:"batch_number"`
	Unit               string          `json:"unit"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
}

// InvoiceListResponse listado paginado de facturas (sin líneas).
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// MarkOverdueResponse resultado de POST /api/invoices/mark-overdue.
type MarkOverdueResponse struct {
	Updated    int      `json:"updated"`
	InvoiceIDs []string `json:"invoice_ids"`
}

// CreatePaymentRequest body para POST /api/invoices/:id/payments.
type CreatePaymentRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"method" validate:"required,oneof=cash bank_transfer check credit_card"`
	PaymentDate     string          `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	ReferenceNumber string          `json:"reference_number" validate:"max=100"`
	Notes           string          `json:"notes" validate:"max=500"`
}

// PaymentResponse abono en respuestas.
type PaymentResponse struct {
	ID              string          `json:"id"`
	InvoiceID       string          `json:"invoice_id"`
	InvoiceNumber   string          `json:"invoice_number"`
	PaymentDate     string          `json:"payment_date"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"method"`
	ReferenceNumber string          `json:"reference_number"`
	Notes           string          `json:"notes"`
	CreatedByID     string          `json:"created_by_id"`
	CreatedAt       time.Time       `json:"created_at"`
}

// PaymentResultResponse abono registrado y estado resultante de la factura.
type PaymentResultResponse struct {
	Payment PaymentResponse `json:"payment"`
	Invoice InvoiceResponse `json:"invoice"`
}
