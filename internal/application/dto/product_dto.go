package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,max=200"`
	Description  string          `json:"description" validate:"max=1000"`
	Category     string          `json:"category" validate:"required,max=100"`
	Quantity     int             `json:"quantity" validate:"min=0"`
	Unit         string          `json:"unit" validate:"required,max=50"`
	Manufacturer string          `json:"manufacturer" validate:"max=200"`
	BatchNumber  string          `json:"batch_number" validate:"max=100"`
	ExpiryDate   string          `json:"expiry_date" validate:"required,datetime=2006-01-02"`
	ReorderLevel int             `json:"reorder_level" validate:"min=0"`
	CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
type UpdateProductRequest struct {
	Name         *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	Category     *string          `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	Quantity     *int             `json:"quantity,omitempty" validate:"omitempty,min=0"`
	Unit         *string          `json:"unit,omitempty" validate:"omitempty,min=1,max=50"`
	Manufacturer *string          `json:"manufacturer,omitempty" validate:"omitempty,max=200"`
	BatchNumber  *string          `json:"batch_number,omitempty" validate:"omitempty,max=100"`
	ExpiryDate   *string          `json:"expiry_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ReorderLevel *int             `json:"reorder_level,omitempty" validate:"omitempty,min=0"`
	CostPerUnit  *decimal.Decimal `json:"cost_per_unit,omitempty"`
}

// ProductResponse producto en respuestas, con las banderas de alerta calculadas.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Quantity      int             `json:"quantity"`
	Unit          string          `json:"unit"`
	Manufacturer  string          `json:"manufacturer"`
	BatchNumber   string          `json:"batch_number"`
	ExpiryDate    string          `json:"expiry_date"`
	ReorderLevel  int             `json:"reorder_level"`
	CostPerUnit   decimal.Decimal `json:"cost_per_unit"`
	LowStock      bool            `json:"low_stock"`
	Expired       bool            `json:"expired"`
	ExpiringSoon  bool            `json:"expiring_soon"`
	DaysRemaining int             `json:"days_remaining"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// AddStockRequest body para POST /api/products/:id/stock.
// UnitCost opcional: si viene, recalcula el costo promedio ponderado.
type AddStockRequest struct {
	Quantity int              `json:"quantity" validate:"required,min=1"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
	Notes    string           `json:"notes" validate:"max=500"`
}

// StockMovementResponse movimiento del kardex.
type StockMovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Type        string          `json:"type"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	ReferenceID string          `json:"reference_id,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ReorderSuggestionDTO sugerencia de reposición para un producto en bajo stock.
type ReorderSuggestionDTO struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	Category       string `json:"category"`
	CurrentStock   int    `json:"current_stock"`
	ReorderLevel   int    `json:"reorder_level"`
	IdealStock     int    `json:"ideal_stock"`
	SuggestedOrder int    `json:"suggested_order"`
	Unit           string `json:"unit"`
}
