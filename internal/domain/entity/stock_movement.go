package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIn  = "IN"  // entrada de stock
	MovementTypeOut = "OUT" // salida por asignación o factura
)

// StockMovement es el kardex de un producto: cada entrada o salida de stock.
type StockMovement struct {
	ID          string
	ProductID   string
	Type        string
	Quantity    int // siempre positivo; Type define el signo
	UnitCost    decimal.Decimal
	ReferenceID string // asignación o factura que originó la salida
	Notes       string
	CreatedBy   string // UserID
	CreatedAt   time.Time
}
