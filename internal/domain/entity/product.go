package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un insumo médico del inventario (medicamento, EPP, equipo).
// Quantity es la existencia actual; asignaciones y facturas la descuentan.
type Product struct {
	ID           string
	Name         string
	Description  string
	Category     string
	Quantity     int
	Unit         string
	Manufacturer string
	BatchNumber  string
	ExpiryDate   time.Time
	ReorderLevel int
	CostPerUnit  decimal.Decimal // costo promedio ponderado
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProductSnapshot es la copia del producto guardada en facturas y asignaciones.
// Ediciones posteriores del producto no la modifican.
type ProductSnapshot struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	Manufacturer string          `json:"manufacturer"`
	BatchNumber  string          `json:"batch_number"`
	ExpiryDate   time.Time       `json:"expiry_date"`
	CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
	Quantity     int             `json:"quantity"`
}

// Snapshot copia los datos relevantes del producto en este momento.
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		Unit:         p.Unit,
		Manufacturer: p.Manufacturer,
		BatchNumber:  p.BatchNumber,
		ExpiryDate:   p.ExpiryDate,
		CostPerUnit:  p.CostPerUnit,
		Quantity:     p.Quantity,
	}
}
