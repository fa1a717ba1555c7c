// Package inventory agrupa las reglas de stock: alertas, vencimientos y reposición.
package inventory

import (
	"math"
	"time"
)

// Umbrales de vencimiento en días.
const (
	DefaultExpiryWarningDays = 30
	ReportExpiryWindowDays   = 90
)

// IdealStockFactor define el stock ideal como múltiplo del punto de reorden.
const IdealStockFactor = 1.5

// IsLowStock indica si la existencia llegó al punto de reorden.
func IsLowStock(quantity, reorderLevel int) bool {
	return quantity <= reorderLevel
}

// DaysRemaining son los días (redondeados hacia arriba) hasta expiry.
func DaysRemaining(expiry, now time.Time) int {
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}

// IsExpired indica si el producto ya venció.
func IsExpired(expiry, now time.Time) bool {
	return DaysRemaining(expiry, now) <= 0
}

// IsExpiringSoon indica si vence dentro de los próximos thresholdDays (sin estar vencido).
func IsExpiringSoon(expiry, now time.Time, thresholdDays int) bool {
	days := DaysRemaining(expiry, now)
	return days > 0 && days <= thresholdDays
}

// SuggestedReorder retorna cuánto pedir para llegar al stock ideal; 0 si no hace falta.
func SuggestedReorder(quantity, reorderLevel int) (ideal, suggested int) {
	ideal = int(math.Ceil(float64(reorderLevel) * IdealStockFactor))
	if quantity > reorderLevel {
		return ideal, 0
	}
	suggested = ideal - quantity
	if suggested < 0 {
		suggested = 0
	}
	return ideal, suggested
}
