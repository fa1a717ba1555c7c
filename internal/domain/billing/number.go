package billing

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// NewInvoiceNumber genera INV + yy + mm + 4 dígitos aleatorios (ej. INV25030427).
// La unicidad la garantiza el almacenamiento; el llamador reintenta ante duplicados.
func NewInvoiceNumber(now time.Time) string {
	return FormatInvoiceNumber(now, rand.IntN(10000))
}

// FormatInvoiceNumber arma el número con un sufijo dado (0..9999).
func FormatInvoiceNumber(now time.Time, suffix int) string {
	return fmt.Sprintf("INV%02d%02d%04d", now.Year()%100, int(now.Month()), suffix%10000)
}
