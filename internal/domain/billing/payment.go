package billing

import (
	"time"

	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StatusForPaid deriva el estado a partir de lo pagado; gana la primera regla:
// pagado >= total -> paid; pagado == 0 -> issued; en otro caso partial.
func StatusForPaid(paid, total decimal.Decimal) string {
	switch {
	case paid.GreaterThanOrEqual(total):
		return entity.InvoiceStatusPaid
	case paid.IsZero():
		return entity.InvoiceStatusIssued
	default:
		return entity.InvoiceStatusPartial
	}
}

// ApplyPayment suma el abono a lo pagado y retorna el nuevo acumulado y estado.
// Los sobrepagos se aceptan.
func ApplyPayment(paid, total, amount decimal.Decimal) (decimal.Decimal, string) {
	newPaid := paid.Add(amount)
	return newPaid, StatusForPaid(newPaid, total)
}

// IsOverdue indica si una factura emitida o con abono parcial venció antes del día de now.
func IsOverdue(status string, dueDate, now time.Time) bool {
	if status != entity.InvoiceStatusIssued && status != entity.InvoiceStatusPartial {
		return false
	}
	return dueDate.Before(StartOfDay(now))
}

// StartOfDay trunca t a la medianoche de su zona horaria.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
