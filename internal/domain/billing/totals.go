// Package billing contiene las reglas puras de facturación: totales, abonos y vencimiento.
package billing

import (
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Line es la entrada de cálculo de una línea de factura.
type Line struct {
	Quantity           int
	UnitPrice          decimal.Decimal
	DiscountPercentage decimal.Decimal // 0..100
}

// LineAmounts son los montos derivados de una línea.
type LineAmounts struct {
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
}

// Totals son los montos de cabecera de una factura.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
}

// rate convierte un porcentaje (0..100) en fracción sin pérdida de precisión.
func rate(pct decimal.Decimal) decimal.Decimal {
	return pct.Shift(-2)
}

// CalculateLine: total = q * p * (1 - d/100). Descuento + total = q * p.
func CalculateLine(l Line) LineAmounts {
	gross := decimal.NewFromInt(int64(l.Quantity)).Mul(l.UnitPrice)
	r := rate(l.DiscountPercentage)
	return LineAmounts{
		DiscountAmount: gross.Mul(r),
		TotalAmount:    gross.Mul(one.Sub(r)),
	}
}

// CalculateTotals agrega las líneas y aplica descuento e impuesto de cabecera.
// El impuesto se calcula sobre el subtotal ya descontado. No recorta porcentajes
// fuera de rango: esa validación corresponde al caso de uso.
func CalculateTotals(lines []Line, discountPct, taxPct decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(CalculateLine(l).TotalAmount)
	}
	discount := subtotal.Mul(rate(discountPct))
	afterDiscount := subtotal.Sub(discount)
	tax := afterDiscount.Mul(rate(taxPct))
	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		TotalAmount:    afterDiscount.Add(tax),
	}
}

// ValidPercentage indica si pct está en [0, 100].
func ValidPercentage(pct decimal.Decimal) bool {
	return !pct.IsNegative() && pct.LessThanOrEqual(decimal.NewFromInt(100))
}
