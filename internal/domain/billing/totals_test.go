package billing

import (
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateTotals_Example(t *testing.T) {
	lines := []Line{{Quantity: 10, UnitPrice: d("2.00"), DiscountPercentage: decimal.Zero}}
	got := CalculateTotals(lines, d("10"), d("10"))

	assert.True(t, got.Subtotal.Equal(d("20")), "subtotal %s", got.Subtotal)
	assert.True(t, got.DiscountAmount.Equal(d("2")), "discount %s", got.DiscountAmount)
	assert.True(t, got.TaxAmount.Equal(d("1.8")), "tax %s", got.TaxAmount)
	assert.True(t, got.TotalAmount.Equal(d("19.8")), "total %s", got.TotalAmount)
}

func TestCalculateLine_Discount(t *testing.T) {
	got := CalculateLine(Line{Quantity: 3, UnitPrice: d("12.50"), DiscountPercentage: d("20")})
	assert.True(t, got.TotalAmount.Equal(d("30")))
	assert.True(t, got.DiscountAmount.Equal(d("7.5")))
}

func TestCalculateTotals_Empty(t *testing.T) {
	got := CalculateTotals(nil, d("15"), d("19"))
	assert.True(t, got.Subtotal.IsZero())
	assert.True(t, got.TotalAmount.IsZero())
}

func randomLines(r *rand.Rand) []Line {
	n := r.IntN(6)
	lines := make([]Line, n)
	for i := range lines {
		lines[i] = Line{
			Quantity:           r.IntN(500),
			UnitPrice:          decimal.New(r.Int64N(100000), -2),
			DiscountPercentage: decimal.New(r.Int64N(10001), -2),
		}
	}
	return lines
}

// Propiedades sobre entradas aleatorias en rango.
func TestCalculateTotals_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))
	for i := 0; i < 500; i++ {
		lines := randomLines(r)
		disc := decimal.New(r.Int64N(10001), -2)
		tax := decimal.New(r.Int64N(10001), -2)
		got := CalculateTotals(lines, disc, tax)

		// total = subtotal - descuento + impuesto
		assert.True(t, got.TotalAmount.Equal(got.Subtotal.Sub(got.DiscountAmount).Add(got.TaxAmount)))
		// con porcentajes en [0,100] nada es negativo
		assert.False(t, got.Subtotal.IsNegative())
		assert.False(t, got.DiscountAmount.IsNegative())
		assert.False(t, got.TaxAmount.IsNegative())
		// sin impuesto el total nunca supera el subtotal
		noTax := CalculateTotals(lines, disc, decimal.Zero)
		assert.True(t, noTax.TotalAmount.LessThanOrEqual(noTax.Subtotal))

		for _, l := range lines {
			la := CalculateLine(l)
			gross := decimal.NewFromInt(int64(l.Quantity)).Mul(l.UnitPrice)
			assert.True(t, la.TotalAmount.Add(la.DiscountAmount).Equal(gross))
		}
	}
}

func TestValidPercentage(t *testing.T) {
	assert.True(t, ValidPercentage(d("0")))
	assert.True(t, ValidPercentage(d("100")))
	assert.False(t, ValidPercentage(d("-0.01")))
	assert.False(t, ValidPercentage(d("100.5")))
}
