package pdf

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// formatMoney da formato de moneda con separador de miles: 1234.5 -> "$1,234.50".
func formatMoney(d decimal.Decimal) string {
	p := message.NewPrinter(language.English)
	if d.IsNegative() {
		return p.Sprintf("-$%v", number.Decimal(d.Abs().InexactFloat64(), number.Scale(2)))
	}
	return p.Sprintf("$%v", number.Decimal(d.InexactFloat64(), number.Scale(2)))
}

func formatPercent(d decimal.Decimal) string {
	return d.Round(2).String() + "%"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
