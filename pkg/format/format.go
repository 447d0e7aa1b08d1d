// Package format formatea cifras para las vistas HTML y el PDF.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money "$1,234.50"; los negativos llevan el signo antes del símbolo.
func Money(d decimal.Decimal) string {
	f := d.Round(2).InexactFloat64()
	if f < 0 {
		return printer.Sprintf("-$%.2f", -f)
	}
	return printer.Sprintf("$%.2f", f)
}

// MoneyFloat igual que Money para valores ya convertidos a float64.
func MoneyFloat(f float64) string {
	return Money(decimal.NewFromFloat(f))
}

// Number entero con separador de miles.
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}

// Percent "40.0%".
func Percent(f float64) string {
	return printer.Sprintf("%.1f%%", f)
}
