package insights

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// GrossMargin (ingresos - COGS) / ingresos * 100. Cero cuando ingresos <= 0.
func GrossMargin(revenue, cogs decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() {
		return decimal.Zero
	}
	return revenue.Sub(cogs).Div(revenue).Mul(hundred)
}
