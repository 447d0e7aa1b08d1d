package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyMetric rollup precalculado por (empresa, año, mes).
// Evita re-agregar las líneas de orden para la tendencia histórica.
type MonthlyMetric struct {
	CompanyID         string
	Year              int
	Month             int
	TotalRevenue      decimal.Decimal
	NetProfit         decimal.Decimal
	TotalCOGS         decimal.Decimal
	TotalProductsSold int64
	DateRecorded      *time.Time
}

// MonthStart primer día del mes del rollup en la zona indicada.
func (m MonthlyMetric) MonthStart(loc *time.Location) time.Time {
	return time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, loc)
}
