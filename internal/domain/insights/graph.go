package insights

import (
	"time"

	"github.com/shopspring/decimal"
)

// GraphMetric métrica de la gráfica principal del dashboard.
type GraphMetric string

const (
	MetricSales             GraphMetric = "sales"
	MetricProfit            GraphMetric = "profit"
	MetricGrossProfitMargin GraphMetric = "gross_profit_margin"
	MetricNumOrders         GraphMetric = "num_orders"
)

// GraphMetrics valores aceptados para ?metric=.
var GraphMetrics = []GraphMetric{MetricSales, MetricProfit, MetricGrossProfitMargin, MetricNumOrders}

// Tipos de valor que el frontend usa para formatear el eje.
const (
	MetricTypeCurrency   = "currency"
	MetricTypePercentage = "percentage"
	MetricTypeInteger    = "integer"
)

// Valid informa si la métrica es conocida.
func (m GraphMetric) Valid() bool {
	for _, v := range GraphMetrics {
		if m == v {
			return true
		}
	}
	return false
}

// Label título legible de la métrica.
func (m GraphMetric) Label() string {
	switch m {
	case MetricSales:
		return "Total Sales Revenue"
	case MetricProfit:
		return "Total Profit"
	case MetricGrossProfitMargin:
		return "Gross Profit Margin"
	case MetricNumOrders:
		return "Number of Orders"
	}
	return ""
}

// Type tipo de valor (currency | percentage | integer).
func (m GraphMetric) Type() string {
	switch m {
	case MetricGrossProfitMargin:
		return MetricTypePercentage
	case MetricNumOrders:
		return MetricTypeInteger
	default:
		return MetricTypeCurrency
	}
}

// TimePeriod ventana de tiempo de la gráfica.
type TimePeriod string

const (
	PeriodWeek    TimePeriod = "week"
	PeriodMonth   TimePeriod = "month"
	PeriodQuarter TimePeriod = "quarter"
	PeriodYear    TimePeriod = "year"
	PeriodAll     TimePeriod = "all"
)

// TimePeriods valores aceptados para ?time_period=.
var TimePeriods = []TimePeriod{PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear, PeriodAll}

// Valid informa si el periodo es conocido.
func (p TimePeriod) Valid() bool {
	for _, v := range TimePeriods {
		if p == v {
			return true
		}
	}
	return false
}

// Window rango y granularidad resueltos para un periodo.
type Window struct {
	Start       time.Time // inicio del primer bucket (ya truncado)
	From        time.Time // primer instante que entra en la consulta
	End         time.Time // "ahora"
	Granularity Granularity
	TitleSuffix string
}

// ResolveWindow calcula la ventana del periodo relativa a now (en la zona del negocio).
// firstSale solo se usa para PeriodAll; si es nil la ventana no existe (ok=false).
func ResolveWindow(p TimePeriod, now time.Time, firstSale *time.Time) (w Window, ok bool) {
	today := Truncate(now, Day)
	w.End = now
	switch p {
	case PeriodWeek:
		w.Start, w.Granularity = today.AddDate(0, 0, -6), Day
		w.TitleSuffix = "for the Last 7 Days"
	case PeriodMonth:
		w.Start, w.Granularity = Truncate(now, Month), Day
		w.TitleSuffix = "for " + now.Format("January 2006")
	case PeriodQuarter:
		w.From = today.AddDate(0, 0, -89)
		w.Start, w.Granularity = Truncate(w.From, Week), Week
		w.TitleSuffix = "for the Last 90 Days"
	case PeriodYear:
		w.Start, w.Granularity = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), Month
		w.TitleSuffix = "for " + now.Format("2006")
	case PeriodAll:
		if firstSale == nil {
			return Window{}, false
		}
		w.Start, w.Granularity = Truncate(firstSale.In(now.Location()), Month), Month
		w.TitleSuffix = "Overall"
	default:
		return Window{}, false
	}
	if w.From.IsZero() {
		w.From = w.Start
	}
	return w, true
}

// DailyPoint agregado de un día para la gráfica (ya en la zona del negocio).
// COGS usa el costo actual del producto.
type DailyPoint struct {
	Day     time.Time
	Revenue decimal.Decimal
	COGS    decimal.Decimal
	Orders  int64
}

// BucketTotals acumulado de un bucket.
type BucketTotals struct {
	Revenue decimal.Decimal
	COGS    decimal.Decimal
	Orders  int64
}

// FoldDaily agrupa puntos diarios en buckets de la granularidad pedida.
func FoldDaily(points []DailyPoint, g Granularity) map[string]BucketTotals {
	out := make(map[string]BucketTotals)
	for _, p := range points {
		key := BucketKey(Truncate(p.Day, g))
		acc := out[key]
		acc.Revenue = acc.Revenue.Add(p.Revenue)
		acc.COGS = acc.COGS.Add(p.COGS)
		acc.Orders += p.Orders
		out[key] = acc
	}
	return out
}

// Value valor de la métrica para un bucket.
func (m GraphMetric) Value(t BucketTotals) float64 {
	switch m {
	case MetricProfit:
		return t.Revenue.Sub(t.COGS).InexactFloat64()
	case MetricGrossProfitMargin:
		return GrossMargin(t.Revenue, t.COGS).InexactFloat64()
	case MetricNumOrders:
		return float64(t.Orders)
	default:
		return t.Revenue.InexactFloat64()
	}
}

// Project aplica la métrica a cada bucket, dejando el mapa listo para FillSeries.
func (m GraphMetric) Project(totals map[string]BucketTotals) map[string]float64 {
	out := make(map[string]float64, len(totals))
	for k, t := range totals {
		out[k] = m.Value(t)
	}
	return out
}
