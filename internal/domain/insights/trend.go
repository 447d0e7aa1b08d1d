package insights

import (
	"strings"
	"time"
)

// Claves de métricas de las tablas de tendencia mensual.
const (
	TrendRevenue      = "revenue"
	TrendNetProfit    = "net_profit"
	TrendQuantitySold = "quantity_sold"
	TrendCOGS         = "cogs"
)

// RecentTrendMonths meses que cubre la tabla resumida del dashboard.
const RecentTrendMonths = 10

// TrendMetricOption entrada del catálogo mostrado en el modal de tendencias.
type TrendMetricOption struct {
	Name string
	Key  string
}

// TrendMetricCatalogue catálogo en su orden canónico.
var TrendMetricCatalogue = []TrendMetricOption{
	{Name: "Revenue", Key: TrendRevenue},
	{Name: "Net Profit", Key: TrendNetProfit},
	{Name: "Quantity Sold", Key: TrendQuantitySold},
	{Name: "COGS", Key: TrendCOGS},
}

// AllTrendMetrics devuelve las cuatro claves en orden canónico (copia nueva).
func AllTrendMetrics() []string {
	out := make([]string, 0, len(TrendMetricCatalogue))
	for _, o := range TrendMetricCatalogue {
		out = append(out, o.Key)
	}
	return out
}

func isTrendMetric(k string) bool {
	for _, o := range TrendMetricCatalogue {
		if o.Key == k {
			return true
		}
	}
	return false
}

// ParseTrendMetrics interpreta el CSV de ?metrics= conservando el orden pedido.
// "all" se expande a las cuatro claves; duplicados y claves desconocidas se descartan.
// Si no queda ninguna, devuelve las cuatro.
func ParseTrendMetrics(raw string) []string {
	seen := make(map[string]bool, 4)
	var out []string
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	for _, part := range strings.Split(raw, ",") {
		k := strings.ToLower(strings.TrimSpace(part))
		switch {
		case k == "all":
			for _, a := range AllTrendMetrics() {
				add(a)
			}
		case isTrendMetric(k):
			add(k)
		}
	}
	if len(out) == 0 {
		return AllTrendMetrics()
	}
	return out
}

// RecentTrendStart primer mes de la tabla resumida: currentMonth-9, o el primer mes
// con rollup si es posterior, o currentMonth si la empresa no tiene rollups.
// Nunca es posterior a currentMonth.
func RecentTrendStart(currentMonth time.Time, firstRecorded *time.Time) time.Time {
	currentMonth = Truncate(currentMonth, Month)
	if firstRecorded == nil {
		return currentMonth
	}
	start := currentMonth.AddDate(0, -(RecentTrendMonths - 1), 0)
	first := Truncate(firstRecorded.In(currentMonth.Location()), Month)
	if first.After(start) {
		start = first
	}
	if start.After(currentMonth) {
		start = currentMonth
	}
	return start
}

// HistorySpan meses de la tabla histórica completa: del mes de la primera venta
// hasta max(mes actual, mes de la última venta). Sin historial: solo el mes actual.
func HistorySpan(now time.Time, firstSale, lastSale *time.Time) (start, end time.Time) {
	current := Truncate(now, Month)
	if firstSale == nil || lastSale == nil {
		return current, current
	}
	start = Truncate(firstSale.In(now.Location()), Month)
	end = Truncate(lastSale.In(now.Location()), Month)
	if current.After(end) {
		end = current
	}
	if start.After(end) {
		start = end
	}
	return start, end
}

// MonthValues valores de un mes para las cuatro métricas.
type MonthValues struct {
	Revenue      float64
	NetProfit    float64
	QuantitySold int64
	COGS         float64
}

// TrendRow fila de una tabla de tendencia: periodo + métricas en el orden pedido.
type TrendRow struct {
	Period string
	Keys   []string
	Values map[string]any
}

// BuildTrendRows genera una fila por mes en months; los meses sin dato quedan en cero.
func BuildTrendRows(months []time.Time, byMonth map[string]MonthValues, metrics []string) []TrendRow {
	rows := make([]TrendRow, 0, len(months))
	for _, m := range months {
		v := byMonth[BucketKey(m)]
		row := TrendRow{Period: MonthLabel(m), Keys: metrics, Values: make(map[string]any, len(metrics))}
		for _, k := range metrics {
			switch k {
			case TrendRevenue:
				row.Values[k] = v.Revenue
			case TrendNetProfit:
				row.Values[k] = v.NetProfit
			case TrendQuantitySold:
				row.Values[k] = v.QuantitySold
			case TrendCOGS:
				row.Values[k] = v.COGS
			}
		}
		rows = append(rows, row)
	}
	return rows
}
