package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/invorya-insights/internal/domain/insights"
	"github.com/jhoicas/invorya-insights/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre órdenes pagadas.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica (pool o tx).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetSalesTotals ingresos (qty × price), utilidad neta y COGS guardados de todas las órdenes pagadas.
// Usa COALESCE para devolver cero si la empresa no tiene ventas.
func (r *AnalyticsRepo) GetSalesTotals(ctx context.Context, companyID string) (repository.SalesTotals, error) {
	const query = `
	SELECT
	    COALESCE(SUM(oi.quantity * oi.price), 0) AS revenue,
	    COALESCE(SUM(oi.net_profit),          0) AS net_profit,
	    COALESCE(SUM(oi.cogs),                0) AS cogs
	FROM order_items oi
	JOIN orders o ON o.id = oi.order_id
	WHERE o.company_id = $1
	  AND o.status     = 'paid'`

	var t repository.SalesTotals
	if err := r.q.QueryRow(ctx, query, companyID).Scan(&t.Revenue, &t.NetProfit, &t.COGS); err != nil {
		return repository.SalesTotals{}, fmt.Errorf("analytics.GetSalesTotals: %w", err)
	}
	return t, nil
}

// CountPaidOrders número de órdenes pagadas (no de líneas).
func (r *AnalyticsRepo) CountPaidOrders(ctx context.Context, companyID string) (int64, error) {
	const query = `SELECT COUNT(*) FROM orders WHERE company_id = $1 AND status = 'paid'`
	var n int64
	if err := r.q.QueryRow(ctx, query, companyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountPaidOrders: %w", err)
	}
	return n, nil
}

// CountProductsSoldSince productos distintos con venta pagada desde since.
func (r *AnalyticsRepo) CountProductsSoldSince(ctx context.Context, companyID string, since time.Time) (int64, error) {
	const query = `
	SELECT COUNT(DISTINCT oi.product_id)
	FROM order_items oi
	JOIN orders o ON o.id = oi.order_id
	WHERE o.company_id  = $1
	  AND o.status      = 'paid'
	  AND o.order_date >= $2`

	var n int64
	if err := r.q.QueryRow(ctx, query, companyID, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountProductsSoldSince: %w", err)
	}
	return n, nil
}

// GetTopSellers los `limit` productos con más unidades vendidas entre from y to.
// La utilidad se calcula con el costo actual del producto.
func (r *AnalyticsRepo) GetTopSellers(
	ctx context.Context,
	companyID string,
	from, to time.Time,
	limit int,
) ([]repository.TopSellerResult, error) {
	const query = `
	SELECT
	    p.id                                         AS product_id,
	    p.name                                       AS product_name,
	    COALESCE(p.barcode, '')                      AS barcode,
	    p.stock::BIGINT                              AS stock,
	    SUM(oi.quantity)::BIGINT                     AS quantity_sold,
	    SUM(oi.quantity * oi.price)                  AS revenue,
	    SUM(oi.quantity * (oi.price - p.cost))       AS profit
	FROM order_items oi
	JOIN orders   o ON o.id = oi.order_id
	JOIN products p ON p.id = oi.product_id
	WHERE o.company_id = $1
	  AND o.status     = 'paid'
	  AND o.order_date BETWEEN $2 AND $3
	GROUP BY p.id, p.name, p.barcode, p.stock
	ORDER BY quantity_sold DESC, p.name
	LIMIT $4`

	rows, err := r.q.Query(ctx, query, companyID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopSellers: %w", err)
	}
	defer rows.Close()

	var results []repository.TopSellerResult
	for rows.Next() {
		var row repository.TopSellerResult
		if err := rows.Scan(
			&row.ProductID,
			&row.ProductName,
			&row.Barcode,
			&row.Stock,
			&row.QuantitySold,
			&row.Revenue,
			&row.Profit,
		); err != nil {
			return nil, fmt.Errorf("analytics.GetTopSellers scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.GetTopSellers rows: %w", err)
	}
	if results == nil {
		results = []repository.TopSellerResult{}
	}
	return results, nil
}

// FirstPaidSaleDate fecha de la primera orden pagada (nil si no hay).
func (r *AnalyticsRepo) FirstPaidSaleDate(ctx context.Context, companyID string) (*time.Time, error) {
	first, _, err := r.GetSaleDateRange(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("analytics.FirstPaidSaleDate: %w", err)
	}
	return first, nil
}

// GetSaleDateRange MIN y MAX de order_date entre las órdenes pagadas.
func (r *AnalyticsRepo) GetSaleDateRange(ctx context.Context, companyID string) (first, last *time.Time, err error) {
	const query = `
	SELECT MIN(order_date), MAX(order_date)
	FROM orders
	WHERE company_id = $1
	  AND status     = 'paid'`

	if err := r.q.QueryRow(ctx, query, companyID).Scan(&first, &last); err != nil {
		return nil, nil, fmt.Errorf("analytics.GetSaleDateRange: %w", err)
	}
	return first, last, nil
}

// GetDailySales ingresos, COGS (costo actual) y órdenes por día local desde from.
// LEFT JOIN para que una orden pagada sin líneas siga contando como orden.
func (r *AnalyticsRepo) GetDailySales(
	ctx context.Context,
	companyID string,
	from time.Time,
	tz string,
) ([]insights.DailyPoint, error) {
	const query = `
	SELECT
	    date_trunc('day', o.order_date AT TIME ZONE $3::TEXT) AS day,
	    COALESCE(SUM(oi.quantity * oi.price), 0)             AS revenue,
	    COALESCE(SUM(oi.quantity * p.cost),   0)             AS cogs,
	    COUNT(DISTINCT o.id)                                 AS orders
	FROM orders o
	LEFT JOIN order_items oi ON oi.order_id = o.id
	LEFT JOIN products    p  ON p.id        = oi.product_id
	WHERE o.company_id  = $1
	  AND o.status      = 'paid'
	  AND o.order_date >= $2
	GROUP BY day
	ORDER BY day`

	rows, err := r.q.Query(ctx, query, companyID, from, tz)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetDailySales: %w", err)
	}
	defer rows.Close()

	loc := locationFor(tz)
	var points []insights.DailyPoint
	for rows.Next() {
		var (
			day time.Time
			pt  insights.DailyPoint
		)
		if err := rows.Scan(&day, &pt.Revenue, &pt.COGS, &pt.Orders); err != nil {
			return nil, fmt.Errorf("analytics.GetDailySales scan: %w", err)
		}
		pt.Day = localDay(day, loc)
		points = append(points, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.GetDailySales rows: %w", err)
	}
	return points, nil
}

// GetMonthlySales agregados mensuales de líneas pagadas desde from.
// El ingreso es Σ qty × price; utilidad y COGS son los guardados por línea.
func (r *AnalyticsRepo) GetMonthlySales(
	ctx context.Context,
	companyID string,
	from time.Time,
	tz string,
) ([]repository.MonthlySalesResult, error) {
	const query = `
	SELECT
	    date_trunc('month', o.order_date AT TIME ZONE $3::TEXT) AS month,
	    COALESCE(SUM(oi.quantity * oi.price), 0)               AS revenue,
	    COALESCE(SUM(oi.net_profit),          0)               AS net_profit,
	    COALESCE(SUM(oi.cogs),                0)               AS cogs,
	    COALESCE(SUM(oi.quantity), 0)::BIGINT                  AS quantity_sold
	FROM order_items oi
	JOIN orders o ON o.id = oi.order_id
	WHERE o.company_id  = $1
	  AND o.status      = 'paid'
	  AND o.order_date >= $2
	GROUP BY month
	ORDER BY month`

	rows, err := r.q.Query(ctx, query, companyID, from, tz)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMonthlySales: %w", err)
	}
	defer rows.Close()

	loc := locationFor(tz)
	var results []repository.MonthlySalesResult
	for rows.Next() {
		var (
			month time.Time
			row   repository.MonthlySalesResult
		)
		if err := rows.Scan(&month, &row.Revenue, &row.NetProfit, &row.COGS, &row.QuantitySold); err != nil {
			return nil, fmt.Errorf("analytics.GetMonthlySales scan: %w", err)
		}
		row.Month = localDay(month, loc)
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.GetMonthlySales rows: %w", err)
	}
	return results, nil
}
