package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/invorya-insights/internal/domain/entity"
	"github.com/jhoicas/invorya-insights/internal/domain/repository"
)

var _ repository.MonthlyMetricRepository = (*MonthlyMetricRepo)(nil)

// MonthlyMetricRepo acceso a company_monthly_metrics (usable con pool o tx).
type MonthlyMetricRepo struct {
	q Querier
}

// NewMonthlyMetricRepository construye el adaptador del rollup mensual.
func NewMonthlyMetricRepository(q Querier) *MonthlyMetricRepo {
	return &MonthlyMetricRepo{q: q}
}

const monthlyMetricColumns = `
	company_id, year, month,
	total_monthly_revenue, net_monthly_profit, total_monthly_cogs,
	total_products_sold, date_recorded`

// ListByCompany filas ordenadas por (year, month).
func (r *MonthlyMetricRepo) ListByCompany(ctx context.Context, companyID string) ([]entity.MonthlyMetric, error) {
	query := `SELECT ` + monthlyMetricColumns + `
	FROM company_monthly_metrics
	WHERE company_id = $1
	ORDER BY year, month`
	return r.list(ctx, "monthly.ListByCompany", query, companyID)
}

// First fila más antigua; nil si no hay.
func (r *MonthlyMetricRepo) First(ctx context.Context, companyID string) (*entity.MonthlyMetric, error) {
	query := `SELECT ` + monthlyMetricColumns + `
	FROM company_monthly_metrics
	WHERE company_id = $1
	ORDER BY year, month
	LIMIT 1`
	rows, err := r.list(ctx, "monthly.First", query, companyID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// ListSince filas desde el mes de from (inclusive).
func (r *MonthlyMetricRepo) ListSince(ctx context.Context, companyID string, from time.Time) ([]entity.MonthlyMetric, error) {
	query := `SELECT ` + monthlyMetricColumns + `
	FROM company_monthly_metrics
	WHERE company_id = $1
	  AND (year, month) >= ($2, $3)
	ORDER BY year, month`
	return r.list(ctx, "monthly.ListSince", query, companyID, from.Year(), int(from.Month()))
}

// ReplaceForCompany borra el rollup de la empresa e inserta rows.
// Debe ejecutarse dentro de una transacción (TxRunner.RunRollup).
func (r *MonthlyMetricRepo) ReplaceForCompany(ctx context.Context, companyID string, rows []entity.MonthlyMetric) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM company_monthly_metrics WHERE company_id = $1`, companyID); err != nil {
		return fmt.Errorf("monthly.ReplaceForCompany delete: %w", err)
	}
	const insert = `
	INSERT INTO company_monthly_metrics (` + monthlyMetricColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, m := range rows {
		if m.CompanyID != companyID {
			return fmt.Errorf("monthly.ReplaceForCompany: fila de otra empresa %q", m.CompanyID)
		}
		if _, err := r.q.Exec(ctx, insert,
			m.CompanyID, m.Year, m.Month,
			m.TotalRevenue, m.NetProfit, m.TotalCOGS,
			m.TotalProductsSold, m.DateRecorded,
		); err != nil {
			return fmt.Errorf("monthly.ReplaceForCompany insert %d-%02d: %w", m.Year, m.Month, err)
		}
	}
	return nil
}

func (r *MonthlyMetricRepo) list(ctx context.Context, op, query string, args ...any) ([]entity.MonthlyMetric, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.MonthlyMetric, error) {
		var m entity.MonthlyMetric
		err := row.Scan(
			&m.CompanyID, &m.Year, &m.Month,
			&m.TotalRevenue, &m.NetProfit, &m.TotalCOGS,
			&m.TotalProductsSold, &m.DateRecorded,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s scan: %w", op, err)
	}
	return out, nil
}
