package repository

import (
	"context"
	"time"

	"github.com/jhoicas/invorya-insights/internal/domain/entity"
)

// MonthlyMetricRepository puerto del rollup mensual por empresa.
type MonthlyMetricRepository interface {
	// ListByCompany todas las filas ordenadas por (year, month).
	ListByCompany(ctx context.Context, companyID string) ([]entity.MonthlyMetric, error)
	// First la fila más antigua; nil si la empresa no tiene rollups.
	First(ctx context.Context, companyID string) (*entity.MonthlyMetric, error)
	// ListSince filas con (year, month) >= el mes de from.
	ListSince(ctx context.Context, companyID string, from time.Time) ([]entity.MonthlyMetric, error)
	// ReplaceForCompany borra y vuelve a insertar el rollup de la empresa.
	ReplaceForCompany(ctx context.Context, companyID string, rows []entity.MonthlyMetric) error
}
