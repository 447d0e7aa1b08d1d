package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/invorya-insights/internal/domain/entity"
	"github.com/jhoicas/invorya-insights/internal/domain/repository"
)

// RollupTxRunner ejecuta fn dentro de una transacción con repos atados a ella.
type RollupTxRunner interface {
	RunRollup(ctx context.Context, fn func(
		sales repository.AnalyticsRepository,
		metrics repository.MonthlyMetricRepository,
	) error) error
}

// RollupResult resumen de un rebuild.
type RollupResult struct {
	CompanyID string
	Months    int
}

// RollupUseCase recalcula company_monthly_metrics desde las líneas pagadas.
type RollupUseCase struct {
	runner      RollupTxRunner
	companyRepo repository.CompanyRepository
	clock       clock
}

// NewRollupUseCase construye el caso de uso.
func NewRollupUseCase(runner RollupTxRunner, companyRepo repository.CompanyRepository, opts ...Option) *RollupUseCase {
	return &RollupUseCase{runner: runner, companyRepo: companyRepo, clock: newClock(opts)}
}

// Rebuild reemplaza el rollup de una empresa en una sola transacción (delete + insert).
// date_recorded queda en el primer día de cada mes.
func (uc *RollupUseCase) Rebuild(ctx context.Context, companyID string) (RollupResult, error) {
	res := RollupResult{CompanyID: companyID}
	err := uc.runner.RunRollup(ctx, func(sales repository.AnalyticsRepository, metrics repository.MonthlyMetricRepository) error {
		first, _, err := sales.GetSaleDateRange(ctx, companyID)
		if err != nil {
			return err
		}
		var rows []entity.MonthlyMetric
		if first != nil {
			monthly, err := sales.GetMonthlySales(ctx, companyID, first.In(uc.clock.loc), uc.clock.tz())
			if err != nil {
				return err
			}
			rows = make([]entity.MonthlyMetric, 0, len(monthly))
			for _, m := range monthly {
				recorded := m.Month
				rows = append(rows, entity.MonthlyMetric{
					CompanyID:         companyID,
					Year:              m.Month.Year(),
					Month:             int(m.Month.Month()),
					TotalRevenue:      m.Revenue,
					NetProfit:         m.NetProfit,
					TotalCOGS:         m.COGS,
					TotalProductsSold: m.QuantitySold,
					DateRecorded:      &recorded,
				})
			}
		}
		res.Months = len(rows)
		return metrics.ReplaceForCompany(ctx, companyID, rows)
	})
	if err != nil {
		return RollupResult{}, fmt.Errorf("rollup %s: %w", companyID, err)
	}
	return res, nil
}

// RebuildAll recorre las empresas activas; se detiene en el primer error.
func (uc *RollupUseCase) RebuildAll(ctx context.Context) ([]RollupResult, error) {
	ids, err := uc.companyRepo.ListActiveIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("rollup: empresas: %w", err)
	}
	out := make([]RollupResult, 0, len(ids))
	for _, id := range ids {
		r, err := uc.Rebuild(ctx, id)
		if err != nil {
			return out, err
		}
		out = append(out, r)
	}
	return out, nil
}
