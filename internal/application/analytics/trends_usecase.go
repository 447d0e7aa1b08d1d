package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/invorya-insights/internal/application/dto"
	"github.com/jhoicas/invorya-insights/internal/domain"
	"github.com/jhoicas/invorya-insights/internal/domain/entity"
	"github.com/jhoicas/invorya-insights/internal/domain/insights"
	"github.com/jhoicas/invorya-insights/internal/domain/repository"
)

// TrendsUseCase tendencias mensuales: rollup de utilidad, tabla de 10 meses e historial completo.
type TrendsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	metricRepo    repository.MonthlyMetricRepository
	companyRepo   repository.CompanyRepository
	userRepo      repository.UserRepository
	clock         clock
}

// NewTrendsUseCase construye el caso de uso.
func NewTrendsUseCase(
	analyticsRepo repository.AnalyticsRepository,
	metricRepo repository.MonthlyMetricRepository,
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	opts ...Option,
) *TrendsUseCase {
	return &TrendsUseCase{
		analyticsRepo: analyticsRepo,
		metricRepo:    metricRepo,
		companyRepo:   companyRepo,
		userRepo:      userRepo,
		clock:         newClock(opts),
	}
}

// GetProfitTrend filas del rollup en arreglos paralelos, ordenadas por (year, month).
func (uc *TrendsUseCase) GetProfitTrend(ctx context.Context, companyID string) (*dto.ProfitTrendDTO, error) {
	rows, err := uc.metricRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("trends: rollup: %w", err)
	}
	out := &dto.ProfitTrendDTO{
		Labels:  make([]string, 0, len(rows)),
		Profit:  make([]float64, 0, len(rows)),
		Revenue: make([]float64, 0, len(rows)),
		COGS:    make([]float64, 0, len(rows)),
	}
	for _, m := range rows {
		out.Labels = append(out.Labels, rollupLabel(m, uc.clock.loc))
		out.Profit = append(out.Profit, m.NetProfit.InexactFloat64())
		out.Revenue = append(out.Revenue, m.TotalRevenue.InexactFloat64())
		out.COGS = append(out.COGS, m.TotalCOGS.InexactFloat64())
	}
	return out, nil
}

// rollupLabel "Jan 2006" si hay date_recorded (leído en la zona del negocio); si no "M/YYYY".
func rollupLabel(m entity.MonthlyMetric, loc *time.Location) string {
	if m.DateRecorded != nil {
		return insights.MonthLabel(m.DateRecorded.In(loc))
	}
	return fmt.Sprintf("%d/%d", m.Month, m.Year)
}

// GetRecentTrends tabla de hasta 10 meses desde el rollup, terminando en el mes actual.
// userID debe ser empleado de companyID.
func (uc *TrendsUseCase) GetRecentTrends(ctx context.Context, userID, companyID, rawMetrics string) (*dto.SalesTrendsDTO, error) {
	if err := uc.authorize(ctx, userID, companyID); err != nil {
		return nil, err
	}
	metrics := insights.ParseTrendMetrics(rawMetrics)
	current := insights.Truncate(uc.clock.Now(), insights.Month)

	first, err := uc.metricRepo.First(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("trends: primer rollup: %w", err)
	}
	var firstMonth *time.Time
	if first != nil {
		fm := first.MonthStart(uc.clock.loc)
		firstMonth = &fm
	}
	start := insights.RecentTrendStart(current, firstMonth)

	byMonth := map[string]insights.MonthValues{}
	if first != nil {
		rows, err := uc.metricRepo.ListSince(ctx, companyID, start)
		if err != nil {
			return nil, fmt.Errorf("trends: rollup: %w", err)
		}
		for _, m := range rows {
			byMonth[insights.BucketKey(m.MonthStart(uc.clock.loc))] = insights.MonthValues{
				Revenue:      m.TotalRevenue.InexactFloat64(),
				NetProfit:    m.NetProfit.InexactFloat64(),
				QuantitySold: m.TotalProductsSold,
				COGS:         m.TotalCOGS.InexactFloat64(),
			}
		}
	}

	months := insights.Buckets(start, current, insights.Month)
	return toSalesTrends(insights.BuildTrendRows(months, byMonth, metrics), metrics), nil
}

// GetFullTrends historial completo agregado desde las líneas pagadas.
// Sin historial devuelve una sola fila (mes actual) en cero.
func (uc *TrendsUseCase) GetFullTrends(ctx context.Context, userID, companyID, rawMetrics string) (*dto.SalesTrendsDTO, error) {
	if err := uc.authorize(ctx, userID, companyID); err != nil {
		return nil, err
	}
	metrics := insights.ParseTrendMetrics(rawMetrics)
	now := uc.clock.Now()

	first, last, err := uc.analyticsRepo.GetSaleDateRange(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("trends: rango de ventas: %w", err)
	}
	start, end := insights.HistorySpan(now, first, last)

	byMonth := map[string]insights.MonthValues{}
	if first != nil {
		rows, err := uc.analyticsRepo.GetMonthlySales(ctx, companyID, start, uc.clock.tz())
		if err != nil {
			return nil, fmt.Errorf("trends: ventas mensuales: %w", err)
		}
		for _, r := range rows {
			byMonth[insights.BucketKey(insights.Truncate(r.Month, insights.Month))] = insights.MonthValues{
				Revenue:      r.Revenue.InexactFloat64(),
				NetProfit:    r.NetProfit.InexactFloat64(),
				QuantitySold: r.QuantitySold,
				COGS:         r.COGS.InexactFloat64(),
			}
		}
	}

	months := insights.Buckets(start, end, insights.Month)
	return toSalesTrends(insights.BuildTrendRows(months, byMonth, metrics), metrics), nil
}

// TrendModal datos del modal: métricas actuales (mismas reglas de parseo) y catálogo.
func (uc *TrendsUseCase) TrendModal(rawCurrent string) dto.TrendModalDTO {
	current := insights.ParseTrendMetrics(rawCurrent)
	selected := make(map[string]bool, len(current))
	for _, k := range current {
		selected[k] = true
	}
	out := dto.TrendModalDTO{CurrentMetrics: current}
	for _, o := range insights.TrendMetricCatalogue {
		out.Options = append(out.Options, dto.TrendMetricOptionDTO{Name: o.Name, Key: o.Key, Selected: selected[o.Key]})
	}
	return out
}

// authorize ErrCompanyNotFound si la empresa no existe; ErrForbidden si el usuario no es empleado.
func (uc *TrendsUseCase) authorize(ctx context.Context, userID, companyID string) error {
	if companyID == "" {
		return domain.ErrCompanyNotFound
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return fmt.Errorf("trends: empresa: %w", err)
	}
	if company == nil {
		return domain.ErrCompanyNotFound
	}
	ok, err := uc.userRepo.IsEmployee(ctx, companyID, userID)
	if err != nil {
		return fmt.Errorf("trends: empleado: %w", err)
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}

func toSalesTrends(rows []insights.TrendRow, metrics []string) *dto.SalesTrendsDTO {
	out := &dto.SalesTrendsDTO{Data: make([]dto.TrendRowDTO, 0, len(rows)), MetricsOrder: metrics}
	for _, r := range rows {
		out.Data = append(out.Data, dto.TrendRowDTO{Period: r.Period, Keys: r.Keys, Values: r.Values})
	}
	return out
}
