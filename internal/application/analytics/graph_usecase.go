package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/invorya-insights/internal/application/dto"
	"github.com/jhoicas/invorya-insights/internal/domain/insights"
	"github.com/jhoicas/invorya-insights/internal/domain/repository"
)

// GraphUseCase serie temporal de la gráfica principal del dashboard.
type GraphUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	clock         clock
}

// NewGraphUseCase construye el caso de uso.
func NewGraphUseCase(analyticsRepo repository.AnalyticsRepository, opts ...Option) *GraphUseCase {
	return &GraphUseCase{analyticsRepo: analyticsRepo, clock: newClock(opts)}
}

// GetGraph valida metric y time_period antes de consultar y devuelve una serie densa:
// un punto por bucket entre el inicio de la ventana y hoy, con 0 donde no hubo ventas.
func (uc *GraphUseCase) GetGraph(ctx context.Context, companyID string, req dto.GraphRequest) (*dto.GraphDataDTO, error) {
	req.Defaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	metric := insights.GraphMetric(req.Metric)
	period := insights.TimePeriod(req.TimePeriod)
	now := uc.clock.Now()

	out := &dto.GraphDataDTO{
		Labels:      []string{},
		Data:        []float64{},
		MetricLabel: metric.Label(),
		MetricType:  metric.Type(),
	}

	var firstSale *time.Time
	if period == insights.PeriodAll {
		first, err := uc.analyticsRepo.FirstPaidSaleDate(ctx, companyID)
		if err != nil {
			return nil, fmt.Errorf("graph: primera venta: %w", err)
		}
		if first == nil {
			out.TitleSuffix = "Overall"
			return out, nil
		}
		firstSale = first
	}

	w, ok := insights.ResolveWindow(period, now, firstSale)
	if !ok {
		return out, nil
	}
	out.TitleSuffix = w.TitleSuffix

	points, err := uc.analyticsRepo.GetDailySales(ctx, companyID, w.From, uc.clock.tz())
	if err != nil {
		return nil, fmt.Errorf("graph: ventas diarias: %w", err)
	}

	buckets := insights.Buckets(w.Start, w.End, w.Granularity)
	series := insights.FillSeries(metric.Project(insights.FoldDaily(points, w.Granularity)), buckets, w.Granularity)
	out.Labels, out.Data = series.Labels, series.Data
	return out, nil
}
