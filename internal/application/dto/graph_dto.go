package dto

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jhoicas/invorya-insights/internal/domain"
	"github.com/jhoicas/invorya-insights/internal/domain/insights"
)

// GraphRequest parámetros de GET /api/insights/graph.
type GraphRequest struct {
	Metric     string `query:"metric"`
	TimePeriod string `query:"time_period"`
}

// Defaults aplica sales / month cuando vienen vacíos.
func (r *GraphRequest) Defaults() {
	if r.Metric == "" {
		r.Metric = string(insights.MetricSales)
	}
	if r.TimePeriod == "" {
		r.TimePeriod = string(insights.PeriodMonth)
	}
}

// Validate verifica ambos parámetros; el error envuelve ErrInvalidMetric o ErrInvalidTimePeriod.
func (r GraphRequest) Validate() error {
	metrics := make([]any, 0, len(insights.GraphMetrics))
	for _, m := range insights.GraphMetrics {
		metrics = append(metrics, string(m))
	}
	periods := make([]any, 0, len(insights.TimePeriods))
	for _, p := range insights.TimePeriods {
		periods = append(periods, string(p))
	}

	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Metric, validation.Required, validation.In(metrics...)),
	); err != nil {
		return fmt.Errorf("%w %q: %v", domain.ErrInvalidMetric, r.Metric, err)
	}
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.TimePeriod, validation.Required, validation.In(periods...)),
	); err != nil {
		return fmt.Errorf("%w %q: %v", domain.ErrInvalidTimePeriod, r.TimePeriod, err)
	}
	return nil
}

// GraphDataDTO serie densa para la gráfica del dashboard.
type GraphDataDTO struct {
	Labels      []string  `json:"labels"`
	Data        []float64 `json:"data"`
	MetricLabel string    `json:"metric_label"`
	TitleSuffix string    `json:"title_suffix"`
	MetricType  string    `json:"metric_type"` // currency | percentage | integer
}
