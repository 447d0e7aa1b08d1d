package observability

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics métricas Prometheus del servicio de Insights.
type Metrics struct {
	// Registry registro privado; /metrics lo expone con promhttp.HandlerFor.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	tenantDenied    *prometheus.CounterVec
	pdfGenerated    prometheus.Counter
	queryDuration   *prometheus.HistogramVec
	queryErrors     *prometheus.CounterVec
}

// NewMetrics crea un registro propio y registra todas las métricas.
// El registro privado permite llamarlo varias veces en tests sin "duplicate collector".
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "insights_request_duration_seconds",
				Help:    "Duración de las requests HTTP por ruta.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insights_requests_total",
				Help: "Total de requests HTTP por ruta y código.",
			},
			[]string{"method", "route", "status"},
		),
		tenantDenied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insights_tenant_denied_total",
				Help: "Requests rechazadas por no tener empresa o no pertenecer a ella.",
			},
			[]string{"reason"},
		),
		pdfGenerated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "insights_valuation_pdf_total",
				Help: "PDFs de inventario valorizado generados.",
			},
		),
		queryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "insights_db_query_duration_seconds",
				Help:    "Duración de las consultas a PostgreSQL por tipo de sentencia.",
				Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"statement"},
		),
		queryErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insights_db_query_errors_total",
				Help: "Consultas a PostgreSQL que terminaron con error.",
			},
			[]string{"statement"},
		),
	}
}

// ObserveRequest registra duración y código de una request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// IncTenantDenied cuenta un rechazo por tenant (no_company, forbidden, company_not_found).
func (m *Metrics) IncTenantDenied(reason string) {
	m.tenantDenied.WithLabelValues(reason).Inc()
}

// IncPDF cuenta un PDF generado.
func (m *Metrics) IncPDF() {
	m.pdfGenerated.Inc()
}

// ObserveQuery registra una consulta; context.Canceled no cuenta como error.
func (m *Metrics) ObserveQuery(statement string, d time.Duration, err error) {
	m.queryDuration.WithLabelValues(statement).Observe(d.Seconds())
	if err != nil && !errors.Is(err, context.Canceled) {
		m.queryErrors.WithLabelValues(statement).Inc()
	}
}
