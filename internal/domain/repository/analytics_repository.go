package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invorya-insights/internal/domain/insights"
)

// SalesTotals acumulado histórico de las órdenes pagadas de una empresa.
// NetProfit y COGS son los valores guardados en cada línea al momento de la venta.
type SalesTotals struct {
	Revenue   decimal.Decimal // Σ quantity × price
	NetProfit decimal.Decimal
	COGS      decimal.Decimal
}

// TopSellerResult fila cruda del ranking de productos más vendidos.
type TopSellerResult struct {
	ProductID    string
	ProductName  string
	Barcode      string
	Stock        int64 // existencia actual
	QuantitySold int64
	Revenue      decimal.Decimal // Σ qty × precio de línea
	Profit       decimal.Decimal // Σ qty × (precio de línea - costo actual del producto)
}

// MonthlySalesResult agregado mensual de líneas pagadas (mes en la zona del negocio).
type MonthlySalesResult struct {
	Month        time.Time
	Revenue      decimal.Decimal
	NetProfit    decimal.Decimal
	COGS         decimal.Decimal
	QuantitySold int64
}

// AnalyticsRepository consultas de solo lectura sobre órdenes y líneas pagadas.
// Todo método filtra por companyID y por orders.status = 'paid'.
// tz es el nombre IANA con el que PostgreSQL corta días y meses.
type AnalyticsRepository interface {
	// ── KPIs ──────────────────────────────────────────────────────────────────

	GetSalesTotals(ctx context.Context, companyID string) (SalesTotals, error)
	CountPaidOrders(ctx context.Context, companyID string) (int64, error)
	// CountProductsSoldSince productos distintos con al menos una venta pagada desde since.
	CountProductsSoldSince(ctx context.Context, companyID string, since time.Time) (int64, error)

	// ── Ranking ───────────────────────────────────────────────────────────────

	GetTopSellers(ctx context.Context, companyID string, from, to time.Time, limit int) ([]TopSellerResult, error)

	// ── Series temporales ─────────────────────────────────────────────────────

	// FirstPaidSaleDate fecha de la primera orden pagada; nil si no hay ninguna.
	FirstPaidSaleDate(ctx context.Context, companyID string) (*time.Time, error)
	// GetSaleDateRange primera y última orden pagada; ambas nil si no hay historial.
	GetSaleDateRange(ctx context.Context, companyID string) (first, last *time.Time, err error)
	// GetDailySales agregados por día desde from (inclusive), solo días con órdenes.
	GetDailySales(ctx context.Context, companyID string, from time.Time, tz string) ([]insights.DailyPoint, error)
	// GetMonthlySales agregados por mes desde from (inclusive), solo meses con ventas.
	GetMonthlySales(ctx context.Context, companyID string, from time.Time, tz string) ([]MonthlySalesResult, error)
}
