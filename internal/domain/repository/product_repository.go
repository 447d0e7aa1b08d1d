package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invorya-insights/internal/domain/insights"
)

// AttentionCounts conteos disjuntos para el KPI de productos que requieren atención.
type AttentionCounts struct {
	LowStock       int64 // stock <= umbral
	NotSellingOnly int64 // sin venta en la ventana y sin stock bajo
}

// ValuationGroup valor del inventario de un grupo (categoría o proveedor).
type ValuationGroup struct {
	Name        string
	RetailValue decimal.Decimal // Σ stock × price
	CostValue   decimal.Decimal // Σ stock × cost
}

// InventoryValuation desglose del inventario valorizado (stock > 0 y price > 0).
type InventoryValuation struct {
	RetailValue decimal.Decimal
	CostValue   decimal.Decimal
	ByCategory  []ValuationGroup
	BySupplier  []ValuationGroup
}

// ProductRepository lecturas de salud del inventario de una empresa.
type ProductRepository interface {
	// GetInventoryValue Σ stock × price sobre todos los productos.
	GetInventoryValue(ctx context.Context, companyID string) (decimal.Decimal, error)
	CountAttention(ctx context.Context, companyID string, soldSince time.Time) (AttentionCounts, error)
	// ListAttentionCandidates productos con stock bajo o sin ventas desde soldSince.
	// query (opcional) filtra por nombre o código de barras sin distinguir mayúsculas.
	ListAttentionCandidates(ctx context.Context, companyID string, soldSince time.Time, query string) ([]insights.AttentionProduct, error)
	GetInventoryValuation(ctx context.Context, companyID string) (InventoryValuation, error)
}
