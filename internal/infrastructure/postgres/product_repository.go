package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invorya-insights/internal/domain/insights"
	"github.com/jhoicas/invorya-insights/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo lecturas de inventario sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// soldSinceCTE productos con al menos una venta pagada desde $2.
const soldSinceCTE = `
	WITH sold AS (
	    SELECT DISTINCT oi.product_id
	    FROM order_items oi
	    JOIN orders o ON o.id = oi.order_id
	    WHERE o.company_id  = $1
	      AND o.status      = 'paid'
	      AND o.order_date >= $2
	)`

// lowStockExpr stock bajo; con umbral NULL el producto no está en stock bajo.
const lowStockExpr = `COALESCE(p.stock <= p.low_stock_threshold, false)`

// notSellingOnlyExpr sin venta en la ventana y fuera de stock bajo (disjunto de lowStockExpr).
const notSellingOnlyExpr = `NOT ` + lowStockExpr + ` AND s.product_id IS NULL`

// GetInventoryValue Σ stock × price de todos los productos de la empresa.
func (r *ProductRepo) GetInventoryValue(ctx context.Context, companyID string) (decimal.Decimal, error) {
	const query = `SELECT COALESCE(SUM(stock * price), 0) FROM products WHERE company_id = $1`
	var v decimal.Decimal
	if err := r.q.QueryRow(ctx, query, companyID).Scan(&v); err != nil {
		return decimal.Zero, fmt.Errorf("products.GetInventoryValue: %w", err)
	}
	return v, nil
}

// CountAttention cuenta stock bajo y "sin ventas pero sin stock bajo" en una sola pasada,
// de modo que un producto en ambos grupos cuenta una vez.
func (r *ProductRepo) CountAttention(ctx context.Context, companyID string, soldSince time.Time) (repository.AttentionCounts, error) {
	query := soldSinceCTE + `
	SELECT
	    COUNT(*) FILTER (WHERE ` + lowStockExpr + `)       AS low_stock,
	    COUNT(*) FILTER (WHERE ` + notSellingOnlyExpr + `) AS not_selling_only
	FROM products p
	LEFT JOIN sold s ON s.product_id = p.id
	WHERE p.company_id = $1`

	var c repository.AttentionCounts
	if err := r.q.QueryRow(ctx, query, companyID, soldSince).Scan(&c.LowStock, &c.NotSellingOnly); err != nil {
		return repository.AttentionCounts{}, fmt.Errorf("products.CountAttention: %w", err)
	}
	return c, nil
}

// ListAttentionCandidates productos con stock bajo o (stock > 0 y sin venta desde soldSince).
// El orden final y la etiqueta los asigna insights.RankAttention.
func (r *ProductRepo) ListAttentionCandidates(
	ctx context.Context,
	companyID string,
	soldSince time.Time,
	query string,
) ([]insights.AttentionProduct, error) {
	sql := soldSinceCTE + `
	SELECT
	    p.id,
	    p.name,
	    COALESCE(p.barcode, '')                            AS barcode,
	    p.stock,
	    COALESCE(p.low_stock_threshold, 0)                 AS low_stock_threshold,
	    p.price,
	    ` + lowStockExpr + `  AS low_stock,
	    (p.stock > 0 AND s.product_id IS NULL)             AS not_selling
	FROM products p
	LEFT JOIN sold s ON s.product_id = p.id
	WHERE p.company_id = $1
	  AND (` + lowStockExpr + ` OR (p.stock > 0 AND s.product_id IS NULL))`
	args := []any{companyID, soldSince}
	if q := strings.TrimSpace(query); q != "" {
		sql += `
	  AND (p.name ILIKE $3 ESCAPE '\' OR COALESCE(p.barcode, '') ILIKE $3 ESCAPE '\')`
		args = append(args, containsPattern(q))
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("products.ListAttentionCandidates: %w", err)
	}
	defer rows.Close()

	var out []insights.AttentionProduct
	for rows.Next() {
		var p insights.AttentionProduct
		if err := rows.Scan(
			&p.ProductID,
			&p.Name,
			&p.Barcode,
			&p.Stock,
			&p.LowStockThreshold,
			&p.Price,
			&p.LowStock,
			&p.NotSelling,
		); err != nil {
			return nil, fmt.Errorf("products.ListAttentionCandidates scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("products.ListAttentionCandidates rows: %w", err)
	}
	return out, nil
}

// GetInventoryValuation total y desglose por categoría y proveedor de los productos
// con stock > 0 y price > 0.
func (r *ProductRepo) GetInventoryValuation(ctx context.Context, companyID string) (repository.InventoryValuation, error) {
	const totals = `
	SELECT
	    COALESCE(SUM(stock * price), 0),
	    COALESCE(SUM(stock * cost),  0)
	FROM products
	WHERE company_id = $1 AND stock > 0 AND price > 0`

	const byCategory = `
	SELECT
	    COALESCE(c.name, 'Uncategorized') AS name,
	    SUM(p.stock * p.price)            AS retail_value,
	    SUM(p.stock * p.cost)             AS cost_value
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	WHERE p.company_id = $1 AND p.stock > 0 AND p.price > 0
	GROUP BY 1
	ORDER BY 1`

	const bySupplier = `
	SELECT
	    COALESCE(s.name, 'No Supplier')   AS name,
	    SUM(p.stock * p.price)            AS retail_value,
	    SUM(p.stock * p.cost)             AS cost_value
	FROM products p
	LEFT JOIN suppliers s ON s.id = p.supplier_id
	WHERE p.company_id = $1 AND p.stock > 0 AND p.price > 0
	GROUP BY 1
	ORDER BY 1`

	var v repository.InventoryValuation
	if err := r.q.QueryRow(ctx, totals, companyID).Scan(&v.RetailValue, &v.CostValue); err != nil {
		return repository.InventoryValuation{}, fmt.Errorf("products.GetInventoryValuation: %w", err)
	}
	var err error
	if v.ByCategory, err = r.valuationGroups(ctx, byCategory, companyID); err != nil {
		return repository.InventoryValuation{}, fmt.Errorf("products.GetInventoryValuation category: %w", err)
	}
	if v.BySupplier, err = r.valuationGroups(ctx, bySupplier, companyID); err != nil {
		return repository.InventoryValuation{}, fmt.Errorf("products.GetInventoryValuation supplier: %w", err)
	}
	return v, nil
}

func (r *ProductRepo) valuationGroups(ctx context.Context, query, companyID string) ([]repository.ValuationGroup, error) {
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []repository.ValuationGroup{}
	for rows.Next() {
		var g repository.ValuationGroup
		if err := rows.Scan(&g.Name, &g.RetailValue, &g.CostValue); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
