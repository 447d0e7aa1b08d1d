package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/invorya-insights/internal/application/dto"
	"github.com/jhoicas/invorya-insights/internal/domain/insights"
	"github.com/jhoicas/invorya-insights/internal/domain/repository"
)

// kpiRecentDays ventana de "vendiendo bien" y "sin ventas" del snapshot.
const kpiRecentDays = 30

// DashboardUseCase genera el snapshot de KPIs de la empresa.
//
// Fuente de datos: AnalyticsRepository y ProductRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
	clock         clock
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	productRepo repository.ProductRepository,
	opts ...Option,
) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, productRepo: productRepo, clock: newClock(opts)}
}

// GetKPIs construye el KPISnapshotDTO para la empresa indicada.
//
// Cinco consultas independientes en paralelo:
//  1. GetSalesTotals          → total_sales, total_profit, margen
//  2. CountPaidOrders         → total_orders
//  3. CountProductsSoldSince  → num_items_selling_well
//  4. GetInventoryValue       → total_inventory_value
//  5. CountAttention          → items_needing_attention_count
func (uc *DashboardUseCase) GetKPIs(ctx context.Context, companyID string) (*dto.KPISnapshotDTO, error) {
	since := uc.clock.TodayStart().AddDate(0, 0, -kpiRecentDays)

	var (
		totals      repository.SalesTotals
		orders      int64
		sellingWell int64
		invValue    decimal.Decimal
		attention   repository.AttentionCounts
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if totals, err = uc.analyticsRepo.GetSalesTotals(gctx, companyID); err != nil {
			return fmt.Errorf("dashboard: totales: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if orders, err = uc.analyticsRepo.CountPaidOrders(gctx, companyID); err != nil {
			return fmt.Errorf("dashboard: órdenes: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if sellingWell, err = uc.analyticsRepo.CountProductsSoldSince(gctx, companyID, since); err != nil {
			return fmt.Errorf("dashboard: productos vendidos: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if invValue, err = uc.productRepo.GetInventoryValue(gctx, companyID); err != nil {
			return fmt.Errorf("dashboard: valor de inventario: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if attention, err = uc.productRepo.CountAttention(gctx, companyID, since); err != nil {
			return fmt.Errorf("dashboard: atención: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	margin := insights.GrossMargin(totals.Revenue, totals.COGS)

	return &dto.KPISnapshotDTO{
		TotalSales:                 totals.Revenue.InexactFloat64(),
		TotalProfit:                totals.NetProfit.InexactFloat64(),
		TotalOrders:                orders,
		GrossProfitMargin:          margin.InexactFloat64(),
		NumItemsSellingWell:        sellingWell,
		TotalInventoryValue:        invValue.InexactFloat64(),
		ItemsNeedingAttentionCount: insights.AttentionCount(attention.LowStock, attention.NotSellingOnly),
	}, nil
}
