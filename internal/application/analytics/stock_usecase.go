package analytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/invorya-insights/internal/application/dto"
	"github.com/jhoicas/invorya-insights/internal/domain/insights"
	"github.com/jhoicas/invorya-insights/internal/domain/repository"
)

const (
	topSellersDays  = 30
	topSellersLimit = 10
	// attentionDays ventana del predicado "sin ventas" del listado.
	attentionDays = 90
)

// StockUseCase vistas de salud del inventario: más vendidos, atención y valorización.
type StockUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
	clock         clock
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	analyticsRepo repository.AnalyticsRepository,
	productRepo repository.ProductRepository,
	opts ...Option,
) *StockUseCase {
	return &StockUseCase{analyticsRepo: analyticsRepo, productRepo: productRepo, clock: newClock(opts)}
}

// GetTopSellers top 10 por unidades vendidas en los últimos 30 días (hasta ahora).
func (uc *StockUseCase) GetTopSellers(ctx context.Context, companyID string) (*dto.TopSellersDTO, error) {
	now := uc.clock.Now()
	from := now.AddDate(0, 0, -topSellersDays)
	rows, err := uc.analyticsRepo.GetTopSellers(ctx, companyID, from, now, topSellersLimit)
	if err != nil {
		return nil, fmt.Errorf("stock: top sellers: %w", err)
	}
	out := &dto.TopSellersDTO{Items: make([]dto.TopSellerDTO, 0, len(rows)), StartDate: from, EndDate: now}
	for _, r := range rows {
		out.Items = append(out.Items, dto.TopSellerDTO{
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			Barcode:      r.Barcode,
			Stock:        r.Stock,
			QuantitySold: r.QuantitySold,
			Revenue:      r.Revenue.Round(2),
			Profit:       r.Profit.Round(2),
		})
	}
	return out, nil
}

// GetAttention productos con stock bajo o sin ventas en 90 días, etiquetados y ordenados.
// query filtra por nombre o código de barras antes de etiquetar.
func (uc *StockUseCase) GetAttention(ctx context.Context, companyID, query string) (*dto.AttentionListDTO, error) {
	query = strings.TrimSpace(query)
	since := uc.clock.TodayStart().AddDate(0, 0, -attentionDays)

	candidates, err := uc.productRepo.ListAttentionCandidates(ctx, companyID, since, query)
	if err != nil {
		return nil, fmt.Errorf("stock: atención: %w", err)
	}
	ranked := insights.RankAttention(candidates)

	out := &dto.AttentionListDTO{Query: query, Items: make([]dto.AttentionItemDTO, 0, len(ranked))}
	for _, p := range ranked {
		out.Items = append(out.Items, dto.AttentionItemDTO{
			ProductID:         p.ProductID,
			Name:              p.Name,
			Barcode:           p.Barcode,
			Stock:             p.Stock,
			LowStockThreshold: p.LowStockThreshold,
			Price:             p.Price,
			Tag:               p.Tag,
			Priority:          p.Priority,
		})
	}
	return out, nil
}

// GetInventoryValuation total y desglose por categoría y proveedor.
func (uc *StockUseCase) GetInventoryValuation(ctx context.Context, companyID string) (*dto.InventoryValuationDTO, error) {
	v, err := uc.productRepo.GetInventoryValuation(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("stock: valorización: %w", err)
	}
	return &dto.InventoryValuationDTO{
		RetailValue: v.RetailValue.Round(2),
		CostValue:   v.CostValue.Round(2),
		ByCategory:  toValuationGroups(v.ByCategory),
		BySupplier:  toValuationGroups(v.BySupplier),
	}, nil
}

func toValuationGroups(in []repository.ValuationGroup) []dto.ValuationGroupDTO {
	out := make([]dto.ValuationGroupDTO, 0, len(in))
	for _, g := range in {
		out = append(out, dto.ValuationGroupDTO{
			Name:        g.Name,
			RetailValue: g.RetailValue.Round(2),
			CostValue:   g.CostValue.Round(2),
		})
	}
	return out
}
