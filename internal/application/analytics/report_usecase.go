package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/invorya-insights/internal/application/dto"
	"github.com/jhoicas/invorya-insights/internal/domain"
	"github.com/jhoicas/invorya-insights/internal/domain/entity"
)

// ValuationPDFGenerator genera el PDF del inventario valorizado.
type ValuationPDFGenerator interface {
	GenerateValuationPDF(
		ctx context.Context,
		company *entity.Company,
		valuation *dto.InventoryValuationDTO,
		generatedAt time.Time,
	) ([]byte, error)
}

// ReportUseCase exporta la valorización del inventario a PDF.
// Reutiliza el mismo cálculo que la vista HTML.
type ReportUseCase struct {
	stock     *StockUseCase
	generator ValuationPDFGenerator
	clock     clock
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(stock *StockUseCase, generator ValuationPDFGenerator, opts ...Option) *ReportUseCase {
	return &ReportUseCase{stock: stock, generator: generator, clock: newClock(opts)}
}

// ValuationPDF devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *ReportUseCase) ValuationPDF(ctx context.Context, company *entity.Company) (pdfBytes []byte, filename string, err error) {
	if company == nil || company.ID == "" {
		return nil, "", domain.ErrCompanyNotFound
	}
	v, err := uc.stock.GetInventoryValuation(ctx, company.ID)
	if err != nil {
		return nil, "", err
	}
	now := uc.clock.Now()
	pdfBytes, err = uc.generator.GenerateValuationPDF(ctx, company, v, now)
	if err != nil {
		return nil, "", fmt.Errorf("report: generar pdf: %w", err)
	}
	return pdfBytes, fmt.Sprintf("inventory-value-%s.pdf", now.Format("2006-01-02")), nil
}
