// Package pdf genera el reporte de inventario valorizado.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa              │  Título + Fecha de corte     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Valor a precio de venta | Valor a costo            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Categoría | Valor venta | Valor costo                │
//	│  TABLA: Proveedor | Valor venta | Valor costo                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/invorya-insights/internal/application/analytics"
	"github.com/jhoicas/invorya-insights/internal/application/dto"
	"github.com/jhoicas/invorya-insights/internal/domain/entity"
	"github.com/jhoicas/invorya-insights/pkg/format"
)

var _ analytics.ValuationPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa analytics.ValuationPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateValuationPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateValuationPDF(
	_ context.Context,
	company *entity.Company,
	v *dto.InventoryValuationDTO,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Inventory Valuation", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow(v))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(groupRows("Category", v.ByCategory)...)
	m.AddRows(line.NewRow(4))
	m.AddRows(groupRows("Supplier", v.BySupplier)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(company *entity.Company, at time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("INVENTORY VALUATION", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("As of "+at.Format("Jan 02, 2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func totalsRow(v *dto.InventoryValuationDTO) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New("Retail value", props.Text{Size: 8, Color: colorGray, Top: 1}),
			text.New(format.Money(v.RetailValue), props.Text{Style: fontstyle.Bold, Size: 12, Top: 6}),
		),
		col.New(6).Add(
			text.New("Cost value", props.Text{Size: 8, Color: colorGray, Top: 1, Align: align.Right}),
			text.New(format.Money(v.CostValue), props.Text{Style: fontstyle.Bold, Size: 12, Top: 6, Align: align.Right}),
		),
	)
}

// groupRows cabecera + una fila por grupo.
func groupRows(title string, groups []dto.ValuationGroupDTO) []core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	rows := []core.Row{row.New(8).Add(
		h(title, 6, align.Left),
		h("Retail value", 3, align.Right),
		h("Cost value", 3, align.Right),
	)}
	if len(groups) == 0 {
		return append(rows, row.New(6).Add(col.New(12).Add(
			text.New("No stock with a selling price.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	for _, g := range groups {
		rows = append(rows, row.New(6).Add(
			col.New(6).Add(text.New(g.Name, props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(format.Money(g.RetailValue), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(format.Money(g.CostValue), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return rows
}
