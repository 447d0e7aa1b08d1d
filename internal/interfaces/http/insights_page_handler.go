package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-insights/internal/application/dto"
	"github.com/jhoicas/invorya-insights/internal/domain/entity"
	"github.com/jhoicas/invorya-insights/internal/domain/insights"
	"github.com/jhoicas/invorya-insights/internal/infrastructure/observability"
	"github.com/jhoicas/invorya-insights/pkg/logger"
)

type (
	stockService interface {
		GetTopSellers(ctx context.Context, companyID string) (*dto.TopSellersDTO, error)
		GetAttention(ctx context.Context, companyID, query string) (*dto.AttentionListDTO, error)
		GetInventoryValuation(ctx context.Context, companyID string) (*dto.InventoryValuationDTO, error)
	}
	reportService interface {
		ValuationPDF(ctx context.Context, company *entity.Company) ([]byte, string, error)
	}
)

// Mensajes mostrados al usuario.
const (
	msgNoCompany      = "Company not found. Please set up your company first."
	msgNoCompanyFrag  = "Company not found. Please set up your company."
	msgAttentionModal = "Items needing attention are typically viewed within the dashboard modal."
	msgAJAXOnly       = "This page is intended to be loaded via AJAX."
)

// PageURLs destinos de redirección de las vistas HTML.
type PageURLs struct {
	CompanySetup string
	Dashboard    string
}

// InsightsPageHandler vistas HTML (páginas y fragmentos para modales AJAX).
type InsightsPageHandler struct {
	stock   stockService
	trends  trendsService
	report  reportService
	urls    PageURLs
	metrics *observability.Metrics
	log     *logger.Logger
}

// NewInsightsPageHandler construye el handler.
func NewInsightsPageHandler(
	stock stockService,
	trends trendsService,
	report reportService,
	urls PageURLs,
	metrics *observability.Metrics,
	log *logger.Logger,
) *InsightsPageHandler {
	return &InsightsPageHandler{stock: stock, trends: trends, report: report, urls: urls, metrics: metrics, log: log}
}

// noCompany respuesta estándar de los fragmentos: 403 para AJAX, redirect + flash si no.
func (h *InsightsPageHandler) noCompany(c *fiber.Ctx) error {
	markDenied(c, deniedNoCompany)
	if isAJAX(c) {
		return c.Status(fiber.StatusForbidden).Render("error_fragment", fiber.Map{"Message": msgNoCompanyFrag})
	}
	return redirectWithFlash(c, h.urls.CompanySetup, FlashError, msgNoCompany)
}

func (h *InsightsPageHandler) internal(c *fiber.Ctx, err error) error {
	h.log.Error().Err(err).Str("path", c.Path()).Str("company_id", GetCompanyID(c)).Msg("insights page")
	return c.Status(fiber.StatusInternalServerError).Render("error_fragment", fiber.Map{"Message": "Something went wrong. Please try again."})
}

// Dashboard página principal; sin empresa redirige a la configuración de empresa.
// GET /insights
func (h *InsightsPageHandler) Dashboard(c *fiber.Ctx) error {
	t := GetTenant(c)
	if !t.HasCompany {
		markDenied(c, deniedNoCompany)
		return redirectWithFlash(c, h.urls.CompanySetup, FlashError, msgNoCompany)
	}
	return c.Render("dashboard", fiber.Map{
		"Title":   "Insights",
		"Flash":   PopFlash(c),
		"Company": t.Company,
	})
}

// TopSellers fragmento con los 10 productos más vendidos de los últimos 30 días.
// GET /insights/top-sellers
func (h *InsightsPageHandler) TopSellers(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return h.noCompany(c)
	}
	top, err := h.stock.GetTopSellers(c.UserContext(), companyID)
	if err != nil {
		return h.internal(c, err)
	}
	return c.Render("top_sellers", top)
}

// Attention fragmento de productos con stock bajo o sin ventas; ?q= filtra por nombre o código de barras.
// GET /insights/attention
func (h *InsightsPageHandler) Attention(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return h.noCompany(c)
	}
	if !isAJAX(c) {
		return redirectWithFlash(c, h.urls.Dashboard, FlashInfo, msgAttentionModal)
	}
	list, err := h.stock.GetAttention(c.UserContext(), companyID, c.Query("q"))
	if err != nil {
		return h.internal(c, err)
	}
	return c.Render("attention", list)
}

// ProfitTrends rollup mensual: fragmento para AJAX, página completa si no.
// GET /insights/profit-trends
func (h *InsightsPageHandler) ProfitTrends(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		markDenied(c, deniedNoCompany)
		return redirectWithFlash(c, h.urls.CompanySetup, FlashError, "Company not found. Please set up your company first to view profit trends.")
	}
	trend, err := h.trends.GetProfitTrend(c.UserContext(), companyID)
	if err != nil {
		return h.internal(c, err)
	}
	data := fiber.Map{"Title": "Historical Profit Trends", "Trend": trend}
	if isAJAX(c) {
		return c.Render("profit_trends", data)
	}
	data["Flash"] = PopFlash(c)
	return c.Render("profit_trends_page", data)
}

// InventoryValue desglose del inventario valorizado; solo AJAX.
// GET /insights/inventory-value
func (h *InsightsPageHandler) InventoryValue(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		markDenied(c, deniedNoCompany)
		return redirectWithFlash(c, h.urls.Dashboard, FlashError, "Company not found for the current user. Please set up your company.")
	}
	if !isAJAX(c) {
		return redirectWithFlash(c, h.urls.Dashboard, FlashWarning, msgAJAXOnly)
	}
	val, err := h.stock.GetInventoryValuation(c.UserContext(), companyID)
	if err != nil {
		return h.internal(c, err)
	}
	return c.Render("inventory_value", fiber.Map{"Valuation": val})
}

// InventoryValuePDF mismo desglose como PDF descargable.
// GET /insights/inventory-value.pdf
func (h *InsightsPageHandler) InventoryValuePDF(c *fiber.Ctx) error {
	t := GetTenant(c)
	if !t.HasCompany {
		markDenied(c, deniedNoCompany)
		return redirectWithFlash(c, h.urls.CompanySetup, FlashError, msgNoCompany)
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), 30*time.Second)
	defer cancel()

	pdf, filename, err := h.report.ValuationPDF(ctx, t.Company)
	if err != nil {
		return h.internal(c, err)
	}
	if h.metrics != nil {
		h.metrics.IncPDF()
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// HistoricalTrends contenido del modal de tendencias; ?current_metrics= preselecciona.
// GET /insights/historical-trends
func (h *InsightsPageHandler) HistoricalTrends(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return h.noCompany(c)
	}
	return c.Render("historical_trends", fiber.Map{
		"CompanyID": companyID,
		"Modal":     h.trends.TrendModal(c.Query("current_metrics")),
	})
}

type choice struct {
	Name string
	Key  string
}

// GraphCustomization modal estático con métricas y periodos del gráfico.
// GET /insights/graph-customization
func (h *InsightsPageHandler) GraphCustomization(c *fiber.Ctx) error {
	metrics := make([]choice, 0, len(insights.GraphMetrics))
	for _, m := range insights.GraphMetrics {
		metrics = append(metrics, choice{Name: m.Label(), Key: string(m)})
	}
	periods := []choice{
		{Name: "Last 7 Days", Key: string(insights.PeriodWeek)},
		{Name: "This Month", Key: string(insights.PeriodMonth)},
		{Name: "Last 90 Days", Key: string(insights.PeriodQuarter)},
		{Name: "This Year", Key: string(insights.PeriodYear)},
		{Name: "All Time", Key: string(insights.PeriodAll)},
	}
	return c.Render("graph_customization", fiber.Map{"Metrics": metrics, "Periods": periods})
}
