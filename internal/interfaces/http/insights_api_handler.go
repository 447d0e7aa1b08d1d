package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/invorya-insights/internal/application/dto"
	"github.com/jhoicas/invorya-insights/internal/domain"
	"github.com/jhoicas/invorya-insights/pkg/logger"
)

// Contratos que consumen los handlers; los implementan los casos de uso de application/analytics.
type (
	kpiService interface {
		GetKPIs(ctx context.Context, companyID string) (*dto.KPISnapshotDTO, error)
	}
	graphService interface {
		GetGraph(ctx context.Context, companyID string, req dto.GraphRequest) (*dto.GraphDataDTO, error)
	}
	trendsService interface {
		GetProfitTrend(ctx context.Context, companyID string) (*dto.ProfitTrendDTO, error)
		GetRecentTrends(ctx context.Context, userID, companyID, rawMetrics string) (*dto.SalesTrendsDTO, error)
		GetFullTrends(ctx context.Context, userID, companyID, rawMetrics string) (*dto.SalesTrendsDTO, error)
		TrendModal(rawCurrent string) dto.TrendModalDTO
	}
)

// InsightsAPIHandler endpoints JSON del dashboard de Insights.
type InsightsAPIHandler struct {
	kpis   kpiService
	graph  graphService
	trends trendsService
	log    *logger.Logger
}

// NewInsightsAPIHandler construye el handler.
func NewInsightsAPIHandler(kpis kpiService, graph graphService, trends trendsService, log *logger.Logger) *InsightsAPIHandler {
	return &InsightsAPIHandler{kpis: kpis, graph: graph, trends: trends, log: log}
}

// GetKPIs godoc
// @Summary      Indicadores del dashboard
// @Tags         insights
// @Produce      json
// @Success      200  {object}  dto.KPISnapshotDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/insights/kpis [get]
func (h *InsightsAPIHandler) GetKPIs(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		markDenied(c, deniedNoCompany)
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: "el usuario no tiene una empresa asociada", Code: dto.CodeCompanyNotFound,
		})
	}
	out, err := h.kpis.GetKPIs(c.UserContext(), companyID)
	if err != nil {
		return h.internal(c, err)
	}
	return c.JSON(out)
}

// GetGraph godoc
// @Summary      Serie temporal del dashboard
// @Tags         insights
// @Produce      json
// @Param        metric       query  string  false  "sales | profit | gross_profit_margin | num_orders"
// @Param        time_period  query  string  false  "week | month | quarter | year | all"
// @Success      200  {object}  dto.GraphDataDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/insights/graph [get]
func (h *InsightsAPIHandler) GetGraph(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		markDenied(c, deniedNoCompany)
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "el usuario no tiene una empresa asociada", Code: dto.CodeCompanyNotFound,
		})
	}
	var req dto.GraphRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "parámetros inválidos", Code: dto.CodeInvalidParams})
	}
	out, err := h.graph.GetGraph(c.UserContext(), companyID, req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMetric) || errors.Is(err, domain.ErrInvalidTimePeriod) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error(), Code: dto.CodeInvalidParams})
		}
		return h.internal(c, err)
	}
	return c.JSON(out)
}

// GetSalesTrends godoc
// @Summary      Tendencia mensual de los últimos 10 meses
// @Tags         insights
// @Produce      json
// @Param        company_id  path   string  true   "ID de la empresa"
// @Param        metrics     query  string  false  "CSV de revenue, net_profit, quantity_sold, cogs o all"
// @Success      200  {object}  dto.SalesTrendsDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies/{company_id}/sales-trends [get]
func (h *InsightsAPIHandler) GetSalesTrends(c *fiber.Ctx) error {
	companyID, err := pathCompanyID(c)
	if err != nil {
		return h.trendsResponse(c, nil, err)
	}
	out, err := h.trends.GetRecentTrends(c.UserContext(), GetUserID(c), companyID, c.Query("metrics"))
	return h.trendsResponse(c, out, err)
}

// GetSalesTrendsAll godoc
// @Summary      Tendencia mensual de todo el historial
// @Tags         insights
// @Produce      json
// @Param        company_id  path   string  true   "ID de la empresa"
// @Param        metrics     query  string  false  "CSV de revenue, net_profit, quantity_sold, cogs o all"
// @Success      200  {object}  dto.SalesTrendsDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies/{company_id}/sales-trends/all [get]
func (h *InsightsAPIHandler) GetSalesTrendsAll(c *fiber.Ctx) error {
	companyID, err := pathCompanyID(c)
	if err != nil {
		return h.trendsResponse(c, nil, err)
	}
	out, err := h.trends.GetFullTrends(c.UserContext(), GetUserID(c), companyID, c.Query("metrics"))
	return h.trendsResponse(c, out, err)
}

// pathCompanyID :company_id de la ruta; un valor que no es UUID no puede existir.
func pathCompanyID(c *fiber.Ctx) (string, error) {
	id := c.Params("company_id")
	if err := uuid.Validate(id); err != nil {
		return "", domain.ErrCompanyNotFound
	}
	return id, nil
}

func (h *InsightsAPIHandler) trendsResponse(c *fiber.Ctx, out *dto.SalesTrendsDTO, err error) error {
	switch {
	case err == nil:
		return c.JSON(out)
	case errors.Is(err, domain.ErrCompanyNotFound):
		markDenied(c, deniedCompanyNotFound)
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "empresa no encontrada", Code: dto.CodeCompanyNotFound})
	case errors.Is(err, domain.ErrForbidden):
		markDenied(c, deniedForbidden)
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "no pertenece a esta empresa", Code: dto.CodeForbidden})
	default:
		return h.internal(c, err)
	}
}

// internal registra el error y responde 500 genérico (el detalle no sale al cliente).
func (h *InsightsAPIHandler) internal(c *fiber.Ctx, err error) error {
	h.log.Error().Err(err).Str("path", c.Path()).Str("company_id", GetCompanyID(c)).Msg("insights api")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "error interno", Code: dto.CodeInternal})
}
