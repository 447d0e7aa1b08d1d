package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/invorya-insights/internal/application/dto"
	"github.com/jhoicas/invorya-insights/internal/infrastructure/observability"
	"github.com/jhoicas/invorya-insights/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Resolver  tenantResolver
	Auth      loginService
	Dashboard kpiService
	Graph     graphService
	Trends    trendsService
	Stock     stockService
	Report    reportService

	JWTSecret    string
	LoginURL     string
	URLs         PageURLs
	SecureCookie bool

	Metrics *observability.Metrics
	Log     *logger.Logger
}

// NewApp crea la app Fiber con las vistas embebidas y los middlewares comunes.
// AccessLog va antes de recover para registrar también los pánicos como 500.
func NewApp(name string, log *logger.Logger, metrics *observability.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		Views:        NewViews(),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: errorHandler,
	})
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(AccessLog(log, metrics))
	app.Use(recover.New())
	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(dto.ErrorResponse{Error: err.Error(), Code: codeFor(code)})
}

func codeFor(status int) string {
	switch status {
	case fiber.StatusUnauthorized:
		return dto.CodeUnauthorized
	case fiber.StatusForbidden:
		return dto.CodeForbidden
	case fiber.StatusBadRequest:
		return dto.CodeInvalidParams
	case fiber.StatusNotFound:
		return dto.CodeNotFound
	default:
		return dto.CodeInternal
	}
}

// Router registra las rutas de Insights.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.Auth, deps.SecureCookie, deps.Log)
	api.Post("/auth/login", authHandler.Login)

	// API JSON (Bearer o cookie de sesión)
	apiHandler := NewInsightsAPIHandler(deps.Dashboard, deps.Graph, deps.Trends, deps.Log)
	requireAuth := AuthMiddleware(deps.JWTSecret)
	withTenant := TenantMiddleware(deps.Resolver, deps.Log)

	apiInsights := api.Group("/insights", requireAuth, withTenant)
	apiInsights.Get("/kpis", apiHandler.GetKPIs)
	apiInsights.Get("/graph", apiHandler.GetGraph)

	// La empresa viaja en la ruta; el caso de uso verifica que el usuario sea empleado.
	companies := api.Group("/companies", requireAuth)
	companies.Get("/:company_id/sales-trends", apiHandler.GetSalesTrends)
	companies.Get("/:company_id/sales-trends/all", apiHandler.GetSalesTrendsAll)

	// Vistas HTML
	pages := NewInsightsPageHandler(deps.Stock, deps.Trends, deps.Report, deps.URLs, deps.Metrics, deps.Log)
	web := app.Group("/insights", PageAuthMiddleware(deps.JWTSecret, deps.LoginURL), withTenant)
	web.Get("/", pages.Dashboard)
	web.Get("/top-sellers", pages.TopSellers)
	web.Get("/attention", pages.Attention)
	web.Get("/profit-trends", pages.ProfitTrends)
	web.Get("/inventory-value", pages.InventoryValue)
	web.Get("/inventory-value.pdf", pages.InventoryValuePDF)
	web.Get("/historical-trends", pages.HistoricalTrends)
	web.Get("/graph-customization", pages.GraphCustomization)
}
