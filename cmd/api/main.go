package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-insights/internal/application/analytics"
	"github.com/jhoicas/invorya-insights/internal/application/auth"
	"github.com/jhoicas/invorya-insights/internal/application/tenant"
	"github.com/jhoicas/invorya-insights/internal/infrastructure/observability"
	infrapdf "github.com/jhoicas/invorya-insights/internal/infrastructure/pdf"
	"github.com/jhoicas/invorya-insights/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/invorya-insights/internal/interfaces/http"
	"github.com/jhoicas/invorya-insights/pkg/config"
	"github.com/jhoicas/invorya-insights/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	loc := cfg.Insights.Location()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", loc.String()).
		Msg("iniciando aplicación")

	metrics := observability.NewMetrics()

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, postgres.WithQueryObserver(metrics))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	metricRepo := postgres.NewMonthlyMetricRepository(pool)

	opts := []analytics.Option{analytics.WithLocation(loc)}
	dashboardUC := analytics.NewDashboardUseCase(analyticsRepo, productRepo, opts...)
	graphUC := analytics.NewGraphUseCase(analyticsRepo, opts...)
	stockUC := analytics.NewStockUseCase(analyticsRepo, productRepo, opts...)
	trendsUC := analytics.NewTrendsUseCase(analyticsRepo, metricRepo, companyRepo, userRepo, opts...)

	// PDF: inventario valorizado
	reportUC := analytics.NewReportUseCase(stockUC, infrapdf.NewMarotoPDFGenerator(), opts...)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := httpRouter.NewApp(cfg.App.Name, log, metrics)

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.App.SwaggerFile != "" {
		if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.App.SwaggerFile,
				Path:     "docs",
				Title:    "Invorya Insights API",
			}))
		} else {
			log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Resolver:  tenant.NewResolver(userRepo, companyRepo),
		Auth:      authUC,
		Dashboard: dashboardUC,
		Graph:     graphUC,
		Trends:    trendsUC,
		Stock:     stockUC,
		Report:    reportUC,
		JWTSecret: cfg.JWT.Secret,
		LoginURL:  cfg.Insights.LoginURL,
		URLs: httpRouter.PageURLs{
			CompanySetup: cfg.Insights.CompanySetupURL,
			Dashboard:    cfg.Insights.DashboardURL,
		},
		SecureCookie: cfg.App.Env == "production",
		Metrics:      metrics,
		Log:          log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
