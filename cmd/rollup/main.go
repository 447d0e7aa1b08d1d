package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jhoicas/invorya-insights/internal/application/analytics"
	"github.com/jhoicas/invorya-insights/internal/infrastructure/postgres"
	"github.com/jhoicas/invorya-insights/pkg/config"
	"github.com/jhoicas/invorya-insights/pkg/logger"
)

var (
	rootCmd = &cobra.Command{
		Use:   "rollup",
		Short: "Recalcula company_monthly_metrics desde las órdenes pagadas",
		RunE:  run,
	}

	companyID string
)

func main() {
	rootCmd.Flags().StringVarP(&companyID, "company", "c", "", "ID de la empresa (vacío = todas las activas)")
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("conexión a PostgreSQL")
		return err
	}
	defer pool.Close()

	uc := analytics.NewRollupUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewCompanyRepository(pool),
		analytics.WithLocation(cfg.Insights.Location()),
	)

	if companyID != "" {
		res, err := uc.Rebuild(ctx, companyID)
		if err != nil {
			log.Error().Err(err).Str("company_id", companyID).Msg("rollup")
			return err
		}
		log.ForCompany(res.CompanyID).Info().Int("months", res.Months).Msg("rollup completado")
		return nil
	}

	results, err := uc.RebuildAll(ctx)
	for _, r := range results {
		log.ForCompany(r.CompanyID).Info().Int("months", r.Months).Msg("rollup completado")
	}
	if err != nil {
		log.Error().Err(err).Int("done", len(results)).Msg("rollup interrumpido")
		return err
	}
	log.Info().Int("companies", len(results)).Msg("rollup de todas las empresas completado")
	return nil
}

