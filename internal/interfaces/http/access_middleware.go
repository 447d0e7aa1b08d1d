package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-insights/internal/infrastructure/observability"
	"github.com/jhoicas/invorya-insights/pkg/logger"
)

// AccessLog registra cada request con zerolog y alimenta las métricas Prometheus.
// La ruta de las métricas es el patrón registrado (/api/companies/:company_id/...), no la URL.
func AccessLog(log *logger.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			// el ErrorHandler escribe la respuesta; aquí solo queremos el código final
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		if metrics != nil {
			metrics.ObserveRequest(c.Method(), route, status, elapsed)
			if reason, ok := c.Locals(localDenied).(string); ok {
				metrics.IncTenantDenied(reason)
			}
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(chainErr)
		}
		ev.Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed).
			Str("company_id", GetCompanyID(c)).
			Msg("http")
		return nil
	}
}

func requestID(c *fiber.Ctx) string {
	s, _ := c.Locals("requestid").(string)
	return s
}
