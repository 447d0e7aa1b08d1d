package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-insights/internal/application/dto"
	"github.com/jhoicas/invorya-insights/internal/application/tenant"
	"github.com/jhoicas/invorya-insights/pkg/logger"
)

// LocalTenant key de locals con la tenant.Resolution de la request.
const LocalTenant = "tenant"

const localDenied = "tenant_denied"

// Motivos de rechazo por tenant (etiqueta de insights_tenant_denied_total).
const (
	deniedNoCompany       = "no_company"
	deniedForbidden       = "forbidden"
	deniedCompanyNotFound = "company_not_found"
)

// markDenied anota el motivo para que AccessLog lo cuente.
func markDenied(c *fiber.Ctx, reason string) {
	c.Locals(localDenied, reason)
}

// tenantResolver contrato mínimo del middleware; lo implementa *tenant.Resolver.
type tenantResolver interface {
	Resolve(ctx context.Context, userID string) (tenant.Resolution, error)
}

// TenantMiddleware resuelve perfil y empresa del usuario y los deja en locals.
// Debe usarse DESPUÉS de AuthMiddleware / PageAuthMiddleware.
// No corta la request cuando no hay empresa: cada handler decide cómo responder.
func TenantMiddleware(resolver tenantResolver, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := resolver.Resolve(c.UserContext(), GetUserID(c))
		if err != nil {
			log.Error().Err(err).Str("user_id", GetUserID(c)).Msg("resolver tenant")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: "no se pudo resolver la empresa", Code: dto.CodeInternal,
			})
		}
		c.Locals(LocalTenant, res)
		return c.Next()
	}
}

// GetTenant devuelve la Resolution de la request (vacía si el middleware no corrió).
func GetTenant(c *fiber.Ctx) tenant.Resolution {
	res, _ := c.Locals(LocalTenant).(tenant.Resolution)
	return res
}

// GetCompanyID ID de la empresa resuelta; vacío si el usuario no tiene empresa.
func GetCompanyID(c *fiber.Ctx) string {
	return GetTenant(c).CompanyID()
}
