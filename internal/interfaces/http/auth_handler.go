package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-insights/internal/application/dto"
	"github.com/jhoicas/invorya-insights/internal/domain"
	"github.com/jhoicas/invorya-insights/pkg/logger"
)

type loginService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
}

// AuthHandler maneja el login.
type AuthHandler struct {
	uc           loginService
	secureCookie bool
	log          *logger.Logger
}

// NewAuthHandler construye el handler de auth. secureCookie marca la cookie de sesión como Secure.
func NewAuthHandler(uc loginService, secureCookie bool, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, secureCookie: secureCookie, log: log}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido", Code: dto.CodeInvalidParams})
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error(), Code: dto.CodeInvalidParams})
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "credenciales inválidas", Code: dto.CodeUnauthorized})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "cuenta inactiva o suspendida", Code: dto.CodeForbidden})
		default:
			h.log.Error().Err(err).Msg("login")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "error interno", Code: dto.CodeInternal})
		}
	}
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    out.Token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(out.ExpiresIn) * time.Second),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(out)
}
