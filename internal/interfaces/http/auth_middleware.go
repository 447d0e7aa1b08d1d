package http

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-insights/internal/application/dto"
	"github.com/jhoicas/invorya-insights/pkg/jwt"
)

// Locals keys del usuario autenticado.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
)

// SessionCookie cookie HttpOnly con el JWT para las vistas HTML.
const SessionCookie = "access_token"

// tokenFrom extrae el JWT del header Bearer o, si no viene, de la cookie de sesión.
func tokenFrom(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return ""
		}
		return strings.TrimSpace(parts[1])
	}
	return c.Cookies(SessionCookie)
}

// authenticate deja user_id y email en locals; false si no hay token válido.
func authenticate(c *fiber.Ctx, secret string) bool {
	tok := tokenFrom(c)
	if tok == "" {
		return false
	}
	userID, email, err := jwt.Parse(secret, tok)
	if err != nil {
		return false
	}
	c.Locals(LocalUserID, userID)
	c.Locals(LocalEmail, email)
	return true
}

// AuthMiddleware protege la API JSON: 401 si el token falta o no es válido.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !authenticate(c, jwtSecret) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "token ausente, inválido o expirado",
				Code:  dto.CodeUnauthorized,
			})
		}
		return c.Next()
	}
}

// PageAuthMiddleware protege las vistas HTML.
// Navegación directa sin sesión → redirect a loginURL con ?next=; AJAX → 401 sin cuerpo.
func PageAuthMiddleware(jwtSecret, loginURL string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if authenticate(c, jwtSecret) {
			return c.Next()
		}
		if isAJAX(c) {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.Redirect(loginURL+"?next="+url.QueryEscape(c.OriginalURL()), fiber.StatusFound)
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}
