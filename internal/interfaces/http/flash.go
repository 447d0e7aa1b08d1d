package http

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// FlashCookie cookie de un solo uso con el mensaje para la siguiente página.
const FlashCookie = "flash"

// Niveles de flash.
const (
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashError   = "error"
)

// Flash mensaje leído de la cookie.
type Flash struct {
	Level   string
	Message string
}

// isAJAX true si la request viene de fetch/XHR del dashboard.
func isAJAX(c *fiber.Ctx) bool {
	return c.Get("X-Requested-With") == "XMLHttpRequest"
}

// SetFlash guarda "level|message" escapado en la cookie flash.
func SetFlash(c *fiber.Ctx, level, message string) {
	c.Cookie(&fiber.Cookie{
		Name:     FlashCookie,
		Value:    url.QueryEscape(level + "|" + message),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// PopFlash lee y borra la cookie flash. nil si no hay mensaje.
func PopFlash(c *fiber.Ctx) *Flash {
	raw := c.Cookies(FlashCookie)
	if raw == "" {
		return nil
	}
	c.Cookie(&fiber.Cookie{
		Name:    FlashCookie,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
	})
	v, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	level, msg, ok := strings.Cut(v, "|")
	if !ok {
		return &Flash{Level: FlashInfo, Message: v}
	}
	return &Flash{Level: level, Message: msg}
}

// redirectWithFlash deja el flash y redirige con 302.
func redirectWithFlash(c *fiber.Ctx, to, level, message string) error {
	SetFlash(c, level, message)
	return c.Redirect(to, fiber.StatusFound)
}
