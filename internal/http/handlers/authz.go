package handlers

import (
	"github.com/gofiber/fiber/v2"

	"maisonazur/internal/domain"
	applog "maisonazur/internal/log"
	"maisonazur/internal/services"
)

// WithPrincipal resolves the session cookie into a Principal exactly
// once per request and stores it in Locals. Handlers and services read
// the Principal, never the cookie.
func WithPrincipal(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("principal", auth.Authorize(c.Cookies("sid")))
		return c.Next()
	}
}

func principalOf(c *fiber.Ctx) domain.Principal {
	if p, ok := c.Locals("principal").(domain.Principal); ok {
		return p
	}
	return domain.Anonymous()
}

// RequireAdmin guards the back-office routes: 401 without a session,
// 403 for a logged-in non-admin.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := principalOf(c)
		switch p.Role {
		case domain.RoleAdmin:
			return c.Next()
		case domain.RoleAnonymous:
			applog.Security(c, "access.denied.admin", map[string]any{"reason": "no_session"})
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		default:
			applog.Security(c, "access.denied.admin", map[string]any{"user": p.UserID()})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied"})
		}
	}
}
