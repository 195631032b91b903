package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"maisonazur/internal/domain"
	applog "maisonazur/internal/log"
	"maisonazur/internal/services"
	"maisonazur/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

// POST /api/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if _, ok := validate.Email(req.Email); !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": "bad_format"})
		return fail(c, services.ErrBadCreds)
	}
	if !validate.Password(req.Password) {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": "bad_password_format"})
		return fail(c, services.ErrBadCreds)
	}

	sid := ensureSID(c)
	u, err := h.Auth.Login(sid, req.Email, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email})
		return fail(c, err)
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": u.Email})
	return c.JSON(fiber.Map{"user": u})
}

// POST /api/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"ok": true})
}

// GET /api/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p := principalOf(c)
	if p.Role == domain.RoleAnonymous {
		return fail(c, services.ErrUnauthorized)
	}
	return c.JSON(fiber.Map{"user": p.User})
}
