package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "maisonazur/internal/log"
	"maisonazur/internal/services"
)

// fail translates the service error taxonomy into a JSON status. Only
// a stable code/message pair ever reaches the client; internals are
// logged server-side.
func fail(c *fiber.Ctx, err error) error {
	var ve services.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Reason})
	case errors.Is(err, services.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, services.ErrBadCreds):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
	default:
		applog.Error(c, "server.error", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
	}
}

// mapNoRows turns a bare row miss from a repo into the 404 sentinel.
func mapNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return services.ErrNotFound
	}
	return err
}
