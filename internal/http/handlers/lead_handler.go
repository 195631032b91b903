package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "maisonazur/internal/log"
	"maisonazur/internal/services"
)

type LeadHandler struct {
	Leads *services.LeadService
}

// POST /api/contact
func (h *LeadHandler) Submit(c *fiber.Ctx) error {
	var in services.LeadInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	l, err := h.Leads.Submit(in)
	if err != nil {
		return fail(c, err)
	}
	applog.Info(c, "lead.submitted", map[string]any{"lead": l.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": l.ID})
}
