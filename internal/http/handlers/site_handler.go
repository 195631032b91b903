package handlers

import (
	"github.com/gofiber/fiber/v2"

	"maisonazur/internal/repos"
)

// SiteHandler serves the public, read-only site content.
type SiteHandler struct {
	Agents       *repos.AgentRepo
	Testimonials *repos.TestimonialRepo
	Settings     *repos.SettingsRepo
}

// GET /api/agents
func (h *SiteHandler) ListAgents(c *fiber.Ctx) error {
	agents, err := h.Agents.List()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"agents": agents})
}

// GET /api/testimonials
func (h *SiteHandler) ListTestimonials(c *fiber.Ctx) error {
	ts, err := h.Testimonials.ListPublished()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"testimonials": ts})
}

// GET /api/settings
func (h *SiteHandler) GetSettings(c *fiber.Ctx) error {
	s, err := h.Settings.Get()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(s)
}
