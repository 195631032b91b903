package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"maisonazur/internal/domain"
	applog "maisonazur/internal/log"
	"maisonazur/internal/repos"
	"maisonazur/internal/services"
	"maisonazur/internal/validate"
)

// AdminHandler serves the back-office endpoints that are plain CRUD
// over a single table: the lead inbox, testimonials and site settings.
// Everything here sits behind RequireAdmin.
type AdminHandler struct {
	Leads        *repos.LeadRepo
	Testimonials *repos.TestimonialRepo
	Settings     *repos.SettingsRepo
}

const leadInboxLimit = 200

// GET /api/admin/leads
func (h *AdminHandler) LeadInbox(c *fiber.Ctx) error {
	leads, err := h.Leads.ListLatest(leadInboxLimit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"leads": leads})
}

// POST /api/admin/leads/:id/read
func (h *AdminHandler) MarkLeadRead(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, services.ErrNotFound)
	}
	if err := h.Leads.MarkRead(id); err != nil {
		return fail(c, mapNoRows(err))
	}
	applog.Audit(c, "lead.read", map[string]any{"lead": id})
	return c.JSON(fiber.Map{"ok": true})
}

type testimonialBody struct {
	Author    string `json:"author"`
	Location  string `json:"location"`
	Quote     string `json:"quote"`
	Published bool   `json:"published"`
}

func (b testimonialBody) check() error {
	if strings.TrimSpace(b.Author) == "" {
		return services.ValidationError{Reason: "author is required"}
	}
	if q := strings.TrimSpace(b.Quote); q == "" || len(q) > 1000 {
		return services.ValidationError{Reason: "quote is required"}
	}
	return nil
}

// GET /api/admin/testimonials
func (h *AdminHandler) ListTestimonials(c *fiber.Ctx) error {
	all, err := h.Testimonials.ListAll()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"testimonials": all})
}

// POST /api/admin/testimonials
func (h *AdminHandler) CreateTestimonial(c *fiber.Ctx) error {
	var body testimonialBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if err := body.check(); err != nil {
		return fail(c, err)
	}
	t := domain.Testimonial{
		ID:        uuid.NewString(),
		Author:    strings.TrimSpace(body.Author),
		Location:  strings.TrimSpace(body.Location),
		Quote:     strings.TrimSpace(body.Quote),
		Published: body.Published,
	}
	if err := h.Testimonials.Create(&t); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "testimonial.create", map[string]any{"id": t.ID})
	return c.Status(fiber.StatusCreated).JSON(t)
}

// PUT /api/admin/testimonials/:id
func (h *AdminHandler) UpdateTestimonial(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, services.ErrNotFound)
	}
	var body testimonialBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if err := body.check(); err != nil {
		return fail(c, err)
	}
	t := domain.Testimonial{
		ID:        id,
		Author:    strings.TrimSpace(body.Author),
		Location:  strings.TrimSpace(body.Location),
		Quote:     strings.TrimSpace(body.Quote),
		Published: body.Published,
	}
	if err := h.Testimonials.Update(&t); err != nil {
		return fail(c, mapNoRows(err))
	}
	applog.Audit(c, "testimonial.update", map[string]any{"id": id})
	return c.JSON(t)
}

// DELETE /api/admin/testimonials/:id
func (h *AdminHandler) DeleteTestimonial(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, services.ErrNotFound)
	}
	if err := h.Testimonials.Delete(id); err != nil {
		return fail(c, mapNoRows(err))
	}
	applog.Audit(c, "testimonial.delete", map[string]any{"id": id})
	return c.JSON(fiber.Map{"deleted": id})
}

// PUT /api/admin/settings
func (h *AdminHandler) SaveSettings(c *fiber.Ctx) error {
	var s domain.SiteSettings
	if err := c.BodyParser(&s); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if s.WhatsappEnabled {
		if _, ok := validate.Phone(s.WhatsappNumber); !ok {
			return fail(c, services.ValidationError{Reason: "enter a valid WhatsApp number"})
		}
	}
	if err := h.Settings.Save(s); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "settings.save", map[string]any{"whatsappEnabled": s.WhatsappEnabled})
	saved, err := h.Settings.Get()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(saved)
}
