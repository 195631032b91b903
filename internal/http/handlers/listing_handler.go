package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "maisonazur/internal/log"
	"maisonazur/internal/services"
	"maisonazur/internal/validate"
)

// ListingHandler is the admin write surface for properties.
type ListingHandler struct {
	Listings *services.ListingService
	Catalog  *services.CatalogService
}

// POST /api/properties
func (h *ListingHandler) Create(c *fiber.Ctx) error {
	var in services.PropertyInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	p, err := h.Listings.Create(principalOf(c), in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "property.create", map[string]any{"slug": p.Slug, "reference": p.Reference})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PUT /api/properties/:slug
func (h *ListingHandler) Update(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return fail(c, services.ErrNotFound)
	}
	var patch services.PropertyPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	p, err := h.Listings.Update(principalOf(c), slug, patch)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "property.update", map[string]any{"slug": p.Slug})
	return c.JSON(p)
}

// DELETE /api/properties/:slug
func (h *ListingHandler) Delete(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return fail(c, services.ErrNotFound)
	}
	if err := h.Listings.Delete(principalOf(c), slug); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "property.delete", map[string]any{"slug": slug})
	return c.JSON(fiber.Map{"deleted": slug})
}

// GET /api/admin/properties
func (h *ListingHandler) AdminList(c *fiber.Ctx) error {
	q, err := parseQuery(c)
	if err != nil {
		return fail(c, err)
	}
	page, err := h.Listings.AdminList(principalOf(c), q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}

// GET /api/admin/properties/:slug
func (h *ListingHandler) AdminDetail(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return fail(c, services.ErrNotFound)
	}
	d, err := h.Catalog.AdminDetail(principalOf(c), slug)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(d)
}
