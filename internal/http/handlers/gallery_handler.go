package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "maisonazur/internal/log"
	"maisonazur/internal/services"
	"maisonazur/internal/validate"
)

// GalleryHandler is the admin surface for a property's image set.
type GalleryHandler struct {
	Gallery *services.GalleryService
}

// POST /api/images/:propertyId
func (h *GalleryHandler) Append(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("propertyId"))
	if !ok {
		return fail(c, services.ErrNotFound)
	}
	var req struct {
		URL string `json:"url"`
		Alt string `json:"alt"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	img, err := h.Gallery.Append(principalOf(c), pid, req.URL, req.Alt)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "image.append", map[string]any{"property": pid, "image": img.ID, "order": img.SortOrder})
	return c.Status(fiber.StatusCreated).JSON(img)
}

// DELETE /api/images/:propertyId?imageId=
func (h *GalleryHandler) Remove(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("propertyId"))
	if !ok {
		return fail(c, services.ErrNotFound)
	}
	imageID := c.Query("imageId")
	if imageID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing imageId"})
	}
	if _, ok := validate.ID(imageID); !ok {
		return fail(c, services.ErrNotFound)
	}
	if err := h.Gallery.Remove(principalOf(c), pid, imageID); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "image.remove", map[string]any{"property": pid, "image": imageID})
	return c.JSON(fiber.Map{"deleted": imageID})
}

// PATCH /api/images/:propertyId
func (h *GalleryHandler) Reorder(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("propertyId"))
	if !ok {
		return fail(c, services.ErrNotFound)
	}
	var req struct {
		OrderedIDs []string `json:"orderedIds"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if err := h.Gallery.Reorder(principalOf(c), pid, req.OrderedIDs); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "image.reorder", map[string]any{"property": pid, "count": len(req.OrderedIDs)})
	return c.JSON(fiber.Map{"ok": true})
}
