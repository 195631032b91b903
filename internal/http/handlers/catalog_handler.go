package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "maisonazur/internal/log"
	"maisonazur/internal/services"
	"maisonazur/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

// parseQuery builds a catalog query from the URL parameters. Malformed
// numerics are a hard 400; absent filters are simply not applied.
func parseQuery(c *fiber.Ctx) (services.Query, error) {
	var q services.Query

	if dest := c.Query("destination"); dest != "" {
		d, ok := validate.Slug(dest)
		if !ok {
			return q, invalidParam(c, "destination")
		}
		q.Destination = d
	}
	if typ := c.Query("type"); typ != "" {
		t, ok := validate.PropertyType(typ)
		if !ok {
			return q, invalidParam(c, "type")
		}
		q.Type = t
	}
	if s := c.Query("minPrice"); s != "" {
		n, ok := validate.Money(s)
		if !ok {
			return q, invalidParam(c, "minPrice")
		}
		q.MinPrice = &n
	}
	if s := c.Query("maxPrice"); s != "" {
		n, ok := validate.Money(s)
		if !ok {
			return q, invalidParam(c, "maxPrice")
		}
		q.MaxPrice = &n
	}
	if s := c.Query("minRooms"); s != "" {
		n, ok := validate.Int(s)
		if !ok || n < 0 {
			return q, invalidParam(c, "minRooms")
		}
		q.MinRooms = &n
	}
	if s := c.Query("minBedrooms"); s != "" {
		n, ok := validate.Int(s)
		if !ok || n < 0 {
			return q, invalidParam(c, "minBedrooms")
		}
		q.MinBedrooms = &n
	}
	if s := c.Query("page"); s != "" {
		n, ok := validate.Int(s)
		if !ok || n < 1 {
			return q, invalidParam(c, "page")
		}
		q.Page = n
	}
	return q, nil
}

func invalidParam(c *fiber.Ctx, field string) error {
	applog.Security(c, "validation.fail", map[string]any{"field": field})
	return services.ValidationError{Reason: "invalid " + field}
}

// GET /api/properties
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	q, err := parseQuery(c)
	if err != nil {
		return fail(c, err)
	}
	page, err := h.Catalog.List(q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}

// GET /api/properties/featured
func (h *CatalogHandler) Featured(c *fiber.Ctx) error {
	pageNum := 1
	if s := c.Query("page"); s != "" {
		n, ok := validate.Int(s)
		if !ok || n < 1 {
			return fail(c, invalidParam(c, "page"))
		}
		pageNum = n
	}
	page, err := h.Catalog.Featured(pageNum)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}

// GET /api/properties/:slug
func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return fail(c, services.ErrNotFound)
	}
	d, err := h.Catalog.Detail(slug)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(d)
}

// GET /api/destinations
func (h *CatalogHandler) Destinations(c *fiber.Ctx) error {
	dests, err := h.Catalog.Destinations()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"destinations": dests})
}
