package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"maisonazur/internal/domain"
	"maisonazur/internal/http/handlers"
	"maisonazur/internal/repos"
	"maisonazur/internal/services"
)

// newTestApp wires the API the way main does, minus the rate limiters.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(handlers.WithPrincipal(authSvc))

	deps := handlers.NewDeps(db)

	app.Get("/api/properties/featured", deps.CatalogHandler.Featured)
	app.Get("/api/properties", deps.CatalogHandler.List)
	app.Get("/api/properties/:slug", deps.CatalogHandler.Detail)
	app.Get("/api/destinations", deps.CatalogHandler.Destinations)
	app.Get("/api/agents", deps.SiteHandler.ListAgents)
	app.Get("/api/testimonials", deps.SiteHandler.ListTestimonials)
	app.Get("/api/settings", deps.SiteHandler.GetSettings)
	app.Post("/api/contact", deps.LeadHandler.Submit)

	app.Post("/api/login", authH.Login)
	app.Post("/api/logout", authH.Logout)
	app.Get("/api/me", authH.Me)

	app.Post("/api/properties", deps.ListingHandler.Create)
	app.Put("/api/properties/:slug", deps.ListingHandler.Update)
	app.Delete("/api/properties/:slug", deps.ListingHandler.Delete)
	app.Post("/api/images/:propertyId", deps.GalleryHandler.Append)
	app.Delete("/api/images/:propertyId", deps.GalleryHandler.Remove)
	app.Patch("/api/images/:propertyId", deps.GalleryHandler.Reorder)

	admin := app.Group("/api/admin", handlers.RequireAdmin())
	admin.Get("/properties", deps.ListingHandler.AdminList)
	admin.Get("/properties/:slug", deps.ListingHandler.AdminDetail)
	admin.Get("/leads", deps.AdminHandler.LeadInbox)
	admin.Post("/leads/:id/read", deps.AdminHandler.MarkLeadRead)
	admin.Get("/testimonials", deps.AdminHandler.ListTestimonials)
	admin.Post("/testimonials", deps.AdminHandler.CreateTestimonial)
	admin.Put("/testimonials/:id", deps.AdminHandler.UpdateTestimonial)
	admin.Delete("/testimonials/:id", deps.AdminHandler.DeleteTestimonial)
	admin.Put("/settings", deps.AdminHandler.SaveSettings)

	return app, db
}

// bindAdmin attaches a ready session for the seeded admin account.
func bindAdmin(t *testing.T, db *sqlx.DB) string {
	t.Helper()
	if err := repos.NewUserRepo(db).BindSession("sid-admin", "u-admin"); err != nil {
		t.Fatal(err)
	}
	return "sid-admin"
}

func bindUser(t *testing.T, db *sqlx.DB) string {
	t.Helper()
	if err := repos.NewUserRepo(db).BindSession("sid-user", "u-claire"); err != nil {
		t.Fatal(err)
	}
	return "sid-user"
}

func jsonReq(method, path, body, sid string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	return req
}

func seedListing(t *testing.T, db *sqlx.DB, id, slug string, published bool) {
	t.Helper()
	err := repos.NewPropertyRepo(db).Create(&domain.Property{
		ID:          id,
		Slug:        slug,
		Reference:   "MA-" + id,
		Title:       "Bien " + slug,
		Type:        domain.TypeVilla,
		Destination: "cote-dazur",
		Price:       2000000,
		Surface:     200,
		Published:   published,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", slug, err)
	}
}
