package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"maisonazur/internal/config"
	"maisonazur/internal/http/handlers"
	applog "maisonazur/internal/log"
	"maisonazur/internal/repos"
	"maisonazur/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(handlers.WithPrincipal(authSvc))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	deps := handlers.NewDeps(db)

	// ---------- Public catalog ----------
	app.Get("/api/properties/featured", deps.CatalogHandler.Featured)
	app.Get("/api/properties", deps.CatalogHandler.List)
	app.Get("/api/properties/:slug", deps.CatalogHandler.Detail)
	app.Get("/api/destinations", deps.CatalogHandler.Destinations)

	// ---------- Public site content ----------
	app.Get("/api/agents", deps.SiteHandler.ListAgents)
	app.Get("/api/testimonials", deps.SiteHandler.ListTestimonials)
	app.Get("/api/settings", deps.SiteHandler.GetSettings)

	// Contact form (throttled harder than the read endpoints)
	app.Post("/api/contact", limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.contact.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}), deps.LeadHandler.Submit)

	// ---------- Auth (login throttled) ----------
	app.Post("/api/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	}), authH.Login)
	app.Post("/api/logout", authH.Logout)
	app.Get("/api/me", authH.Me)

	// ---------- Property writes (admin, gated in the services too) ----------
	app.Post("/api/properties", deps.ListingHandler.Create)
	app.Put("/api/properties/:slug", deps.ListingHandler.Update)
	app.Delete("/api/properties/:slug", deps.ListingHandler.Delete)

	app.Post("/api/images/:propertyId", deps.GalleryHandler.Append)
	app.Delete("/api/images/:propertyId", deps.GalleryHandler.Remove)
	app.Patch("/api/images/:propertyId", deps.GalleryHandler.Reorder)

	// ---------- Back office ----------
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

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
