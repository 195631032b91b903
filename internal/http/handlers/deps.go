package handlers

import (
	"github.com/jmoiron/sqlx"

	"maisonazur/internal/repos"
	"maisonazur/internal/services"
)

type Deps struct {
	CatalogHandler *CatalogHandler
	ListingHandler *ListingHandler
	GalleryHandler *GalleryHandler
	LeadHandler    *LeadHandler
	SiteHandler    *SiteHandler
	AdminHandler   *AdminHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	propRepo := repos.NewPropertyRepo(db)
	imageRepo := repos.NewImageRepo(db)
	agentRepo := repos.NewAgentRepo(db)
	leadRepo := repos.NewLeadRepo(db)
	testiRepo := repos.NewTestimonialRepo(db)
	settingsRepo := repos.NewSettingsRepo(db)

	catalogSvc := services.NewCatalogService(propRepo, imageRepo, agentRepo)
	listingSvc := services.NewListingService(propRepo, agentRepo)
	gallerySvc := services.NewGalleryService(imageRepo)
	leadSvc := services.NewLeadService(leadRepo, propRepo)

	return &Deps{
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc},
		ListingHandler: &ListingHandler{Listings: listingSvc, Catalog: catalogSvc},
		GalleryHandler: &GalleryHandler{Gallery: gallerySvc},
		LeadHandler:    &LeadHandler{Leads: leadSvc},
		SiteHandler:    &SiteHandler{Agents: agentRepo, Testimonials: testiRepo, Settings: settingsRepo},
		AdminHandler:   &AdminHandler{Leads: leadRepo, Testimonials: testiRepo, Settings: settingsRepo},
	}
}
