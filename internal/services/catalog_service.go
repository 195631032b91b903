package services

import (
	"database/sql"
	"errors"

	"maisonazur/internal/domain"
	"maisonazur/internal/repos"
)

const (
	DefaultPageSize  = 12
	FeaturedPageSize = 9
)

// Query carries the public catalog filters. Nil bounds are skipped.
type Query struct {
	Destination   string
	Type          string
	MinPrice      *int64
	MaxPrice      *int64
	MinRooms      *int
	MinBedrooms   *int
	Page          int
	PageSize      int
	FeaturedFirst bool
}

type CatalogService struct {
	Props  *repos.PropertyRepo
	Images *repos.ImageRepo
	Agents *repos.AgentRepo
}

func NewCatalogService(props *repos.PropertyRepo, images *repos.ImageRepo, agents *repos.AgentRepo) *CatalogService {
	return &CatalogService{Props: props, Images: images, Agents: agents}
}

// List returns one page of published listings. A page past the end is
// an empty page with correct totals, never an error.
func (s *CatalogService) List(q Query) (domain.PropertyPage, error) {
	return s.page(q, false)
}

// Featured is the home-page variant: featured listings first, 9 per page.
func (s *CatalogService) Featured(page int) (domain.PropertyPage, error) {
	return s.page(Query{Page: page, PageSize: FeaturedPageSize, FeaturedFirst: true}, false)
}

func (s *CatalogService) page(q Query, includeUnpublished bool) (domain.PropertyPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	// Destination-scoped pages lead with featured listings.
	featuredFirst := q.FeaturedFirst || q.Destination != ""

	items, total, err := s.Props.List(repos.PropertyFilter{
		Destination:        q.Destination,
		Type:               q.Type,
		MinPrice:           q.MinPrice,
		MaxPrice:           q.MaxPrice,
		MinRooms:           q.MinRooms,
		MinBedrooms:        q.MinBedrooms,
		IncludeUnpublished: includeUnpublished,
		FeaturedFirst:      featuredFirst,
		Limit:              q.PageSize,
		Offset:             (q.Page - 1) * q.PageSize,
	})
	if err != nil {
		return domain.PropertyPage{}, err
	}

	return domain.PropertyPage{
		Items:      items,
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: (total + q.PageSize - 1) / q.PageSize,
	}, nil
}

// Detail returns the public detail payload for a published listing.
// Unpublished listings read as not found on this path.
func (s *CatalogService) Detail(slug string) (domain.PropertyDetail, error) {
	p, err := s.Props.BySlug(slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PropertyDetail{}, ErrNotFound
		}
		return domain.PropertyDetail{}, err
	}
	if !p.Published {
		return domain.PropertyDetail{}, ErrNotFound
	}
	return s.assemble(p)
}

// AdminDetail bypasses the published gate for the back office.
func (s *CatalogService) AdminDetail(principal domain.Principal, slug string) (domain.PropertyDetail, error) {
	if err := requireAdmin(principal); err != nil {
		return domain.PropertyDetail{}, err
	}
	p, err := s.Props.BySlug(slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PropertyDetail{}, ErrNotFound
		}
		return domain.PropertyDetail{}, err
	}
	return s.assemble(p)
}

func (s *CatalogService) assemble(p domain.Property) (domain.PropertyDetail, error) {
	images, err := s.Images.ListByProperty(p.ID)
	if err != nil {
		return domain.PropertyDetail{}, err
	}
	d := domain.PropertyDetail{Property: p, Images: images}
	if p.AgentID != nil {
		if a, err := s.Agents.ByID(*p.AgentID); err == nil {
			d.Agent = &a
		}
	}
	return d, nil
}

func (s *CatalogService) Destinations() ([]domain.DestinationCount, error) {
	return s.Props.Destinations()
}
