package services

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"maisonazur/internal/domain"
	"maisonazur/internal/repos"
	"maisonazur/internal/validate"
)

// ListingService is the admin write path for properties.
type ListingService struct {
	Props  *repos.PropertyRepo
	Agents *repos.AgentRepo
}

func NewListingService(props *repos.PropertyRepo, agents *repos.AgentRepo) *ListingService {
	return &ListingService{Props: props, Agents: agents}
}

// PropertyInput is the create payload. Slug is chosen once here and
// immutable afterwards.
type PropertyInput struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Destination string   `json:"destination"`
	City        string   `json:"city"`
	Address     string   `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Price       int64    `json:"price"`
	Surface     float64  `json:"surface"`
	Rooms       int      `json:"rooms"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	DPE         string   `json:"dpe"`
	Badge       string   `json:"badge"`
	Amenities   []string `json:"amenities"`
	Published   bool     `json:"published"`
	Featured    bool     `json:"featured"`
	AgentID     string   `json:"agentId"`
}

// PropertyPatch is the update payload; nil fields keep their stored
// value. A slug in the payload is ignored: the stored slug is
// authoritative.
type PropertyPatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Type        *string   `json:"type"`
	Destination *string   `json:"destination"`
	City        *string   `json:"city"`
	Address     *string   `json:"address"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	Price       *int64    `json:"price"`
	Surface     *float64  `json:"surface"`
	Rooms       *int      `json:"rooms"`
	Bedrooms    *int      `json:"bedrooms"`
	Bathrooms   *int      `json:"bathrooms"`
	DPE         *string   `json:"dpe"`
	Badge       *string   `json:"badge"`
	Amenities   *[]string `json:"amenities"`
	Published   *bool     `json:"published"`
	Featured    *bool     `json:"featured"`
	AgentID     *string   `json:"agentId"`
}

func (s *ListingService) Create(principal domain.Principal, in PropertyInput) (domain.Property, error) {
	if err := requireAdmin(principal); err != nil {
		return domain.Property{}, err
	}

	slug, ok := validate.Slug(in.Slug)
	if !ok {
		return domain.Property{}, invalidf("slug must be lowercase letters, digits and hyphens")
	}

	id := uuid.NewString()
	p := domain.Property{
		ID:          id,
		Slug:        slug,
		Reference:   referenceFor(id),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Type:        strings.TrimSpace(in.Type),
		Destination: strings.TrimSpace(in.Destination),
		City:        strings.TrimSpace(in.City),
		Address:     strings.TrimSpace(in.Address),
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Price:       in.Price,
		Surface:     in.Surface,
		Rooms:       in.Rooms,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		DPE:         strings.TrimSpace(in.DPE),
		Badge:       strings.TrimSpace(in.Badge),
		Amenities:   in.Amenities,
		Published:   in.Published,
		Featured:    in.Featured,
	}
	if in.AgentID != "" {
		agentID := in.AgentID
		p.AgentID = &agentID
	}
	if err := s.checkFields(&p); err != nil {
		return domain.Property{}, err
	}

	if _, err := s.Props.BySlug(slug); err == nil {
		return domain.Property{}, invalidf("slug %q is already taken", slug)
	}

	if err := s.Props.Create(&p); err != nil {
		return domain.Property{}, err
	}
	return s.Props.ByID(p.ID)
}

func (s *ListingService) Update(principal domain.Principal, slug string, patch PropertyPatch) (domain.Property, error) {
	if err := requireAdmin(principal); err != nil {
		return domain.Property{}, err
	}

	p, err := s.Props.BySlug(slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Property{}, ErrNotFound
		}
		return domain.Property{}, err
	}

	apply(&p, patch)
	if err := s.checkFields(&p); err != nil {
		return domain.Property{}, err
	}

	if err := s.Props.Update(&p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Property{}, ErrNotFound
		}
		return domain.Property{}, err
	}
	return s.Props.ByID(p.ID)
}

func (s *ListingService) Delete(principal domain.Principal, slug string) error {
	if err := requireAdmin(principal); err != nil {
		return err
	}
	if err := s.Props.DeleteBySlug(slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// AdminList is the back-office listing: published gate bypassed.
func (s *ListingService) AdminList(principal domain.Principal, q Query) (domain.PropertyPage, error) {
	if err := requireAdmin(principal); err != nil {
		return domain.PropertyPage{}, err
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	items, total, err := s.Props.List(repos.PropertyFilter{
		Destination:        q.Destination,
		Type:               q.Type,
		MinPrice:           q.MinPrice,
		MaxPrice:           q.MaxPrice,
		MinRooms:           q.MinRooms,
		MinBedrooms:        q.MinBedrooms,
		IncludeUnpublished: true,
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

func (s *ListingService) checkFields(p *domain.Property) error {
	if p.Title == "" {
		return invalidf("title is required")
	}
	if _, ok := validate.PropertyType(p.Type); !ok {
		return invalidf("unknown property type %q", p.Type)
	}
	if _, ok := validate.Slug(p.Destination); !ok {
		return invalidf("destination is required")
	}
	if p.Price <= 0 {
		return invalidf("price must be positive")
	}
	if p.Surface <= 0 {
		return invalidf("surface must be positive")
	}
	if p.Rooms < 0 || p.Bedrooms < 0 || p.Bathrooms < 0 {
		return invalidf("room counts cannot be negative")
	}
	if p.DPE != "" {
		if _, ok := validate.DPE(p.DPE); !ok {
			return invalidf("dpe must be a letter A-G")
		}
	}
	if p.AgentID != nil {
		if _, err := s.Agents.ByID(*p.AgentID); err != nil {
			return invalidf("unknown agent %q", *p.AgentID)
		}
	}
	return nil
}

func apply(p *domain.Property, patch PropertyPatch) {
	if patch.Title != nil {
		p.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Type != nil {
		p.Type = strings.TrimSpace(*patch.Type)
	}
	if patch.Destination != nil {
		p.Destination = strings.TrimSpace(*patch.Destination)
	}
	if patch.City != nil {
		p.City = strings.TrimSpace(*patch.City)
	}
	if patch.Address != nil {
		p.Address = strings.TrimSpace(*patch.Address)
	}
	if patch.Latitude != nil {
		p.Latitude = patch.Latitude
	}
	if patch.Longitude != nil {
		p.Longitude = patch.Longitude
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Surface != nil {
		p.Surface = *patch.Surface
	}
	if patch.Rooms != nil {
		p.Rooms = *patch.Rooms
	}
	if patch.Bedrooms != nil {
		p.Bedrooms = *patch.Bedrooms
	}
	if patch.Bathrooms != nil {
		p.Bathrooms = *patch.Bathrooms
	}
	if patch.DPE != nil {
		p.DPE = strings.TrimSpace(*patch.DPE)
	}
	if patch.Badge != nil {
		p.Badge = strings.TrimSpace(*patch.Badge)
	}
	if patch.Amenities != nil {
		p.Amenities = *patch.Amenities
	}
	if patch.Published != nil {
		p.Published = *patch.Published
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
	if patch.AgentID != nil {
		if *patch.AgentID == "" {
			p.AgentID = nil
		} else {
			p.AgentID = patch.AgentID
		}
	}
}

// referenceFor derives the public display code from the generated id.
func referenceFor(id string) string {
	short := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(short) > 8 {
		short = short[:8]
	}
	return "MA-" + short
}
