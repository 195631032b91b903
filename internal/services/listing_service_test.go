package services_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"

	"maisonazur/internal/domain"
	"maisonazur/internal/repos"
	"maisonazur/internal/services"
)

func newListings(db *sqlx.DB) *services.ListingService {
	return services.NewListingService(repos.NewPropertyRepo(db), repos.NewAgentRepo(db))
}

func validInput(slug string) services.PropertyInput {
	return services.PropertyInput{
		Slug:        slug,
		Title:       "Villa Les Oliviers",
		Type:        domain.TypeVilla,
		Destination: "cote-dazur",
		City:        "Saint-Tropez",
		Price:       3200000,
		Surface:     280,
		Rooms:       8,
		Bedrooms:    5,
		Bathrooms:   4,
		DPE:         "B",
		Amenities:   []string{"Piscine", "Vue mer"},
		Published:   true,
		AgentID:     "ag-sophie",
	}
}

func TestCreateListing(t *testing.T) {
	db := memdb(t)
	svc := newListings(db)

	p, err := svc.Create(admin(), validInput("villa-les-oliviers"))
	if err != nil {
		t.Fatal(err)
	}
	if p.ID == "" || p.Slug != "villa-les-oliviers" {
		t.Fatalf("bad created listing: %+v", p)
	}
	if !strings.HasPrefix(p.Reference, "MA-") || len(p.Reference) != 11 {
		t.Fatalf("reference format: %q", p.Reference)
	}
	if p.AgentID == nil || *p.AgentID != "ag-sophie" {
		t.Fatalf("agent not bound: %+v", p.AgentID)
	}

	// Same slug again is rejected.
	var ve services.ValidationError
	if _, err := svc.Create(admin(), validInput("villa-les-oliviers")); !errors.As(err, &ve) {
		t.Fatalf("duplicate slug: want ValidationError, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	db := memdb(t)
	svc := newListings(db)

	cases := map[string]func(*services.PropertyInput){
		"bad slug":      func(in *services.PropertyInput) { in.Slug = "Villa Oliviers!" },
		"empty title":   func(in *services.PropertyInput) { in.Title = "  " },
		"unknown type":  func(in *services.PropertyInput) { in.Type = "CASTLE" },
		"zero price":    func(in *services.PropertyInput) { in.Price = 0 },
		"zero surface":  func(in *services.PropertyInput) { in.Surface = 0 },
		"bad dpe":       func(in *services.PropertyInput) { in.DPE = "Z" },
		"unknown agent": func(in *services.PropertyInput) { in.AgentID = "ag-ghost" },
	}
	for name, mutate := range cases {
		in := validInput("villa-test")
		mutate(&in)
		var ve services.ValidationError
		if _, err := svc.Create(admin(), in); !errors.As(err, &ve) {
			t.Fatalf("%s: want ValidationError, got %v", name, err)
		}
	}
}

func TestUpdateIsPartialAndSlugStays(t *testing.T) {
	db := memdb(t)
	svc := newListings(db)

	created, err := svc.Create(admin(), validInput("villa-les-oliviers"))
	if err != nil {
		t.Fatal(err)
	}

	price := int64(2950000)
	badge := "Exclusivité"
	p, err := svc.Update(admin(), "villa-les-oliviers", services.PropertyPatch{
		Price: &price,
		Badge: &badge,
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.Price != price || p.Badge != badge {
		t.Fatalf("patch not applied: %+v", p)
	}
	if p.Slug != created.Slug || p.Reference != created.Reference || p.Title != created.Title {
		t.Fatalf("untouched fields changed: %+v", p)
	}

	// Patched values still go through the field checks.
	bad := int64(-5)
	var ve services.ValidationError
	if _, err := svc.Update(admin(), "villa-les-oliviers", services.PropertyPatch{Price: &bad}); !errors.As(err, &ve) {
		t.Fatalf("negative price: want ValidationError, got %v", err)
	}

	// Clearing the agent.
	none := ""
	p, err = svc.Update(admin(), "villa-les-oliviers", services.PropertyPatch{AgentID: &none})
	if err != nil {
		t.Fatal(err)
	}
	if p.AgentID != nil {
		t.Fatalf("agent should be cleared, got %v", *p.AgentID)
	}
}

func TestUpdateUnknownSlug(t *testing.T) {
	db := memdb(t)
	svc := newListings(db)

	title := "x"
	if _, err := svc.Update(admin(), "villa-fantome", services.PropertyPatch{Title: &title}); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDeleteListing(t *testing.T) {
	db := memdb(t)
	svc := newListings(db)
	catalog := newCatalog(db)

	if _, err := svc.Create(admin(), validInput("villa-les-oliviers")); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(admin(), "villa-les-oliviers"); err != nil {
		t.Fatal(err)
	}
	if _, err := catalog.Detail("villa-les-oliviers"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("deleted listing still readable: %v", err)
	}
	if err := svc.Delete(admin(), "villa-les-oliviers"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("second delete: want ErrNotFound, got %v", err)
	}
}

func TestListingWritesRequireAdmin(t *testing.T) {
	db := memdb(t)
	svc := newListings(db)

	anon := domain.Anonymous()
	user := domain.Principal{Role: domain.RoleUser, User: &domain.User{ID: "u-claire", Role: domain.RoleUser}}

	if _, err := svc.Create(anon, validInput("villa-x")); !errors.Is(err, services.ErrUnauthorized) {
		t.Fatalf("anonymous create: want ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Create(user, validInput("villa-x")); !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("user create: want ErrForbidden, got %v", err)
	}
	if err := svc.Delete(user, "villa-x"); !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("user delete: want ErrForbidden, got %v", err)
	}
	if _, err := svc.AdminList(anon, services.Query{}); !errors.Is(err, services.ErrUnauthorized) {
		t.Fatalf("anonymous admin list: want ErrUnauthorized, got %v", err)
	}
}
