package services_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"

	"maisonazur/internal/domain"
	"maisonazur/internal/repos"
	"maisonazur/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func admin() domain.Principal {
	return domain.Principal{Role: domain.RoleAdmin, User: &domain.User{ID: "u-admin", Role: domain.RoleAdmin}}
}

func newCatalog(db *sqlx.DB) *services.CatalogService {
	return services.NewCatalogService(repos.NewPropertyRepo(db), repos.NewImageRepo(db), repos.NewAgentRepo(db))
}

// addProperty inserts a published listing directly through the repo.
func addProperty(t *testing.T, db *sqlx.DB, id, slug, dest string, price int64, published bool) {
	t.Helper()
	r := repos.NewPropertyRepo(db)
	err := r.Create(&domain.Property{
		ID:          id,
		Slug:        slug,
		Reference:   "MA-" + id,
		Title:       "Bien " + slug,
		Type:        domain.TypeVilla,
		Destination: dest,
		Price:       price,
		Surface:     180,
		Published:   published,
	})
	if err != nil {
		t.Fatalf("create %s: %v", slug, err)
	}
}

func TestListPartitionsWithoutOverlap(t *testing.T) {
	db := memdb(t)
	for i := 0; i < 10; i++ {
		addProperty(t, db, fmt.Sprintf("ca-%02d", i), fmt.Sprintf("villa-azur-%02d", i), "cote-dazur", 1000000+int64(i), true)
	}
	for i := 0; i < 5; i++ {
		addProperty(t, db, fmt.Sprintf("pa-%02d", i), fmt.Sprintf("appart-paris-%02d", i), "paris", 900000, true)
	}
	svc := newCatalog(db)

	page1, err := svc.List(services.Query{Destination: "cote-dazur", Page: 1, PageSize: 9})
	if err != nil {
		t.Fatal(err)
	}
	if page1.Total != 10 || page1.TotalPages != 2 || len(page1.Items) != 9 {
		t.Fatalf("page1: total=%d pages=%d items=%d", page1.Total, page1.TotalPages, len(page1.Items))
	}

	page2, err := svc.List(services.Query{Destination: "cote-dazur", Page: 2, PageSize: 9})
	if err != nil {
		t.Fatal(err)
	}
	if len(page2.Items) != 1 {
		t.Fatalf("page2: want 1 item, got %d", len(page2.Items))
	}

	seen := map[string]bool{}
	for _, p := range append(page1.Items, page2.Items...) {
		if p.Destination != "cote-dazur" {
			t.Fatalf("filter leaked %q into the page", p.Destination)
		}
		if seen[p.ID] {
			t.Fatalf("id %s appears on both pages", p.ID)
		}
		seen[p.ID] = true
	}
	if len(seen) != 10 {
		t.Fatalf("pages must cover all matches, got %d of 10", len(seen))
	}
}

func TestListHidesUnpublished(t *testing.T) {
	db := memdb(t)
	addProperty(t, db, "p1", "villa-visible", "cote-dazur", 1000000, true)
	addProperty(t, db, "p2", "villa-brouillon", "cote-dazur", 1000000, false)
	svc := newCatalog(db)

	page, err := svc.List(services.Query{})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || len(page.Items) != 1 || page.Items[0].Slug != "villa-visible" {
		t.Fatalf("draft leaked into public list: %+v", page)
	}

	if _, err := svc.Detail("villa-brouillon"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("draft detail must read as not found, got %v", err)
	}

	// The back office sees it.
	if _, err := svc.AdminDetail(admin(), "villa-brouillon"); err != nil {
		t.Fatalf("admin detail: %v", err)
	}
}

func TestContradictoryPriceBoundsYieldEmptyPage(t *testing.T) {
	db := memdb(t)
	addProperty(t, db, "p1", "villa-un", "cote-dazur", 2000000, true)
	svc := newCatalog(db)

	lo, hi := int64(5000000), int64(1000000)
	page, err := svc.List(services.Query{MinPrice: &lo, MaxPrice: &hi})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 0 || len(page.Items) != 0 || page.TotalPages != 0 {
		t.Fatalf("want empty page, got %+v", page)
	}
}

func TestPagePastEndIsEmptyNotError(t *testing.T) {
	db := memdb(t)
	addProperty(t, db, "p1", "villa-un", "cote-dazur", 2000000, true)
	svc := newCatalog(db)

	page, err := svc.List(services.Query{Page: 7})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 0 || page.Total != 1 || page.Page != 7 {
		t.Fatalf("want empty page 7 with total 1, got %+v", page)
	}
}

func TestFeaturedLeadsThePage(t *testing.T) {
	db := memdb(t)
	r := repos.NewPropertyRepo(db)
	addProperty(t, db, "p1", "villa-ordinaire", "cote-dazur", 1000000, true)
	err := r.Create(&domain.Property{
		ID: "p2", Slug: "villa-phare", Reference: "MA-p2", Title: "Villa Phare",
		Type: domain.TypeVilla, Destination: "cote-dazur",
		Price: 4000000, Surface: 300, Published: true, Featured: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	svc := newCatalog(db)

	page, err := svc.Featured(1)
	if err != nil {
		t.Fatal(err)
	}
	if page.PageSize != services.FeaturedPageSize {
		t.Fatalf("featured page size: %d", page.PageSize)
	}
	if len(page.Items) == 0 || page.Items[0].Slug != "villa-phare" {
		t.Fatalf("featured listing must come first: %+v", page.Items)
	}
}

func TestDestinationsCountPublishedOnly(t *testing.T) {
	db := memdb(t)
	addProperty(t, db, "p1", "villa-un", "cote-dazur", 1000000, true)
	addProperty(t, db, "p2", "villa-deux", "cote-dazur", 1000000, true)
	addProperty(t, db, "p3", "chalet-un", "alpes", 1500000, true)
	addProperty(t, db, "p4", "chalet-cache", "alpes", 1500000, false)
	svc := newCatalog(db)

	dests, err := svc.Destinations()
	if err != nil {
		t.Fatal(err)
	}
	if len(dests) != 2 {
		t.Fatalf("want 2 destinations, got %v", dests)
	}
	if dests[0].Destination != "cote-dazur" || dests[0].Count != 2 {
		t.Fatalf("busiest first: %+v", dests)
	}
	if dests[1].Count != 1 {
		t.Fatalf("draft counted: %+v", dests[1])
	}
}
