package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"

	"maisonazur/internal/domain"
	"maisonazur/internal/repos"
	"maisonazur/internal/services"
)

func newGallery(db *sqlx.DB) (*services.GalleryService, *repos.ImageRepo) {
	images := repos.NewImageRepo(db)
	return services.NewGalleryService(images), images
}

func orders(t *testing.T, images *repos.ImageRepo, propertyID string) map[string]int {
	t.Helper()
	list, err := images.ListByProperty(propertyID)
	if err != nil {
		t.Fatal(err)
	}
	out := map[string]int{}
	for _, img := range list {
		out[img.ID] = img.SortOrder
	}
	return out
}

func TestAppendAssignsNextOrder(t *testing.T) {
	db := memdb(t)
	addProperty(t, db, "p1", "villa-un", "cote-dazur", 1000000, true)
	svc, images := newGallery(db)

	var ids []string
	for i := 0; i < 3; i++ {
		img, err := svc.Append(admin(), "p1", "https://cdn/photo", "facade")
		if err != nil {
			t.Fatal(err)
		}
		if img.SortOrder != i {
			t.Fatalf("append %d: want order %d, got %d", i, i, img.SortOrder)
		}
		ids = append(ids, img.ID)
	}

	got := orders(t, images, "p1")
	for i, id := range ids {
		if got[id] != i {
			t.Fatalf("stored orders wrong: %v", got)
		}
	}
}

func TestAppendToUnknownProperty(t *testing.T) {
	db := memdb(t)
	svc, _ := newGallery(db)

	if _, err := svc.Append(admin(), "ghost", "https://cdn/photo", ""); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRemoveCompactsOrders(t *testing.T) {
	db := memdb(t)
	addProperty(t, db, "p1", "villa-un", "cote-dazur", 1000000, true)
	svc, images := newGallery(db)

	var ids []string
	for i := 0; i < 3; i++ {
		img, err := svc.Append(admin(), "p1", "https://cdn/photo", "")
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, img.ID)
	}

	// Drop the middle image; survivors close the gap.
	if err := svc.Remove(admin(), "p1", ids[1]); err != nil {
		t.Fatal(err)
	}
	got := orders(t, images, "p1")
	if len(got) != 2 || got[ids[0]] != 0 || got[ids[2]] != 1 {
		t.Fatalf("orders not compacted: %v", got)
	}

	// Removing it again is a 404, not a silent no-op.
	if err := svc.Remove(admin(), "p1", ids[1]); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestReorderIsAllOrNothing(t *testing.T) {
	db := memdb(t)
	addProperty(t, db, "p1", "villa-un", "cote-dazur", 1000000, true)
	svc, images := newGallery(db)

	var ids []string
	for i := 0; i < 3; i++ {
		img, err := svc.Append(admin(), "p1", "https://cdn/photo", "")
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, img.ID)
	}
	before := orders(t, images, "p1")

	var ve services.ValidationError
	// Subset.
	if err := svc.Reorder(admin(), "p1", ids[:2]); !errors.As(err, &ve) {
		t.Fatalf("subset: want ValidationError, got %v", err)
	}
	// Duplicate hiding a missing id.
	if err := svc.Reorder(admin(), "p1", []string{ids[0], ids[0], ids[2]}); !errors.As(err, &ve) {
		t.Fatalf("duplicate: want ValidationError, got %v", err)
	}
	// Unknown id.
	if err := svc.Reorder(admin(), "p1", []string{ids[0], ids[1], "ghost"}); !errors.As(err, &ve) {
		t.Fatalf("unknown id: want ValidationError, got %v", err)
	}

	if after := orders(t, images, "p1"); len(after) != len(before) {
		t.Fatalf("failed reorder mutated the gallery: %v", after)
	} else {
		for id, o := range before {
			if after[id] != o {
				t.Fatalf("failed reorder mutated the gallery: %v vs %v", before, after)
			}
		}
	}

	// A full permutation goes through.
	want := []string{ids[2], ids[0], ids[1]}
	if err := svc.Reorder(admin(), "p1", want); err != nil {
		t.Fatal(err)
	}
	got := orders(t, images, "p1")
	for i, id := range want {
		if got[id] != i {
			t.Fatalf("permutation not applied: %v", got)
		}
	}
}

func TestGalleryWritesRequireAdmin(t *testing.T) {
	db := memdb(t)
	addProperty(t, db, "p1", "villa-un", "cote-dazur", 1000000, true)
	svc, _ := newGallery(db)

	anon := domain.Anonymous()
	user := domain.Principal{Role: domain.RoleUser, User: &domain.User{ID: "u-claire", Role: domain.RoleUser}}

	if _, err := svc.Append(anon, "p1", "https://cdn/photo", ""); !errors.Is(err, services.ErrUnauthorized) {
		t.Fatalf("anonymous append: want ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Append(user, "p1", "https://cdn/photo", ""); !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("user append: want ErrForbidden, got %v", err)
	}
	if err := svc.Remove(user, "p1", "whatever"); !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("user remove: want ErrForbidden, got %v", err)
	}
	if err := svc.Reorder(anon, "p1", nil); !errors.Is(err, services.ErrUnauthorized) {
		t.Fatalf("anonymous reorder: want ErrUnauthorized, got %v", err)
	}
}
