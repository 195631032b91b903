package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"maisonazur/internal/domain"
)

// ErrOrderMismatch reports a reorder whose id list is not an exact
// permutation of the stored image set.
var ErrOrderMismatch = errors.New("image ids do not match the stored set")

type ImageRepo struct{ db *sqlx.DB }

func NewImageRepo(db *sqlx.DB) *ImageRepo { return &ImageRepo{db: db} }

const imageCols = `id, property_id, url, alt, sort_order, created_at`

func (r *ImageRepo) ListByProperty(propertyID string) ([]domain.PropertyImage, error) {
	out := []domain.PropertyImage{}
	err := r.db.Select(&out, `
		SELECT `+imageCols+` FROM property_images
		WHERE property_id = ?
		ORDER BY sort_order
	`, propertyID)
	return out, err
}

// Append inserts img at the end of the gallery: sort_order becomes
// max(existing)+1, or 0 for the first image.
func (r *ImageRepo) Append(img *domain.PropertyImage) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.Get(&exists, `SELECT COUNT(*) FROM properties WHERE id = ?`, img.PropertyID); err != nil {
		return err
	}
	if exists == 0 {
		return sql.ErrNoRows
	}

	if err := tx.Get(&img.SortOrder, `
		SELECT COALESCE(MAX(sort_order)+1, 0) FROM property_images WHERE property_id = ?
	`, img.PropertyID); err != nil {
		return err
	}

	if _, err := tx.Exec(`
		INSERT INTO property_images(id, property_id, url, alt, sort_order)
		VALUES (?, ?, ?, ?, ?)
	`, img.ID, img.PropertyID, img.URL, img.Alt, img.SortOrder); err != nil {
		return err
	}
	return tx.Commit()
}

// Remove deletes one image and renumbers the survivors so the orders
// stay a gap-free 0..N-1 sequence.
func (r *ImageRepo) Remove(propertyID, imageID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
		DELETE FROM property_images WHERE id = ? AND property_id = ?
	`, imageID, propertyID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	var remaining []string
	if err := tx.Select(&remaining, `
		SELECT id FROM property_images WHERE property_id = ? ORDER BY sort_order
	`, propertyID); err != nil {
		return err
	}
	for i, id := range remaining {
		if _, err := tx.Exec(`
			UPDATE property_images SET sort_order = ? WHERE id = ?
		`, i, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Reorder assigns sort_order = index for the supplied id sequence. The
// list must be an exact permutation of the property's current image ids;
// otherwise nothing is persisted and ErrOrderMismatch is returned.
func (r *ImageRepo) Reorder(propertyID string, orderedIDs []string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.Get(&exists, `SELECT COUNT(*) FROM properties WHERE id = ?`, propertyID); err != nil {
		return err
	}
	if exists == 0 {
		return sql.ErrNoRows
	}

	var current []string
	if err := tx.Select(&current, `
		SELECT id FROM property_images WHERE property_id = ?
	`, propertyID); err != nil {
		return err
	}
	if len(current) != len(orderedIDs) {
		return ErrOrderMismatch
	}
	set := make(map[string]bool, len(current))
	for _, id := range current {
		set[id] = true
	}
	for _, id := range orderedIDs {
		if !set[id] {
			return ErrOrderMismatch // unknown or duplicate id
		}
		delete(set, id)
	}

	for i, id := range orderedIDs {
		if _, err := tx.Exec(`
			UPDATE property_images SET sort_order = ? WHERE id = ? AND property_id = ?
		`, i, id, propertyID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
