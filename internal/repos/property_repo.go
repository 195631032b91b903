package repos

import (
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/jmoiron/sqlx"

	"maisonazur/internal/domain"
)

type PropertyRepo struct{ db *sqlx.DB }

func NewPropertyRepo(db *sqlx.DB) *PropertyRepo { return &PropertyRepo{db: db} }

const propertyCols = `
  id, slug, reference, title, description, type, destination, city, address,
  latitude, longitude, price, surface, rooms, bedrooms, bathrooms, dpe, badge,
  amenities_json, published, featured, agent_id,
  created_at, COALESCE(updated_at,'') AS updated_at`

// PropertyFilter holds optional catalog filters. Nil bounds are not
// applied; each bound is applied independently of the others.
type PropertyFilter struct {
	Destination        string
	Type               string
	MinPrice           *int64
	MaxPrice           *int64
	MinRooms           *int
	MinBedrooms        *int
	IncludeUnpublished bool
	FeaturedFirst      bool
	Limit              int
	Offset             int
}

// List returns one page of matching properties plus the total match
// count before paging.
func (r *PropertyRepo) List(f PropertyFilter) ([]domain.Property, int, error) {
	where := `1=1`
	args := []any{}
	if !f.IncludeUnpublished {
		where += ` AND published = 1`
	}
	if f.Destination != "" {
		where += ` AND destination = ?`
		args = append(args, f.Destination)
	}
	if f.Type != "" {
		where += ` AND type = ?`
		args = append(args, f.Type)
	}
	if f.MinPrice != nil {
		where += ` AND price >= ?`
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		where += ` AND price <= ?`
		args = append(args, *f.MaxPrice)
	}
	if f.MinRooms != nil {
		where += ` AND rooms >= ?`
		args = append(args, *f.MinRooms)
	}
	if f.MinBedrooms != nil {
		where += ` AND bedrooms >= ?`
		args = append(args, *f.MinBedrooms)
	}

	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM properties WHERE `+where, args...); err != nil {
		return nil, 0, err
	}

	// id as final key keeps the page partition stable when rows share a
	// created_at second.
	order := `created_at DESC, id`
	if f.FeaturedFirst {
		order = `featured DESC, ` + order
	}

	out := []domain.Property{}
	query := `SELECT ` + propertyCols + ` FROM properties WHERE ` + where +
		` ORDER BY ` + order + ` LIMIT ? OFFSET ?`
	args = append(args, f.Limit, f.Offset)
	if err := r.db.Select(&out, query, args...); err != nil {
		return nil, 0, err
	}
	for i := range out {
		decodeAmenities(&out[i])
	}
	return out, total, nil
}

func (r *PropertyRepo) BySlug(slug string) (domain.Property, error) {
	var p domain.Property
	err := r.db.Get(&p, `SELECT `+propertyCols+` FROM properties WHERE slug = ?`, slug)
	if err != nil {
		return domain.Property{}, err
	}
	decodeAmenities(&p)
	return p, nil
}

func (r *PropertyRepo) ByID(id string) (domain.Property, error) {
	var p domain.Property
	err := r.db.Get(&p, `SELECT `+propertyCols+` FROM properties WHERE id = ?`, id)
	if err != nil {
		return domain.Property{}, err
	}
	decodeAmenities(&p)
	return p, nil
}

func (r *PropertyRepo) Create(p *domain.Property) error {
	p.AmenitiesJSON = encodeAmenities(p.Amenities)
	_, err := r.db.NamedExec(`
		INSERT INTO properties(
		  id, slug, reference, title, description, type, destination, city, address,
		  latitude, longitude, price, surface, rooms, bedrooms, bathrooms, dpe, badge,
		  amenities_json, published, featured, agent_id
		) VALUES (
		  :id, :slug, :reference, :title, :description, :type, :destination, :city, :address,
		  :latitude, :longitude, :price, :surface, :rooms, :bedrooms, :bathrooms, :dpe, :badge,
		  :amenities_json, :published, :featured, :agent_id
		)`, p)
	return err
}

// Update rewrites every mutable column. id, slug, reference and
// created_at stay as stored.
func (r *PropertyRepo) Update(p *domain.Property) error {
	p.AmenitiesJSON = encodeAmenities(p.Amenities)
	res, err := r.db.NamedExec(`
		UPDATE properties SET
		  title = :title, description = :description, type = :type,
		  destination = :destination, city = :city, address = :address,
		  latitude = :latitude, longitude = :longitude,
		  price = :price, surface = :surface,
		  rooms = :rooms, bedrooms = :bedrooms, bathrooms = :bathrooms,
		  dpe = :dpe, badge = :badge, amenities_json = :amenities_json,
		  published = :published, featured = :featured, agent_id = :agent_id,
		  updated_at = CURRENT_TIMESTAMP
		WHERE id = :id`, p)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteBySlug removes a property and its images in one transaction.
func (r *PropertyRepo) DeleteBySlug(slug string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var id string
	if err := tx.Get(&id, `SELECT id FROM properties WHERE slug = ?`, slug); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM property_images WHERE property_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM properties WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// Destinations lists distinct destinations of published listings with
// their counts, busiest first.
func (r *PropertyRepo) Destinations() ([]domain.DestinationCount, error) {
	out := []domain.DestinationCount{}
	err := r.db.Select(&out, `
		SELECT destination, COUNT(*) AS n
		FROM properties
		WHERE published = 1
		GROUP BY destination
		ORDER BY n DESC, destination
	`)
	return out, err
}

// encodeAmenities serializes the ordered amenity list, dropping
// duplicates while keeping first occurrence.
func encodeAmenities(in []string) string {
	seen := map[string]bool{}
	out := []string{}
	for _, a := range in {
		a = strings.TrimSpace(a)
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	b, _ := json.Marshal(out)
	return string(b)
}

func decodeAmenities(p *domain.Property) {
	p.Amenities = []string{}
	if p.AmenitiesJSON != "" {
		_ = json.Unmarshal([]byte(p.AmenitiesJSON), &p.Amenities)
	}
	p.AmenitiesJSON = ""
}
