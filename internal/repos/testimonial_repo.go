package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"maisonazur/internal/domain"
)

type TestimonialRepo struct{ db *sqlx.DB }

func NewTestimonialRepo(db *sqlx.DB) *TestimonialRepo { return &TestimonialRepo{db: db} }

const testimonialCols = `id, author, location, quote, published, created_at, COALESCE(updated_at,'') AS updated_at`

func (r *TestimonialRepo) ListPublished() ([]domain.Testimonial, error) {
	out := []domain.Testimonial{}
	err := r.db.Select(&out, `
		SELECT `+testimonialCols+` FROM testimonials
		WHERE published = 1
		ORDER BY created_at DESC, id
	`)
	return out, err
}

func (r *TestimonialRepo) ListAll() ([]domain.Testimonial, error) {
	out := []domain.Testimonial{}
	err := r.db.Select(&out, `
		SELECT `+testimonialCols+` FROM testimonials
		ORDER BY created_at DESC, id
	`)
	return out, err
}

func (r *TestimonialRepo) Create(t *domain.Testimonial) error {
	_, err := r.db.NamedExec(`
		INSERT INTO testimonials(id, author, location, quote, published)
		VALUES (:id, :author, :location, :quote, :published)
	`, t)
	return err
}

func (r *TestimonialRepo) Update(t *domain.Testimonial) error {
	res, err := r.db.NamedExec(`
		UPDATE testimonials
		SET author = :author, location = :location, quote = :quote,
		    published = :published, updated_at = CURRENT_TIMESTAMP
		WHERE id = :id
	`, t)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *TestimonialRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM testimonials WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
