package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"maisonazur/internal/domain"
)

type LeadRepo struct{ db *sqlx.DB }

func NewLeadRepo(db *sqlx.DB) *LeadRepo { return &LeadRepo{db: db} }

func (r *LeadRepo) Create(l *domain.Lead) error {
	_, err := r.db.NamedExec(`
		INSERT INTO leads(id, property_id, name, email, phone, message)
		VALUES (:id, :property_id, :name, :email, :phone, :message)
	`, l)
	return err
}

// ListLatest returns the most recent leads for the admin inbox.
func (r *LeadRepo) ListLatest(limit int) ([]domain.Lead, error) {
	out := []domain.Lead{}
	err := r.db.Select(&out, `
		SELECT id, property_id, name, email, phone, message, read_status, created_at
		FROM leads
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	return out, err
}

func (r *LeadRepo) MarkRead(id string) error {
	res, err := r.db.Exec(`UPDATE leads SET read_status = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
