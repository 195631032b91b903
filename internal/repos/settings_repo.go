package repos

import (
	"github.com/jmoiron/sqlx"

	"maisonazur/internal/domain"
)

type SettingsRepo struct{ db *sqlx.DB }

func NewSettingsRepo(db *sqlx.DB) *SettingsRepo { return &SettingsRepo{db: db} }

func (r *SettingsRepo) Get() (domain.SiteSettings, error) {
	var s domain.SiteSettings
	err := r.db.Get(&s, `
		SELECT whatsapp_enabled, whatsapp_number, whatsapp_message,
		       COALESCE(updated_at,'') AS updated_at
		FROM site_settings WHERE id = 1
	`)
	return s, err
}

// Save upserts the single settings row.
func (r *SettingsRepo) Save(s domain.SiteSettings) error {
	_, err := r.db.Exec(`
		INSERT INTO site_settings(id, whatsapp_enabled, whatsapp_number, whatsapp_message, updated_at)
		VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
		  whatsapp_enabled = excluded.whatsapp_enabled,
		  whatsapp_number  = excluded.whatsapp_number,
		  whatsapp_message = excluded.whatsapp_message,
		  updated_at       = CURRENT_TIMESTAMP
	`, s.WhatsappEnabled, s.WhatsappNumber, s.WhatsappMessage)
	return err
}
