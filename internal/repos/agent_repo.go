package repos

import (
	"github.com/jmoiron/sqlx"

	"maisonazur/internal/domain"
)

type AgentRepo struct{ db *sqlx.DB }

func NewAgentRepo(db *sqlx.DB) *AgentRepo { return &AgentRepo{db: db} }

func (r *AgentRepo) List() ([]domain.Agent, error) {
	out := []domain.Agent{}
	err := r.db.Select(&out, `
	  SELECT id, name, title, phone, email, photo, territory, created_at
	  FROM agents
	  ORDER BY name
	`)
	return out, err
}

func (r *AgentRepo) ByID(id string) (domain.Agent, error) {
	var a domain.Agent
	err := r.db.Get(&a, `
	  SELECT id, name, title, phone, email, photo, territory, created_at
	  FROM agents
	  WHERE id = ?
	`, id)
	return a, err
}
