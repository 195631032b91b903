package repos

import (
	"maisonazur/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT id,email,name,password_hash,role FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT id,email,name,password_hash,role FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) BindSession(sid, userID string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,user_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`, sid, userID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
      SELECT u.id,u.email,u.name,u.password_hash,u.role
      FROM sessions s
      JOIN users u ON u.id=s.user_id
      WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}
