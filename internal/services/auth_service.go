package services

import (
	"golang.org/x/crypto/bcrypt"

	"maisonazur/internal/domain"
	"maisonazur/internal/repos"
)

type AuthService struct {
	Users *repos.UserRepo
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

// Authorize resolves the caller's Principal from its session id. It is
// the single place the role is read; failures degrade to anonymous.
func (s *AuthService) Authorize(sid string) domain.Principal {
	if sid == "" {
		return domain.Anonymous()
	}
	u, err := s.Users.SessionUser(sid)
	if err != nil || u == nil {
		return domain.Anonymous()
	}
	role := domain.RoleUser
	if u.Role == domain.RoleAdmin {
		role = domain.RoleAdmin
	}
	return domain.Principal{Role: role, User: u}
}
