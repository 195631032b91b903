package services

import (
	"errors"
	"fmt"

	"maisonazur/internal/domain"
)

// Error taxonomy surfaced to the HTTP layer. Store errors never cross
// the service boundary untranslated.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("access denied")
	ErrBadCreds     = errors.New("invalid email or password")
)

// ValidationError carries a caller-safe reason for a 400.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string { return e.Reason }

func invalidf(format string, a ...any) error {
	return ValidationError{Reason: fmt.Sprintf(format, a...)}
}

// requireAdmin gates every mutating operation. No session at all reads
// as unauthorized; a logged-in non-admin as forbidden.
func requireAdmin(p domain.Principal) error {
	switch p.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleAnonymous:
		return ErrUnauthorized
	default:
		return ErrForbidden
	}
}
