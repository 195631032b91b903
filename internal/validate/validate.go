package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reSlug  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	rePhone = regexp.MustCompile(`^\+?[0-9][0-9 ().-]{5,19}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reType  = regexp.MustCompile(`^(VILLA|APPARTEMENT|CHALET|DOMAINE|PENTHOUSE|MAISON|TERRAIN)$`)
	reDPE   = regexp.MustCompile(`^[A-G]$`)
)

// Slug validates a URL-safe listing slug (also used for destinations).
func Slug(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 80 {
		return "", false
	}
	return s, reSlug.MatchString(s)
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 80 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePhone.MatchString(s)
}

// ID validates an opaque resource identifier (uuid or seed id).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// PropertyType validates the listing type enum.
func PropertyType(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reType.MatchString(s)
}

// DPE validates an energy-rating letter.
func DPE(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reDPE.MatchString(s)
}

// Name validates a displayable person name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 80 {
		return "", false
	}
	return s, true
}

// Password enforces the login password policy.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 72 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}

// Int parses a strictly numeric query parameter. Anything that is not a
// plain integer is a hard failure, never coerced to zero.
func Int(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Money parses a non-negative whole-euro amount.
func Money(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
