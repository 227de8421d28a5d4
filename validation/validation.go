// Package validation holds the pure input checks used by registration.
package validation

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// SpecialChars is the set a password must draw at least one character from.
const SpecialChars = "!@#$%^&*"

// Email reports whether s has a local-part@domain.tld shape.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// PasswordError lists the strength requirements a password failed to meet.
type PasswordError struct {
	Missing []string
}

func (e *PasswordError) Error() string {
	return "password should " + joinRequirements(e.Missing)
}

// Requirements returns the failed rules as a human-readable sentence,
// suitable for the registration rejection message.
func (e *PasswordError) Requirements() string {
	return "Password should " + joinRequirements(e.Missing) + "."
}

func joinRequirements(missing []string) string {
	switch len(missing) {
	case 1:
		return missing[0]
	case 2:
		return missing[0] + " and " + missing[1]
	default:
		return strings.Join(missing[:len(missing)-1], ", ") + ", and " + missing[len(missing)-1]
	}
}

// Password checks the strength rules: at least 8 characters, one lowercase
// letter, one uppercase letter, and one character from SpecialChars. Returns
// a *PasswordError naming every rule that failed, or nil.
func Password(s string) error {
	var hasLower, hasUpper, hasSpecial bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case strings.ContainsRune(SpecialChars, r):
			hasSpecial = true
		}
	}

	var missing []string
	if len(s) < 8 {
		missing = append(missing, "be at least 8 characters")
	}
	if !hasLower {
		missing = append(missing, "include at least one lowercase letter")
	}
	if !hasUpper {
		missing = append(missing, "include at least one uppercase letter")
	}
	if !hasSpecial {
		missing = append(missing, "include at least one special character ("+SpecialChars+")")
	}
	if len(missing) > 0 {
		return &PasswordError{Missing: missing}
	}
	return nil
}
