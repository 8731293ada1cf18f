package accounts

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// UserRole is the user's role
type UserRole string

const (
	// RoleUser is a regular account, it can only act on itself
	RoleUser UserRole = "user"
	// RoleAdmin can list and update every account
	RoleAdmin UserRole = "admin"
)

// IsValid checks if the role is one of the predefined roles
func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r UserRole) String() string {
	return string(r)
}

// ParseRole normalizes a raw role claim. Unknown roles are rejected.
func ParseRole(raw string) (UserRole, error) {
	role := UserRole(strings.ToLower(strings.TrimSpace(raw)))
	if !role.IsValid() {
		return "", errors.New("unknown user role", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized).
			WithTextCode("UNKNOWN_ROLE").
			WithMetadata(map[string]any{"role": raw})
	}
	return role, nil
}
