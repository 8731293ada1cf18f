package accounts

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the account record
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID `bun:"id,pk,type:varchar(36)" json:"id"`
	Username      string    `bun:"username,notnull,unique" json:"username"`
	PasswordHash  string    `bun:"password_hash,notnull" json:"-"`
	Active        bool      `bun:"active,notnull" json:"active"`
	Role          UserRole  `bun:"user_role,notnull" json:"role"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// Clone returns a shallow copy that can be mutated without touching u
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// Principal is the authenticated caller of a request
type Principal struct {
	ID   string
	Role UserRole
}

// IsAdmin reports whether the principal holds the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// PrincipalFromClaims builds a principal out of verified claims.
func PrincipalFromClaims(claims AuthClaims) (Principal, error) {
	if claims == nil {
		return Principal{}, ErrUnauthorized
	}

	id := claims.UserID()
	if id == "" {
		return Principal{}, ErrUnableToMapClaims
	}

	role, err := ParseRole(claims.Role())
	if err != nil {
		return Principal{}, err
	}

	return Principal{ID: id, Role: role}, nil
}
