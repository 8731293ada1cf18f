package accounts_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-accounts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTClaims_UserID(t *testing.T) {
	t.Run("returns UID when present", func(t *testing.T) {
		claims := &accounts.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject: "user123",
			},
			UID: "uid456",
		}

		assert.Equal(t, "uid456", claims.UserID())
		assert.Equal(t, "user123", claims.Subject())
	})

	t.Run("fallback to subject when UID is empty", func(t *testing.T) {
		claims := &accounts.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject: "user123",
			},
		}

		assert.Equal(t, "user123", claims.UserID())
	})
}

func TestJWTClaims_Roles(t *testing.T) {
	admin := &accounts.JWTClaims{UserRole: "Admin"}
	assert.True(t, admin.HasRole("admin"))
	assert.True(t, admin.IsAdmin())

	user := &accounts.JWTClaims{UserRole: "user"}
	assert.False(t, user.IsAdmin())
	assert.Equal(t, "user", user.Role())
}

func TestJWTClaims_Times(t *testing.T) {
	empty := &accounts.JWTClaims{}
	assert.True(t, empty.Expires().IsZero())
	assert.True(t, empty.IssuedAt().IsZero())

	now := time.Now().Truncate(time.Second)
	claims := &accounts.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	assert.True(t, now.Equal(claims.IssuedAt()))
	assert.True(t, now.Add(time.Hour).Equal(claims.Expires()))
}

func TestPrincipalFromClaims(t *testing.T) {
	tests := []struct {
		name     string
		claims   accounts.AuthClaims
		expected accounts.Principal
		wantErr  bool
	}{
		{
			name:     "user role",
			claims:   &accounts.JWTClaims{UID: "u1", UserRole: "user"},
			expected: accounts.Principal{ID: "u1", Role: accounts.RoleUser},
		},
		{
			name:     "admin role normalized",
			claims:   &accounts.JWTClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "a1"}, UserRole: " ADMIN "},
			expected: accounts.Principal{ID: "a1", Role: accounts.RoleAdmin},
		},
		{
			name:    "unknown role",
			claims:  &accounts.JWTClaims{UID: "u1", UserRole: "owner"},
			wantErr: true,
		},
		{
			name:    "missing role",
			claims:  &accounts.JWTClaims{UID: "u1"},
			wantErr: true,
		},
		{
			name:    "missing id",
			claims:  &accounts.JWTClaims{UserRole: "user"},
			wantErr: true,
		},
		{
			name:    "nil claims",
			claims:  nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, err := accounts.PrincipalFromClaims(tt.claims)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, principal)
		})
	}
}
