package accounts_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-accounts"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPatch_Validate(t *testing.T) {
	tests := []struct {
		name    string
		patch   accounts.UserPatch
		wantErr bool
		field   string
	}{
		{name: "empty patch", patch: accounts.UserPatch{}},
		{name: "all fields", patch: accounts.UserPatch{
			Username: accounts.StringPtr("alice"),
			Password: accounts.StringPtr("s3cret"),
			Active:   accounts.BoolPtr(false),
		}},
		{name: "empty strings", patch: accounts.UserPatch{Username: accounts.StringPtr(""), Password: accounts.StringPtr("")}},
		{name: "username at limit", patch: accounts.UserPatch{Username: accounts.StringPtr(strings.Repeat("u", accounts.MaxUsernameLength))}},
		{name: "username too long", patch: accounts.UserPatch{Username: accounts.StringPtr(strings.Repeat("u", accounts.MaxUsernameLength+1))}, wantErr: true, field: "username"},
		{name: "password at limit", patch: accounts.UserPatch{Password: accounts.StringPtr(strings.Repeat("p", accounts.MaxPasswordLength))}},
		{name: "password too long", patch: accounts.UserPatch{Password: accounts.StringPtr(strings.Repeat("p", accounts.MaxPasswordLength+1))}, wantErr: true, field: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, accounts.IsInvalidPatch(err))

			var richErr *goerrors.Error
			require.True(t, errors.As(err, &richErr))
			assert.Equal(t, "INVALID_PATCH", richErr.TextCode)
			fields, ok := richErr.Metadata["fields"].(map[string]any)
			require.True(t, ok)
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestUserPatch_IsEmpty(t *testing.T) {
	assert.True(t, accounts.UserPatch{}.IsEmpty())
	assert.True(t, accounts.UserPatch{Username: accounts.StringPtr("")}.IsEmpty())
	assert.False(t, accounts.UserPatch{Active: accounts.BoolPtr(false)}.IsEmpty())
	assert.False(t, accounts.UserPatch{Password: accounts.StringPtr("x")}.IsEmpty())
}

func TestUserPatch_ApplyOrder(t *testing.T) {
	user := newUser("alice", accounts.RoleUser)
	hasher := new(MockHasher)
	hasher.On("HashPassword", "pw").Return("digest", nil)

	patch := accounts.UserPatch{
		Username: accounts.StringPtr("alice2"),
		Password: accounts.StringPtr("pw"),
		Active:   accounts.BoolPtr(false),
	}
	require.NoError(t, patch.Apply(user, hasher))

	assert.Equal(t, "alice2", user.Username)
	assert.Equal(t, "digest", user.PasswordHash)
	assert.False(t, user.Active)
	hasher.AssertExpectations(t)
}

func TestUserPatch_ApplyHashFailureStopsBeforeActive(t *testing.T) {
	user := newUser("alice", accounts.RoleUser)
	hasher := new(MockHasher)
	hasher.On("HashPassword", "pw").Return("", errors.New("boom"))

	patch := accounts.UserPatch{
		Username: accounts.StringPtr("alice2"),
		Password: accounts.StringPtr("pw"),
		Active:   accounts.BoolPtr(false),
	}
	assert.Error(t, patch.Apply(user, hasher))
	assert.Equal(t, "alice2", user.Username)
	assert.True(t, user.Active)
}
