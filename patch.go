package accounts

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
)

const (
	// MaxUsernameLength is the longest username accepted, in bytes
	MaxUsernameLength = 64
	// MaxPasswordLength is the bcrypt input limit, in bytes
	MaxPasswordLength = 72
)

// UserPatch is a partial update. A nil field is left untouched. Empty
// username or password values are treated as absent.
type UserPatch struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

// Validate will run validation rules
func (p UserPatch) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(
			&p.Username,
			validation.Length(0, MaxUsernameLength),
		),
		validation.Field(
			&p.Password,
			validation.Length(0, MaxPasswordLength),
		),
	)
	if err == nil {
		return nil
	}

	fields := map[string]any{}
	if verrs, ok := err.(validation.Errors); ok {
		for field, ferr := range verrs {
			fields[field] = ferr.Error()
		}
	}

	return errors.Wrap(err, errors.CategoryValidation, ErrInvalidPatch.Message).
		WithCode(errors.CodeBadRequest).
		WithTextCode(ErrInvalidPatch.TextCode).
		WithMetadata(map[string]any{"fields": fields})
}

// IsEmpty reports whether applying the patch would change nothing
func (p UserPatch) IsEmpty() bool {
	return !p.hasUsername() && !p.hasPassword() && p.Active == nil
}

func (p UserPatch) hasUsername() bool {
	return p.Username != nil && *p.Username != ""
}

func (p UserPatch) hasPassword() bool {
	return p.Password != nil && *p.Password != ""
}

// Apply mutates user in place: username, then password digest, then active.
func (p UserPatch) Apply(user *User, hasher PasswordHasher) error {
	if p.hasUsername() {
		user.Username = *p.Username
	}

	if p.hasPassword() {
		hash, err := hasher.HashPassword(*p.Password)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}

	if p.Active != nil {
		user.Active = *p.Active
	}

	return nil
}

// StringPtr is a helper to build patches
func StringPtr(s string) *string {
	return &s
}

// BoolPtr is a helper to build patches
func BoolPtr(b bool) *bool {
	return &b
}
