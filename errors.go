package accounts

import (
	stderrors "errors"
	"strings"

	"github.com/goliatone/go-errors"
)

// ErrForbidden is returned when the principal may not act on the target account
var ErrForbidden = errors.New("You are not authorized to update this user", errors.CategoryAuthz).
	WithCode(errors.CodeForbidden).
	WithTextCode("FORBIDDEN")

// ErrUserNotFound is returned when the target account does not exist
var ErrUserNotFound = errors.New("User not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode("USER_NOT_FOUND")

// ErrInternal hides store and hasher faults from callers
var ErrInternal = errors.New("Server error", errors.CategoryInternal).
	WithCode(errors.CodeInternal).
	WithTextCode("INTERNAL_ERROR")

// ErrInvalidPatch is the base error for rejected update payloads
var ErrInvalidPatch = errors.New("Invalid user update", errors.CategoryValidation).
	WithCode(errors.CodeBadRequest).
	WithTextCode("INVALID_PATCH")

// ErrUnauthorized is returned when a request carries no usable principal
var ErrUnauthorized = errors.New("Unauthorized", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("UNAUTHORIZED")

// ErrTokenExpired token past its exp claim
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_EXPIRED")

// ErrTokenMalformed token could not be parsed or verified
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_MALFORMED")

// ErrUnableToMapClaims unable to get a principal from token claims
var ErrUnableToMapClaims = stderrors.New("unable to map claims")

// ErrNoEmptyString password must not be empty
var ErrNoEmptyString = stderrors.New("password can not be an empty string")

// ErrMismatchedHashAndPassword password does not match digest
var ErrMismatchedHashAndPassword = stderrors.New("password does not match hash")

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsForbidden reports whether err is an authorization denial
func IsForbidden(err error) bool {
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.Category == errors.CategoryAuthz
	}
	return false
}

// IsInvalidPatch reports whether err rejected an update payload
func IsInvalidPatch(err error) bool {
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.Category == errors.CategoryValidation
	}
	return false
}

// StatusCode maps an error to the HTTP status used at the boundary.
func StatusCode(err error) int {
	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.Code != 0 {
		return richErr.Code
	}
	return errors.CodeInternal
}
