// Package user provides tracker user identity records.
package user

import (
	"regexp"
	"strings"
	"time"

	apperrors "github.com/robertpope/devtrackr/internal/platform/errors"
)

var (
	// ErrEmptyEmail indicates a missing email address.
	ErrEmptyEmail = apperrors.New(apperrors.CodeValidation, "email is required")
	// ErrInvalidEmail indicates an email address that does not look like one.
	ErrInvalidEmail = apperrors.New(apperrors.CodeValidation, "email address is not valid")

	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// User represents an authenticated identity record.
//
// The password hash is opaque to every caller except the credential
// helpers in the auth package.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
//
// Email uniqueness is case-insensitive, so every write path must pass
// through this before touching storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail enforces a minimal address shape on normalized input.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmptyEmail
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}
