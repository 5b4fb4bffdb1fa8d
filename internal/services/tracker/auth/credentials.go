package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/robertpope/devtrackr/internal/platform/errors"
)

// MaxPasswordBytes is the bcrypt input limit. The bound is bytes, not
// characters, so multi-byte passphrases hit it sooner than their rune
// count suggests.
const MaxPasswordBytes = 72

// ErrPasswordTooLong indicates a password over the bcrypt byte limit.
var ErrPasswordTooLong = apperrors.New(apperrors.CodePasswordBound, "password must be 72 bytes or fewer")

// HashPassword derives a salted bcrypt hash from password.
//
// Each call embeds a fresh salt, so two hashes of the same password
// differ while both verify against it.
func HashPassword(password string) (string, error) {
	if err := ValidatePasswordLength(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash. A
// wrong password is false, never an error; a structurally malformed
// stored hash is also false.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePasswordLength enforces the bcrypt byte bound. Registration
// checks this explicitly so the caller sees a clear validation error
// instead of an obscure hashing failure.
func ValidatePasswordLength(password string) error {
	if len(password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}
