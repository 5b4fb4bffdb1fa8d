// Package auth implements credential handling, bearer token lifecycle,
// and identity resolution for the tracker service.
package auth

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/robertpope/devtrackr/internal/platform/errors"
	"github.com/robertpope/devtrackr/internal/services/tracker/storage"
	"github.com/robertpope/devtrackr/internal/services/tracker/user"
)

// ErrInvalidCredentials is the single failure every login problem
// collapses to. Unknown email and wrong password are indistinguishable.
var ErrInvalidCredentials = apperrors.New(apperrors.CodeUnauthenticated, "invalid email or password")

// Service provides registration, login, and per-request identity
// resolution over a user store and a token issuer.
type Service struct {
	users  storage.UserStore
	tokens *TokenIssuer
	now    func() time.Time
}

// NewService creates an auth service with an injected clock.
func NewService(users storage.UserStore, tokens *TokenIssuer, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		users:  users,
		tokens: tokens,
		now:    now,
	}
}

// Register creates a user from an email and password.
//
// The email is normalized before the uniqueness check so addresses
// differing only by case collide. The password byte bound is validated
// here so an oversized password fails as user input, not as a hashing
// error.
func (s *Service) Register(ctx context.Context, email, password string) (user.User, error) {
	normalized := user.NormalizeEmail(email)
	if err := user.ValidateEmail(normalized); err != nil {
		return user.User{}, err
	}
	if err := ValidatePasswordLength(password); err != nil {
		return user.User{}, err
	}

	_, err := s.users.GetUserByEmail(ctx, normalized)
	if err == nil {
		return user.User{}, storage.ErrDuplicateEmail
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return user.User{}, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return user.User{}, err
	}

	created, err := s.users.CreateUser(ctx, user.User{
		Email:        normalized,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return user.User{}, err
	}
	return created, nil
}

// Login verifies credentials and issues a bearer token. Every failure
// surfaces as ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	normalized := user.NormalizeEmail(email)

	found, err := s.users.GetUserByEmail(ctx, normalized)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if !VerifyPassword(password, found.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(found.ID)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Authenticate resolves a bearer token to its user record.
//
// A token referencing a deleted user fails with the same opaque
// credential error as a bad token, so a stale token cannot distinguish
// "bad token" from "deleted account".
func (s *Service) Authenticate(ctx context.Context, token string) (user.User, error) {
	userID, err := s.tokens.Validate(token)
	if err != nil {
		return user.User{}, err
	}

	found, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return user.User{}, ErrInvalidToken
		}
		return user.User{}, err
	}
	return found, nil
}
