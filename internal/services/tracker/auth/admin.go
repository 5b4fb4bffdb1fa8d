package auth

import (
	"strings"

	"github.com/caarlos0/env/v11"

	apperrors "github.com/robertpope/devtrackr/internal/platform/errors"
	"github.com/robertpope/devtrackr/internal/services/tracker/user"
)

// ErrAdminRequired indicates an authenticated user who is not on the
// admin allowlist. Distinct from authentication failures: the identity
// is known, the action is forbidden.
var ErrAdminRequired = apperrors.New(apperrors.CodeForbidden, "admin access required")

// adminEnv holds raw env values for the allowlist.
type adminEnv struct {
	Emails string `env:"DEVTRACKR_ADMIN_EMAILS" envDefault:"robertpope@gmail.com"`
}

// Allowlist gates admin-only operations by email membership. Matching
// is case-insensitive.
type Allowlist struct {
	emails map[string]struct{}
}

// NewAllowlist builds an allowlist from a comma-separated email list.
// Entries are trimmed and lowercased; empty entries are dropped.
func NewAllowlist(csv string) Allowlist {
	emails := make(map[string]struct{})
	for _, entry := range strings.Split(csv, ",") {
		email := strings.ToLower(strings.TrimSpace(entry))
		if email == "" {
			continue
		}
		emails[email] = struct{}{}
	}
	return Allowlist{emails: emails}
}

// LoadAllowlistFromEnv reads the admin allowlist configuration.
//
// The fallback entry is a development convenience, not a security
// contract; deployments must set DEVTRACKR_ADMIN_EMAILS explicitly.
func LoadAllowlistFromEnv() Allowlist {
	var raw adminEnv
	_ = env.Parse(&raw)
	return NewAllowlist(raw.Emails)
}

// Member reports whether email is on the allowlist.
func (a Allowlist) Member(email string) bool {
	_, ok := a.emails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// Require returns ErrAdminRequired unless u is on the allowlist.
func (a Allowlist) Require(u user.User) error {
	if !a.Member(u.Email) {
		return ErrAdminRequired
	}
	return nil
}
