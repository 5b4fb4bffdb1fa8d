package auth

import (
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/robertpope/devtrackr/internal/platform/errors"
)

// DefaultTokenTTL is the bearer token lifetime when none is configured.
const DefaultTokenTTL = 240 * time.Minute

// InsecureDevSecret signs tokens when no secret is configured. It is a
// development convenience only; deployments must set
// DEVTRACKR_SECRET_KEY.
const InsecureDevSecret = "dev_only_change_me"

// ErrInvalidToken is the single failure every token validation problem
// collapses to. Signature, structure, expiry, and subject failures are
// indistinguishable at the boundary so a caller cannot probe which
// check rejected a token.
var ErrInvalidToken = apperrors.New(apperrors.CodeUnauthenticated, "invalid credentials")

// TokenConfig holds bearer token signing configuration.
type TokenConfig struct {
	Secret     string `env:"DEVTRACKR_SECRET_KEY"    envDefault:"dev_only_change_me"`
	TTLMinutes int    `env:"DEVTRACKR_TOKEN_MINUTES" envDefault:"240"`
}

// LoadTokenConfigFromEnv loads token configuration with dev defaults.
func LoadTokenConfigFromEnv() TokenConfig {
	var cfg TokenConfig
	_ = env.Parse(&cfg)
	if strings.TrimSpace(cfg.Secret) == "" {
		cfg.Secret = InsecureDevSecret
	}
	if cfg.TTLMinutes <= 0 {
		cfg.TTLMinutes = int(DefaultTokenTTL / time.Minute)
	}
	return cfg
}

// TTL returns the configured token lifetime as a duration.
func (c TokenConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// TokenIssuer issues and validates signed bearer tokens carrying a user
// identity. Tokens are self-contained HS256 claims, valid for their
// full lifetime once issued; there is no revocation list.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates a token issuer with an injected secret, ttl,
// and clock.
func NewTokenIssuer(secret string, ttl time.Duration, now func() time.Time) *TokenIssuer {
	if now == nil {
		now = time.Now
	}
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
	}
}

// Issue signs a bearer token for userID with the configured lifetime.
func (i *TokenIssuer) Issue(userID int64) (string, error) {
	now := i.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeUnknown, "sign token", err)
	}
	return signed, nil
}

// Validate verifies a bearer token and returns the subject user id.
func (i *TokenIssuer) Validate(tokenString string) (int64, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(func() time.Time { return i.now().UTC() }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || claims.Subject == "" {
		return 0, ErrInvalidToken
	}
	return userID, nil
}
