package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/robertpope/devtrackr/internal/platform/requestctx"
	"github.com/robertpope/devtrackr/internal/services/tracker/auth"
	"github.com/robertpope/devtrackr/internal/services/tracker/user"
)

// currentUserKey is the context key for the resolved user record.
type currentUserKey struct{}

// currentUser returns the user resolved by requireAuth.
func currentUser(r *http.Request) (user.User, bool) {
	value, ok := r.Context().Value(currentUserKey{}).(user.User)
	return value, ok
}

// bearerToken extracts the token from a standard Authorization header.
func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// requireAuth wraps next with bearer token authentication.
//
// Identity is re-resolved on every request; there is no session cache.
// Every failure surfaces as the same opaque credential error.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, auth.ErrInvalidToken)
			return
		}

		resolved, err := h.auth.Authenticate(r.Context(), token)
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), currentUserKey{}, resolved)
		ctx = requestctx.WithUserID(ctx, resolved.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin wraps next with the allowlist gate. It must run inside
// requireAuth.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resolved, ok := currentUser(r)
		if !ok {
			writeError(w, auth.ErrInvalidToken)
			return
		}
		if err := h.admins.Require(resolved); err != nil {
			writeError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithCORS allows the configured browser origin to call the API.
func WithCORS(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
