// Package rest exposes the tracker service over an HTTP/JSON API.
package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/robertpope/devtrackr/internal/services/tracker/auth"
	"github.com/robertpope/devtrackr/internal/services/tracker/storage"
)

// LoginPath is the token-issuing endpoint. Token-bearing clients must
// target this fixed path.
const LoginPath = "/auth/login"

// Handler serves the tracker HTTP API.
type Handler struct {
	auth   *auth.Service
	store  storage.Store
	admins auth.Allowlist
	now    func() time.Time
}

// NewHandler creates a REST handler with an injected clock.
func NewHandler(authService *auth.Service, store storage.Store, admins auth.Allowlist, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{
		auth:   authService,
		store:  store,
		admins: admins,
		now:    now,
	}
}

// Routes builds the service mux. Every route below the auth endpoints
// re-resolves identity per request and scopes storage access to the
// resolved owner.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.handleHealth)

	mux.HandleFunc("POST /auth/register", h.handleRegister)
	mux.HandleFunc("POST "+LoginPath, h.handleLogin)
	mux.Handle("GET /auth/me", h.requireAuth(http.HandlerFunc(h.handleMe)))

	mux.Handle("POST /goals", h.requireAuth(http.HandlerFunc(h.handleCreateGoal)))
	mux.Handle("GET /goals", h.requireAuth(http.HandlerFunc(h.handleListGoals)))
	mux.Handle("GET /goals/{goalID}", h.requireAuth(http.HandlerFunc(h.handleGetGoal)))
	mux.Handle("PUT /goals/{goalID}", h.requireAuth(http.HandlerFunc(h.handleUpdateGoal)))
	mux.Handle("DELETE /goals/{goalID}", h.requireAuth(http.HandlerFunc(h.handleDeleteGoal)))

	mux.Handle("GET /goals/{goalID}/tasks", h.requireAuth(http.HandlerFunc(h.handleListTasks)))
	mux.Handle("POST /goals/{goalID}/tasks", h.requireAuth(http.HandlerFunc(h.handleCreateTask)))
	mux.Handle("PUT /tasks/{taskID}", h.requireAuth(http.HandlerFunc(h.handleUpdateTask)))
	mux.Handle("DELETE /tasks/{taskID}", h.requireAuth(http.HandlerFunc(h.handleDeleteTask)))

	mux.Handle("GET /admin/users", h.requireAuth(h.requireAdmin(http.HandlerFunc(h.handleListUsers))))

	return mux
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathID parses a numeric path segment. A non-numeric id cannot name a
// resource, so it reads as not found rather than a validation error.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, storage.ErrNotFound
	}
	return id, nil
}
