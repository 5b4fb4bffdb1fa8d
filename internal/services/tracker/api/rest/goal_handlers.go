package rest

import (
	"net/http"
	"time"

	"github.com/robertpope/devtrackr/internal/services/tracker/auth"
	"github.com/robertpope/devtrackr/internal/services/tracker/goal"
)

type goalCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type goalUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type goalResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func goalToResponse(g goal.Goal) goalResponse {
	return goalResponse{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		CreatedAt:   g.CreatedAt,
	}
}

func (h *Handler) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	resolved, ok := currentUser(r)
	if !ok {
		writeError(w, auth.ErrInvalidToken)
		return
	}

	var req goalCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	created, err := goal.NewGoal(resolved.ID, goal.CreateGoalInput{
		Title:       req.Title,
		Description: req.Description,
	}, h.now)
	if err != nil {
		writeError(w, err)
		return
	}

	persisted, err := h.store.CreateGoal(r.Context(), created)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, goalToResponse(persisted))
}

func (h *Handler) handleListGoals(w http.ResponseWriter, r *http.Request) {
	resolved, ok := currentUser(r)
	if !ok {
		writeError(w, auth.ErrInvalidToken)
		return
	}

	goals, err := h.store.ListGoals(r.Context(), resolved.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	responses := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		responses = append(responses, goalToResponse(g))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *Handler) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	resolved, ok := currentUser(r)
	if !ok {
		writeError(w, auth.ErrInvalidToken)
		return
	}
	goalID, err := pathID(r, "goalID")
	if err != nil {
		writeError(w, err)
		return
	}

	found, err := h.store.GetGoal(r.Context(), resolved.ID, goalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goalToResponse(found))
}

func (h *Handler) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	resolved, ok := currentUser(r)
	if !ok {
		writeError(w, auth.ErrInvalidToken)
		return
	}
	goalID, err := pathID(r, "goalID")
	if err != nil {
		writeError(w, err)
		return
	}

	var req goalUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	found, err := h.store.GetGoal(r.Context(), resolved.ID, goalID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := found.ApplyUpdate(goal.UpdateGoalInput{
		Title:       req.Title,
		Description: req.Description,
	}); err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.UpdateGoal(r.Context(), found); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goalToResponse(found))
}

func (h *Handler) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	resolved, ok := currentUser(r)
	if !ok {
		writeError(w, auth.ErrInvalidToken)
		return
	}
	goalID, err := pathID(r, "goalID")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.store.DeleteGoal(r.Context(), resolved.ID, goalID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
