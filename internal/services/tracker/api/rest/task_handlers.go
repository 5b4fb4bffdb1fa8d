package rest

import (
	"net/http"
	"time"

	"github.com/robertpope/devtrackr/internal/services/tracker/auth"
	"github.com/robertpope/devtrackr/internal/services/tracker/task"
)

type taskCreateRequest struct {
	Title string `json:"title"`
}

type taskUpdateRequest struct {
	Title  *string `json:"title"`
	IsDone *bool   `json:"is_done"`
}

type taskResponse struct {
	ID        int64     `json:"id"`
	GoalID    int64     `json:"goal_id"`
	Title     string    `json:"title"`
	IsDone    bool      `json:"is_done"`
	CreatedAt time.Time `json:"created_at"`
}

func taskToResponse(t task.Task) taskResponse {
	return taskResponse{
		ID:        t.ID,
		GoalID:    t.GoalID,
		Title:     t.Title,
		IsDone:    t.Done,
		CreatedAt: t.CreatedAt,
	}
}

func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
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

	// The parent goal must belong to the requester before its tasks
	// are visible.
	if _, err := h.store.GetGoal(r.Context(), resolved.ID, goalID); err != nil {
		writeError(w, err)
		return
	}

	tasks, err := h.store.ListTasks(r.Context(), resolved.ID, goalID)
	if err != nil {
		writeError(w, err)
		return
	}

	responses := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, taskToResponse(t))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
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

	var req taskCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	parent, err := h.store.GetGoal(r.Context(), resolved.ID, goalID)
	if err != nil {
		writeError(w, err)
		return
	}

	created, err := task.NewTask(parent, task.CreateTaskInput{Title: req.Title}, h.now)
	if err != nil {
		writeError(w, err)
		return
	}

	persisted, err := h.store.CreateTask(r.Context(), created)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, taskToResponse(persisted))
}

func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	resolved, ok := currentUser(r)
	if !ok {
		writeError(w, auth.ErrInvalidToken)
		return
	}
	taskID, err := pathID(r, "taskID")
	if err != nil {
		writeError(w, err)
		return
	}

	var req taskUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	found, err := h.store.GetTaskByID(r.Context(), resolved.ID, taskID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := found.ApplyUpdate(task.UpdateTaskInput{
		Title: req.Title,
		Done:  req.IsDone,
	}); err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.UpdateTask(r.Context(), found); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, taskToResponse(found))
}

func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	resolved, ok := currentUser(r)
	if !ok {
		writeError(w, auth.ErrInvalidToken)
		return
	}
	taskID, err := pathID(r, "taskID")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.store.DeleteTask(r.Context(), resolved.ID, taskID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
