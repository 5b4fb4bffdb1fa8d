// Package task provides the task domain record and its validation rules.
package task

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/robertpope/devtrackr/internal/platform/errors"
	"github.com/robertpope/devtrackr/internal/services/tracker/goal"
)

const (
	// TitleMinLen is the minimum task title length in characters.
	TitleMinLen = 1
	// TitleMaxLen is the maximum task title length in characters.
	TitleMaxLen = 120
)

// ErrTitleLength indicates a title outside the 1-120 character range.
var ErrTitleLength = apperrors.New(apperrors.CodeValidation, "task title must be 1-120 characters")

// Task is a user-owned task nested under a goal. UserID and GoalID are
// immutable after creation.
type Task struct {
	ID        int64
	UserID    int64
	GoalID    int64
	Title     string
	Done      bool
	CreatedAt time.Time
}

// CreateTaskInput describes the caller-supplied fields for a new task.
type CreateTaskInput struct {
	Title string
}

// UpdateTaskInput carries a partial task update. Nil fields are unchanged.
type UpdateTaskInput struct {
	Title *string
	Done  *bool
}

// NewTask builds a validated task under parent. Ownership is inherited
// from the parent goal, so a task can never belong to a different user
// than its goal.
func NewTask(parent goal.Goal, input CreateTaskInput, now func() time.Time) (Task, error) {
	if now == nil {
		now = time.Now
	}
	title := strings.TrimSpace(input.Title)
	if err := ValidateTitle(title); err != nil {
		return Task{}, err
	}
	return Task{
		UserID:    parent.UserID,
		GoalID:    parent.ID,
		Title:     title,
		CreatedAt: now().UTC(),
	}, nil
}

// ApplyUpdate validates and applies a partial update in place.
func (t *Task) ApplyUpdate(input UpdateTaskInput) error {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if err := ValidateTitle(title); err != nil {
			return err
		}
		t.Title = title
	}
	if input.Done != nil {
		t.Done = *input.Done
	}
	return nil
}

// ValidateTitle enforces the task title length bounds.
func ValidateTitle(title string) error {
	length := utf8.RuneCountInString(title)
	if length < TitleMinLen || length > TitleMaxLen {
		return ErrTitleLength
	}
	return nil
}
