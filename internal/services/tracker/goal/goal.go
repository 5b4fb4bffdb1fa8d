// Package goal provides the goal domain record and its validation rules.
package goal

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/robertpope/devtrackr/internal/platform/errors"
)

const (
	// TitleMinLen is the minimum goal title length in characters.
	TitleMinLen = 3
	// TitleMaxLen is the maximum goal title length in characters.
	TitleMaxLen = 100
	// DescriptionMaxLen is the maximum goal description length in characters.
	DescriptionMaxLen = 500
)

var (
	// ErrTitleLength indicates a title outside the 3-100 character range.
	ErrTitleLength = apperrors.New(apperrors.CodeValidation, "goal title must be 3-100 characters")
	// ErrDescriptionLength indicates a description longer than 500 characters.
	ErrDescriptionLength = apperrors.New(apperrors.CodeValidation, "goal description must be 500 characters or fewer")
)

// Goal is a user-owned goal. UserID is immutable after creation.
type Goal struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	CreatedAt   time.Time
}

// CreateGoalInput describes the caller-supplied fields for a new goal.
type CreateGoalInput struct {
	Title       string
	Description string
}

// UpdateGoalInput carries a partial goal update. Nil fields are unchanged.
type UpdateGoalInput struct {
	Title       *string
	Description *string
}

// NewGoal builds a validated goal owned by ownerID. The ID is assigned
// by storage.
func NewGoal(ownerID int64, input CreateGoalInput, now func() time.Time) (Goal, error) {
	if now == nil {
		now = time.Now
	}
	title := strings.TrimSpace(input.Title)
	if err := ValidateTitle(title); err != nil {
		return Goal{}, err
	}
	if err := ValidateDescription(input.Description); err != nil {
		return Goal{}, err
	}
	return Goal{
		UserID:      ownerID,
		Title:       title,
		Description: input.Description,
		CreatedAt:   now().UTC(),
	}, nil
}

// ApplyUpdate validates and applies a partial update in place.
func (g *Goal) ApplyUpdate(input UpdateGoalInput) error {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if err := ValidateTitle(title); err != nil {
			return err
		}
		g.Title = title
	}
	if input.Description != nil {
		if err := ValidateDescription(*input.Description); err != nil {
			return err
		}
		g.Description = *input.Description
	}
	return nil
}

// ValidateTitle enforces the goal title length bounds.
func ValidateTitle(title string) error {
	length := utf8.RuneCountInString(title)
	if length < TitleMinLen || length > TitleMaxLen {
		return ErrTitleLength
	}
	return nil
}

// ValidateDescription enforces the goal description length bound.
func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > DescriptionMaxLen {
		return ErrDescriptionLength
	}
	return nil
}
