// Package storage defines the persistence contracts for the tracker service.
package storage

import (
	"context"

	"github.com/robertpope/devtrackr/internal/platform/errors"
	"github.com/robertpope/devtrackr/internal/services/tracker/goal"
	"github.com/robertpope/devtrackr/internal/services/tracker/task"
	"github.com/robertpope/devtrackr/internal/services/tracker/user"
)

// ErrNotFound indicates a requested record is missing or not owned by
// the requesting user. The two causes are deliberately indistinct so a
// caller cannot probe for other users' resources.
var ErrNotFound = errors.New(errors.CodeNotFound, "record not found")

// ErrDuplicateEmail indicates an email address already registered,
// compared case-insensitively.
var ErrDuplicateEmail = errors.New(errors.CodeEmailTaken, "email already registered")

// UserStore persists user identity records.
type UserStore interface {
	// CreateUser persists u and returns the record with its assigned ID.
	// The email must already be normalized.
	CreateUser(ctx context.Context, u user.User) (user.User, error)
	GetUser(ctx context.Context, userID int64) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	ListUsers(ctx context.Context) ([]user.User, error)
	// DeleteUser removes a user and cascades to all owned goals and tasks.
	DeleteUser(ctx context.Context, userID int64) error
}

// GoalStore persists goal records. Every read and mutation is scoped to
// the owning user.
type GoalStore interface {
	CreateGoal(ctx context.Context, g goal.Goal) (goal.Goal, error)
	GetGoal(ctx context.Context, ownerID, goalID int64) (goal.Goal, error)
	// ListGoals returns the owner's goals, newest first.
	ListGoals(ctx context.Context, ownerID int64) ([]goal.Goal, error)
	UpdateGoal(ctx context.Context, g goal.Goal) error
	// DeleteGoal removes a goal and cascades to its tasks.
	DeleteGoal(ctx context.Context, ownerID, goalID int64) error
}

// TaskStore persists task records. Every read and mutation is scoped to
// the owning user.
type TaskStore interface {
	CreateTask(ctx context.Context, t task.Task) (task.Task, error)
	// GetTask resolves a task by owner, parent goal, and id. A task whose
	// stored goal_id differs from goalID is not found.
	GetTask(ctx context.Context, ownerID, goalID, taskID int64) (task.Task, error)
	// ListTasks returns the goal's tasks, newest first.
	ListTasks(ctx context.Context, ownerID, goalID int64) ([]task.Task, error)
	UpdateTask(ctx context.Context, t task.Task) error
	DeleteTask(ctx context.Context, ownerID, taskID int64) error
	// GetTaskByID resolves a task by owner and id alone, for the
	// non-nested update and delete routes.
	GetTaskByID(ctx context.Context, ownerID, taskID int64) (task.Task, error)
}

// Store aggregates every persistence contract the service needs.
type Store interface {
	UserStore
	GoalStore
	TaskStore
}
