package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/robertpope/devtrackr/internal/services/tracker/storage"
	"github.com/robertpope/devtrackr/internal/services/tracker/task"
)

// CreateTask persists a task and returns it with its assigned ID.
func (s *Store) CreateTask(ctx context.Context, t task.Task) (task.Task, error) {
	if err := ctx.Err(); err != nil {
		return task.Task{}, err
	}
	result, err := s.sqlDB.ExecContext(ctx,
		"INSERT INTO tasks (user_id, goal_id, title, done, created_at) VALUES (?, ?, ?, ?, ?)",
		t.UserID, t.GoalID, t.Title, boolToInt(t.Done), toMillis(t.CreatedAt),
	)
	if err != nil {
		return task.Task{}, fmt.Errorf("insert task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return task.Task{}, fmt.Errorf("task insert id: %w", err)
	}
	t.ID = id
	t.CreatedAt = fromMillis(toMillis(t.CreatedAt))
	return t, nil
}

// GetTask loads a task scoped to its owner and parent goal. A task
// whose stored goal differs from goalID is not found.
func (s *Store) GetTask(ctx context.Context, ownerID, goalID, taskID int64) (task.Task, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT id, user_id, goal_id, title, done, created_at FROM tasks WHERE id = ? AND user_id = ? AND goal_id = ?",
		taskID, ownerID, goalID,
	)
	return scanTask(row)
}

// GetTaskByID loads a task scoped to its owner alone.
func (s *Store) GetTaskByID(ctx context.Context, ownerID, taskID int64) (task.Task, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT id, user_id, goal_id, title, done, created_at FROM tasks WHERE id = ? AND user_id = ?",
		taskID, ownerID,
	)
	return scanTask(row)
}

// ListTasks returns a goal's tasks for the owner, newest first.
func (s *Store) ListTasks(ctx context.Context, ownerID, goalID int64) ([]task.Task, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT id, user_id, goal_id, title, done, created_at FROM tasks WHERE goal_id = ? AND user_id = ? ORDER BY created_at DESC, id DESC",
		goalID, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var t task.Task
		var done int
		var createdAt int64
		if err := rows.Scan(&t.ID, &t.UserID, &t.GoalID, &t.Title, &done, &createdAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.Done = done != 0
		t.CreatedAt = fromMillis(createdAt)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask persists title and completion changes, scoped to the
// task's owner.
func (s *Store) UpdateTask(ctx context.Context, t task.Task) error {
	result, err := s.sqlDB.ExecContext(ctx,
		"UPDATE tasks SET title = ?, done = ? WHERE id = ? AND user_id = ?",
		t.Title, boolToInt(t.Done), t.ID, t.UserID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteTask removes an owner's task.
func (s *Store) DeleteTask(ctx context.Context, ownerID, taskID int64) error {
	result, err := s.sqlDB.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = ? AND user_id = ?",
		taskID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanTask(row *sql.Row) (task.Task, error) {
	var t task.Task
	var done int
	var createdAt int64
	if err := row.Scan(&t.ID, &t.UserID, &t.GoalID, &t.Title, &done, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return task.Task{}, storage.ErrNotFound
		}
		return task.Task{}, fmt.Errorf("scan task: %w", err)
	}
	t.Done = done != 0
	t.CreatedAt = fromMillis(createdAt)
	return t, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
