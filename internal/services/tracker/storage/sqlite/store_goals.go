package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/robertpope/devtrackr/internal/services/tracker/goal"
	"github.com/robertpope/devtrackr/internal/services/tracker/storage"
)

// CreateGoal persists a goal and returns it with its assigned ID.
func (s *Store) CreateGoal(ctx context.Context, g goal.Goal) (goal.Goal, error) {
	if err := ctx.Err(); err != nil {
		return goal.Goal{}, err
	}
	result, err := s.sqlDB.ExecContext(ctx,
		"INSERT INTO goals (user_id, title, description, created_at) VALUES (?, ?, ?, ?)",
		g.UserID, g.Title, g.Description, toMillis(g.CreatedAt),
	)
	if err != nil {
		return goal.Goal{}, fmt.Errorf("insert goal: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return goal.Goal{}, fmt.Errorf("goal insert id: %w", err)
	}
	g.ID = id
	g.CreatedAt = fromMillis(toMillis(g.CreatedAt))
	return g, nil
}

// GetGoal loads a goal by id, scoped to its owner. A goal owned by
// another user is indistinguishable from a missing one.
func (s *Store) GetGoal(ctx context.Context, ownerID, goalID int64) (goal.Goal, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT id, user_id, title, description, created_at FROM goals WHERE id = ? AND user_id = ?",
		goalID, ownerID,
	)
	return scanGoal(row)
}

// ListGoals returns the owner's goals, newest first.
func (s *Store) ListGoals(ctx context.Context, ownerID int64) ([]goal.Goal, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT id, user_id, title, description, created_at FROM goals WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []goal.Goal
	for rows.Next() {
		var g goal.Goal
		var createdAt int64
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &createdAt); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		g.CreatedAt = fromMillis(createdAt)
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return goals, nil
}

// UpdateGoal persists title and description changes, scoped to the
// goal's owner.
func (s *Store) UpdateGoal(ctx context.Context, g goal.Goal) error {
	result, err := s.sqlDB.ExecContext(ctx,
		"UPDATE goals SET title = ?, description = ? WHERE id = ? AND user_id = ?",
		g.Title, g.Description, g.ID, g.UserID,
	)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update goal rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteGoal removes an owner's goal and its tasks in one transaction.
func (s *Store) DeleteGoal(ctx context.Context, ownerID, goalID int64) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete goal: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM tasks WHERE goal_id = ? AND user_id = ?",
		goalID, ownerID,
	); err != nil {
		return fmt.Errorf("delete goal tasks: %w", err)
	}
	result, err := tx.ExecContext(ctx,
		"DELETE FROM goals WHERE id = ? AND user_id = ?",
		goalID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete goal rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return tx.Commit()
}

func scanGoal(row *sql.Row) (goal.Goal, error) {
	var g goal.Goal
	var createdAt int64
	if err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return goal.Goal{}, storage.ErrNotFound
		}
		return goal.Goal{}, fmt.Errorf("scan goal: %w", err)
	}
	g.CreatedAt = fromMillis(createdAt)
	return g, nil
}
