package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/robertpope/devtrackr/internal/services/tracker/storage"
	"github.com/robertpope/devtrackr/internal/services/tracker/user"
)

// CreateUser persists a user record and returns it with its assigned ID.
func (s *Store) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}
	result, err := s.sqlDB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, created_at) VALUES (?, ?, ?)",
		u.Email, u.PasswordHash, toMillis(u.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, storage.ErrDuplicateEmail
		}
		return user.User{}, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return user.User{}, fmt.Errorf("user insert id: %w", err)
	}
	u.ID = id
	u.CreatedAt = fromMillis(toMillis(u.CreatedAt))
	return u, nil
}

// GetUser loads a user by id.
func (s *Store) GetUser(ctx context.Context, userID int64) (user.User, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT id, email, password_hash, created_at FROM users WHERE id = ?",
		userID,
	)
	return scanUser(row)
}

// GetUserByEmail loads a user by normalized email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT id, email, password_hash, created_at FROM users WHERE email = ?",
		email,
	)
	return scanUser(row)
}

// ListUsers returns every user record, oldest first.
func (s *Store) ListUsers(ctx context.Context) ([]user.User, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT id, email, password_hash, created_at FROM users ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		var createdAt int64
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &createdAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.CreatedAt = fromMillis(createdAt)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// DeleteUser removes a user and every goal and task it owns. The
// cascade is an explicit transaction so it does not depend on the
// connection's foreign key pragma.
func (s *Store) DeleteUser(ctx context.Context, userID int64) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete user: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("delete user tasks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM goals WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("delete user goals: %w", err)
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return tx.Commit()
}

func scanUser(row *sql.Row) (user.User, error) {
	var u user.User
	var createdAt int64
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, storage.ErrNotFound
		}
		return user.User{}, fmt.Errorf("scan user: %w", err)
	}
	u.CreatedAt = fromMillis(createdAt)
	return u, nil
}
