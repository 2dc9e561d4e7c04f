package database

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const userRepoTimeout = 2 * time.Second

// DefaultPermissionLevel is assigned when add_user omits a level.
const DefaultPermissionLevel int16 = 1

// ErrNoDatabase is returned for writes against a missing database so
// the caller never reports a discarded write as stored.
var ErrNoDatabase = errors.New("no database configured")

// UserRepository is the permission store: one record per user id,
// keyed on the 64-bit Discord user id. A nil repository (no database
// configured) reports every user as absent on reads and fails writes
// with ErrNoDatabase.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	if db == nil {
		return nil
	}
	return &UserRepository{db: db}
}

func (r *UserRepository) Add(ctx context.Context, userID int64, level int16) error {
	if r == nil || r.db == nil {
		return ErrNoDatabase
	}
	if level <= 0 {
		level = DefaultPermissionLevel
	}

	ctx, cancel := context.WithTimeout(ctx, userRepoTimeout)
	defer cancel()

	const query = `
		INSERT INTO users (id, permission)
		VALUES ($1, $2)
	`

	_, err := r.db.ExecContext(ctx, query, userID, level)
	return err
}

func (r *UserRepository) Remove(ctx context.Context, userID int64) error {
	if r == nil || r.db == nil {
		return ErrNoDatabase
	}

	ctx, cancel := context.WithTimeout(ctx, userRepoTimeout)
	defer cancel()

	const query = `
		DELETE FROM users
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *UserRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	_, ok, err := r.GetPermission(ctx, userID)
	return ok, err
}

func (r *UserRepository) GetPermission(ctx context.Context, userID int64) (int16, bool, error) {
	if r == nil || r.db == nil {
		return 0, false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, userRepoTimeout)
	defer cancel()

	const query = `
		SELECT permission
		FROM users
		WHERE id = $1
	`

	var level int16
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&level)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, err
	}

	return level, true, nil
}
