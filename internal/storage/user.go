// Package storage implements the Postgres repositories behind the bot:
// users, per-user settings and category preferences, the append-only
// feedback log and the per-story counter table.
package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
)

// ErrNotFound reports a missing row where absence is meaningful.
var ErrNotFound = errors.New("not found")

type UserStorage struct {
	db *sqlx.DB
}

func NewUserStorage(db *sqlx.DB) *UserStorage {
	return &UserStorage{db: db}
}

// Upsert ensures the user row exists and refreshes the profile fields and
// last_activity timestamp.
func (s *UserStorage) Upsert(ctx context.Context, user model.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (user_id, username, first_name, last_name)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE SET
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			last_activity = now()`,
		user.ID, user.Username, user.FirstName, user.LastName,
	)
	return err
}

// TouchActivity bumps last_activity for an already-known user; an unknown
// user is a no-op, not an error.
func (s *UserStorage) TouchActivity(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET last_activity = now() WHERE user_id = $1`,
		userID,
	)
	return err
}

// AllIDs lists every known user, for the daily broadcast fan-out.
func (s *UserStorage) AllIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := s.db.SelectContext(ctx, &ids, `SELECT user_id FROM users ORDER BY user_id`); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *UserStorage) ByID(ctx context.Context, userID int64) (*model.User, error) {
	var user model.User
	err := s.db.GetContext(ctx, &user,
		`SELECT user_id, username, first_name, last_name, language, created_at, last_activity
		 FROM users WHERE user_id = $1`,
		userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
