package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// SettingsStorage holds free-form per-user key/value settings, e.g. the
// translation toggle.
type SettingsStorage struct {
	db *sqlx.DB
}

func NewSettingsStorage(db *sqlx.DB) *SettingsStorage {
	return &SettingsStorage{db: db}
}

func (s *SettingsStorage) Set(ctx context.Context, userID int64, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_settings (user_id, setting_key, setting_value)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, setting_key) DO UPDATE SET setting_value = EXCLUDED.setting_value`,
		userID, key, value,
	)
	return err
}

// Get returns ErrNotFound for an unset key.
func (s *SettingsStorage) Get(ctx context.Context, userID int64, key string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value,
		`SELECT setting_value FROM user_settings WHERE user_id = $1 AND setting_key = $2`,
		userID, key,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}
