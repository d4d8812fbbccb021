package storage

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
)

// PreferenceStorage stores each user's enabled-category set.
type PreferenceStorage struct {
	db *sqlx.DB
}

func NewPreferenceStorage(db *sqlx.DB) *PreferenceStorage {
	return &PreferenceStorage{db: db}
}

// Toggle enables or disables one category. Insert-if-absent and
// delete-if-present make repeated calls with the same arguments no-ops.
func (s *PreferenceStorage) Toggle(ctx context.Context, userID int64, category model.Category, enabled bool) error {
	if enabled {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO user_categories (user_id, category)
			 VALUES ($1, $2)
			 ON CONFLICT (user_id, category) DO NOTHING`,
			userID, category,
		)
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM user_categories WHERE user_id = $1 AND category = $2`,
		userID, category,
	)
	return err
}

// Get returns the user's enabled categories in the canonical display
// order. Unknown users get an empty set, never an error.
func (s *PreferenceStorage) Get(ctx context.Context, userID int64) ([]model.Category, error) {
	var raw []string
	if err := s.db.SelectContext(ctx, &raw,
		`SELECT category FROM user_categories WHERE user_id = $1`,
		userID,
	); err != nil {
		return nil, err
	}

	enabled := lo.SliceToMap(raw, func(c string) (model.Category, bool) {
		return model.Category(c), true
	})
	return lo.Filter(model.Categories, func(c model.Category, _ int) bool {
		return enabled[c]
	}), nil
}
