package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
)

// StatsStorage keeps per-story counters keyed by link (or the title-hash
// fallback for linkless channel items).
type StatsStorage struct {
	db *sqlx.DB
}

func NewStatsStorage(db *sqlx.DB) *StatsStorage {
	return &StatsStorage{db: db}
}

// Bump adds the given deltas to the story's counters, creating the row and
// seeding title/category on first contact. The whole increment-or-insert
// is one statement, so concurrent bumps against the same key cannot lose
// updates.
func (s *StatsStorage) Bump(ctx context.Context, link, title string, category model.Category, views, likes, dislikes int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO news_stats (news_link, title, category, view_count, like_count, dislike_count)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (news_link) DO UPDATE SET
			title = EXCLUDED.title,
			category = EXCLUDED.category,
			view_count = news_stats.view_count + EXCLUDED.view_count,
			like_count = news_stats.like_count + EXCLUDED.like_count,
			dislike_count = news_stats.dislike_count + EXCLUDED.dislike_count,
			updated_at = now()`,
		link, title, category, views, likes, dislikes,
	)
	return err
}

func (s *StatsStorage) ByLink(ctx context.Context, link string) (*model.NewsStats, error) {
	var stats model.NewsStats
	err := s.db.GetContext(ctx, &stats,
		`SELECT news_link, title, category, view_count, like_count, dislike_count, created_at, updated_at
		 FROM news_stats WHERE news_link = $1`,
		link,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Top returns the most viewed stories, likes breaking ties.
func (s *StatsStorage) Top(ctx context.Context, limit int) ([]model.NewsStats, error) {
	var out []model.NewsStats
	if err := s.db.SelectContext(ctx, &out,
		`SELECT news_link, title, category, view_count, like_count, dislike_count, created_at, updated_at
		 FROM news_stats
		 ORDER BY view_count DESC, like_count DESC
		 LIMIT $1`,
		limit,
	); err != nil {
		return nil, err
	}
	return out, nil
}
