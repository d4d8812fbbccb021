package storage

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
)

// FeedbackStorage is the append-only like/dislike log. Rows are never
// updated or deleted; tallies are aggregated on read.
type FeedbackStorage struct {
	db *sqlx.DB
}

func NewFeedbackStorage(db *sqlx.DB) *FeedbackStorage {
	return &FeedbackStorage{db: db}
}

func (s *FeedbackStorage) Record(ctx context.Context, fb model.Feedback) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO news_feedback (user_id, news_title, news_link, feedback_type)
		 VALUES ($1, $2, $3, $4)`,
		fb.UserID, fb.NewsTitle, fb.NewsLink, fb.Kind,
	)
	return err
}

// Tally counts a user's feedback rows grouped by kind. Absent kinds report
// zero.
func (s *FeedbackStorage) Tally(ctx context.Context, userID int64) (model.FeedbackTally, error) {
	rows := []struct {
		Kind  model.FeedbackKind `db:"feedback_type"`
		Count int                `db:"count"`
	}{}

	if err := s.db.SelectContext(ctx, &rows,
		`SELECT feedback_type, COUNT(*) AS count
		 FROM news_feedback
		 WHERE user_id = $1
		 GROUP BY feedback_type`,
		userID,
	); err != nil {
		return model.FeedbackTally{}, err
	}

	var tally model.FeedbackTally
	for _, r := range rows {
		switch r.Kind {
		case model.FeedbackLike:
			tally.Likes = r.Count
		case model.FeedbackDislike:
			tally.Dislikes = r.Count
		}
	}
	return tally, nil
}
