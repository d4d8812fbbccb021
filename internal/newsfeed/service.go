// Package newsfeed implements the stateful news delivery pipeline: listing
// builds a ranked batch and stores it as the conversation's session,
// navigation moves a cursor over that batch, and every shown item is
// accounted in the stats ledger.
package newsfeed

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/session"
)

var (
	// ErrNoNews reports an aggregation run that yielded nothing.
	ErrNoNews = errors.New("no news available")
	// ErrFirstItem and ErrLastItem are boundary notices: the cursor stays
	// where it was and nothing is re-rendered.
	ErrFirstItem = errors.New("already at the first item")
	ErrLastItem  = errors.New("already at the last item")
	// ErrSessionNotFound means navigation arrived with no active session;
	// the user has to run a new listing.
	ErrSessionNotFound = session.ErrNotFound
)

type Aggregator interface {
	ByCategories(ctx context.Context, categories []model.Category, limit int) []model.Item
	All(ctx context.Context, limit int) []model.Item
}

type PreferenceStore interface {
	Toggle(ctx context.Context, userID int64, category model.Category, enabled bool) error
	Get(ctx context.Context, userID int64) ([]model.Category, error)
}

type FeedbackStore interface {
	Record(ctx context.Context, fb model.Feedback) error
	Tally(ctx context.Context, userID int64) (model.FeedbackTally, error)
}

type StatsStore interface {
	Bump(ctx context.Context, link, title string, category model.Category, views, likes, dislikes int) error
	Top(ctx context.Context, limit int) ([]model.NewsStats, error)
}

type SettingsStore interface {
	Get(ctx context.Context, userID int64, key string) (string, error)
	Set(ctx context.Context, userID int64, key, value string) error
}

// Translator rewrites text into Russian. Optional collaborator; a nil
// translator disables translation entirely.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Rendered is one item shown to the user with its 1-based position.
type Rendered struct {
	Item     model.Item
	Position int
	Total    int
}

type Service struct {
	aggregator Aggregator
	prefs      PreferenceStore
	feedback   FeedbackStore
	stats      StatsStore
	settings   SettingsStore
	sessions   session.Store
	translator Translator

	limit         int
	categoryLimit int
}

func New(
	aggregator Aggregator,
	prefs PreferenceStore,
	feedback FeedbackStore,
	stats StatsStore,
	settings SettingsStore,
	sessions session.Store,
	translator Translator,
	limit int,
	categoryLimit int,
) *Service {
	return &Service{
		aggregator:    aggregator,
		prefs:         prefs,
		feedback:      feedback,
		stats:         stats,
		settings:      settings,
		sessions:      sessions,
		translator:    translator,
		limit:         limit,
		categoryLimit: categoryLimit,
	}
}

func sessionKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// List aggregates a fresh batch for the user and replaces their session
// with it. Explicitly requested categories win; otherwise the user's
// preferences apply, and an empty preference set falls back to all
// categories. The first item is rendered and counted as viewed.
func (s *Service) List(ctx context.Context, userID int64, requested []model.Category) (Rendered, error) {
	var items []model.Item

	switch {
	case len(requested) > 0:
		items = s.aggregator.ByCategories(ctx, requested, s.categoryLimit)
	default:
		prefs, err := s.prefs.Get(ctx, userID)
		if err != nil {
			return Rendered{}, fmt.Errorf("load preferences: %w", err)
		}
		if len(prefs) == 0 {
			items = s.aggregator.All(ctx, s.limit)
		} else {
			items = s.aggregator.ByCategories(ctx, prefs, s.limit)
		}
	}

	if len(items) == 0 {
		return Rendered{}, ErrNoNews
	}

	if err := s.sessions.Put(ctx, sessionKey(userID), session.Session{Items: items, Index: 0}); err != nil {
		return Rendered{}, fmt.Errorf("store session: %w", err)
	}

	return s.render(ctx, userID, items, 0)
}

// Next advances the session cursor. At the last item it returns
// ErrLastItem and the cursor does not move.
func (s *Service) Next(ctx context.Context, userID int64) (Rendered, error) {
	return s.move(ctx, userID, +1)
}

// Prev moves the cursor back. At the first item it returns ErrFirstItem
// and the cursor does not move.
func (s *Service) Prev(ctx context.Context, userID int64) (Rendered, error) {
	return s.move(ctx, userID, -1)
}

func (s *Service) move(ctx context.Context, userID int64, delta int) (Rendered, error) {
	sess, err := s.sessions.Update(ctx, sessionKey(userID), func(sess *session.Session) error {
		candidate := sess.Index + delta
		if candidate < 0 {
			return ErrFirstItem
		}
		if candidate >= len(sess.Items) {
			return ErrLastItem
		}
		sess.Index = candidate
		return nil
	})
	if err != nil {
		return Rendered{}, err
	}

	return s.render(ctx, userID, sess.Items, sess.Index)
}

// render counts the view and applies translation. A stats failure is
// surfaced: if the ledger is down the bot must not pretend the view was
// recorded.
func (s *Service) render(ctx context.Context, userID int64, items []model.Item, index int) (Rendered, error) {
	item := items[index]

	if err := s.stats.Bump(ctx, item.StatsKey(), item.Title, item.Category, 1, 0, 0); err != nil {
		return Rendered{}, fmt.Errorf("record view: %w", err)
	}

	item = s.maybeTranslate(ctx, userID, item)

	return Rendered{Item: item, Position: index + 1, Total: len(items)}, nil
}

// Feedback records a like/dislike for the item at the given session index.
// Both ledgers are written: the append-only feedback log for per-user
// tallies and the stats counters, which are authoritative for popularity.
func (s *Service) Feedback(ctx context.Context, userID int64, index int, kind model.FeedbackKind) (model.Item, error) {
	sess, err := s.sessions.Get(ctx, sessionKey(userID))
	if err != nil {
		return model.Item{}, err
	}
	if index < 0 || index >= len(sess.Items) {
		return model.Item{}, ErrSessionNotFound
	}
	item := sess.Items[index]

	if err := s.feedback.Record(ctx, model.Feedback{
		UserID:    userID,
		NewsTitle: item.Title,
		NewsLink:  item.Link,
		Kind:      kind,
	}); err != nil {
		return model.Item{}, fmt.Errorf("record feedback: %w", err)
	}

	var likes, dislikes int
	if kind == model.FeedbackLike {
		likes = 1
	} else {
		dislikes = 1
	}
	if err := s.stats.Bump(ctx, item.StatsKey(), item.Title, item.Category, 0, likes, dislikes); err != nil {
		return model.Item{}, fmt.Errorf("bump stats: %w", err)
	}

	return item, nil
}

// ToggleCategory flips one category in the user's preference set and
// returns the updated set.
func (s *Service) ToggleCategory(ctx context.Context, userID int64, category model.Category) ([]model.Category, error) {
	current, err := s.prefs.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}

	enabled := false
	for _, c := range current {
		if c == category {
			enabled = true
			break
		}
	}

	if err := s.prefs.Toggle(ctx, userID, category, !enabled); err != nil {
		return nil, fmt.Errorf("toggle category: %w", err)
	}

	return s.prefs.Get(ctx, userID)
}

// Preferences returns the user's enabled categories.
func (s *Service) Preferences(ctx context.Context, userID int64) ([]model.Category, error) {
	return s.prefs.Get(ctx, userID)
}

// Tally returns the user's like/dislike counts.
func (s *Service) Tally(ctx context.Context, userID int64) (model.FeedbackTally, error) {
	return s.feedback.Tally(ctx, userID)
}

// TopStats returns the most viewed stories.
func (s *Service) TopStats(ctx context.Context, limit int) ([]model.NewsStats, error) {
	return s.stats.Top(ctx, limit)
}

const settingTranslate = "translate"

// TranslationEnabled reports whether the user wants foreign items
// translated. Enabled by default when a translator is configured.
func (s *Service) TranslationEnabled(ctx context.Context, userID int64) bool {
	if s.translator == nil {
		return false
	}
	v, err := s.settings.Get(ctx, userID, settingTranslate)
	if err != nil {
		return true // unset means default-on
	}
	return v != "off"
}

// SetTranslation persists the user's translation toggle.
func (s *Service) SetTranslation(ctx context.Context, userID int64, enabled bool) error {
	v := "on"
	if !enabled {
		v = "off"
	}
	return s.settings.Set(ctx, userID, settingTranslate, v)
}

// maybeTranslate rewrites English items into Russian when a translator is
// configured and the user has not opted out. Translation failures keep the
// original text; a broken translator must not block the feed.
func (s *Service) maybeTranslate(ctx context.Context, userID int64, item model.Item) model.Item {
	if item.Language != model.LanguageEN || !s.TranslationEnabled(ctx, userID) {
		return item
	}

	if title, err := s.translator.Translate(ctx, item.Title); err == nil && title != "" {
		item.Title = title
	}
	if desc, err := s.translator.Translate(ctx, item.Description); err == nil && desc != "" {
		item.Description = desc
	}
	return item
}
