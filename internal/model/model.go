// Package model defines the data structures shared across the bot: news
// categories, aggregated news items, user records and the feedback/stats
// rows persisted for every story shown to a subscriber.
package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Category is a fixed topical bucket. Every news item carries exactly one.
type Category string

const (
	CategoryPolitics   Category = "politics"
	CategoryEconomy    Category = "economy"
	CategorySports     Category = "sports"
	CategoryTechnology Category = "technology"
	CategoryWorld      Category = "world"
	// CategoryMisc is an internal fallback for channel-sourced items that
	// match no keyword list. It is never offered in the settings keyboard.
	CategoryMisc Category = "misc"
)

// Categories lists the user-selectable categories in display order.
var Categories = []Category{
	CategoryPolitics,
	CategoryEconomy,
	CategorySports,
	CategoryTechnology,
	CategoryWorld,
}

var categoryTitles = map[Category]string{
	CategoryPolitics:   "политика",
	CategoryEconomy:    "экономика",
	CategorySports:     "спорт",
	CategoryTechnology: "технологии",
	CategoryWorld:      "мировые",
	CategoryMisc:       "разное",
}

var categoryEmojis = map[Category]string{
	CategoryPolitics:   "🏛",
	CategoryEconomy:    "💰",
	CategorySports:     "⚽",
	CategoryTechnology: "💻",
	CategoryWorld:      "🌍",
	CategoryMisc:       "📝",
}

// Title returns the Russian display name of the category.
func (c Category) Title() string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return string(c)
}

func (c Category) Emoji() string {
	if e, ok := categoryEmojis[c]; ok {
		return e
	}
	return "📰"
}

// ParseCategory resolves either the slug ("sports") or the Russian display
// name ("спорт") to a selectable category.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if s == string(c) || s == c.Title() {
			return c, true
		}
	}
	return "", false
}

// Language is the dominant script of an item's text, detected by a cheap
// Cyrillic-vs-Latin letter count.
type Language string

const (
	LanguageRU      Language = "ru"
	LanguageEN      Language = "en"
	LanguageMixed   Language = "mixed"
	LanguageUnknown Language = "unknown"
)

// Item is a single normalized news story. Immutable once constructed by
// the aggregator.
type Item struct {
	Title       string
	Description string
	Link        string
	SourceLabel string
	Category    Category
	Published   string    // source-native string, display only
	PublishedAt time.Time // zero value means unknown, sorts last
	Language    Language
	ImageURL    string
}

// StatsKey is the identity used for view/like/dislike accounting. Channel
// items may lack a link, so the fallback key is derived from title+source
// to stay stable across runs.
func (i Item) StatsKey() string {
	if i.Link != "" {
		return i.Link
	}
	sum := sha256.Sum256([]byte(i.Title + "|" + i.SourceLabel))
	return "title:" + hex.EncodeToString(sum[:8])
}

// User is a Telegram subscriber known to the bot.
type User struct {
	ID           int64     `db:"user_id"`
	Username     string    `db:"username"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Language     string    `db:"language"`
	CreatedAt    time.Time `db:"created_at"`
	LastActivity time.Time `db:"last_activity"`
}

// FeedbackKind discriminates a like from a dislike.
type FeedbackKind string

const (
	FeedbackLike    FeedbackKind = "like"
	FeedbackDislike FeedbackKind = "dislike"
)

// Feedback is one append-only news_feedback row.
type Feedback struct {
	ID        int64        `db:"id"`
	UserID    int64        `db:"user_id"`
	NewsTitle string       `db:"news_title"`
	NewsLink  string       `db:"news_link"`
	Kind      FeedbackKind `db:"feedback_type"`
	CreatedAt time.Time    `db:"created_at"`
}

// FeedbackTally aggregates a user's feedback rows by kind.
type FeedbackTally struct {
	Likes    int
	Dislikes int
}

// NewsStats is the per-story counter row keyed by link (or the StatsKey
// fallback). Counters only ever grow.
type NewsStats struct {
	Link         string    `db:"news_link"`
	Title        string    `db:"title"`
	Category     Category  `db:"category"`
	ViewCount    int       `db:"view_count"`
	LikeCount    int       `db:"like_count"`
	DislikeCount int       `db:"dislike_count"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
