package source

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/SlyMarbo/rss"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
)

// MessageFilter decides which channel posts count as news. Channel streams
// mix news with ads, polls and chatter, so posts must be of sane length and
// contain at least one reporting verb.
type MessageFilter struct {
	minLen   int
	maxLen   int
	keywords []string
}

func NewMessageFilter() *MessageFilter {
	return &MessageFilter{
		minLen: 50,
		maxLen: 1000,
		keywords: []string{
			"новость", "сообщает", "заявил", "сообщил", "объявил",
			"news", "report", "according", "reported", "announced",
		},
	}
}

func (f *MessageFilter) Relevant(text string) bool {
	if text == "" {
		return false
	}
	if n := len([]rune(text)); n < f.minLen || n > f.maxLen {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range f.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

var urlPattern = regexp.MustCompile(`https?://[^\s)]+`)

// firstLink extracts the first URL embedded in a post, if any. Channel
// posts often carry the story link in the body rather than as metadata.
func firstLink(text string) string {
	return urlPattern.FindString(text)
}

// ChannelSource reads a public Telegram channel through an RSS bridge (the
// Bot API exposes no channel history) and turns qualifying posts into raw
// news entries.
type ChannelSource struct {
	endpoint Endpoint
	category model.Category
	timeout  time.Duration
	filter   *MessageFilter
}

func NewChannelSource(ep Endpoint, category model.Category, timeout time.Duration, filter *MessageFilter) ChannelSource {
	if filter == nil {
		filter = NewMessageFilter()
	}
	return ChannelSource{endpoint: ep, category: category, timeout: timeout, filter: filter}
}

func (s ChannelSource) Label() string {
	return fmt.Sprintf("@%s (%s)", s.endpoint.Name, s.category.Title())
}

const channelTitleLen = 100

// Fetch loads the channel stream, drops irrelevant posts and returns at
// most limit raw entries. A post's title is its leading text; the link is
// the first URL found in the body, which may be empty.
func (s ChannelSource) Fetch(ctx context.Context, limit int) ([]model.Item, error) {
	feed, err := loadFeed(ctx, s.endpoint.URL, s.timeout)
	if err != nil {
		return nil, err
	}

	var out []model.Item
	for _, post := range feed.Items {
		text := strings.TrimSpace(postText(post))
		if !s.filter.Relevant(text) {
			continue
		}

		out = append(out, model.Item{
			Title:       headline(text),
			Description: text,
			Link:        firstLink(text),
			SourceLabel: s.Label(),
			Published:   publishedString(post),
			PublishedAt: publishedTime(post),
			Language:    model.LanguageRU,
		})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func postText(post *rss.Item) string {
	if c := strings.TrimSpace(post.Content); c != "" {
		return c
	}
	if s := strings.TrimSpace(post.Summary); s != "" {
		return s
	}
	return post.Title
}

func headline(text string) string {
	runes := []rune(text)
	if len(runes) <= channelTitleLen {
		return text
	}
	return string(runes[:channelTitleLen]) + "..."
}
