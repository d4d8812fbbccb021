package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SlyMarbo/rss"
	"github.com/samber/lo"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
)

// Source pulls raw entries from a single endpoint. Implementations fail
// with an error for the caller to log and skip; they never panic.
type Source interface {
	Label() string
	Fetch(ctx context.Context, limit int) ([]model.Item, error)
}

// contextTransport injects a context into every outgoing request so that
// context cancellation and deadlines propagate through the rss library.
type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req.WithContext(t.ctx))
}

// RSSSource fetches one syndication endpoint registered under a category.
type RSSSource struct {
	endpoint Endpoint
	category model.Category
	timeout  time.Duration
}

func NewRSSSource(ep Endpoint, category model.Category, timeout time.Duration) RSSSource {
	return RSSSource{endpoint: ep, category: category, timeout: timeout}
}

// Label is the human-readable source+category string shown to users,
// e.g. "RIA (политика)".
func (s RSSSource) Label() string {
	return fmt.Sprintf("%s (%s)", strings.ToUpper(s.endpoint.Name), s.category.Title())
}

// Fetch loads the feed and returns at most limit raw entries. Title and
// description come back unnormalized; the aggregator cleans them.
func (s RSSSource) Fetch(ctx context.Context, limit int) ([]model.Item, error) {
	feed, err := loadFeed(ctx, s.endpoint.URL, s.timeout)
	if err != nil {
		return nil, err
	}

	items := feed.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	return lo.Map(items, func(item *rss.Item, _ int) model.Item {
		return model.Item{
			Title:       item.Title,
			Description: itemText(item),
			Link:        item.Link,
			SourceLabel: s.Label(),
			Published:   publishedString(item),
			PublishedAt: publishedTime(item),
		}
	}), nil
}

// itemText returns the richest available text for an item. Summary (short
// excerpt) is preferred over Content here because the rendered card is a
// teaser, not the article body.
func itemText(item *rss.Item) string {
	if s := strings.TrimSpace(item.Summary); s != "" {
		return s
	}
	return strings.TrimSpace(item.Content)
}

func publishedTime(item *rss.Item) time.Time {
	if !item.DateValid {
		return time.Time{}
	}
	return item.Date
}

func publishedString(item *rss.Item) string {
	if !item.DateValid {
		return ""
	}
	return item.Date.Format("2006-01-02 15:04")
}

func loadFeed(ctx context.Context, url string, timeout time.Duration) (*rss.Feed, error) {
	client := &http.Client{
		Transport: contextTransport{ctx: ctx, base: http.DefaultTransport},
		Timeout:   timeout,
	}
	return rss.FetchByClient(url, client)
}
