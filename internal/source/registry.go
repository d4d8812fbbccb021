// Package source implements the feed source registry and the fetchers that
// pull raw entries from RSS endpoints and Telegram-channel streams.
package source

import (
	"fmt"
	"time"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
)

// Endpoint is one named feed under a category.
type Endpoint struct {
	Name string
	URL  string
}

// Provider resolves the fetchers registered under a category.
type Provider interface {
	SourcesFor(category model.Category) []Source
	Categories() []model.Category
}

// Registry is an immutable category → endpoint mapping. It is built once
// at startup and passed by value; nothing mutates it afterwards.
type Registry struct {
	mode       Mode
	categories []model.Category
	endpoints  map[model.Category][]Endpoint
	timeout    time.Duration
	filter     *MessageFilter
}

// Mode selects which kind of endpoints the registry serves.
type Mode string

const (
	ModeRSS     Mode = "rss"
	ModeChannel Mode = "channel"
)

// DefaultTimeout bounds a single source fetch; a hanging endpoint fails
// alone instead of stalling the whole aggregation.
const DefaultTimeout = 15 * time.Second

// NewRegistry builds a registry over an explicit endpoint table. The
// category iteration order follows model.Categories so aggregation output
// stays deterministic.
func NewRegistry(mode Mode, endpoints map[model.Category][]Endpoint, timeout time.Duration) Registry {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	var cats []model.Category
	for _, c := range model.Categories {
		if len(endpoints[c]) > 0 {
			cats = append(cats, c)
		}
	}
	r := Registry{mode: mode, categories: cats, endpoints: endpoints, timeout: timeout}
	if mode == ModeChannel {
		r.filter = NewMessageFilter()
	}
	return r
}

func (r Registry) Categories() []model.Category {
	return r.categories
}

// SourcesFor returns a fetcher per endpoint registered under the category.
func (r Registry) SourcesFor(category model.Category) []Source {
	eps := r.endpoints[category]
	out := make([]Source, 0, len(eps))
	for _, ep := range eps {
		switch r.mode {
		case ModeChannel:
			out = append(out, NewChannelSource(ep, category, r.timeout, r.filter))
		default:
			out = append(out, NewRSSSource(ep, category, r.timeout))
		}
	}
	return out
}

// Default returns the built-in registry for the given mode.
func Default(mode Mode, timeout time.Duration) Registry {
	if mode == ModeChannel {
		return NewRegistry(ModeChannel, defaultChannels(), timeout)
	}
	return NewRegistry(ModeRSS, defaultFeeds(), timeout)
}

func defaultFeeds() map[model.Category][]Endpoint {
	return map[model.Category][]Endpoint{
		model.CategoryPolitics: {
			{Name: "ria", URL: "https://ria.ru/export/rss2/politics/index.xml"},
			{Name: "tass", URL: "https://tass.ru/rss/v2.xml"},
			{Name: "vedomosti", URL: "https://www.vedomosti.ru/rss/news.xml"},
			{Name: "lenta", URL: "https://lenta.ru/rss/news"},
			{Name: "gazeta", URL: "https://www.gazeta.ru/rss/articles.xml"},
		},
		model.CategoryEconomy: {
			{Name: "rbc", URL: "https://rssexport.rbc.ru/news/20/5001001/full.rss"},
			{Name: "vedomosti", URL: "https://www.vedomosti.ru/rss/business.xml"},
			{Name: "kommersant", URL: "https://www.kommersant.ru/rss/economics.xml"},
			{Name: "forbes", URL: "https://forbes.ru/rss/feed.xml"},
			{Name: "bloomberg", URL: "https://feeds.bloomberg.com/markets/news.rss"},
		},
		model.CategorySports: {
			{Name: "rsport", URL: "https://rsport.ria.ru/export/rss2/news/index.xml"},
			{Name: "matchtv", URL: "https://matchtv.ru/rss/news.xml"},
			{Name: "championat", URL: "https://www.championat.com/rss/news.xml"},
			{Name: "bbc_sport", URL: "https://feeds.bbci.co.uk/sport/rss.xml"},
		},
		model.CategoryTechnology: {
			{Name: "habr", URL: "https://habr.com/ru/rss/articles/"},
			{Name: "vc", URL: "https://vc.ru/rss"},
			{Name: "techcrunch", URL: "https://techcrunch.com/feed/"},
			{Name: "the_verge", URL: "https://www.theverge.com/rss/index.xml"},
		},
		model.CategoryWorld: {
			{Name: "bbc", URL: "https://feeds.bbci.co.uk/news/rss.xml"},
			{Name: "guardian", URL: "https://www.theguardian.com/world/rss"},
			{Name: "npr", URL: "https://feeds.npr.org/1001/rss.xml"},
			{Name: "dw", URL: "https://rss.dw.com/rdf/rss-en"},
		},
	}
}

// defaultChannels maps categories to public Telegram channels, read through
// an RSS bridge because the Bot API exposes no channel history.
func defaultChannels() map[model.Category][]Endpoint {
	bridge := func(channel string) string {
		return fmt.Sprintf("https://rsshub.app/telegram/channel/%s", channel)
	}
	return map[model.Category][]Endpoint{
		model.CategoryPolitics: {
			{Name: "rian_ru", URL: bridge("rian_ru")},
			{Name: "tass_agency", URL: bridge("tass_agency")},
			{Name: "vedomosti", URL: bridge("vedomosti")},
		},
		model.CategoryEconomy: {
			{Name: "rbc_news", URL: bridge("rbc_news")},
			{Name: "tass_agency", URL: bridge("tass_agency")},
		},
		model.CategorySports: {
			{Name: "rsport_ria", URL: bridge("rsport_ria")},
			{Name: "matchtv", URL: bridge("matchtv")},
			{Name: "sportsru", URL: bridge("sportsru")},
		},
		model.CategoryTechnology: {
			{Name: "vc_ru", URL: bridge("vc_ru")},
			{Name: "habr_com", URL: bridge("habr_com")},
		},
		model.CategoryWorld: {
			{Name: "bbcrussian", URL: bridge("bbcrussian")},
			{Name: "dw_russian", URL: bridge("dw_russian")},
			{Name: "reuters_russian", URL: bridge("reuters_russian")},
		},
	}
}
