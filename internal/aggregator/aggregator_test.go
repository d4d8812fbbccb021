package aggregator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/classify"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/source"
)

type fakeSource struct {
	label string
	items []model.Item
	err   error
}

func (f fakeSource) Label() string { return f.label }

func (f fakeSource) Fetch(_ context.Context, limit int) ([]model.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	items := f.items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

type fakeProvider struct {
	categories []model.Category
	sources    map[model.Category][]source.Source
}

func (f fakeProvider) Categories() []model.Category { return f.categories }

func (f fakeProvider) SourcesFor(c model.Category) []source.Source { return f.sources[c] }

func at(hour int) time.Time {
	return time.Date(2025, time.March, 1, hour, 0, 0, 0, time.UTC)
}

func newsItem(title string, published time.Time) model.Item {
	return model.Item{
		Title:       title,
		Description: "описание",
		Link:        "https://example.com/" + title,
		PublishedAt: published,
	}
}

func testAggregator(p source.Provider) *Aggregator {
	return New(p, classify.New(classify.DefaultRules(), model.CategoryWorld), 200)
}

func TestByCategoriesSortsMostRecentFirst(t *testing.T) {
	p := fakeProvider{
		categories: []model.Category{model.CategorySports},
		sources: map[model.Category][]source.Source{
			model.CategorySports: {
				fakeSource{label: "a", items: []model.Item{
					newsItem("old", at(8)),
					newsItem("new", at(12)),
				}},
				fakeSource{label: "b", items: []model.Item{
					newsItem("undated", time.Time{}),
					newsItem("mid", at(10)),
				}},
			},
		},
	}

	got := testAggregator(p).ByCategories(context.Background(), []model.Category{model.CategorySports}, 10)

	require.Len(t, got, 4)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].PublishedAt.After(got[i-1].PublishedAt),
			"items must be ordered most-recent-first")
	}
	assert.Equal(t, "undated", got[len(got)-1].Title, "undated items sort last")
}

func TestByCategoriesIsolatesFailingSource(t *testing.T) {
	p := fakeProvider{
		sources: map[model.Category][]source.Source{
			model.CategorySports: {
				fakeSource{label: "broken", err: errors.New("connection refused")},
				fakeSource{label: "alive", items: []model.Item{
					newsItem("one", at(9)),
					newsItem("two", at(8)),
					newsItem("three", at(7)),
					newsItem("four", at(6)),
				}},
			},
		},
	}

	got := testAggregator(p).ByCategories(context.Background(), []model.Category{model.CategorySports}, 10)

	// Only the surviving source contributes, capped at 3 entries per
	// source for a targeted-category request.
	require.Len(t, got, 3)
	titles := []string{got[0].Title, got[1].Title, got[2].Title}
	assert.Equal(t, []string{"one", "two", "three"}, titles)
}

func TestAllUsesTighterPerSourceCapAndGlobalLimit(t *testing.T) {
	many := make([]model.Item, 5)
	for i := range many {
		many[i] = newsItem(string(rune('a'+i)), at(12-i))
	}

	p := fakeProvider{
		categories: []model.Category{model.CategoryPolitics, model.CategoryEconomy, model.CategorySports},
		sources: map[model.Category][]source.Source{
			model.CategoryPolitics: {fakeSource{label: "p", items: many}},
			model.CategoryEconomy:  {fakeSource{label: "e", items: many}},
			model.CategorySports:   {fakeSource{label: "s", items: many}},
		},
	}

	got := testAggregator(p).All(context.Background(), 4)

	// 3 categories × 2 per source = 6 collected, truncated to the limit.
	assert.Len(t, got, 4)
}

func TestNormalizeClassifiesAndFillsFallbacks(t *testing.T) {
	p := fakeProvider{
		sources: map[model.Category][]source.Source{
			model.CategoryWorld: {
				fakeSource{label: "w", items: []model.Item{
					{
						Title:       "<b>Футбол: финал чемпионата</b>",
						Description: "",
						Link:        "https://example.com/final",
						PublishedAt: at(9),
					},
				}},
			},
		},
	}

	got := testAggregator(p).ByCategories(context.Background(), []model.Category{model.CategoryWorld}, 10)

	require.Len(t, got, 1)
	assert.Equal(t, "Футбол: финал чемпионата", got[0].Title)
	assert.Equal(t, "Описание отсутствует", got[0].Description)
	assert.Equal(t, model.CategorySports, got[0].Category,
		"detected category may differ from the source's registered one")
	assert.Equal(t, model.LanguageRU, got[0].Language)
}

func TestNoDeduplicationAcrossSources(t *testing.T) {
	dup := newsItem("same story", at(9))
	p := fakeProvider{
		sources: map[model.Category][]source.Source{
			model.CategoryWorld: {
				fakeSource{label: "a", items: []model.Item{dup}},
				fakeSource{label: "b", items: []model.Item{dup}},
			},
		},
	}

	got := testAggregator(p).ByCategories(context.Background(), []model.Category{model.CategoryWorld}, 10)

	assert.Len(t, got, 2, "near-identical stories from different outlets both appear")
}
