// Package aggregator fans out over the registered sources, normalizes and
// classifies every raw entry and returns one ranked batch of news.
package aggregator

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/samber/lo"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/classify"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/source"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/textutil"
)

const (
	// Per-source entry caps bound the cost of one aggregation run no
	// matter how many entries a feed offers.
	perSourceLimit    = 3
	perSourceAllLimit = 2

	fallbackTitle = "Без заголовка"

	// FallbackDescription marks items whose feed carried no description.
	// Consumers that can fetch a better excerpt key off it.
	FallbackDescription = "Описание отсутствует"
)

type Aggregator struct {
	sources    source.Provider
	classifier *classify.Classifier
	maxTextLen int
}

func New(sources source.Provider, classifier *classify.Classifier, maxTextLen int) *Aggregator {
	return &Aggregator{
		sources:    sources,
		classifier: classifier,
		maxTextLen: maxTextLen,
	}
}

// ByCategories aggregates the sources registered under the requested
// categories. A failing source is logged and contributes nothing; it never
// fails the run. The result is sorted most-recent-first (undated items
// last) and truncated to limit.
func (a *Aggregator) ByCategories(ctx context.Context, categories []model.Category, limit int) []model.Item {
	return a.run(ctx, categories, perSourceLimit, limit)
}

// All aggregates every registered category with a tighter per-source cap.
func (a *Aggregator) All(ctx context.Context, limit int) []model.Item {
	return a.run(ctx, a.sources.Categories(), perSourceAllLimit, limit)
}

func (a *Aggregator) run(ctx context.Context, categories []model.Category, perSource, limit int) []model.Item {
	var (
		mu    sync.Mutex
		items []model.Item
		wg    sync.WaitGroup
	)

	for _, category := range categories {
		for _, src := range a.sources.SourcesFor(category) {
			wg.Add(1)

			go func(src source.Source) {
				defer wg.Done()

				raw, err := src.Fetch(ctx, perSource)
				if err != nil {
					log.Printf("[ERROR] failed to fetch items from source %s: %v", src.Label(), err)
					return
				}

				normalized := lo.Map(raw, func(item model.Item, _ int) model.Item {
					return a.normalize(item)
				})

				mu.Lock()
				items = append(items, normalized...)
				mu.Unlock()
			}(src)
		}
	}
	wg.Wait()

	// Stable sort keeps equal-dated items in collection order, so the
	// output is deterministic for a fixed set of source responses.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// normalize cleans text, fills display fallbacks, detects the language and
// re-classifies the item by content. The detected category may differ from
// the category the source is registered under; the item keeps the detected
// one while SourceLabel still names the registration.
func (a *Aggregator) normalize(item model.Item) model.Item {
	item.Title = textutil.Clean(item.Title, a.maxTextLen)
	if item.Title == "" {
		item.Title = fallbackTitle
	}

	item.Description = textutil.Clean(item.Description, a.maxTextLen)
	if item.Description == "" {
		item.Description = FallbackDescription
	}

	if item.Language == "" {
		item.Language = textutil.DetectLanguage(item.Title + " " + item.Description)
	}

	item.Category = a.classifier.Classify(item.Title, item.Description)
	return item
}
