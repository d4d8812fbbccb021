package newsfeed

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/session"
)

type fakeAggregator struct {
	byCategory []model.Item
	all        []model.Item

	lastCategories []model.Category
}

func (f *fakeAggregator) ByCategories(_ context.Context, categories []model.Category, limit int) []model.Item {
	f.lastCategories = categories
	if len(f.byCategory) > limit {
		return f.byCategory[:limit]
	}
	return f.byCategory
}

func (f *fakeAggregator) All(_ context.Context, limit int) []model.Item {
	if len(f.all) > limit {
		return f.all[:limit]
	}
	return f.all
}

type fakePrefs struct {
	sets map[int64]map[model.Category]bool
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{sets: make(map[int64]map[model.Category]bool)}
}

func (f *fakePrefs) Toggle(_ context.Context, userID int64, category model.Category, enabled bool) error {
	set := f.sets[userID]
	if set == nil {
		set = make(map[model.Category]bool)
		f.sets[userID] = set
	}
	if enabled {
		set[category] = true
	} else {
		delete(set, category)
	}
	return nil
}

func (f *fakePrefs) Get(_ context.Context, userID int64) ([]model.Category, error) {
	var out []model.Category
	for _, c := range model.Categories {
		if f.sets[userID][c] {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeFeedback struct {
	records []model.Feedback
}

func (f *fakeFeedback) Record(_ context.Context, fb model.Feedback) error {
	f.records = append(f.records, fb)
	return nil
}

func (f *fakeFeedback) Tally(_ context.Context, userID int64) (model.FeedbackTally, error) {
	var t model.FeedbackTally
	for _, r := range f.records {
		if r.UserID != userID {
			continue
		}
		if r.Kind == model.FeedbackLike {
			t.Likes++
		} else {
			t.Dislikes++
		}
	}
	return t, nil
}

type statsRow struct {
	views, likes, dislikes int
}

type fakeStats struct {
	rows map[string]*statsRow
}

func newFakeStats() *fakeStats {
	return &fakeStats{rows: make(map[string]*statsRow)}
}

func (f *fakeStats) Bump(_ context.Context, link, _ string, _ model.Category, views, likes, dislikes int) error {
	row := f.rows[link]
	if row == nil {
		row = &statsRow{}
		f.rows[link] = row
	}
	row.views += views
	row.likes += likes
	row.dislikes += dislikes
	return nil
}

func (f *fakeStats) Top(_ context.Context, _ int) ([]model.NewsStats, error) {
	return nil, nil
}

type fakeSettings struct {
	values map[string]string
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{values: make(map[string]string)}
}

func (f *fakeSettings) Get(_ context.Context, userID int64, key string) (string, error) {
	v, ok := f.values[fmt.Sprintf("%d/%s", userID, key)]
	if !ok {
		return "", fmt.Errorf("not set")
	}
	return v, nil
}

func (f *fakeSettings) Set(_ context.Context, userID int64, key, value string) error {
	f.values[fmt.Sprintf("%d/%s", userID, key)] = value
	return nil
}

func batch(n int) []model.Item {
	out := make([]model.Item, n)
	for i := range out {
		out[i] = model.Item{
			Title:    fmt.Sprintf("story %d", i),
			Link:     fmt.Sprintf("https://example.com/%d", i),
			Category: model.CategoryWorld,
			Language: model.LanguageRU,
		}
	}
	return out
}

type deps struct {
	agg      *fakeAggregator
	prefs    *fakePrefs
	feedback *fakeFeedback
	stats    *fakeStats
}

func newService(agg *fakeAggregator) (*Service, deps) {
	d := deps{
		agg:      agg,
		prefs:    newFakePrefs(),
		feedback: &fakeFeedback{},
		stats:    newFakeStats(),
	}
	svc := New(d.agg, d.prefs, d.feedback, d.stats, newFakeSettings(),
		session.NewMemoryStore(0), nil, 10, 8)
	return svc, d
}

const userID = int64(1001)

func TestListRendersFirstItemAndCountsView(t *testing.T) {
	svc, d := newService(&fakeAggregator{all: batch(5)})
	ctx := context.Background()

	got, err := svc.List(ctx, userID, nil)
	require.NoError(t, err)

	assert.Equal(t, "story 0", got.Item.Title)
	assert.Equal(t, 1, got.Position)
	assert.Equal(t, 5, got.Total)
	assert.Equal(t, 1, d.stats.rows["https://example.com/0"].views)
}

func TestListFallsBackToAllCategoriesForEmptyPreferences(t *testing.T) {
	agg := &fakeAggregator{all: batch(12), byCategory: batch(3)}
	svc, _ := newService(agg)

	got, err := svc.List(context.Background(), userID, nil)
	require.NoError(t, err)

	// No preferences configured: "all categories", bounded by the global
	// limit of 10.
	assert.Equal(t, 10, got.Total)
	assert.Nil(t, agg.lastCategories)
}

func TestListUsesPreferencesWhenConfigured(t *testing.T) {
	agg := &fakeAggregator{byCategory: batch(4)}
	svc, d := newService(agg)
	ctx := context.Background()

	require.NoError(t, d.prefs.Toggle(ctx, userID, model.CategorySports, true))

	_, err := svc.List(ctx, userID, nil)
	require.NoError(t, err)

	assert.Equal(t, []model.Category{model.CategorySports}, agg.lastCategories)
}

func TestListExplicitCategoryWins(t *testing.T) {
	agg := &fakeAggregator{byCategory: batch(4)}
	svc, d := newService(agg)
	ctx := context.Background()

	require.NoError(t, d.prefs.Toggle(ctx, userID, model.CategorySports, true))

	_, err := svc.List(ctx, userID, []model.Category{model.CategoryEconomy})
	require.NoError(t, err)

	assert.Equal(t, []model.Category{model.CategoryEconomy}, agg.lastCategories)
}

func TestListEmptyBatch(t *testing.T) {
	svc, _ := newService(&fakeAggregator{})

	_, err := svc.List(context.Background(), userID, nil)
	assert.ErrorIs(t, err, ErrNoNews)
}

func TestNavigationBoundaries(t *testing.T) {
	svc, _ := newService(&fakeAggregator{all: batch(5)})
	ctx := context.Background()

	_, err := svc.List(ctx, userID, nil)
	require.NoError(t, err)

	// prev at the first item: boundary notice, no movement.
	_, err = svc.Prev(ctx, userID)
	assert.ErrorIs(t, err, ErrFirstItem)

	for i := 2; i <= 5; i++ {
		got, err := svc.Next(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, i, got.Position)
	}

	// next at the last item: boundary notice, cursor stays put.
	_, err = svc.Next(ctx, userID)
	assert.ErrorIs(t, err, ErrLastItem)

	got, err := svc.Prev(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Position)
}

func TestNavigationWithoutSession(t *testing.T) {
	svc, _ := newService(&fakeAggregator{all: batch(3)})

	_, err := svc.Next(context.Background(), userID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestEveryRenderCountsOneView(t *testing.T) {
	svc, d := newService(&fakeAggregator{all: batch(3)})
	ctx := context.Background()

	_, err := svc.List(ctx, userID, nil)
	require.NoError(t, err)
	_, err = svc.Next(ctx, userID)
	require.NoError(t, err)
	_, err = svc.Prev(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, 2, d.stats.rows["https://example.com/0"].views)
	assert.Equal(t, 1, d.stats.rows["https://example.com/1"].views)
}

func TestFeedbackWritesBothLedgers(t *testing.T) {
	svc, d := newService(&fakeAggregator{all: batch(3)})
	ctx := context.Background()

	_, err := svc.List(ctx, userID, nil)
	require.NoError(t, err)

	item, err := svc.Feedback(ctx, userID, 1, model.FeedbackLike)
	require.NoError(t, err)
	assert.Equal(t, "story 1", item.Title)

	require.Len(t, d.feedback.records, 1)
	assert.Equal(t, model.FeedbackLike, d.feedback.records[0].Kind)
	assert.Equal(t, 1, d.stats.rows["https://example.com/1"].likes)

	tally, err := svc.Tally(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, model.FeedbackTally{Likes: 1, Dislikes: 0}, tally)
}

func TestFeedbackWithoutSession(t *testing.T) {
	svc, _ := newService(&fakeAggregator{all: batch(3)})

	_, err := svc.Feedback(context.Background(), userID, 0, model.FeedbackLike)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestToggleCategoryIdempotence(t *testing.T) {
	svc, _ := newService(&fakeAggregator{})
	ctx := context.Background()

	set, err := svc.ToggleCategory(ctx, userID, model.CategorySports)
	require.NoError(t, err)
	assert.Equal(t, []model.Category{model.CategorySports}, set)

	// Toggling again flips it back off.
	set, err = svc.ToggleCategory(ctx, userID, model.CategorySports)
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestStatsIncrementsCommute(t *testing.T) {
	// +1 view, +1 view, +1 like in any order always lands on 2/1/0.
	ops := [][3]int{{1, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	orders := [][]int{{0, 1, 2}, {2, 0, 1}, {1, 2, 0}}

	for _, order := range orders {
		stats := newFakeStats()
		for _, i := range order {
			op := ops[i]
			require.NoError(t, stats.Bump(context.Background(), "L", "t", model.CategoryWorld, op[0], op[1], op[2]))
		}
		row := stats.rows["L"]
		assert.Equal(t, &statsRow{views: 2, likes: 1, dislikes: 0}, row)
	}
}
