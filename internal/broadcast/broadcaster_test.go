package broadcast

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
)

func TestNextRun(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	b := &Broadcaster{sendAt: "09:00", location: loc}

	morning := time.Date(2024, 3, 1, 7, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, loc), b.nextRun(morning))

	evening := time.Date(2024, 3, 1, 21, 15, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 3, 2, 9, 0, 0, 0, loc), b.nextRun(evening))

	exactly := time.Date(2024, 3, 1, 9, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 3, 2, 9, 0, 0, 0, loc), b.nextRun(exactly))
}

func TestNextRunBadTimeFallsBackToNine(t *testing.T) {
	b := &Broadcaster{sendAt: "not-a-time", location: time.UTC}

	got := b.nextRun(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC), got)
}

func TestDigestText(t *testing.T) {
	b := &Broadcaster{}

	text := b.digestText([]model.Item{
		{Title: "Первая новость", Description: "Описание", Link: "https://example.com/1", Category: model.CategorySports},
		{Title: "Вторая новость", Category: model.CategoryPolitics},
	})

	assert.True(t, strings.HasPrefix(text, "🌅 *Утренний дайджест ИнфоМонитора*"))
	assert.Contains(t, text, "Первая новость")
	assert.Contains(t, text, "Вторая новость")
	assert.Contains(t, text, `https://example\.com/1`)
	assert.Contains(t, text, "/settings")
}
