package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
)

func TestActionRoundTrip(t *testing.T) {
	actions := []Action{
		{Kind: ActionLike, Index: 0},
		{Kind: ActionLike, Index: 7},
		{Kind: ActionDislike, Index: 3},
		{Kind: ActionToggleCategory, Category: model.CategorySports},
		{Kind: ActionCategoriesDone},
		{Kind: ActionNavPrev},
		{Kind: ActionNavNext},
	}

	for _, want := range actions {
		got, err := DecodeAction(want.Encode())
		require.NoError(t, err, "data: %q", want.Encode())
		assert.Equal(t, want, got)
	}
}

func TestDecodeActionRejectsGarbage(t *testing.T) {
	for _, data := range []string{"", "unknown", "like_x", "toggle_category_nope"} {
		_, err := DecodeAction(data)
		assert.Error(t, err, "data: %q", data)
	}
}

func TestDislikeIsNotParsedAsLike(t *testing.T) {
	got, err := DecodeAction("dislike_2")
	require.NoError(t, err)
	assert.Equal(t, ActionDislike, got.Kind)
	assert.Equal(t, 2, got.Index)
}
