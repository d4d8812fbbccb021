package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ev1lbr1tan/infomonitor-newsbot-TEST/internal/model"
)

func TestMemoryStorePutGet(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	_, err := s.Get(ctx, "42")
	assert.ErrorIs(t, err, ErrNotFound)

	sess := Session{Items: []model.Item{{Title: "a"}, {Title: "b"}}, Index: 0}
	require.NoError(t, s.Put(ctx, "42", sess))

	got, err := s.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, sess, got)
}

func TestMemoryStoreReplacesWholesale(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "42", Session{Items: []model.Item{{Title: "old"}}, Index: 0}))
	require.NoError(t, s.Put(ctx, "42", Session{Items: []model.Item{{Title: "new"}}, Index: 0}))

	got, err := s.Get(ctx, "42")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "new", got.Items[0].Title)
}

func TestMemoryStoreUpdate(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "42", Session{Items: []model.Item{{}, {}}, Index: 0}))

	got, err := s.Update(ctx, "42", func(sess *Session) error {
		sess.Index++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Index)

	// A failing fn leaves the stored session untouched.
	boom := errors.New("boom")
	_, err = s.Update(ctx, "42", func(*Session) error { return boom })
	assert.ErrorIs(t, err, boom)

	got, err = s.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Index)
}

func TestMemoryStoreUpdateMissing(t *testing.T) {
	s := NewMemoryStore(0)

	_, err := s.Update(context.Background(), "nope", func(*Session) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "42", Session{Items: []model.Item{{}}}))

	now = now.Add(30 * time.Second)
	_, err := s.Get(ctx, "42")
	assert.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = s.Get(ctx, "42")
	assert.ErrorIs(t, err, ErrNotFound)
}
