package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := NewMemoryStore(clock)
	ctx := context.Background()

	s := New(1, "admin@example.com", "admin", now, time.Hour)
	require.NoError(t, store.Create(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	now = now.Add(2 * time.Hour)
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMemoryStore_Revoke(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()
	s := New(7, "a@example.com", "admin", time.Now(), time.Hour)
	require.NoError(t, store.Create(ctx, s))

	require.NoError(t, store.Revoke(ctx, s.ID))
	_, err := store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNoSession)
	assert.NoError(t, store.Revoke(ctx, "unknown"))
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	s := Session{ID: "sid", UserID: 3}
	got, ok := FromContext(WithSession(context.Background(), s))
	assert.True(t, ok)
	assert.Equal(t, s, got)
}

func TestExpired(t *testing.T) {
	now := time.Now()
	s := Session{ExpiresAt: now}
	assert.True(t, s.Expired(now))
	assert.False(t, s.Expired(now.Add(-time.Second)))
}
