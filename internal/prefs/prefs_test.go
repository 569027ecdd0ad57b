package prefs

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	return New(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestStore_MissingKeyReturnsFallback(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Get(context.Background(), "notification_time", "09:00")

	require.NoError(t, err)
	assert.Equal(t, "09:00", got)
}

func TestStore_SetGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "notification_time", "18:30"))

	got, err := s.Get(ctx, "notification_time", "09:00")
	require.NoError(t, err)
	assert.Equal(t, "18:30", got)
}
