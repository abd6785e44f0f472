package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zap-feed-service/internal/core/domain"
)

func newTestFeedCache(t *testing.T) (*FeedCache, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	return NewFeedCache(client), s
}

func TestFeedCache_UsersRoundTrip(t *testing.T) {
	cache, _ := newTestFeedCache(t)
	ctx := context.Background()

	// Miss before set.
	users, err := cache.GetUsers(ctx, "feed-a")
	require.NoError(t, err)
	assert.Nil(t, users)

	roster := []domain.User{
		{ID: "u1", DisplayName: "Alice", AADObjectID: "aad-1"},
		{ID: "u2", DisplayName: "Bob"},
	}
	require.NoError(t, cache.SetUsers(ctx, "feed-a", roster))

	users, err = cache.GetUsers(ctx, "feed-a")
	require.NoError(t, err)
	assert.Equal(t, roster, users)
}

func TestFeedCache_EventsRoundTrip(t *testing.T) {
	cache, _ := newTestFeedCache(t)
	ctx := context.Background()

	events, err := cache.GetEvents(ctx, "feed-a")
	require.NoError(t, err)
	assert.Nil(t, events)

	alice := domain.User{ID: "u1", DisplayName: "Alice"}
	stored := []domain.ZapEvent{
		{
			Sender: &alice,
			Payment: domain.LedgerPayment{
				CheckingID: "internal_abc",
				WalletID:   "w1",
				Amount:     -21000,
				Memo:       "gg",
				Time:       1700000000,
			},
		},
	}
	require.NoError(t, cache.SetEvents(ctx, "feed-a", stored))

	events, err = cache.GetEvents(ctx, "feed-a")
	require.NoError(t, err)
	assert.Equal(t, stored, events)
}

func TestFeedCache_NoTTL(t *testing.T) {
	cache, s := newTestFeedCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetUsers(ctx, "feed-a", []domain.User{{ID: "u1"}}))

	// Entries survive arbitrary time; only Invalidate removes them.
	s.FastForward(240 * time.Hour)

	users, err := cache.GetUsers(ctx, "feed-a")
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestFeedCache_Invalidate(t *testing.T) {
	cache, _ := newTestFeedCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetUsers(ctx, "feed-a", []domain.User{{ID: "u1"}}))
	require.NoError(t, cache.SetEvents(ctx, "feed-a", []domain.ZapEvent{{}}))
	// A second cache name must not be touched.
	require.NoError(t, cache.SetUsers(ctx, "feed-b", []domain.User{{ID: "u2"}}))

	require.NoError(t, cache.Invalidate(ctx, "feed-a"))

	users, err := cache.GetUsers(ctx, "feed-a")
	require.NoError(t, err)
	assert.Nil(t, users)
	events, err := cache.GetEvents(ctx, "feed-a")
	require.NoError(t, err)
	assert.Nil(t, events)

	other, err := cache.GetUsers(ctx, "feed-b")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestFeedCache_CorruptEntry(t *testing.T) {
	cache, s := newTestFeedCache(t)
	ctx := context.Background()

	require.NoError(t, s.Set("feed:feed-a:users", "{not json"))

	_, err := cache.GetUsers(ctx, "feed-a")
	assert.Error(t, err)
}
