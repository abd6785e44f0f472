package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zap-feed-service/internal/core/domain"
)

func TestFeedCache_RoundTrip(t *testing.T) {
	cache := NewFeedCache()
	ctx := context.Background()

	users, err := cache.GetUsers(ctx, "feed-a")
	require.NoError(t, err)
	assert.Nil(t, users)

	roster := []domain.User{{ID: "u1", DisplayName: "Alice"}}
	require.NoError(t, cache.SetUsers(ctx, "feed-a", roster))

	users, err = cache.GetUsers(ctx, "feed-a")
	require.NoError(t, err)
	assert.Equal(t, roster, users)

	events := []domain.ZapEvent{{Payment: domain.LedgerPayment{CheckingID: "c1", Amount: -1000}}}
	require.NoError(t, cache.SetEvents(ctx, "feed-a", events))

	got, err := cache.GetEvents(ctx, "feed-a")
	require.NoError(t, err)
	assert.Equal(t, events, got)
}

func TestFeedCache_Invalidate(t *testing.T) {
	cache := NewFeedCache()
	ctx := context.Background()

	require.NoError(t, cache.SetUsers(ctx, "feed-a", []domain.User{{ID: "u1"}}))
	require.NoError(t, cache.SetUsers(ctx, "feed-b", []domain.User{{ID: "u2"}}))

	require.NoError(t, cache.Invalidate(ctx, "feed-a"))

	users, err := cache.GetUsers(ctx, "feed-a")
	require.NoError(t, err)
	assert.Nil(t, users)

	other, err := cache.GetUsers(ctx, "feed-b")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestFeedCache_ReadIsACopy(t *testing.T) {
	cache := NewFeedCache()
	ctx := context.Background()

	require.NoError(t, cache.SetUsers(ctx, "feed-a", []domain.User{{ID: "u1", DisplayName: "Alice"}}))

	first, err := cache.GetUsers(ctx, "feed-a")
	require.NoError(t, err)
	first[0].DisplayName = "Mallory"

	second, err := cache.GetUsers(ctx, "feed-a")
	require.NoError(t, err)
	assert.Equal(t, "Alice", second[0].DisplayName)
}

func TestFeedCache_ConcurrentAccess(t *testing.T) {
	cache := NewFeedCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = cache.SetUsers(ctx, "feed-a", []domain.User{{ID: "u1"}})
			_, _ = cache.GetUsers(ctx, "feed-a")
			_ = cache.SetEvents(ctx, "feed-a", []domain.ZapEvent{{}})
			_, _ = cache.GetEvents(ctx, "feed-a")
			_ = cache.Invalidate(ctx, "feed-a")
		}()
	}
	wg.Wait()
}
