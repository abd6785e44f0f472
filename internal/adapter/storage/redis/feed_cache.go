package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"zap-feed-service/internal/core/domain"
)

// FeedCache implements ports.FeedCache using Redis. Entries carry no TTL:
// they live until the session that filled them invalidates them, and
// correctness requires the explicit invalidation rather than expiry.
type FeedCache struct {
	client *goredis.Client
	prefix string
}

// NewFeedCache creates a new Redis-backed feed cache.
func NewFeedCache(client *goredis.Client) *FeedCache {
	return &FeedCache{
		client: client,
		prefix: "feed:",
	}
}

func (c *FeedCache) usersKey(name string) string {
	return c.prefix + name + ":users"
}

func (c *FeedCache) eventsKey(name string) string {
	return c.prefix + name + ":events"
}

// GetUsers retrieves the cached roster. Returns nil, nil on a miss.
func (c *FeedCache) GetUsers(ctx context.Context, name string) ([]domain.User, error) {
	var users []domain.User
	if ok, err := c.get(ctx, c.usersKey(name), &users); err != nil || !ok {
		return nil, err
	}
	return users, nil
}

// SetUsers stores the roster.
func (c *FeedCache) SetUsers(ctx context.Context, name string, users []domain.User) error {
	return c.set(ctx, c.usersKey(name), users)
}

// GetEvents retrieves the cached reconciled events. Returns nil, nil on a miss.
func (c *FeedCache) GetEvents(ctx context.Context, name string) ([]domain.ZapEvent, error) {
	var events []domain.ZapEvent
	if ok, err := c.get(ctx, c.eventsKey(name), &events); err != nil || !ok {
		return nil, err
	}
	return events, nil
}

// SetEvents stores the reconciled events.
func (c *FeedCache) SetEvents(ctx context.Context, name string, events []domain.ZapEvent) error {
	return c.set(ctx, c.eventsKey(name), events)
}

// Invalidate removes every entry stored under name.
func (c *FeedCache) Invalidate(ctx context.Context, name string) error {
	if err := c.client.Del(ctx, c.usersKey(name), c.eventsKey(name)).Err(); err != nil {
		return fmt.Errorf("redis feed cache del: %w", err)
	}
	return nil
}

func (c *FeedCache) get(ctx context.Context, key string, out any) (bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("redis feed cache get: %w", err)
	}
	if err := json.Unmarshal(val, out); err != nil {
		return false, fmt.Errorf("redis feed cache decode: %w", err)
	}
	return true, nil
}

func (c *FeedCache) set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redis feed cache encode: %w", err)
	}
	if err := c.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis feed cache set: %w", err)
	}
	return nil
}
