// Package memory provides an in-process ports.FeedCache for single-instance
// deployments that do not want a Redis dependency.
package memory

import (
	"context"
	"sync"

	"zap-feed-service/internal/core/domain"
)

type entry struct {
	users  []domain.User
	events []domain.ZapEvent
}

// FeedCache implements ports.FeedCache with an in-process map. Stored slices
// are copied on both write and read so callers can never mutate cached state
// through a shared backing array. Safe for concurrent use.
type FeedCache struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewFeedCache creates an empty in-memory feed cache.
func NewFeedCache() *FeedCache {
	return &FeedCache{entries: make(map[string]*entry)}
}

// GetUsers retrieves the cached roster. Returns nil, nil on a miss.
func (c *FeedCache) GetUsers(_ context.Context, name string) ([]domain.User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[name]
	if !ok || e.users == nil {
		return nil, nil
	}
	out := make([]domain.User, len(e.users))
	copy(out, e.users)
	return out, nil
}

// SetUsers stores the roster.
func (c *FeedCache) SetUsers(_ context.Context, name string, users []domain.User) error {
	stored := make([]domain.User, len(users))
	copy(stored, users)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry(name).users = stored
	return nil
}

// GetEvents retrieves the cached reconciled events. Returns nil, nil on a miss.
func (c *FeedCache) GetEvents(_ context.Context, name string) ([]domain.ZapEvent, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[name]
	if !ok || e.events == nil {
		return nil, nil
	}
	out := make([]domain.ZapEvent, len(e.events))
	copy(out, e.events)
	return out, nil
}

// SetEvents stores the reconciled events.
func (c *FeedCache) SetEvents(_ context.Context, name string, events []domain.ZapEvent) error {
	stored := make([]domain.ZapEvent, len(events))
	copy(stored, events)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry(name).events = stored
	return nil
}

// Invalidate removes every entry stored under name.
func (c *FeedCache) Invalidate(_ context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, name)
	return nil
}

// entry returns the named entry, creating it if needed. Callers hold mu.
func (c *FeedCache) entry(name string) *entry {
	e, ok := c.entries[name]
	if !ok {
		e = &entry{}
		c.entries[name] = e
	}
	return e
}
