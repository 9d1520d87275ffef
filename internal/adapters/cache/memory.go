package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"itinerary-scheduler-service/internal/ports"
)

// MemoryTransitCache is the default in-process transit cache, backed by an
// expiring go-cache store.
type MemoryTransitCache struct {
	store *gocache.Cache
}

func NewMemoryTransitCache(ttl time.Duration) *MemoryTransitCache {
	return &MemoryTransitCache{store: gocache.New(ttl, 2*ttl)}
}

func (c *MemoryTransitCache) Get(_ context.Context, key string) (*ports.TransitCacheEntry, error) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, nil
	}
	entry := v.(ports.TransitCacheEntry)
	return &entry, nil
}

func (c *MemoryTransitCache) Put(_ context.Context, key string, entry ports.TransitCacheEntry) error {
	c.store.Set(key, entry, gocache.DefaultExpiration)
	return nil
}

func (c *MemoryTransitCache) Clear(_ context.Context) error {
	c.store.Flush()
	return nil
}
