package ports

import (
	"context"
	"time"
)

// TransitCacheEntry is one cached travel-time result. DepartDay pins the
// entry to the calendar day it was computed for: travel time varies with
// time-of-day traffic, so the TTL alone is not sufficient.
type TransitCacheEntry struct {
	DurationMinutes int       `json:"duration_minutes"`
	DepartDay       string    `json:"depart_day"`
	CachedAt        time.Time `json:"cached_at"`
}

// TransitCache is a pluggable store for transit lookups. Implementations are
// safe for concurrent use. Get returns (nil, nil) on a miss.
type TransitCache interface {
	Get(ctx context.Context, key string) (*TransitCacheEntry, error)
	Put(ctx context.Context, key string, entry TransitCacheEntry) error
	Clear(ctx context.Context) error
}
