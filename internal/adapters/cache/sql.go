package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"itinerary-scheduler-service/internal/ports"
)

// SQLTransitCache is a Postgres-backed transit cache for deployments that
// want lookups to survive restarts. Keys are expected to be consistent
// (already canonicalized) by the caller.
type SQLTransitCache struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewSQLTransitCache(db *sql.DB, ttl time.Duration) *SQLTransitCache {
	return &SQLTransitCache{DB: db, TTL: ttl}
}

// InitSchema creates the cache table when it does not exist yet.
func InitSchema(ctx context.Context, db *sql.DB) error {
	q := `
	CREATE TABLE IF NOT EXISTS transit_cache (
		pair_key         TEXT PRIMARY KEY,
		duration_minutes INTEGER NOT NULL,
		depart_day       TEXT NOT NULL,
		cached_at        TIMESTAMPTZ NOT NULL
	);
	`
	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("transit cache: init schema: %w", err)
	}
	return nil
}

func (c *SQLTransitCache) Get(ctx context.Context, key string) (*ports.TransitCacheEntry, error) {
	if c.DB == nil {
		return nil, errors.New("transit cache: db is nil")
	}
	if key == "" {
		return nil, errors.New("get transit cache: key must not be empty")
	}

	q := `
	SELECT duration_minutes, depart_day, cached_at
	FROM transit_cache
	WHERE pair_key = $1 AND cached_at > $2;
	`

	var entry ports.TransitCacheEntry
	err := c.DB.QueryRowContext(ctx, q, key, time.Now().Add(-c.TTL)).
		Scan(&entry.DurationMinutes, &entry.DepartDay, &entry.CachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get transit cache: query transit_cache table: %w", err)
	}

	return &entry, nil
}

func (c *SQLTransitCache) Put(ctx context.Context, key string, entry ports.TransitCacheEntry) error {
	if c.DB == nil {
		return errors.New("transit cache: db is nil")
	}
	if key == "" {
		return errors.New("insert transit cache: key must not be empty")
	}

	q := `
	INSERT INTO transit_cache (pair_key, duration_minutes, depart_day, cached_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (pair_key) DO UPDATE
	SET duration_minutes = EXCLUDED.duration_minutes,
		depart_day = EXCLUDED.depart_day,
		cached_at = EXCLUDED.cached_at;
	`

	if _, err := c.DB.ExecContext(ctx, q, key, entry.DurationMinutes, entry.DepartDay, entry.CachedAt); err != nil {
		return fmt.Errorf("insert transit cache key=%q: %w", key, err)
	}
	return nil
}

func (c *SQLTransitCache) Clear(ctx context.Context) error {
	if c.DB == nil {
		return errors.New("transit cache: db is nil")
	}
	if _, err := c.DB.ExecContext(ctx, `DELETE FROM transit_cache;`); err != nil {
		return fmt.Errorf("clear transit cache: %w", err)
	}
	return nil
}
