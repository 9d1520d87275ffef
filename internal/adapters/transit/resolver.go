package transit

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/rs/zerolog"

	"itinerary-scheduler-service/internal/domain"
	"itinerary-scheduler-service/internal/ports"
)

const (
	defaultTTL           = 24 * time.Hour
	defaultDebounceDelay = 500 * time.Millisecond
	defaultMaxBatch      = 10
	defaultCallTimeout   = 15 * time.Second
)

// Resolver answers precise transit-time lookups behind a same-day TTL cache
// and a debounced batching queue. It is meant for single-decision boundaries
// (inserting one activity) that tolerate network latency, never for the
// placement search's hot loop.
//
// Construct one Resolver per process and inject it; tests create isolated
// instances and assert on their cache without cross-test leakage.
type Resolver struct {
	provider ports.TransitMatrixProvider
	cache    ports.TransitCache
	log      zerolog.Logger

	ttl         time.Duration
	delay       time.Duration
	maxBatch    int
	callTimeout time.Duration

	mu        sync.Mutex
	queue     []*pendingRequest
	armed     bool
	debounced func(func())
}

type pendingRequest struct {
	origin   domain.Coordinates
	dest     domain.Coordinates
	departAt time.Time
	done     chan outcome
}

type outcome struct {
	minutes int
	err     error
}

type Option func(*Resolver)

func WithTTL(ttl time.Duration) Option {
	return func(r *Resolver) { r.ttl = ttl }
}

func WithDebounceDelay(d time.Duration) Option {
	return func(r *Resolver) { r.delay = d }
}

func WithMaxBatch(n int) Option {
	return func(r *Resolver) { r.maxBatch = n }
}

func WithCallTimeout(d time.Duration) Option {
	return func(r *Resolver) { r.callTimeout = d }
}

func WithLogger(log zerolog.Logger) Option {
	return func(r *Resolver) { r.log = log }
}

func NewResolver(provider ports.TransitMatrixProvider, cache ports.TransitCache, opts ...Option) *Resolver {
	r := &Resolver{
		provider:    provider,
		cache:       cache,
		log:         zerolog.Nop(),
		ttl:         defaultTTL,
		delay:       defaultDebounceDelay,
		maxBatch:    defaultMaxBatch,
		callTimeout: defaultCallTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.debounced = debounce.New(r.delay)
	return r
}

// TransitMinutes resolves the travel time for one origin/destination pair at
// a departure instant. Cache hits return immediately; misses join the next
// debounced batch dispatch and block until that request is serviced or ctx
// is done. Failures reject only the affected request, never the resolver.
func (r *Resolver) TransitMinutes(ctx context.Context, origin, dest domain.Coordinates, departAt time.Time) (int, error) {
	key := cacheKey(origin, dest, departAt)

	entry, err := r.cache.Get(ctx, key)
	if err != nil {
		// A broken cache backend degrades to a provider lookup.
		r.log.Warn().Err(err).Str("key", key).Msg("transit cache read failed")
	}
	if entry != nil && r.fresh(entry, departAt) {
		return entry.DurationMinutes, nil
	}

	req := &pendingRequest{
		origin:   origin,
		dest:     dest,
		departAt: departAt,
		done:     make(chan outcome, 1),
	}

	r.mu.Lock()
	r.queue = append(r.queue, req)
	if !r.armed {
		r.armed = true
		r.debounced(r.dispatch)
	}
	r.mu.Unlock()

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case out := <-req.done:
		return out.minutes, out.err
	}
}

// ClearCache drops all cached entries. In-flight queued requests are not
// affected.
func (r *Resolver) ClearCache(ctx context.Context) error {
	return r.cache.Clear(ctx)
}

// fresh requires both TTL validity and a matching calendar day: durations
// vary with time-of-day traffic, so yesterday's result is stale even inside
// the TTL.
func (r *Resolver) fresh(entry *ports.TransitCacheEntry, departAt time.Time) bool {
	return time.Since(entry.CachedAt) < r.ttl && entry.DepartDay == departDay(departAt)
}

// dispatch drains up to maxBatch queued requests, issues one coalesced
// matrix call over their distinct origins and destinations, caches every
// returned pair and settles each request: resolved when its pair is present,
// rejected individually when absent, all rejected on a provider failure.
func (r *Resolver) dispatch() {
	r.mu.Lock()
	n := len(r.queue)
	if n > r.maxBatch {
		n = r.maxBatch
	}
	batch := r.queue[:n:n]
	r.queue = r.queue[n:]
	r.armed = len(r.queue) > 0
	if r.armed {
		// Leftover requests wait for the next debounce cycle.
		r.debounced(r.dispatch)
	}
	r.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	origins, destinations := coalesce(batch)

	ctx, cancel := context.WithTimeout(context.Background(), r.callTimeout)
	defer cancel()

	results, err := r.provider.Durations(ctx, origins, destinations, batch[0].departAt)
	if err != nil {
		r.log.Error().Err(err).Int("batch", len(batch)).Msg("transit batch dispatch failed")
		for _, req := range batch {
			req.done <- outcome{err: fmt.Errorf("transit lookup: %w", err)}
		}
		return
	}

	for _, req := range batch {
		pair := ports.PairKey(req.origin, req.dest)
		res, ok := results[pair]
		if !ok {
			req.done <- outcome{err: fmt.Errorf("transit lookup: no route for %s", pair)}
			continue
		}

		minutes := int(math.Round(float64(res.DurationSeconds) / 60))
		entry := ports.TransitCacheEntry{
			DurationMinutes: minutes,
			DepartDay:       departDay(req.departAt),
			CachedAt:        time.Now(),
		}
		if err := r.cache.Put(ctx, cacheKey(req.origin, req.dest, req.departAt), entry); err != nil {
			r.log.Warn().Err(err).Str("pair", pair).Msg("transit cache write failed")
		}

		req.done <- outcome{minutes: minutes}
	}
}

// coalesce collects the batch's distinct origins and destinations, keeping
// first-seen order.
func coalesce(batch []*pendingRequest) (origins, destinations []domain.Coordinates) {
	seenO := make(map[string]struct{}, len(batch))
	seenD := make(map[string]struct{}, len(batch))
	for _, req := range batch {
		originKey := ports.CoordKey(req.origin)
		if _, seen := seenO[originKey]; !seen {
			seenO[originKey] = struct{}{}
			origins = append(origins, req.origin)
		}
		destKey := ports.CoordKey(req.dest)
		if _, seen := seenD[destKey]; !seen {
			seenD[destKey] = struct{}{}
			destinations = append(destinations, req.dest)
		}
	}
	return origins, destinations
}

func departDay(t time.Time) string {
	return t.Format("2006-01-02")
}

func cacheKey(origin, dest domain.Coordinates, departAt time.Time) string {
	return ports.PairKey(origin, dest) + "@" + departDay(departAt)
}
