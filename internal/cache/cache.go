// Package cache provides bounded, time-expiring, in-memory cache regions
// for resource snapshots. Reads go through the cache (populate on miss),
// writes replace the cached value, and deletes evict it.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// LoadFunc fetches the authoritative value from the backing store on a
// cache miss.
type LoadFunc[V any] func(ctx context.Context) (V, error)

// Region is a named cache region keyed by resource ID. Entries expire after
// the configured TTL and the least recently used entry is evicted when the
// region is at capacity. All operations are safe for concurrent use.
type Region[V any] struct {
	name   string
	lru    *lru.LRU[uuid.UUID, V]
	logger *slog.Logger

	// mu orders explicit evictions against read-miss population.
	// evictSeq counts Evict calls; GetOrLoad snapshots it before hitting
	// the backing store and only populates the cache if no eviction
	// happened in between. An eviction anywhere in the region suppresses
	// populations loaded before it: a spurious miss is cheaper than a
	// stale hit on a deleted resource.
	mu       sync.Mutex
	evictSeq uint64
}

// NewRegion creates a cache region with the given capacity and TTL.
// If logger is nil, the default logger is used.
func NewRegion[V any](name string, maxEntries int, ttl time.Duration, logger *slog.Logger) *Region[V] {
	if logger == nil {
		logger = slog.Default()
	}

	return &Region[V]{
		name:   name,
		lru:    lru.NewLRU[uuid.UUID, V](maxEntries, nil, ttl),
		logger: logger.With(slog.String("cache_region", name)),
	}
}

// Get returns the cached value for id if present and younger than the TTL.
func (r *Region[V]) Get(id uuid.UUID) (V, bool) {
	return r.lru.Get(id)
}

// Put stores the value for id, replacing any previous entry. Called after
// a successful create or update so subsequent reads see the committed state.
func (r *Region[V]) Put(id uuid.UUID, value V) {
	r.lru.Add(id, value)
}

// Evict removes the entry for id. Called after a delete; a subsequent
// GetOrLoad for the same id is guaranteed to hit the backing store.
func (r *Region[V]) Evict(id uuid.UUID) {
	r.mu.Lock()
	r.evictSeq++
	r.lru.Remove(id)
	r.mu.Unlock()
}

// GetOrLoad returns the cached value for id, falling back to load on a
// miss. A successful load populates the cache before returning, unless an
// eviction occurred while the load was in flight; eviction-on-delete wins
// over concurrent read-miss population.
func (r *Region[V]) GetOrLoad(ctx context.Context, id uuid.UUID, load LoadFunc[V]) (V, error) {
	if value, ok := r.lru.Get(id); ok {
		return value, nil
	}

	r.mu.Lock()
	seq := r.evictSeq
	r.mu.Unlock()

	value, err := load(ctx)
	if err != nil {
		var zero V
		return zero, err
	}

	r.mu.Lock()
	if r.evictSeq == seq {
		r.lru.Add(id, value)
	} else {
		r.logger.Debug("skipping cache population after concurrent eviction",
			"key", id)
	}
	r.mu.Unlock()

	return value, nil
}

// Len reports the number of live entries in the region.
func (r *Region[V]) Len() int {
	return r.lru.Len()
}

// Purge removes all entries from the region.
func (r *Region[V]) Purge() {
	r.mu.Lock()
	r.evictSeq++
	r.lru.Purge()
	r.mu.Unlock()
}
