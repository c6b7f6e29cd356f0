package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/phrazzld/taskr-api/internal/events"
)

// Memoizer implements get-or-compute over a Cache. Backend failures are
// logged and treated as misses; they never fail the caller.
type Memoizer struct {
	cache  Cache
	group  singleflight.Group
	logger *slog.Logger

	// generation advances on every invalidation. Entries are stored under
	// their generation, so values computed before an invalidation are
	// unreachable after it.
	generation atomic.Uint64

	hits   atomic.Uint64
	misses atomic.Uint64
}

var _ events.EventHandler = (*Memoizer)(nil)

// Stats counts memoizer lookups.
type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

// NewMemoizer wraps c. A nil c disables caching.
func NewMemoizer(c Cache, logger *slog.Logger) *Memoizer {
	if c == nil {
		c = NopCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Memoizer{cache: c, logger: logger.With("component", "memoizer")}
}

// GetOrCompute decodes the cached value for key into dest, or runs compute,
// caches its JSON encoding and decodes that into dest. Concurrent misses on
// the same key share one compute call. Errors from compute are returned
// and not cached.
func (m *Memoizer) GetOrCompute(
	ctx context.Context,
	key string,
	dest any,
	compute func(ctx context.Context) (any, error),
) error {
	gen := m.generation.Load()
	stored := storageKey(gen, key)

	data, ok, err := m.cache.Get(ctx, stored)
	if err != nil {
		m.logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
	}
	if ok {
		if err := json.Unmarshal(data, dest); err == nil {
			m.hits.Add(1)
			return nil
		}
		m.logger.WarnContext(ctx, "discarding undecodable cache entry", "key", key)
	}
	m.misses.Add(1)

	v, err, _ := m.group.Do(stored, func() (any, error) {
		value, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode value for %s: %w", key, err)
		}
		// A write that races an invalidation lands under the old generation
		// and is never read again.
		if m.generation.Load() == gen {
			if err := m.cache.Set(ctx, stored, encoded); err != nil {
				m.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
			}
		}
		return encoded, nil
	})
	if err != nil {
		return err
	}

	return json.Unmarshal(v.([]byte), dest)
}

// storageKey scopes key to an invalidation generation.
func storageKey(gen uint64, key string) string {
	return fmt.Sprintf("%d:%s", gen, key)
}

// InvalidateAll drops every memoized value.
func (m *Memoizer) InvalidateAll(ctx context.Context) error {
	m.generation.Add(1)
	if err := m.cache.InvalidateAll(ctx); err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	return nil
}

// HandleEvent invalidates the cache on any task change.
func (m *Memoizer) HandleEvent(ctx context.Context, event *events.TaskChangedEvent) error {
	m.logger.DebugContext(ctx, "invalidating cache",
		"event_id", event.ID,
		"action", event.Action,
		"task_id", event.TaskID)
	return m.InvalidateAll(ctx)
}

// Stats returns lookup counters.
func (m *Memoizer) Stats() Stats {
	return Stats{Hits: m.hits.Load(), Misses: m.misses.Load()}
}
