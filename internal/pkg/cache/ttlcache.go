// Package cache provides a generic single-use-per-key TTL cache on top of
// ristretto, adapted from the donor's internal/pkg/cache.Cache. The donor's
// Redis pub/sub cross-instance invalidation is deliberately not carried over:
// spec.md explicitly scopes the core's shared state to a single process
// ("does not gossip chains between hosts").
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"golang.org/x/sync/singleflight"
)

// entry is what TTLCache actually stores: the value plus a used flag so a
// key can be consumed exactly once even though ristretto itself has no
// native "pop" operation.
type entry[V any] struct {
	value     V
	used      bool
	expiresAt time.Time
}

// TTLCache is a single-process, single-use-per-key cache with a time-to-live
// per entry. It backs the entropy oracle's pending house-seed store
// (spec.md §4.2's cache semantics: "single-use per sessionId, TTL >= 60s").
type TTLCache[V any] struct {
	mu    sync.Mutex
	local *ristretto.Cache[string, *entry[V]]
	// Group deduplicates concurrent population of the same key, mirroring
	// the donor's Cache.Group (golang.org/x/sync/singleflight) so two
	// racing PreCommit calls for the same session never both mint a house
	// seed.
	Group singleflight.Group
}

// New creates a new TTLCache.
func New[V any]() *TTLCache[V] {
	local, err := ristretto.NewCache(&ristretto.Config[string, *entry[V]]{
		NumCounters: 1e5,
		MaxCost:     1 << 24, // ~16MB, ample for seed-sized payloads
		BufferItems: 64,
	})
	if err != nil {
		panic(fmt.Sprintf("cache: failed to construct ristretto cache: %v", err))
	}
	return &TTLCache[V]{local: local}
}

// Put inserts value under key with the given TTL. TTL must be >= 0; a zero
// TTL means "use the cache's default" is NOT supported here — callers must
// always pass a concrete TTL, since spec.md requires TTL >= 60s to be an
// explicit, auditable choice.
func (c *TTLCache[V]) Put(key string, value V, ttl time.Duration) {
	e := &entry[V]{value: value, expiresAt: time.Now().Add(ttl)}
	c.local.SetWithTTL(key, e, 1, ttl)
	c.local.Wait()
}

// Consume retrieves and marks key used in one atomic step. It returns
// (value, true) exactly once per key: a second Consume on the same key, or a
// Consume after expiry, returns (zero, false). This is the cache's
// single-use contract (spec.md §4.2: "A reveal consumes the entry;
// subsequent calls fail").
func (c *TTLCache[V]) Consume(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, found := c.local.Get(key)
	if !found {
		return zero, false
	}
	if e.used || time.Now().After(e.expiresAt) {
		c.local.Del(key)
		return zero, false
	}
	e.used = true
	c.local.Del(key)
	return e.value, true
}

// Peek returns the value for key without consuming it, and whether it is
// still present and unexpired. Used for diagnostics only.
func (c *TTLCache[V]) Peek(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, found := c.local.Get(key)
	if !found || e.used || time.Now().After(e.expiresAt) {
		return zero, false
	}
	return e.value, true
}

// Delete removes key unconditionally.
func (c *TTLCache[V]) Delete(key string) {
	c.local.Del(key)
}

// Close releases the underlying ristretto cache's background resources.
func (c *TTLCache[V]) Close() {
	c.local.Close()
}
