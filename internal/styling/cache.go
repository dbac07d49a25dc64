// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// cache.go defines the stylesheet cache abstraction and an in-memory
// implementation. Cached stylesheets are pure derivations of durable store
// state, so the whole cache is safely discardable at any time; correctness
// only requires that entries for a form disappear when its overrides change.
package styling

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultStylesheetTTL is how long a generated stylesheet stays cached
// when no override write invalidates it first.
const DefaultStylesheetTTL = 5 * time.Minute

// Cache memoizes generated stylesheets keyed by (catalog, form id).
// Implementations must tolerate concurrent use; last-write-wins per key is
// sufficient. Get/Put failures in remote implementations are logged, not
// surfaced; a failed invalidation merely risks serving a stale stylesheet
// until the TTL elapses.
type Cache interface {
	Get(ctx context.Context, catalog Catalog, formID uuid.UUID) (string, bool)
	Put(ctx context.Context, catalog Catalog, formID uuid.UUID, css string)

	// Invalidate removes the entries for both catalogs of one form.
	Invalidate(ctx context.Context, formID uuid.UUID)

	// InvalidateAll clears everything. Operational/debug resets only.
	InvalidateAll(ctx context.Context)
}

// memoryKey identifies one cached stylesheet.
type memoryKey struct {
	catalog Catalog
	formID  uuid.UUID
}

// memoryEntry holds a stylesheet and its creation time for TTL checks.
type memoryEntry struct {
	css       string
	createdAt time.Time
}

// MemoryCache is a process-local Cache backed by a mutex-guarded map.
// Entries older than the TTL are treated as absent on read and removed
// lazily. Used in tests and as a fallback when Valkey is not configured.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[memoryKey]memoryEntry
	ttl     time.Duration

	// now is swappable so tests can control entry age.
	now func() time.Time
}

// NewMemoryCache creates an empty in-memory stylesheet cache. A zero ttl
// falls back to DefaultStylesheetTTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl == 0 {
		ttl = DefaultStylesheetTTL
	}
	return &MemoryCache{
		entries: make(map[memoryKey]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached stylesheet, or false on a miss or expired entry.
func (c *MemoryCache) Get(_ context.Context, catalog Catalog, formID uuid.UUID) (string, bool) {
	key := memoryKey{catalog: catalog, formID: formID}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", false
	}
	if c.now().Sub(entry.createdAt) > c.ttl {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", false
	}
	return entry.css, true
}

// Put stores a stylesheet with the current timestamp, overwriting any
// prior entry for the key.
func (c *MemoryCache) Put(_ context.Context, catalog Catalog, formID uuid.UUID, css string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[memoryKey{catalog: catalog, formID: formID}] = memoryEntry{
		css:       css,
		createdAt: c.now(),
	}
}

// Invalidate removes every entry referencing the form, both catalogs.
func (c *MemoryCache) Invalidate(_ context.Context, formID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, memoryKey{catalog: CatalogLegacy, formID: formID})
	delete(c.entries, memoryKey{catalog: CatalogTokens, formID: formID})
}

// InvalidateAll clears the cache.
func (c *MemoryCache) InvalidateAll(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[memoryKey]memoryEntry)
}
