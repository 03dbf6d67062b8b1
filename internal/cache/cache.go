// Package cache memoizes search results for a short window so repeated
// searches for the same area do not keep hammering the geodata backends.
package cache

import (
	"fmt"
	"strings"
	"time"

	"github.com/UnknownOlympus/beacon/internal/category"
	"github.com/UnknownOlympus/beacon/internal/models"
	gocache "github.com/patrickmn/go-cache"
)

// DefaultTTL is how long a cached result set stays valid.
const DefaultTTL = 5 * time.Minute

// Store is the result cache the orchestrator depends on. It is an
// interface so the in-memory implementation can be swapped for a
// distributed cache without touching the orchestrator.
type Store interface {
	Get(key string) ([]models.ServiceRecord, bool)
	Put(key string, results []models.ServiceRecord)
}

// MemoryStore is a process-wide, time-bounded in-memory Store. It is safe
// for concurrent use by multiple in-flight searches. Entries expire lazily:
// there is no eviction goroutine, an expired entry is simply treated as
// absent and overwritten on the next miss.
type MemoryStore struct {
	entries *gocache.Cache
}

// NewMemoryStore creates a store with the default TTL.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithTTL(DefaultTTL)
}

// NewMemoryStoreWithTTL creates a store with a custom TTL. A zero cleanup
// interval disables the janitor; expiry stays lazy.
func NewMemoryStoreWithTTL(ttl time.Duration) *MemoryStore {
	return &MemoryStore{entries: gocache.New(ttl, 0)}
}

// Get returns the cached results for the key, or false when the key is
// absent or its entry has outlived the TTL.
func (m *MemoryStore) Get(key string) ([]models.ServiceRecord, bool) {
	value, found := m.entries.Get(key)
	if !found {
		return nil, false
	}

	results, ok := value.([]models.ServiceRecord)
	return results, ok
}

// Put stores the results under the key with a fresh timestamp,
// unconditionally overwriting any existing entry.
func (m *MemoryStore) Put(key string, results []models.ServiceRecord) {
	m.entries.SetDefault(key, results)
}

// Key derives the deterministic cache key for a query. Coordinates are
// rounded to three decimals (roughly a 111m grid) so near-duplicate
// searches share an entry; free text is lowercased and trimmed; a missing
// category normalizes to "all".
func Key(q models.SearchQuery) string {
	cat := q.Category
	if cat == "" {
		cat = category.All
	}
	text := strings.ToLower(strings.TrimSpace(q.Query))

	return fmt.Sprintf("%.3f:%.3f:%s:%s:%g", q.Point.Latitude, q.Point.Longitude, cat, text, q.RadiusKm)
}
