package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/nashiko-dev/gomuse/internal/domain/model"
	"github.com/nashiko-dev/gomuse/internal/infrastructure/metrics"
)

// Memory is the default in-process ResponseCache. Expiration is lazy: entries
// are checked on read and never swept in the background, which is fine for the
// dozens-to-hundreds of entries a single-user client accumulates.
//
// All methods are safe for concurrent use. Errors are always nil; the error
// returns exist only to satisfy ResponseCache.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]model.CacheEntry

	// now is the clock used for expiry checks, replaceable in tests.
	now func() time.Time
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]model.CacheEntry),
		now:     time.Now,
	}
}

// Get returns the payload for key if present and not expired.
// An expired entry is purged on the spot and reported as a miss.
func (m *Memory) Get(_ context.Context, key string) (model.Value, bool, error) {
	// One timestamp per call so the hit/purge decision stays consistent.
	now := m.now()

	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss, metrics.CacheTypeMemory).Inc()
		return model.Value{}, false, nil
	}

	if entry.IsExpiredAt(now) {
		m.mu.Lock()
		// Re-check under the write lock: a Set may have refreshed the entry.
		if cur, ok := m.entries[key]; ok && cur.IsExpiredAt(now) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss, metrics.CacheTypeMemory).Inc()
		return model.Value{}, false, nil
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit, metrics.CacheTypeMemory).Inc()
	return entry.Payload, true, nil
}

// Set stores or overwrites the entry for key, resetting its timestamp.
func (m *Memory) Set(_ context.Context, key string, payload model.Value, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[key] = model.CacheEntry{
		Payload:   payload,
		CreatedAt: m.now(),
		TTL:       ttl,
	}
	m.mu.Unlock()

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusSuccess, metrics.CacheTypeMemory).Inc()
	return nil
}

// Invalidate removes every entry whose key starts with prefix.
// Linear scan; no secondary index is worth it at this cache's size.
func (m *Memory) Invalidate(_ context.Context, prefix string) error {
	m.mu.Lock()
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	m.mu.Unlock()

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpInvalidate, metrics.CacheStatusSuccess, metrics.CacheTypeMemory).Inc()
	return nil
}

// InvalidateAll removes every entry.
func (m *Memory) InvalidateAll(_ context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]model.CacheEntry)
	m.mu.Unlock()

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpInvalidate, metrics.CacheStatusSuccess, metrics.CacheTypeMemory).Inc()
	return nil
}

// Len reports the number of stored entries, expired or not.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
