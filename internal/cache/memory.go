// Package cache provides the two caching tiers in front of the question
// fetch path: an in-process TTL cache and a durable offline snapshot
// store.
package cache

import (
	"sync"
	"time"
)

// Memory is an in-process TTL cache. Safe for concurrent use; reads on
// distinct keys never block each other behind writes.
type Memory[T any] struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry[T]
	ttl     time.Duration
	now     func() time.Time

	hits   int64
	misses int64
}

type memoryEntry[T any] struct {
	value     T
	cachedAt  time.Time
	expiresAt time.Time
}

// NewMemory creates a Memory cache with the given TTL.
func NewMemory[T any](ttl time.Duration) *Memory[T] {
	return &Memory[T]{
		entries: make(map[string]memoryEntry[T]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// WithClock overrides the clock, for tests.
func (m *Memory[T]) WithClock(now func() time.Time) *Memory[T] {
	m.now = now
	return m
}

// Get returns the cached value. An expired entry is never returned; it
// counts as a miss and is left for the sweeper.
func (m *Memory[T]) Get(key string) (T, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || m.now().After(e.expiresAt) {
		m.mu.Lock()
		m.misses++
		m.mu.Unlock()
		var zero T
		return zero, false
	}

	m.mu.Lock()
	m.hits++
	m.mu.Unlock()
	return e.value, true
}

// Set stores the value under key with the cache TTL.
func (m *Memory[T]) Set(key string, value T) {
	now := m.now()
	m.mu.Lock()
	m.entries[key] = memoryEntry[T]{
		value:     value,
		cachedAt:  now,
		expiresAt: now.Add(m.ttl),
	}
	m.mu.Unlock()
}

// Delete removes key.
func (m *Memory[T]) Delete(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// Clear drops all entries and resets counters.
func (m *Memory[T]) Clear() {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry[T])
	m.hits, m.misses = 0, 0
	m.mu.Unlock()
}

// SweepExpired removes expired entries and returns how many were dropped.
// The lock is held only for the single pass.
func (m *Memory[T]) SweepExpired() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	dropped := 0
	for k, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, k)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of stored entries, expired or not.
func (m *Memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// HitRate returns hits/(hits+misses), or 0 before any lookup.
func (m *Memory[T]) HitRate() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := m.hits + m.misses
	if total == 0 {
		return 0
	}
	return float64(m.hits) / float64(total)
}
