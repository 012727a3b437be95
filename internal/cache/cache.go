// Package cache provides the key-value cache abstraction used for OAuth
// tokens and exchange rates. Entries carry a TTL; expired entries behave
// as absent. The in-memory implementation is safe for concurrent use
// with last-writer-wins semantics per key.
package cache

import (
	"sync"
	"time"
)

// Cache is a TTL'd string key-value store.
type Cache interface {
	// Get returns the value for key, or false when the key is absent
	// or its entry has expired.
	Get(key string) (string, bool)
	// Set stores value under key for ttl. A non-positive ttl stores an
	// already-expired entry, making the write a no-op for readers.
	Set(key, value string, ttl time.Duration)
	// Delete removes the entry for key if present.
	Delete(key string)
}

type entry struct {
	value     string
	expiresAt time.Time
}

// Memory is an in-process Cache backed by a mutex-guarded map. A
// janitor goroutine sweeps expired entries periodically so abandoned
// keys do not accumulate.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	nowFunc func() time.Time
	done    chan struct{}
	once    sync.Once
}

// MemoryOption configures a Memory cache.
type MemoryOption func(*Memory)

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) MemoryOption {
	return func(m *Memory) {
		m.nowFunc = f
	}
}

// NewMemory creates an in-memory cache. When janitorInterval is
// positive, a background sweep removes expired entries on that
// interval; call Close to stop it.
func NewMemory(janitorInterval time.Duration, opts ...MemoryOption) *Memory {
	m := &Memory{
		entries: make(map[string]entry),
		nowFunc: time.Now,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	if janitorInterval > 0 {
		go m.janitor(janitorInterval)
	}

	return m
}

// Get implements Cache.
func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || m.nowFunc().After(e.expiresAt) {
		return "", false
	}
	return e.value, true
}

// Set implements Cache.
func (m *Memory) Set(key, value string, ttl time.Duration) {
	m.mu.Lock()
	m.entries[key] = entry{
		value:     value,
		expiresAt: m.nowFunc().Add(ttl),
	}
	m.mu.Unlock()
}

// Delete implements Cache.
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Close stops the janitor goroutine. Safe to call more than once.
func (m *Memory) Close() {
	m.once.Do(func() {
		close(m.done)
	})
}

func (m *Memory) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *Memory) sweep() {
	now := m.nowFunc()

	m.mu.Lock()
	for k, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, k)
		}
	}
	m.mu.Unlock()
}
