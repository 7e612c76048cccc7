package utils

import (
	"sync"
	"time"
)

type ttlEntry[V any] struct {
	value   V
	expires time.Time
}

// TTLMap is a concurrent map whose entries expire ttl after their last write or GetOrSet.
// A background sweep drops expired entries until Close is called.
type TTLMap[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]ttlEntry[V]
	ttl     time.Duration
	stop    chan struct{}
	stopped sync.Once
}

// NewTTLMap starts a map with the given entry lifetime.
func NewTTLMap[K comparable, V any](ttl time.Duration) *TTLMap[K, V] {
	m := &TTLMap[K, V]{
		entries: make(map[K]ttlEntry[V]),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go m.sweep()
	return m
}

// Get returns the value for key if it has not expired.
func (m *TTLMap[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || time.Now().After(e.expires) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// GetOrSet returns the live value for key, storing the result of create when there is none.
// Either way the entry's lifetime is extended.
func (m *TTLMap[K, V]) GetOrSet(key K, create func() V) V {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	e, ok := m.entries[key]
	if !ok || now.After(e.expires) {
		e.value = create()
	}
	e.expires = now.Add(m.ttl)
	m.entries[key] = e

	return e.value
}

func (m *TTLMap[K, V]) Set(key K, value V) {
	m.mu.Lock()
	m.entries[key] = ttlEntry[V]{value: value, expires: time.Now().Add(m.ttl)}
	m.mu.Unlock()
}

func (m *TTLMap[K, V]) Delete(key K) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// Len counts stored entries, including expired ones the sweep has not reached yet.
func (m *TTLMap[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Close stops the sweep. The map stays usable.
func (m *TTLMap[K, V]) Close() {
	m.stopped.Do(func() { close(m.stop) })
}

func (m *TTLMap[K, V]) sweep() {
	ticker := time.NewTicker(m.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for key, e := range m.entries {
				if now.After(e.expires) {
					delete(m.entries, key)
				}
			}
			m.mu.Unlock()
		}
	}
}
