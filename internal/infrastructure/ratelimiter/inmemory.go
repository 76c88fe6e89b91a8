package ratelimiter

import (
	"context"
	"sync"
	"time"
)

const sweepInterval = time.Minute

type bucketEntry struct {
	value    int
	deadline time.Time // zero means no expiry
}

func (e bucketEntry) expired(at time.Time) bool {
	return !e.deadline.IsZero() && !at.Before(e.deadline)
}

// InMemory is a process-local bucket store. Expiry is judged by the clock it
// was built with, so it agrees with the limiter's refill arithmetic.
type InMemory struct {
	mu      sync.RWMutex
	entries map[string]bucketEntry
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewInMemory starts a sweeper that lives until ctx is done or Close is
// called. A nil now uses time.Now.
func NewInMemory(ctx context.Context, now func() time.Time) *InMemory {
	if now == nil {
		now = time.Now
	}

	m := &InMemory{
		entries: make(map[string]bucketEntry),
		now:     now,
		stop:    make(chan struct{}),
	}
	go m.sweep(ctx)

	return m
}

func (m *InMemory) Get(key string) (int, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || entry.expired(m.now()) {
		return 0, ErrCacheMiss
	}

	return entry.value, nil
}

func (m *InMemory) Set(key string, value int) error {
	return m.SetWithExpiration(key, value, 0)
}

func (m *InMemory) SetWithExpiration(key string, value int, ttl time.Duration) error {
	entry := bucketEntry{value: value}
	if ttl > 0 {
		entry.deadline = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()

	return nil
}

// Len counts stored entries, expired ones included until the next sweep.
func (m *InMemory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *InMemory) sweep(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.removeExpired()
		case <-m.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (m *InMemory) removeExpired() {
	at := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, entry := range m.entries {
		if entry.expired(at) {
			delete(m.entries, key)
		}
	}
}

func (m *InMemory) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })
	return nil
}
