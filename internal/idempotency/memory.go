package idempotency

import (
	"context"
	"sync"
	"time"
)

// InMemory provides an in-memory idempotency store with periodic cleanup.
type InMemory struct {
	mu      sync.RWMutex
	entries map[string]*CachedResponse
	ttl     time.Duration

	done      chan struct{}
	closeOnce sync.Once
}

// NewInMemory creates an in-memory idempotency store with the given TTL.
func NewInMemory(ttl time.Duration) *InMemory {
	store := &InMemory{
		entries: make(map[string]*CachedResponse),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	go store.cleanupLoop()
	return store
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (s *InMemory) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}

// Get retrieves a cached response for the given idempotency key.
func (s *InMemory) Get(_ context.Context, key string) (*CachedResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.ExpiresAt) {
		return nil, nil
	}
	return entry, nil
}

// Set stores a response for the given idempotency key.
func (s *InMemory) Set(_ context.Context, key string, response *CachedResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	response.ExpiresAt = time.Now().Add(s.ttl)
	s.entries[key] = response
	return nil
}

// cleanupLoop periodically removes expired entries until Close.
func (s *InMemory) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.done:
			return
		}
	}
}

func (s *InMemory) cleanup() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.entries {
		if now.After(entry.ExpiresAt) {
			delete(s.entries, key)
		}
	}
}
