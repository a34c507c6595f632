// Package cache provides a single-value TTL cache for the upstream ticketing
// snapshot. TTL and clock are injected so expiry is testable; the cache is
// owned by the fetch path and never by the classifier, which stays pure.
package cache

import (
	"sync"
	"time"

	"github.com/silversons/circus-site/internal/clock"
)

// Snapshot caches one value of type T for a fixed TTL.
// Safe for concurrent use.
type Snapshot[T any] struct {
	clock clock.Clock
	ttl   time.Duration

	mu        sync.RWMutex
	value     T
	populated bool
	expiresAt time.Time
}

// New constructs an empty Snapshot with the given TTL.
// A non-positive TTL disables caching: Get never reports fresh.
func New[T any](ttl time.Duration, clk clock.Clock) *Snapshot[T] {
	return &Snapshot[T]{clock: clk, ttl: ttl}
}

// Get returns the cached value and whether it is still fresh.
func (s *Snapshot[T]) Get() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.populated || !s.clock.Now().Before(s.expiresAt) {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Stale returns the cached value even after expiry, and whether any value has
// ever been stored. Used as a fallback when a refresh fails: showing
// yesterday's tour data beats showing an error page.
func (s *Snapshot[T]) Stale() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.populated {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Set stores a value and restarts the TTL.
func (s *Snapshot[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
	s.populated = true
	s.expiresAt = s.clock.Now().Add(s.ttl)
}
