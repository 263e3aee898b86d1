// Package cache provides single-value TTL slots for the fetch pipeline.
package cache

import (
	"sync"
	"time"
)

// Slot caches one value for a TTL. Get holds the slot lock across the fill
// function, so at most one recomputation is in flight and concurrent callers
// block until it stores. The time source is injectable so expiry behavior is
// testable without sleeping.
type Slot[T any] struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	value    T
	storedAt time.Time
}

// NewSlot returns an empty slot with the given TTL.
func NewSlot[T any](ttl time.Duration) *Slot[T] {
	return &Slot[T]{ttl: ttl, now: time.Now}
}

// WithNow overrides the slot's time source.
func (s *Slot[T]) WithNow(now func() time.Time) *Slot[T] {
	s.now = now
	return s
}

// Get returns the cached value while it is younger than the TTL, otherwise
// runs fill and stores its result with a fresh timestamp. A fill error leaves
// the slot unchanged and is returned to the caller.
func (s *Slot[T]) Get(fill func() (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.storedAt.IsZero() && s.now().Sub(s.storedAt) < s.ttl {
		return s.value, nil
	}

	v, err := fill()
	if err != nil {
		var zero T
		return zero, err
	}
	s.value = v
	s.storedAt = s.now()
	return v, nil
}

// Expire force-ages the slot so the next Get recomputes.
func (s *Slot[T]) Expire() {
	s.mu.Lock()
	s.storedAt = time.Time{}
	s.mu.Unlock()
}

// Age reports how old the cached value is. It returns 0 when the slot has
// never been filled.
func (s *Slot[T]) Age() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.storedAt.IsZero() {
		return 0
	}
	return s.now().Sub(s.storedAt)
}
