package cache

import (
	"sync"
)

// Slot is a single-slot cache for one loaded collection snapshot. It is owned
// by the collection-access layer: reads may serve the cached snapshot, and
// every write to the backing collection must call Invalidate before the write
// call returns.
type Slot[T any] struct {
	mu    sync.Mutex
	value T
	valid bool
}

// NewSlot returns an empty slot.
func NewSlot[T any]() *Slot[T] {
	return &Slot[T]{}
}

// Get returns the cached value and whether the slot currently holds one.
func (s *Slot[T]) Get() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.value, s.valid
}

// Set stores a snapshot in the slot.
func (s *Slot[T]) Set(value T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = value
	s.valid = true
}

// Invalidate empties the slot. Safe to call on an already-empty slot.
func (s *Slot[T]) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	s.value = zero
	s.valid = false
}
