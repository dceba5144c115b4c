package engine

import (
	"iter"

	"github.com/lixenwraith/marble/core"
)

// DenseStore holds one optional slot per entity
// Length tracks the world's entity count; slots are indexed by entity id
type DenseStore[T any] struct {
	borrowGuard
	slots   []T
	present []bool
	count   int
}

// newDenseStore creates a store pre-sized with n empty slots
func newDenseStore[T any](name string, n int) *DenseStore[T] {
	return &DenseStore[T]{
		borrowGuard: borrowGuard{name: name},
		slots:       make([]T, n),
		present:     make([]bool, n),
	}
}

// PushEmpty appends an empty slot
func (s *DenseStore[T]) PushEmpty() {
	var zero T
	s.slots = append(s.slots, zero)
	s.present = append(s.present, false)
}

// Len returns the number of slots, equal to the world's entity count
func (s *DenseStore[T]) Len() int {
	return len(s.slots)
}

// Count returns the number of occupied slots
func (s *DenseStore[T]) Count() int {
	return s.count
}

func (s *DenseStore[T]) check(e core.Entity) int {
	i := e.Index()
	core.Assert(i >= 0 && i < len(s.slots), "entity %d out of range for dense store %s (len %d)", e, s.name, len(s.slots))
	return i
}

// Get returns the component for e and whether the slot is occupied
func (s *DenseStore[T]) Get(e core.Entity) (T, bool) {
	i := s.check(e)
	return s.slots[i], s.present[i]
}

// Ptr returns a pointer into the slot for in-place mutation, nil if empty
func (s *DenseStore[T]) Ptr(e core.Entity) *T {
	i := s.check(e)
	if !s.present[i] {
		return nil
	}
	return &s.slots[i]
}

// Has checks if the slot for e is occupied
func (s *DenseStore[T]) Has(e core.Entity) bool {
	return s.present[s.check(e)]
}

// Set overwrites the slot for e
func (s *DenseStore[T]) Set(e core.Entity, val T) {
	i := s.check(e)
	if !s.present[i] {
		s.count++
	}
	s.slots[i] = val
	s.present[i] = true
}

// Remove empties the slot for e
func (s *DenseStore[T]) Remove(e core.Entity) {
	i := s.check(e)
	if s.present[i] {
		s.count--
	}
	var zero T
	s.slots[i] = zero
	s.present[i] = false
}

// All iterates occupied slots in entity order
func (s *DenseStore[T]) All() iter.Seq2[core.Entity, *T] {
	return func(yield func(core.Entity, *T) bool) {
		for i := range s.slots {
			if !s.present[i] {
				continue
			}
			if !yield(core.Entity(i), &s.slots[i]) {
				return
			}
		}
	}
}
