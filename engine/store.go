package engine

import (
	"iter"
	"slices"

	"github.com/lixenwraith/marble/core"
)

// SparseStore is a map-backed container for component kinds held by few entities
// Entities are kept in insertion order so iteration is deterministic
type SparseStore[T any] struct {
	borrowGuard
	components map[core.Entity]T
	entities   []core.Entity
}

// newSparseStore creates an empty sparse store
func newSparseStore[T any](name string) *SparseStore[T] {
	return &SparseStore[T]{
		borrowGuard: borrowGuard{name: name},
		components:  make(map[core.Entity]T),
		entities:    make([]core.Entity, 0, 16),
	}
}

// PushEmpty is a no-op, sparse stores have no per-entity slots
func (s *SparseStore[T]) PushEmpty() {}

// Set inserts or updates a component for an entity
func (s *SparseStore[T]) Set(e core.Entity, val T) {
	if _, exists := s.components[e]; !exists {
		s.entities = append(s.entities, e)
	}
	s.components[e] = val
}

// Get retrieves a component for an entity
func (s *SparseStore[T]) Get(e core.Entity) (T, bool) {
	val, ok := s.components[e]
	return val, ok
}

// MustGet retrieves a component that the caller knows is present
func (s *SparseStore[T]) MustGet(e core.Entity) T {
	val, ok := s.components[e]
	core.Assert(ok, "entity %d has no %s", e, s.name)
	return val
}

// Remove deletes the component for an entity
func (s *SparseStore[T]) Remove(e core.Entity) {
	if _, exists := s.components[e]; !exists {
		return
	}
	delete(s.components, e)
	if i := slices.Index(s.entities, e); i >= 0 {
		s.entities = slices.Delete(s.entities, i, i+1)
	}
}

// Has checks if entity has this component
func (s *SparseStore[T]) Has(e core.Entity) bool {
	_, ok := s.components[e]
	return ok
}

// Count returns number of entities with this component
func (s *SparseStore[T]) Count() int {
	return len(s.entities)
}

// Entities returns a copy of the entity list in insertion order
func (s *SparseStore[T]) Entities() []core.Entity {
	return slices.Clone(s.entities)
}

// All iterates entries in insertion order
func (s *SparseStore[T]) All() iter.Seq2[core.Entity, T] {
	return func(yield func(core.Entity, T) bool) {
		for _, e := range s.entities {
			if !yield(e, s.components[e]) {
				return
			}
		}
	}
}
