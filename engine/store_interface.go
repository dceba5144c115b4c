package engine

import (
	"github.com/lixenwraith/marble/core"
)

// AnyStore provides type-erased operations for lifecycle management
// World holds every store through this interface and recovers the typed
// store with a type assertion in the generic accessors
type AnyStore interface {
	// PushEmpty grows the store by one empty slot for a newly created entity
	PushEmpty()

	// Remove clears the entity's component, if any
	Remove(e core.Entity)

	// Has checks if an entity has this component
	Has(e core.Entity) bool

	// Count returns the number of entities holding this component
	Count() int

	// Borrowed reports whether an exclusive borrow is outstanding
	Borrowed() bool
}
