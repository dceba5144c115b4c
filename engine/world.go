package engine

import (
	"reflect"
	"slices"
	"time"

	"github.com/lixenwraith/marble/core"
	"github.com/lixenwraith/marble/status"
)

// World owns every entity's components in per-kind dense and sparse stores
// The set of kinds is open: a store is allocated the first time a kind is inserted
type World struct {
	numEntities int
	// destroyed is a bitset of ids torn down by DestroyEntity
	destroyed []uint64

	// stores maps a component kind to its store for O(1) lookup
	stores map[reflect.Type]AnyStore
	// dense keeps dense stores in registration order for growth on AddEntity
	dense []AnyStore

	// Resources holds singletons shared by systems
	Resources *ResourceStore

	systems []System
}

// NewWorld creates an empty world with the default resources:
// metrics registry, simulated time, physics tunables and goal latch
func NewWorld() *World {
	w := &World{
		stores:    make(map[reflect.Type]AnyStore),
		Resources: NewResourceStore(),
	}
	AddResource(w.Resources, status.NewRegistry())
	AddResource(w.Resources, &TimeResource{})
	AddResource(w.Resources, DefaultPhysicsConfig())
	AddResource(w.Resources, &GoalResource{})
	return w
}

// AddEntity creates an entity with no components and returns its id
// Every dense store grows by one empty slot
func (w *World) AddEntity() core.Entity {
	w.assertUnborrowed("add entity")

	id := core.Entity(w.numEntities)
	w.numEntities++

	for _, s := range w.dense {
		s.PushEmpty()
	}
	return id
}

// NumEntities returns the number of entities ever created since the last Clear
func (w *World) NumEntities() int {
	return w.numEntities
}

// StoreCount returns the number of registered component stores
func (w *World) StoreCount() int {
	return len(w.stores)
}

// DestroyEntity removes the entity's components from every store
// The id is not reused; its dense slots stay allocated and empty and
// attaching components to it afterwards panics
func (w *World) DestroyEntity(e core.Entity) {
	w.checkLive(e)
	w.assertUnborrowed("destroy entity")
	for _, s := range w.stores {
		s.Remove(e)
	}

	word := e.Index() / 64
	if word >= len(w.destroyed) {
		w.destroyed = append(w.destroyed, make([]uint64, word+1-len(w.destroyed))...)
	}
	w.destroyed[word] |= 1 << (e.Index() % 64)
}

// IsDestroyed reports whether e was torn down by DestroyEntity
func (w *World) IsDestroyed(e core.Entity) bool {
	word := e.Index() / 64
	return word < len(w.destroyed) && w.destroyed[word]&(1<<(e.Index()%64)) != 0
}

// Clear drops every store and resets the entity count to 0
// Resources and systems are kept
func (w *World) Clear() {
	w.assertUnborrowed("clear")
	w.numEntities = 0
	w.destroyed = nil
	w.stores = make(map[reflect.Type]AnyStore)
	w.dense = nil
}

func (w *World) checkEntity(e core.Entity) {
	core.Assert(e.Index() < w.numEntities, "entity %d does not exist (%d entities)", e, w.numEntities)
}

func (w *World) checkLive(e core.Entity) {
	w.checkEntity(e)
	core.Assert(!w.IsDestroyed(e), "entity %d was destroyed", e)
}

func (w *World) assertUnborrowed(op string) {
	for t, s := range w.stores {
		core.Assert(!s.Borrowed(), "%s while store %s is borrowed", op, t)
	}
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// AddComponent attaches c to entity e, allocating the store for T on first use
// The store strategy is chosen by c.IsSparse() at that first insertion
func AddComponent[T Component](w *World, e core.Entity, c T) {
	w.checkLive(e)
	key := typeKey[T]()

	if s, ok := w.stores[key]; ok {
		core.Assert(!s.Borrowed(), "add %s to entity %d while borrowed", key, e)
		switch store := s.(type) {
		case *DenseStore[T]:
			store.Set(e, c)
		case *SparseStore[T]:
			store.Set(e, c)
		}
		return
	}

	if c.IsSparse() {
		store := newSparseStore[T](key.String())
		store.Set(e, c)
		w.stores[key] = store
		return
	}

	store := newDenseStore[T](key.String(), w.numEntities)
	store.Set(e, c)
	w.stores[key] = store
	w.dense = append(w.dense, store)
}

// RemoveComponent clears T for entity e only; other kinds are untouched
func RemoveComponent[T Component](w *World, e core.Entity) {
	w.checkEntity(e)
	s, ok := w.stores[typeKey[T]()]
	if !ok {
		return
	}
	core.Assert(!s.Borrowed(), "remove %s from entity %d while borrowed", typeKey[T](), e)
	s.Remove(e)
}

// HasComponent checks if entity e carries T
func HasComponent[T Component](w *World, e core.Entity) bool {
	w.checkEntity(e)
	s, ok := w.stores[typeKey[T]()]
	if !ok {
		return false
	}
	return s.Has(e)
}

// BorrowComponentsMut returns exclusive access to the dense store for T
// Returns false if T was never inserted or is stored sparsely
// The caller must Release the store; borrowing it again before that panics
func BorrowComponentsMut[T Component](w *World) (*DenseStore[T], bool) {
	s, ok := w.stores[typeKey[T]()]
	if !ok {
		return nil, false
	}
	store, ok := s.(*DenseStore[T])
	if !ok {
		return nil, false
	}
	store.acquire()
	return store, true
}

// BorrowComponentsSparseMut returns exclusive access to the sparse store for T
// Returns false if T was never inserted or is stored densely
func BorrowComponentsSparseMut[T Component](w *World) (*SparseStore[T], bool) {
	s, ok := w.stores[typeKey[T]()]
	if !ok {
		return nil, false
	}
	store, ok := s.(*SparseStore[T])
	if !ok {
		return nil, false
	}
	store.acquire()
	return store, true
}

// AddSystem adds a system to the world, keeping systems ordered by priority
func (w *World) AddSystem(system System) {
	w.systems = append(w.systems, system)
	slices.SortStableFunc(w.systems, func(a, b System) int {
		return a.Priority() - b.Priority()
	})
}

// Systems returns a copy of all registered systems
func (w *World) Systems() []System {
	return slices.Clone(w.systems)
}

// Update runs all systems sequentially for one tick
func (w *World) Update(dt time.Duration) {
	for _, system := range w.systems {
		system.Update(dt)
	}
}
