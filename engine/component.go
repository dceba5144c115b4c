package engine

// Component is implemented by every value attachable to an entity
// IsSparse selects the backing store the first time a kind is inserted:
// dense slots for kinds most entities carry, a map for rare ones
type Component interface {
	IsSparse() bool
}
