package core

// Entity is an opaque identity grouping zero or more components
// Ids are assigned sequentially by the World and double as dense store indices
type Entity uint32

// Index returns the entity as a dense slot index
func (e Entity) Index() int {
	return int(e)
}
