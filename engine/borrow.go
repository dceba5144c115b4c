package engine

import (
	"github.com/lixenwraith/marble/core"
)

// borrowGuard is the per-store exclusive access flag
// A second borrow before Release is a contract violation and panics
type borrowGuard struct {
	name string
	held bool
}

func (g *borrowGuard) acquire() {
	core.Assert(!g.held, "store %s is already borrowed", g.name)
	g.held = true
}

// Release ends the exclusive borrow obtained from the World
func (g *borrowGuard) Release() {
	core.Assert(g.held, "release of store %s without a borrow", g.name)
	g.held = false
}

// Borrowed reports whether an exclusive borrow is outstanding
func (g *borrowGuard) Borrowed() bool {
	return g.held
}
