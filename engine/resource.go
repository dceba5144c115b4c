package engine

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/marble/core"
	"github.com/lixenwraith/marble/parameter"
)

// === World Resources ===

// TimeResource tracks simulated time, advanced once per fixed tick
type TimeResource struct {
	// Tick is the number of ticks simulated since the world was built or restored
	Tick uint64

	// SimTime is the total simulated duration
	SimTime time.Duration

	// DeltaTime is the duration of the last tick
	DeltaTime time.Duration
}

// Advance records one tick of length dt
func (tr *TimeResource) Advance(dt time.Duration) {
	tr.Tick++
	tr.SimTime += dt
	tr.DeltaTime = dt
}

// Reset sets the tick counter, used when restoring a snapshot
func (tr *TimeResource) Reset(tick uint64, tickInterval time.Duration) {
	tr.Tick = tick
	tr.SimTime = time.Duration(tick) * tickInterval
	tr.DeltaTime = 0
}

// PhysicsConfig holds world-level rigid-body tunables
// Scenes override the parameter defaults per level
type PhysicsConfig struct {
	Gravity     mgl32.Vec3
	MaxSpeed    float32
	Friction    float32
	Restitution float32
}

// DefaultPhysicsConfig returns the tunables from the parameter package
func DefaultPhysicsConfig() *PhysicsConfig {
	return &PhysicsConfig{
		Gravity:     mgl32.Vec3{0, -parameter.Gravity, 0},
		MaxSpeed:    parameter.MaxSpeed,
		Friction:    parameter.GroundFriction,
		Restitution: parameter.DefaultRestitution,
	}
}

// GoalResource latches the first body to reach a goal volume
type GoalResource struct {
	Reached bool
	Body    core.Entity
	Goal    core.Entity
	Tick    uint64
}

// Latch records the reach once; later calls are ignored
func (g *GoalResource) Latch(body, goal core.Entity, tick uint64) bool {
	if g.Reached {
		return false
	}
	g.Reached = true
	g.Body = body
	g.Goal = goal
	g.Tick = tick
	return true
}
