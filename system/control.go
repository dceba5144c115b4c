package system

import (
	"time"

	"github.com/lixenwraith/marble/component"
	"github.com/lixenwraith/marble/engine"
	"github.com/lixenwraith/marble/parameter"
	"github.com/lixenwraith/marble/physics"
)

// ControlSystem tilts every plane carrying a Control component
type ControlSystem struct {
	world *engine.World
	speed float32
}

// NewControlSystem creates the plane control system
func NewControlSystem(world *engine.World) engine.System {
	return &ControlSystem{
		world: world,
		speed: parameter.PlaneRotSpeed,
	}
}

// Priority returns the system's priority
func (s *ControlSystem) Priority() int {
	return parameter.PriorityControl
}

// Update applies the current control axes for one tick
func (s *ControlSystem) Update(dt time.Duration) {
	controls, ok := engine.BorrowComponentsMut[component.Control](s.world)
	if !ok {
		return
	}
	defer controls.Release()

	planes, ok := engine.BorrowComponentsMut[component.BodyPlane](s.world)
	if !ok {
		return
	}
	defer planes.Release()

	step := float32(dt.Seconds())
	for e, ctrl := range controls.All() {
		p := planes.Ptr(e)
		if p == nil {
			continue
		}
		p.Plane = physics.TiltPlane(p.Plane, ctrl.Axis, s.speed, step)
	}
}
