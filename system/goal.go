package system

import (
	"log"
	"time"

	"github.com/lixenwraith/marble/component"
	"github.com/lixenwraith/marble/core"
	"github.com/lixenwraith/marble/engine"
	"github.com/lixenwraith/marble/geom"
	"github.com/lixenwraith/marble/parameter"
	"github.com/lixenwraith/marble/physics"
)

// GoalSystem detects a body sphere entering a goal sphere and latches GoalResource
type GoalSystem struct {
	world *engine.World
	goal  *engine.GoalResource
	clock *engine.TimeResource

	bodyIDs  []core.Entity
	goalIDs  []core.Entity
	bodies   []geom.Sphere
	goals    []geom.Sphere
	contacts []physics.Contact
}

// NewGoalSystem creates the goal detection system
func NewGoalSystem(world *engine.World) engine.System {
	return &GoalSystem{
		world: world,
		goal:  engine.MustGetResource[*engine.GoalResource](world.Resources),
		clock: engine.MustGetResource[*engine.TimeResource](world.Resources),
	}
}

// Priority returns the system's priority
func (s *GoalSystem) Priority() int {
	return parameter.PriorityGoal
}

// Update checks for overlap once bodies have moved this tick
func (s *GoalSystem) Update(dt time.Duration) {
	if s.goal.Reached {
		return
	}

	spheres, ok := engine.BorrowComponentsSparseMut[component.BodySphere](s.world)
	if !ok {
		return
	}
	defer spheres.Release()

	ends, ok := engine.BorrowComponentsSparseMut[component.EndSphere](s.world)
	if !ok {
		return
	}
	defer ends.Release()

	s.bodyIDs, s.bodies = s.bodyIDs[:0], s.bodies[:0]
	for e, b := range spheres.All() {
		s.bodyIDs = append(s.bodyIDs, e)
		s.bodies = append(s.bodies, b.Sphere)
	}
	s.goalIDs, s.goals = s.goalIDs[:0], s.goals[:0]
	for e, g := range ends.All() {
		s.goalIDs = append(s.goalIDs, e)
		s.goals = append(s.goals, g.Sphere)
	}

	s.contacts = s.contacts[:0]
	physics.GatherContactsAB(s.bodies, s.goals, &s.contacts)
	if len(s.contacts) == 0 {
		return
	}

	c := s.contacts[0]
	if s.goal.Latch(s.bodyIDs[c.A], s.goalIDs[c.B], s.clock.Tick) {
		log.Printf("goal: body %d reached goal %d at tick %d", s.goal.Body, s.goal.Goal, s.goal.Tick)
	}
}
