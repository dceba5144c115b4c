package system

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/marble/component"
	"github.com/lixenwraith/marble/engine"
	"github.com/lixenwraith/marble/parameter"
	"github.com/lixenwraith/marble/status"
)

const diagnosticsSampleInterval = 60

// DiagnosticsSystem samples store sizes and consistency counters into the status registry
type DiagnosticsSystem struct {
	world *engine.World

	tickCounter int64

	// Store counts
	statEntityCount *atomic.Int64
	statStoreCount  *atomic.Int64
	statSphereCount *atomic.Int64
	statPlaneCount  *atomic.Int64
	statGoalCount   *atomic.Int64

	// Consistency checks
	statSphereWithoutMass *atomic.Int64
	statNonPositiveMass   *atomic.Int64
	statKineticEnergy     *status.AtomicFloat
}

// NewDiagnosticsSystem creates a new diagnostics system
func NewDiagnosticsSystem(world *engine.World) engine.System {
	reg := engine.MustGetResource[*status.Registry](world.Resources)

	return &DiagnosticsSystem{
		world: world,

		statEntityCount: reg.Ints.Get("world.entities"),
		statStoreCount:  reg.Ints.Get("world.stores"),
		statSphereCount: reg.Ints.Get("store.body_sphere.count"),
		statPlaneCount:  reg.Ints.Get("store.body_plane.count"),
		statGoalCount:   reg.Ints.Get("store.end_sphere.count"),

		statSphereWithoutMass: reg.Ints.Get("consistency.sphere_without_mass"),
		statNonPositiveMass:   reg.Ints.Get("consistency.non_positive_mass"),
		statKineticEnergy:     reg.Floats.Get("physics.kinetic_energy"),
	}
}

func (s *DiagnosticsSystem) Priority() int {
	return parameter.PriorityMetrics
}

func (s *DiagnosticsSystem) Update(dt time.Duration) {
	s.tickCounter++

	// Sample expensive operations
	if s.tickCounter%diagnosticsSampleInterval != 1 {
		return
	}

	s.statEntityCount.Store(int64(s.world.NumEntities()))
	s.statStoreCount.Store(int64(s.world.StoreCount()))
	s.collectStoreCounts()
	s.collectConsistencyChecks()
}

func (s *DiagnosticsSystem) collectStoreCounts() {
	if spheres, ok := engine.BorrowComponentsSparseMut[component.BodySphere](s.world); ok {
		s.statSphereCount.Store(int64(spheres.Count()))
		spheres.Release()
	}
	if planes, ok := engine.BorrowComponentsMut[component.BodyPlane](s.world); ok {
		s.statPlaneCount.Store(int64(planes.Count()))
		planes.Release()
	}
	if goals, ok := engine.BorrowComponentsSparseMut[component.EndSphere](s.world); ok {
		s.statGoalCount.Store(int64(goals.Count()))
		goals.Release()
	}
}

func (s *DiagnosticsSystem) collectConsistencyChecks() {
	spheres, ok := engine.BorrowComponentsSparseMut[component.BodySphere](s.world)
	if !ok {
		return
	}
	defer spheres.Release()

	masses, ok := engine.BorrowComponentsSparseMut[component.Mass](s.world)
	if !ok {
		s.statSphereWithoutMass.Store(int64(spheres.Count()))
		return
	}
	defer masses.Release()

	var withoutMass, badMass int64
	for e := range spheres.All() {
		m, ok := masses.Get(e)
		if !ok {
			withoutMass++
			continue
		}
		if m.Value <= 0 {
			badMass++
		}
	}
	s.statSphereWithoutMass.Store(withoutMass)
	s.statNonPositiveMass.Store(badMass)

	velocities, ok := engine.BorrowComponentsSparseMut[component.Velocity](s.world)
	if !ok {
		return
	}
	defer velocities.Release()

	// ½·m·v² over bodies carrying both
	var energy float64
	for e, v := range velocities.All() {
		if m, ok := masses.Get(e); ok {
			energy += 0.5 * float64(m.Value) * float64(v.LenSqr())
		}
	}
	s.statKineticEnergy.Set(energy)
}
