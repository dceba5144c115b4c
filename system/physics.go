package system

import (
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/marble/component"
	"github.com/lixenwraith/marble/core"
	"github.com/lixenwraith/marble/engine"
	"github.com/lixenwraith/marble/geom"
	"github.com/lixenwraith/marble/parameter"
	"github.com/lixenwraith/marble/physics"
	"github.com/lixenwraith/marble/status"
)

// PhysicsSystem advances every rigid body by one fixed tick
// Store state is flattened into parallel slices, integrated, resolved against
// static planes then against other bodies, and written back
type PhysicsSystem struct {
	world *engine.World
	cfg   *engine.PhysicsConfig

	// Per-tick scratch, reused across ticks
	entities   []core.Entity
	bodies     []geom.Sphere
	velocities []mgl32.Vec3
	momenta    []mgl32.Vec3
	masses     []float32
	planes     []geom.Plane
	contacts   []physics.Contact
	touched    []bool

	// Cached metric pointers
	statBodies          *atomic.Int64
	statStaticContacts  *atomic.Int64
	statDynamicContacts *atomic.Int64
	statMaxDepth        *status.AtomicFloat
	statPeakDepth       *status.AtomicFloat
	statMaxSpeed        *status.AtomicFloat
}

// NewPhysicsSystem creates the rigid-body step driver
func NewPhysicsSystem(world *engine.World) engine.System {
	reg := engine.MustGetResource[*status.Registry](world.Resources)

	return &PhysicsSystem{
		world: world,
		cfg:   engine.MustGetResource[*engine.PhysicsConfig](world.Resources),

		statBodies:          reg.Ints.Get("physics.bodies"),
		statStaticContacts:  reg.Ints.Get("physics.contacts.static"),
		statDynamicContacts: reg.Ints.Get("physics.contacts.dynamic"),
		statMaxDepth:        reg.Floats.Get("physics.depth.max"),
		statPeakDepth:       reg.Floats.Get("physics.depth.peak"),
		statMaxSpeed:        reg.Floats.Get("physics.speed.max"),
	}
}

// Priority returns the system's priority
func (s *PhysicsSystem) Priority() int {
	return parameter.PriorityPhysics
}

// Update runs one tick; a world lacking any rigid-body store is left untouched
func (s *PhysicsSystem) Update(dt time.Duration) {
	spheres, ok := engine.BorrowComponentsSparseMut[component.BodySphere](s.world)
	if !ok {
		return
	}
	defer spheres.Release()

	momenta, ok := engine.BorrowComponentsSparseMut[component.LinearMomentum](s.world)
	if !ok {
		return
	}
	defer momenta.Release()

	masses, ok := engine.BorrowComponentsSparseMut[component.Mass](s.world)
	if !ok {
		return
	}
	defer masses.Release()

	velocities, ok := engine.BorrowComponentsSparseMut[component.Velocity](s.world)
	if !ok {
		return
	}
	defer velocities.Release()

	// Optional kinds, absent stores contribute nothing
	accels, hasAccel := engine.BorrowComponentsSparseMut[component.Acceleration](s.world)
	if hasAccel {
		defer accels.Release()
	}
	rots, hasRot := engine.BorrowComponentsMut[component.Rot](s.world)
	if hasRot {
		defer rots.Release()
	}
	omegas, hasOmega := engine.BorrowComponentsMut[component.Omega](s.world)
	if hasOmega {
		defer omegas.Release()
	}
	planes, hasPlanes := engine.BorrowComponentsMut[component.BodyPlane](s.world)
	if hasPlanes {
		defer planes.Release()
	}

	step := float32(dt.Seconds())

	s.flatten(spheres, momenta, masses, velocities)
	s.planes = s.planes[:0]
	if hasPlanes {
		for _, p := range planes.All() {
			s.planes = append(s.planes, p.Plane)
		}
	}

	// Integrate
	for i, e := range s.entities {
		var accel mgl32.Vec3
		if hasAccel {
			if a, ok := accels.Get(e); ok {
				accel = a.Vec3
				if hasRot {
					if r, ok := rots.Get(e); ok {
						accel = r.Rotate(accel)
					}
				}
			}
		}
		physics.Integrate(&s.bodies[i], &s.velocities[i], &s.momenta[i], s.masses[i], accel, s.cfg.Gravity, s.cfg.MaxSpeed, step)
	}
	if hasRot && hasOmega {
		for e, r := range rots.All() {
			if w, ok := omegas.Get(e); ok {
				r.Quat = physics.IntegrateRotation(r.Quat, w.Vec3, step)
			}
		}
	}

	// Dynamic vs static
	s.contacts = s.contacts[:0]
	physics.GatherContactsAB(s.bodies, s.planes, &s.contacts)
	s.statStaticContacts.Store(int64(len(s.contacts)))
	s.recordDepth()
	physics.RestituteDynStat(s.bodies, s.velocities, s.momenta, s.masses, s.planes, s.contacts)
	s.applyFriction()

	// Dynamic vs dynamic
	s.contacts = s.contacts[:0]
	physics.GatherContactsAA(s.bodies, &s.contacts)
	s.statDynamicContacts.Store(int64(len(s.contacts)))
	if len(s.contacts) > 0 {
		physics.RestituteDynsWeighted(s.bodies, s.velocities, s.masses, s.cfg.Restitution, s.contacts)
		for i := range s.momenta {
			s.momenta[i] = s.velocities[i].Mul(s.masses[i])
		}
	}

	s.writeBack(spheres, momenta, velocities)
}

// flatten copies every sphere carrying momentum and mass into the scratch slices in store order
func (s *PhysicsSystem) flatten(
	spheres *engine.SparseStore[component.BodySphere],
	momenta *engine.SparseStore[component.LinearMomentum],
	masses *engine.SparseStore[component.Mass],
	velocities *engine.SparseStore[component.Velocity],
) {
	s.entities = s.entities[:0]
	s.bodies = s.bodies[:0]
	s.velocities = s.velocities[:0]
	s.momenta = s.momenta[:0]
	s.masses = s.masses[:0]

	for e, sph := range spheres.All() {
		p, ok := momenta.Get(e)
		if !ok {
			continue
		}
		m, ok := masses.Get(e)
		if !ok {
			continue
		}
		v, _ := velocities.Get(e)

		s.entities = append(s.entities, e)
		s.bodies = append(s.bodies, sph.Sphere)
		s.momenta = append(s.momenta, p.Vec3)
		s.masses = append(s.masses, m.Value)
		s.velocities = append(s.velocities, v.Vec3)
	}
	s.statBodies.Store(int64(len(s.entities)))
}

// applyFriction damps every body that touched a static plane this tick
func (s *PhysicsSystem) applyFriction() {
	if len(s.contacts) == 0 {
		return
	}
	if n := len(s.bodies); cap(s.touched) < n {
		s.touched = make([]bool, n)
	} else {
		s.touched = s.touched[:n]
		clear(s.touched)
	}
	for _, c := range s.contacts {
		s.touched[c.A] = true
	}
	for i, hit := range s.touched {
		if !hit {
			continue
		}
		s.velocities[i] = s.velocities[i].Mul(s.cfg.Friction)
		s.momenta[i] = s.momenta[i].Mul(s.cfg.Friction)
	}
}

func (s *PhysicsSystem) recordDepth() {
	var maxDepth float32
	for _, c := range s.contacts {
		maxDepth = max(maxDepth, c.Depth)
	}
	s.statMaxDepth.Set(float64(maxDepth))
	s.statPeakDepth.Max(float64(maxDepth))
}

func (s *PhysicsSystem) writeBack(
	spheres *engine.SparseStore[component.BodySphere],
	momenta *engine.SparseStore[component.LinearMomentum],
	velocities *engine.SparseStore[component.Velocity],
) {
	var maxSpeed float32
	for i, e := range s.entities {
		spheres.Set(e, component.BodySphere{Sphere: s.bodies[i]})
		momenta.Set(e, component.LinearMomentum{Vec3: s.momenta[i]})
		// Velocity is optional on input and is never attached by the step
		if velocities.Has(e) {
			velocities.Set(e, component.Velocity{Vec3: s.velocities[i]})
		}
		maxSpeed = max(maxSpeed, s.velocities[i].Len())
	}
	s.statMaxSpeed.Set(float64(maxSpeed))
}
