package scene

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/marble/component"
	"github.com/lixenwraith/marble/core"
	"github.com/lixenwraith/marble/engine"
	"github.com/lixenwraith/marble/geom"
	"github.com/lixenwraith/marble/parameter"
)

// Snapshot is the serializable rigid-body state of a world
type Snapshot struct {
	ID          string      `msgpack:"id"`
	Scene       string      `msgpack:"scene"`
	Tick        uint64      `msgpack:"tick"`
	NumEntities int         `msgpack:"num_entities"`
	Physics     PhysicsDTO  `msgpack:"physics"`
	Goal        GoalDTO     `msgpack:"goal"`
	Planes      []PlaneDTO  `msgpack:"planes"`
	Bodies      []BodyDTO   `msgpack:"bodies"`
	Goals       []SphereDTO `msgpack:"goals"`
	Spins       []SpinDTO   `msgpack:"spins"`
	Destroyed   []uint32    `msgpack:"destroyed,omitempty"`
}

// PhysicsDTO is the serializable engine.PhysicsConfig
type PhysicsDTO struct {
	Gravity     [3]float32 `msgpack:"gravity"`
	MaxSpeed    float32    `msgpack:"max_speed"`
	Friction    float32    `msgpack:"friction"`
	Restitution float32    `msgpack:"restitution"`
}

// GoalDTO is the serializable goal latch
type GoalDTO struct {
	Reached bool   `msgpack:"reached"`
	Body    uint32 `msgpack:"body"`
	Goal    uint32 `msgpack:"goal"`
	Tick    uint64 `msgpack:"tick"`
}

// PlaneDTO is a static plane and its control state
type PlaneDTO struct {
	Entity  uint32     `msgpack:"entity"`
	Normal  [3]float32 `msgpack:"normal"`
	Offset  float32    `msgpack:"offset"`
	Control bool       `msgpack:"control"`
	Axis    [2]int8    `msgpack:"axis"`
}

// BodyDTO is a sphere with whichever motion components it carries
// Nil fields were absent on capture and stay absent on restore
type BodyDTO struct {
	Entity       uint32      `msgpack:"entity"`
	Center       [3]float32  `msgpack:"center"`
	Radius       float32     `msgpack:"radius"`
	Mass         *float32    `msgpack:"mass,omitempty"`
	Velocity     *[3]float32 `msgpack:"velocity,omitempty"`
	Momentum     *[3]float32 `msgpack:"momentum,omitempty"`
	Acceleration *[3]float32 `msgpack:"acceleration,omitempty"`
}

// SphereDTO is a goal volume
type SphereDTO struct {
	Entity uint32     `msgpack:"entity"`
	Center [3]float32 `msgpack:"center"`
	Radius float32    `msgpack:"radius"`
}

// SpinDTO is the orientation of any entity carrying Rot, with optional angular velocity
type SpinDTO struct {
	Entity uint32      `msgpack:"entity"`
	Rot    [4]float32  `msgpack:"rot"`
	Omega  *[3]float32 `msgpack:"omega,omitempty"`
}

// Capture copies the rigid-body state of w into a new snapshot with a fresh ULID
func Capture(w *engine.World, sceneName string) *Snapshot {
	snap := &Snapshot{
		ID:          ulid.Make().String(),
		Scene:       sceneName,
		Tick:        engine.MustGetResource[*engine.TimeResource](w.Resources).Tick,
		NumEntities: w.NumEntities(),
	}

	cfg := engine.MustGetResource[*engine.PhysicsConfig](w.Resources)
	snap.Physics = PhysicsDTO{
		Gravity:     cfg.Gravity,
		MaxSpeed:    cfg.MaxSpeed,
		Friction:    cfg.Friction,
		Restitution: cfg.Restitution,
	}
	goal := engine.MustGetResource[*engine.GoalResource](w.Resources)
	snap.Goal = GoalDTO{Reached: goal.Reached, Body: uint32(goal.Body), Goal: uint32(goal.Goal), Tick: goal.Tick}

	for i := range snap.NumEntities {
		if e := core.Entity(i); w.IsDestroyed(e) {
			snap.Destroyed = append(snap.Destroyed, uint32(e))
		}
	}

	capturePlanes(w, snap)
	captureBodies(w, snap)
	captureSpins(w, snap)

	if ends, ok := engine.BorrowComponentsSparseMut[component.EndSphere](w); ok {
		for e, g := range ends.All() {
			snap.Goals = append(snap.Goals, SphereDTO{Entity: uint32(e), Center: g.Center, Radius: g.Radius})
		}
		ends.Release()
	}
	return snap
}

func capturePlanes(w *engine.World, snap *Snapshot) {
	planes, ok := engine.BorrowComponentsMut[component.BodyPlane](w)
	if !ok {
		return
	}
	defer planes.Release()

	controls, hasControl := engine.BorrowComponentsMut[component.Control](w)
	if hasControl {
		defer controls.Release()
	}

	for e, p := range planes.All() {
		dto := PlaneDTO{Entity: uint32(e), Normal: p.Normal, Offset: p.D}
		if hasControl {
			if c, ok := controls.Get(e); ok {
				dto.Control = true
				dto.Axis = c.Axis
			}
		}
		snap.Planes = append(snap.Planes, dto)
	}
}

func captureBodies(w *engine.World, snap *Snapshot) {
	spheres, ok := engine.BorrowComponentsSparseMut[component.BodySphere](w)
	if !ok {
		return
	}
	defer spheres.Release()

	masses, hasMass := engine.BorrowComponentsSparseMut[component.Mass](w)
	if hasMass {
		defer masses.Release()
	}
	velocities, hasVel := engine.BorrowComponentsSparseMut[component.Velocity](w)
	if hasVel {
		defer velocities.Release()
	}
	momenta, hasMom := engine.BorrowComponentsSparseMut[component.LinearMomentum](w)
	if hasMom {
		defer momenta.Release()
	}
	accels, hasAccel := engine.BorrowComponentsSparseMut[component.Acceleration](w)
	if hasAccel {
		defer accels.Release()
	}

	for e, s := range spheres.All() {
		dto := BodyDTO{Entity: uint32(e), Center: s.Center, Radius: s.Radius}
		if hasMass {
			if m, ok := masses.Get(e); ok {
				dto.Mass = &m.Value
			}
		}
		if hasVel {
			if v, ok := velocities.Get(e); ok {
				vec := [3]float32(v.Vec3)
				dto.Velocity = &vec
			}
		}
		if hasMom {
			if p, ok := momenta.Get(e); ok {
				vec := [3]float32(p.Vec3)
				dto.Momentum = &vec
			}
		}
		if hasAccel {
			if a, ok := accels.Get(e); ok {
				vec := [3]float32(a.Vec3)
				dto.Acceleration = &vec
			}
		}
		snap.Bodies = append(snap.Bodies, dto)
	}
}

func captureSpins(w *engine.World, snap *Snapshot) {
	rots, ok := engine.BorrowComponentsMut[component.Rot](w)
	if !ok {
		return
	}
	defer rots.Release()

	omegas, hasOmega := engine.BorrowComponentsMut[component.Omega](w)
	if hasOmega {
		defer omegas.Release()
	}

	for e, r := range rots.All() {
		dto := SpinDTO{Entity: uint32(e), Rot: [4]float32{r.W, r.V[0], r.V[1], r.V[2]}}
		if hasOmega {
			if o, ok := omegas.Get(e); ok {
				vec := [3]float32(o.Vec3)
				dto.Omega = &vec
			}
		}
		snap.Spins = append(snap.Spins, dto)
	}
}

// Restore clears w and rebuilds it from the snapshot
// Entity ids, destroyed ids, tick count, physics tunables and the goal latch are reproduced
func (s *Snapshot) Restore(w *engine.World) {
	w.Clear()
	for range s.NumEntities {
		w.AddEntity()
	}
	for _, e := range s.Destroyed {
		w.DestroyEntity(core.Entity(e))
	}

	cfg := engine.MustGetResource[*engine.PhysicsConfig](w.Resources)
	cfg.Gravity = s.Physics.Gravity
	cfg.MaxSpeed = s.Physics.MaxSpeed
	cfg.Friction = s.Physics.Friction
	cfg.Restitution = s.Physics.Restitution

	*engine.MustGetResource[*engine.GoalResource](w.Resources) = engine.GoalResource{
		Reached: s.Goal.Reached,
		Body:    core.Entity(s.Goal.Body),
		Goal:    core.Entity(s.Goal.Goal),
		Tick:    s.Goal.Tick,
	}
	engine.MustGetResource[*engine.TimeResource](w.Resources).Reset(s.Tick, parameter.TickInterval)

	for _, p := range s.Planes {
		e := core.Entity(p.Entity)
		engine.AddComponent(w, e, component.BodyPlane{Plane: geom.Plane{Normal: p.Normal, D: p.Offset}})
		if p.Control {
			engine.AddComponent(w, e, component.Control{Axis: p.Axis})
		}
	}
	for _, b := range s.Bodies {
		e := core.Entity(b.Entity)
		engine.AddComponent(w, e, component.BodySphere{Sphere: geom.Sphere{Center: b.Center, Radius: b.Radius}})
		if b.Mass != nil {
			engine.AddComponent(w, e, component.Mass{Value: *b.Mass})
		}
		if b.Velocity != nil {
			engine.AddComponent(w, e, component.Velocity{Vec3: *b.Velocity})
		}
		if b.Momentum != nil {
			engine.AddComponent(w, e, component.LinearMomentum{Vec3: *b.Momentum})
		}
		if b.Acceleration != nil {
			engine.AddComponent(w, e, component.Acceleration{Vec3: *b.Acceleration})
		}
	}
	for _, g := range s.Goals {
		engine.AddComponent(w, core.Entity(g.Entity), component.EndSphere{Sphere: geom.Sphere{Center: g.Center, Radius: g.Radius}})
	}
	for _, sp := range s.Spins {
		e := core.Entity(sp.Entity)
		engine.AddComponent(w, e, component.Rot{Quat: mgl32.Quat{W: sp.Rot[0], V: mgl32.Vec3{sp.Rot[1], sp.Rot[2], sp.Rot[3]}}})
		if sp.Omega != nil {
			engine.AddComponent(w, e, component.Omega{Vec3: *sp.Omega})
		}
	}
}

// Validate checks that every record refers to an entity inside NumEntities
// and that the id is a ULID
func (s *Snapshot) Validate() error {
	if _, err := ulid.Parse(s.ID); err != nil {
		return errors.Wrapf(err, "snapshot id %q", s.ID)
	}
	check := func(kind string, e uint32) error {
		if int(e) >= s.NumEntities {
			return errors.Errorf("%s entity %d out of range (%d entities)", kind, e, s.NumEntities)
		}
		return nil
	}
	for _, p := range s.Planes {
		if err := check("plane", p.Entity); err != nil {
			return err
		}
	}
	for _, b := range s.Bodies {
		if err := check("body", b.Entity); err != nil {
			return err
		}
	}
	for _, g := range s.Goals {
		if err := check("goal", g.Entity); err != nil {
			return err
		}
	}
	for _, sp := range s.Spins {
		if err := check("spin", sp.Entity); err != nil {
			return err
		}
	}
	for _, e := range s.Destroyed {
		if err := check("destroyed", e); err != nil {
			return err
		}
	}
	return nil
}

// CreatedAt returns the wall time encoded in the snapshot id
func (s *Snapshot) CreatedAt() (time.Time, error) {
	id, err := ulid.Parse(s.ID)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(id.Time()), nil
}
