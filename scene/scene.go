// Package scene loads level descriptions and persists world snapshots
package scene

import (
	"log"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/lixenwraith/marble/component"
	"github.com/lixenwraith/marble/core"
	"github.com/lixenwraith/marble/engine"
	"github.com/lixenwraith/marble/geom"
	"github.com/lixenwraith/marble/parameter"
)

// Scene is a level description decoded from TOML
type Scene struct {
	Name    string         `toml:"name"`
	Physics PhysicsConfig  `toml:"physics"`
	Planes  []PlaneConfig  `toml:"plane"`
	Spheres []SphereConfig `toml:"sphere"`
	Goals   []GoalConfig   `toml:"goal"`
}

// PhysicsConfig overrides world tunables; zero fields keep the defaults
type PhysicsConfig struct {
	Gravity     *float32 `toml:"gravity"`
	MaxSpeed    *float32 `toml:"max_speed"`
	Friction    *float32 `toml:"friction"`
	Restitution *float32 `toml:"restitution"`
}

// PlaneConfig is a static half-space; Control marks it as player-tiltable
type PlaneConfig struct {
	Normal  [3]float32 `toml:"normal"`
	Offset  float32    `toml:"offset"`
	Control bool       `toml:"control"`
}

// SphereConfig is a dynamic body
type SphereConfig struct {
	Center       [3]float32  `toml:"center"`
	Radius       float32     `toml:"radius"`
	Mass         float32     `toml:"mass"`
	Velocity     [3]float32  `toml:"velocity"`
	Acceleration *[3]float32 `toml:"acceleration"`
	Omega        *[3]float32 `toml:"omega"`
}

// GoalConfig is a goal volume
type GoalConfig struct {
	Center [3]float32 `toml:"center"`
	Radius float32    `toml:"radius"`
}

// Load reads and validates a scene file
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read scene %s", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "scene %s", path)
	}
	log.Printf("scene: loaded %q from %s (%d planes, %d spheres, %d goals)", s.Name, path, len(s.Planes), len(s.Spheres), len(s.Goals))
	return s, nil
}

// Parse decodes TOML scene data and validates every body
func Parse(data []byte) (*Scene, error) {
	var s Scene
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("unknown key %q", undecoded[0].String())
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scene) validate() error {
	for i, p := range s.Planes {
		if mgl32.Vec3(p.Normal).LenSqr() == 0 {
			return errors.Errorf("plane %d: zero normal", i)
		}
	}
	for i, sp := range s.Spheres {
		if sp.Radius <= 0 {
			return errors.Errorf("sphere %d: radius must be positive, got %v", i, sp.Radius)
		}
		if sp.Mass < 0 {
			return errors.Errorf("sphere %d: negative mass %v", i, sp.Mass)
		}
	}
	for i, g := range s.Goals {
		if g.Radius <= 0 {
			return errors.Errorf("goal %d: radius must be positive, got %v", i, g.Radius)
		}
	}
	if f := s.Physics.Friction; f != nil && (*f < 0 || *f > 1) {
		return errors.Errorf("physics: friction %v outside 0..1", *f)
	}
	if r := s.Physics.Restitution; r != nil && (*r < 0 || *r > 1) {
		return errors.Errorf("physics: restitution %v outside 0..1", *r)
	}
	return nil
}

// Built lists the entities created by Build, by role
type Built struct {
	Planes  []core.Entity
	Spheres []core.Entity
	Goals   []core.Entity
}

// Build adds the scene's bodies to w and applies its physics overrides
// Plane normals are normalized; massless spheres get parameter.DefaultMass
func (s *Scene) Build(w *engine.World) Built {
	cfg := engine.MustGetResource[*engine.PhysicsConfig](w.Resources)
	if g := s.Physics.Gravity; g != nil {
		cfg.Gravity = mgl32.Vec3{0, -*g, 0}
	}
	if v := s.Physics.MaxSpeed; v != nil {
		cfg.MaxSpeed = *v
	}
	if v := s.Physics.Friction; v != nil {
		cfg.Friction = *v
	}
	if v := s.Physics.Restitution; v != nil {
		cfg.Restitution = *v
	}

	var b Built
	for _, p := range s.Planes {
		e := w.AddEntity()
		plane := geom.Plane{Normal: mgl32.Vec3(p.Normal), D: p.Offset}.Normalized()
		engine.AddComponent(w, e, component.BodyPlane{Plane: plane})
		if p.Control {
			engine.AddComponent(w, e, component.Control{})
		}
		b.Planes = append(b.Planes, e)
	}

	for _, sp := range s.Spheres {
		e := w.AddEntity()
		mass := sp.Mass
		if mass == 0 {
			mass = parameter.DefaultMass
		}
		vel := mgl32.Vec3(sp.Velocity)

		engine.AddComponent(w, e, component.BodySphere{Sphere: geom.Sphere{Center: mgl32.Vec3(sp.Center), Radius: sp.Radius}})
		engine.AddComponent(w, e, component.Mass{Value: mass})
		engine.AddComponent(w, e, component.Velocity{Vec3: vel})
		engine.AddComponent(w, e, component.LinearMomentum{Vec3: vel.Mul(mass)})
		engine.AddComponent(w, e, component.Rot{Quat: mgl32.QuatIdent()})
		if sp.Acceleration != nil {
			engine.AddComponent(w, e, component.Acceleration{Vec3: mgl32.Vec3(*sp.Acceleration)})
		}
		if sp.Omega != nil {
			engine.AddComponent(w, e, component.Omega{Vec3: mgl32.Vec3(*sp.Omega)})
		}
		b.Spheres = append(b.Spheres, e)
	}

	for _, g := range s.Goals {
		e := w.AddEntity()
		engine.AddComponent(w, e, component.EndSphere{Sphere: geom.Sphere{Center: mgl32.Vec3(g.Center), Radius: g.Radius}})
		b.Goals = append(b.Goals, e)
	}
	return b
}
