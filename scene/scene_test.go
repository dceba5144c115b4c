package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/marble/asset"
	"github.com/lixenwraith/marble/component"
	"github.com/lixenwraith/marble/engine"
	"github.com/lixenwraith/marble/vmath"
)

func TestParse_DefaultScene(t *testing.T) {
	s, err := Parse([]byte(asset.DefaultScene))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if s.Name != asset.DefaultSceneName {
		t.Errorf("Expected name %q, got %q", asset.DefaultSceneName, s.Name)
	}
	if len(s.Planes) != 3 || len(s.Spheres) != 3 || len(s.Goals) != 1 {
		t.Errorf("Expected 3 planes, 3 spheres, 1 goal, got %d, %d, %d", len(s.Planes), len(s.Spheres), len(s.Goals))
	}
	if !s.Planes[0].Control {
		t.Error("Expected floor to be controllable")
	}
	if s.Spheres[0].Omega == nil || s.Spheres[1].Omega != nil {
		t.Error("Expected omega only on the first sphere")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"malformed", "[[sphere]\nradius = 1", "decode"},
		{"unknown key", "[[sphere]]\nradius = 1.0\nbounce = 2.0", "unknown key"},
		{"zero normal", "[[plane]]\nnormal = [0.0, 0.0, 0.0]", "zero normal"},
		{"zero radius", "[[sphere]]\ncenter = [0.0, 1.0, 0.0]", "radius must be positive"},
		{"negative mass", "[[sphere]]\nradius = 1.0\nmass = -1.0", "negative mass"},
		{"goal radius", "[[goal]]\nradius = -0.5", "goal 0"},
		{"friction range", "[physics]\nfriction = 1.5", "friction"},
		{"restitution range", "[physics]\nrestitution = -0.1", "restitution"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad_FileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Expected error for missing file")
	}

	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("[[plane]]\nnormal = [0.0, 0.0, 0.0]"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Errorf("Expected error naming %s, got %v", path, err)
	}

	good := filepath.Join(dir, "good.toml")
	if err := os.WriteFile(good, []byte(asset.DefaultScene), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(good); err != nil {
		t.Errorf("Expected default scene to load, got %v", err)
	}
}

func TestBuild_CreatesEntities(t *testing.T) {
	s, err := Parse([]byte(`
[physics]
gravity = 4.0
friction = 0.5

[[plane]]
normal = [0.0, 2.0, 0.0]
offset = 2.0
control = true

[[sphere]]
center = [0.0, 3.0, 0.0]
radius = 0.5
velocity = [1.0, 0.0, 0.0]
acceleration = [0.0, 0.0, 1.0]

[[goal]]
center = [5.0, 0.5, 0.0]
radius = 1.0
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	w := engine.NewWorld()
	built := s.Build(w)

	if w.NumEntities() != 3 {
		t.Fatalf("Expected 3 entities, got %d", w.NumEntities())
	}
	if len(built.Planes) != 1 || len(built.Spheres) != 1 || len(built.Goals) != 1 {
		t.Fatalf("Expected one entity per role, got %+v", built)
	}

	cfg := engine.MustGetResource[*engine.PhysicsConfig](w.Resources)
	if cfg.Gravity != (mgl32.Vec3{0, -4, 0}) || cfg.Friction != 0.5 {
		t.Errorf("Expected overrides applied, got %+v", cfg)
	}
	if cfg.MaxSpeed != engine.DefaultPhysicsConfig().MaxSpeed {
		t.Errorf("Expected default max speed kept, got %v", cfg.MaxSpeed)
	}

	planes, _ := engine.BorrowComponentsMut[component.BodyPlane](w)
	p, ok := planes.Get(built.Planes[0])
	planes.Release()
	if !ok || p.Normal != vmath.Up || p.D != 1 {
		t.Errorf("Expected normalized plane (Up, 1), got %+v", p)
	}
	if !engine.HasComponent[component.Control](w, built.Planes[0]) {
		t.Error("Expected control on plane")
	}

	ball := built.Spheres[0]
	masses, _ := engine.BorrowComponentsSparseMut[component.Mass](w)
	m := masses.MustGet(ball)
	masses.Release()
	if m.Value != 1 {
		t.Errorf("Expected default mass 1, got %v", m.Value)
	}
	moms, _ := engine.BorrowComponentsSparseMut[component.LinearMomentum](w)
	mom := moms.MustGet(ball)
	moms.Release()
	if mom.Vec3 != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("Expected momentum v*m, got %v", mom.Vec3)
	}
	if !engine.HasComponent[component.Acceleration](w, ball) {
		t.Error("Expected acceleration on sphere")
	}
	if engine.HasComponent[component.Omega](w, ball) {
		t.Error("Expected no omega on sphere")
	}
	if !engine.HasComponent[component.EndSphere](w, built.Goals[0]) {
		t.Error("Expected goal sphere")
	}
}
