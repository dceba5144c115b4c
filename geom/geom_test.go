package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPlane_SignedDistance(t *testing.T) {
	ground := Plane{Normal: mgl32.Vec3{0, 1, 0}, D: 0}
	tests := []struct {
		pt   mgl32.Vec3
		want float32
	}{
		{mgl32.Vec3{0, 2, 0}, 2},
		{mgl32.Vec3{5, 0, -3}, 0},
		{mgl32.Vec3{0, -1.5, 0}, -1.5},
	}
	for _, tt := range tests {
		if got := ground.SignedDistance(tt.pt); got != tt.want {
			t.Errorf("SignedDistance(%v): expected %v, got %v", tt.pt, tt.want, got)
		}
	}

	raised := Plane{Normal: mgl32.Vec3{0, 1, 0}, D: 1}
	if got := raised.SignedDistance(mgl32.Vec3{0, 3, 0}); got != 2 {
		t.Errorf("Expected 2 above raised plane, got %v", got)
	}
}

func TestPlane_Normalized(t *testing.T) {
	p := Plane{Normal: mgl32.Vec3{0, 2, 0}, D: 4}.Normalized()
	if p.Normal != (mgl32.Vec3{0, 1, 0}) || p.D != 2 {
		t.Errorf("Expected unit normal plane at 2, got %+v", p)
	}
}

func TestSphere_Translate(t *testing.T) {
	s := Sphere{Center: mgl32.Vec3{1, 1, 1}, Radius: 0.5}.Translate(mgl32.Vec3{0, -1, 0})
	if s.Center != (mgl32.Vec3{1, 0, 1}) || s.Radius != 0.5 {
		t.Errorf("Unexpected sphere %+v", s)
	}
}
