package component

import (
	"testing"

	"github.com/lixenwraith/marble/engine"
)

func TestStorageStrategy(t *testing.T) {
	tests := []struct {
		name   string
		c      engine.Component
		sparse bool
	}{
		{"BodyPlane", BodyPlane{}, false},
		{"BodySphere", BodySphere{}, true},
		{"EndSphere", EndSphere{}, true},
		{"Velocity", Velocity{}, true},
		{"Acceleration", Acceleration{}, true},
		{"LinearMomentum", LinearMomentum{}, true},
		{"Mass", Mass{}, true},
		{"Omega", Omega{}, false},
		{"Rot", Rot{}, false},
		{"Control", Control{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.IsSparse(); got != tt.sparse {
				t.Errorf("Expected IsSparse %v, got %v", tt.sparse, got)
			}
		})
	}
}

func TestStrategySelectsBorrow(t *testing.T) {
	w := engine.NewWorld()
	e := w.AddEntity()
	engine.AddComponent(w, e, BodyPlane{})
	engine.AddComponent(w, e, BodySphere{})

	if _, ok := engine.BorrowComponentsSparseMut[BodyPlane](w); ok {
		t.Error("Expected dense BodyPlane to be unavailable as sparse")
	}
	planes, ok := engine.BorrowComponentsMut[BodyPlane](w)
	if !ok {
		t.Fatal("Expected dense BodyPlane store")
	}
	planes.Release()

	spheres, ok := engine.BorrowComponentsSparseMut[BodySphere](w)
	if !ok {
		t.Fatal("Expected sparse BodySphere store")
	}
	spheres.Release()
}
