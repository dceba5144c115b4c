package component

import (
	"github.com/lixenwraith/marble/geom"
)

// BodyPlane is a static half-space collider; planes are few and indexed densely
type BodyPlane struct {
	geom.Plane
}

func (BodyPlane) IsSparse() bool { return false }

// BodySphere is a dynamic sphere collider
type BodySphere struct {
	geom.Sphere
}

func (BodySphere) IsSparse() bool { return true }

// EndSphere is the goal volume; a BodySphere overlapping it completes the level
type EndSphere struct {
	geom.Sphere
}

func (EndSphere) IsSparse() bool { return true }
