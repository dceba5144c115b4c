// Package geom defines the collision primitives: spheres and half-space planes
package geom

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Shape is the set of primitives the contact generator understands
type Shape interface {
	Sphere | Plane
}

// Sphere is a ball with center and radius
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

// Translate returns the sphere moved by d
func (s Sphere) Translate(d mgl32.Vec3) Sphere {
	s.Center = s.Center.Add(d)
	return s
}

// Plane is the half-space boundary of points x with Normal·x = D
// Normal is unit length and points out of the solid side
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// SignedDistance returns the distance from p to the plane, positive on the Normal side
func (p Plane) SignedDistance(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) - p.D
}

// Normalized returns the plane with a unit normal describing the same surface
func (p Plane) Normalized() Plane {
	l := p.Normal.Len()
	if l == 0 {
		return p
	}
	return Plane{Normal: p.Normal.Mul(1 / l), D: p.D / l}
}
