package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/marble/geom"
	"github.com/lixenwraith/marble/vmath"
)

// Contact is a detected overlap between body A and body B
// A indexes the first list given to the generator; B indexes the second list,
// or the same list for GatherContactsAA
// Normal is the unit direction A must move along to separate; Depth is the penetration
type Contact struct {
	A, B   int
	Normal mgl32.Vec3
	Depth  float32
}

// GatherContactsAB tests every pair across dynamic and others, appending overlaps to out
// Bodies are never mutated
func GatherContactsAB[A, B geom.Shape](dynamic []A, others []B, out *[]Contact) {
	for i := range dynamic {
		for j := range others {
			if n, depth, ok := Overlap(dynamic[i], others[j]); ok {
				*out = append(*out, Contact{A: i, B: j, Normal: n, Depth: depth})
			}
		}
	}
}

// GatherContactsAA tests each unordered pair i < j within bodies once
func GatherContactsAA[S geom.Shape](bodies []S, out *[]Contact) {
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			if n, depth, ok := Overlap(bodies[i], bodies[j]); ok {
				*out = append(*out, Contact{A: i, B: j, Normal: n, Depth: depth})
			}
		}
	}
}

// Overlap dispatches to the pairwise test for the concrete shapes
// Plane-vs-plane never reports contact
func Overlap[A, B geom.Shape](a A, b B) (mgl32.Vec3, float32, bool) {
	switch x := any(a).(type) {
	case geom.Sphere:
		switch y := any(b).(type) {
		case geom.Sphere:
			return SphereSphere(x, y)
		case geom.Plane:
			return SpherePlane(x, y)
		}
	case geom.Plane:
		if y, ok := any(b).(geom.Sphere); ok {
			n, depth, hit := SpherePlane(y, x)
			return n.Mul(-1), depth, hit
		}
	}
	return mgl32.Vec3{}, 0, false
}

// SpherePlane overlaps iff the center's signed distance is below the radius
// Exact tangency is not a contact
func SpherePlane(s geom.Sphere, p geom.Plane) (mgl32.Vec3, float32, bool) {
	dist := p.SignedDistance(s.Center)
	if dist >= s.Radius {
		return mgl32.Vec3{}, 0, false
	}
	return p.Normal, s.Radius - dist, true
}

// SphereSphere overlaps iff center distance is below the sum of radii
// The normal points from b's center toward a's; coincident centers separate along Up
func SphereSphere(a, b geom.Sphere) (mgl32.Vec3, float32, bool) {
	delta := a.Center.Sub(b.Center)
	distSq := delta.LenSqr()
	minDist := a.Radius + b.Radius
	if distSq >= minDist*minDist {
		return mgl32.Vec3{}, 0, false
	}

	dist := float32(math.Sqrt(float64(distSq)))
	if dist == 0 {
		return vmath.Up, minDist, true
	}
	return delta.Mul(1 / dist), minDist - dist, true
}
