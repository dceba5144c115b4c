package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/marble/core"
	"github.com/lixenwraith/marble/geom"
	"github.com/lixenwraith/marble/vmath"
)

// ElasticRestitution is the coefficient RestituteDyns applies between dynamic bodies
// With equal masses the normal velocities are exchanged
const ElasticRestitution float32 = 1

// RestituteDynStat resolves dynamic-vs-static contacts produced by GatherContactsAB(bodies, statics)
// Each contacted body is pushed out along the normal by the depth, loses the inward
// normal component of its velocity, and has its momentum resynchronized
// Fully inelastic along the normal; tangential velocity is kept
func RestituteDynStat[S geom.Shape](
	bodies []geom.Sphere,
	velocities, momenta []mgl32.Vec3,
	masses []float32,
	statics []S,
	contacts []Contact,
) {
	n := len(bodies)
	core.Assert(len(velocities) == n && len(momenta) == n && len(masses) == n,
		"dyn-stat slice lengths differ: bodies %d, velocities %d, momenta %d, masses %d",
		n, len(velocities), len(momenta), len(masses))

	for _, c := range contacts {
		core.Assert(c.A >= 0 && c.A < n, "contact body index %d out of range (%d bodies)", c.A, n)
		core.Assert(c.B >= 0 && c.B < len(statics), "contact static index %d out of range (%d statics)", c.B, len(statics))

		bodies[c.A].Center = bodies[c.A].Center.Add(c.Normal.Mul(c.Depth))
		velocities[c.A] = vmath.V3RemoveInward(velocities[c.A], c.Normal)
		momenta[c.A] = velocities[c.A].Mul(masses[c.A])
	}
}

// RestituteDyns resolves dynamic-vs-dynamic contacts from GatherContactsAA(bodies)
// Bodies are treated as equal mass: overlap is split evenly and approaching
// normal velocities are exchanged
func RestituteDyns(bodies []geom.Sphere, velocities []mgl32.Vec3, contacts []Contact) {
	restituteDyns(bodies, velocities, nil, ElasticRestitution, contacts)
}

// RestituteDynsWeighted resolves dynamic-vs-dynamic contacts using inverse-mass weighting
// Impulse j = (1+e)·vn / (1/mA + 1/mB) conserves momentum along the normal for any e
func RestituteDynsWeighted(bodies []geom.Sphere, velocities []mgl32.Vec3, masses []float32, restitution float32, contacts []Contact) {
	core.Assert(len(masses) == len(bodies), "dyn-dyn masses %d != bodies %d", len(masses), len(bodies))
	restituteDyns(bodies, velocities, masses, restitution, contacts)
}

func restituteDyns(bodies []geom.Sphere, velocities []mgl32.Vec3, masses []float32, restitution float32, contacts []Contact) {
	n := len(bodies)
	core.Assert(len(velocities) == n, "dyn-dyn velocities %d != bodies %d", len(velocities), n)

	for _, c := range contacts {
		core.Assert(c.A >= 0 && c.A < n, "contact index A=%d out of range (%d bodies)", c.A, n)
		core.Assert(c.B >= 0 && c.B < n, "contact index B=%d out of range (%d bodies)", c.B, n)
		core.Assert(c.A != c.B, "self contact on body %d", c.A)

		invA, invB := float32(1), float32(1)
		if masses != nil {
			core.Assert(masses[c.A] > 0 && masses[c.B] > 0, "non-positive mass in contact %d-%d", c.A, c.B)
			invA = 1 / masses[c.A]
			invB = 1 / masses[c.B]
		}
		invSum := invA + invB

		// Positional correction split by inverse mass
		sepA := c.Depth * invA / invSum
		sepB := c.Depth * invB / invSum
		bodies[c.A].Center = bodies[c.A].Center.Add(c.Normal.Mul(sepA))
		bodies[c.B].Center = bodies[c.B].Center.Sub(c.Normal.Mul(sepB))

		// Normal points from B to A, so vn < 0 means approaching
		vn := velocities[c.A].Sub(velocities[c.B]).Dot(c.Normal)
		if vn >= 0 {
			continue
		}

		j := -(1 + restitution) * vn / invSum
		velocities[c.A] = velocities[c.A].Add(c.Normal.Mul(j * invA))
		velocities[c.B] = velocities[c.B].Sub(c.Normal.Mul(j * invB))
	}
}
