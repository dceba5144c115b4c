package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/marble/core"
	"github.com/lixenwraith/marble/geom"
	"github.com/lixenwraith/marble/vmath"
)

// Integrate advances one dynamic body by dt with semi-implicit Euler on momentum
// p += m·(g + a)·dt, v = p/m capped at maxSpeed, center += v·dt
// Momentum is rescaled when the speed cap clamps the velocity
func Integrate(body *geom.Sphere, vel, mom *mgl32.Vec3, mass float32, accel, gravity mgl32.Vec3, maxSpeed, dt float32) {
	core.Assert(mass > 0, "integrate body with non-positive mass %v", mass)

	*mom = mom.Add(gravity.Add(accel).Mul(mass * dt))
	v := mom.Mul(1 / mass)
	capped := vmath.V3ClampMagnitude(v, maxSpeed)
	if capped != v {
		*mom = capped.Mul(mass)
	}
	*vel = capped
	body.Center = body.Center.Add(capped.Mul(dt))
}

// IntegrateRotation advances orientation q by angular velocity omega over dt
// q' = q + ½·dt·(0, ω)·q, renormalized
func IntegrateRotation(q mgl32.Quat, omega mgl32.Vec3, dt float32) mgl32.Quat {
	spin := mgl32.Quat{W: 0, V: omega}.Mul(q).Scale(0.5 * dt)
	return q.Add(spin).Normalize()
}

// TiltPlane nudges the plane normal along X and Z by the control axes
// The offset is preserved; the normal stays unit length
func TiltPlane(p geom.Plane, control [2]int8, speed, dt float32) geom.Plane {
	if control[0] == 0 && control[1] == 0 {
		return p
	}
	step := speed * dt
	p.Normal = p.Normal.Add(mgl32.Vec3{float32(control[0]) * step, 0, float32(control[1]) * step}).Normalize()
	return p
}
