// Package vmath holds float32 vector helpers layered on mgl32 for the physics hot path
package vmath

import (
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultEpsilon is the tolerance used by approximate comparisons in physics checks
const DefaultEpsilon float32 = 1e-4

// NearlyEqual compares scalars within eps
func NearlyEqual(a, b, eps float32) bool {
	return mgl32.Abs(a-b) <= eps
}

// V3NearlyEqual compares vectors component-wise within eps
func V3NearlyEqual(a, b mgl32.Vec3, eps float32) bool {
	return a.ApproxEqualThreshold(b, eps)
}
