package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Up is the world up axis, also the fallback separation direction
var Up = mgl32.Vec3{0, 1, 0}

// V3ClampMagnitude limits vector magnitude to maxMag
// Returns the input unchanged when maxMag <= 0
func V3ClampMagnitude(v mgl32.Vec3, maxMag float32) mgl32.Vec3 {
	if maxMag <= 0 {
		return v
	}
	if v.LenSqr() <= maxMag*maxMag {
		return v
	}
	return v.Normalize().Mul(maxMag)
}

// V3Project returns the component of v along unit normal n
func V3Project(v, n mgl32.Vec3) mgl32.Vec3 {
	return n.Mul(v.Dot(n))
}

// V3RemoveInward strips the part of v pointing against unit normal n
// Tangential motion and outward motion are preserved
func V3RemoveInward(v, n mgl32.Vec3) mgl32.Vec3 {
	if vn := v.Dot(n); vn < 0 {
		return v.Sub(n.Mul(vn))
	}
	return v
}

// V3NormalizeOr normalizes v, returning fallback for a zero vector
func V3NormalizeOr(v, fallback mgl32.Vec3) mgl32.Vec3 {
	lenSq := v.LenSqr()
	if lenSq == 0 {
		return fallback
	}
	return v.Mul(float32(1 / math.Sqrt(float64(lenSq))))
}
