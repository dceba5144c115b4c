package component

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Velocity is derived each tick from LinearMomentum and Mass
type Velocity struct {
	mgl32.Vec3
}

func (Velocity) IsSparse() bool { return true }

// Acceleration is a body-local push applied on top of gravity, rotated by Rot when present
type Acceleration struct {
	mgl32.Vec3
}

func (Acceleration) IsSparse() bool { return true }

// LinearMomentum is the integrated quantity; velocity is recovered as p/m
type LinearMomentum struct {
	mgl32.Vec3
}

func (LinearMomentum) IsSparse() bool { return true }

// Mass of a dynamic body, must be positive
type Mass struct {
	Value float32
}

func (Mass) IsSparse() bool { return true }

// Omega is angular velocity in rad/s
type Omega struct {
	mgl32.Vec3
}

func (Omega) IsSparse() bool { return false }

// Rot is the body orientation
type Rot struct {
	mgl32.Quat
}

func (Rot) IsSparse() bool { return false }

// Control carries the tilt input axes (X, Z), each in -1..1
type Control struct {
	Axis [2]int8
}

func (Control) IsSparse() bool { return false }
