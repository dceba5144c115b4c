package parameter

// Rigid-body tunables, scene files may override the world-level ones
const (
	// Gravity is the downward acceleration magnitude in units/s²
	Gravity float32 = 10

	// MaxSpeed caps the linear speed of every dynamic body
	MaxSpeed float32 = 20

	// GroundFriction scales velocity and momentum of a body each tick it touches a static plane
	GroundFriction float32 = 0.98

	// PlaneRotSpeed is the tilt rate in rad/s applied by plane control
	PlaneRotSpeed float32 = 0.6

	// DefaultRestitution is the dynamic-dynamic bounce coefficient
	DefaultRestitution float32 = 1

	// DefaultMass is used for spheres declared without a mass
	DefaultMass float32 = 1
)

// RestSpeed is the speed below which a body counts as settled
const RestSpeed float32 = 1e-2
