package parameter

// System Execution Priorities (lower runs first)
const (
	PriorityControl = 10  // Plane tilt before bodies move
	PriorityPhysics = 20  // Integration and contact resolution
	PriorityGoal    = 30  // After bodies settle for the tick
	PriorityMetrics = 100 // Telemetry collection
)
