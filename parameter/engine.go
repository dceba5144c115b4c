package parameter

import "time"

// Simulation timing
const (
	// TickInterval is the fixed simulated duration of one physics tick (60 Hz)
	TickInterval = time.Second / 60

	// DT is TickInterval in seconds for the float32 integrators
	DT float32 = 1.0 / 60.0

	// MaxCatchUpTicks bounds ticks run in one scheduler pump after a stall
	MaxCatchUpTicks = 8

	// FrameUpdateInterval is the viewer redraw interval
	FrameUpdateInterval = 16 * time.Millisecond
)

// Viewer defaults
const (
	// ViewUnitsPerCell is the world distance covered by one terminal column
	ViewUnitsPerCell float32 = 0.25

	// ViewAspect compensates terminal cells being about twice as tall as wide
	ViewAspect float32 = 2
)
