package engine

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/marble/core"
	"github.com/lixenwraith/marble/status"
)

// DefaultMaxCatchUpTicks bounds the ticks run by one Pump after a long stall
const DefaultMaxCatchUpTicks = 8

// ClockScheduler runs world systems on a fixed tick decoupled from the frame rate
// Elapsed real time is accumulated as debt and drained one tick at a time;
// a pump may run zero or several ticks
type ClockScheduler struct {
	world   *World
	clock   TimeProvider
	simTime *TimeResource

	tickInterval    time.Duration
	maxCatchUpTicks int

	debt     time.Duration
	lastRead time.Time
	paused   bool
	ticks    uint64

	// Cached metric pointers
	statTicks   *atomic.Int64
	statDropped *atomic.Int64
}

// NewClockScheduler creates a scheduler for world reading time from clock
func NewClockScheduler(world *World, clock TimeProvider, tickInterval time.Duration) *ClockScheduler {
	core.Assert(tickInterval > 0, "tick interval must be positive, got %v", tickInterval)

	reg := MustGetResource[*status.Registry](world.Resources)
	return &ClockScheduler{
		world:           world,
		clock:           clock,
		simTime:         MustGetResource[*TimeResource](world.Resources),
		tickInterval:    tickInterval,
		maxCatchUpTicks: DefaultMaxCatchUpTicks,
		lastRead:        clock.Now(),
		statTicks:       reg.Ints.Get("engine.ticks"),
		statDropped:     reg.Ints.Get("engine.dropped_ticks"),
	}
}

// SetMaxCatchUpTicks changes the per-pump tick cap; n <= 0 disables the cap
func (cs *ClockScheduler) SetMaxCatchUpTicks(n int) {
	cs.maxCatchUpTicks = n
}

// TickInterval returns the fixed simulated duration of one tick
func (cs *ClockScheduler) TickInterval() time.Duration {
	return cs.tickInterval
}

// Ticks returns the number of ticks run so far
func (cs *ClockScheduler) Ticks() uint64 {
	return cs.ticks
}

// Debt returns the accumulated, not yet simulated time
func (cs *ClockScheduler) Debt() time.Duration {
	return cs.debt
}

// Pause stops debt accumulation; pumps run no ticks until Resume
func (cs *ClockScheduler) Pause() {
	cs.paused = true
}

// Resume restarts accumulation from the current time, discarding the paused span
func (cs *ClockScheduler) Resume() {
	if !cs.paused {
		return
	}
	cs.paused = false
	cs.lastRead = cs.clock.Now()
}

// IsPaused returns current pause state
func (cs *ClockScheduler) IsPaused() bool {
	return cs.paused
}

// Pump reads the clock, adds the elapsed time to the debt and runs as many whole ticks as it covers
// Returns the number of ticks run
func (cs *ClockScheduler) Pump() int {
	now := cs.clock.Now()
	elapsed := now.Sub(cs.lastRead)
	cs.lastRead = now

	if cs.paused || elapsed <= 0 {
		return 0
	}
	cs.debt += elapsed

	n := 0
	for cs.debt >= cs.tickInterval {
		if cs.maxCatchUpTicks > 0 && n == cs.maxCatchUpTicks {
			dropped := int64(cs.debt / cs.tickInterval)
			cs.statDropped.Add(dropped)
			log.Printf("scheduler: behind by %v, dropping %d ticks", cs.debt, dropped)
			cs.debt %= cs.tickInterval
			break
		}
		cs.Step()
		cs.debt -= cs.tickInterval
		n++
	}
	return n
}

// Step runs exactly one tick without touching the debt
func (cs *ClockScheduler) Step() {
	cs.simTime.Advance(cs.tickInterval)
	cs.world.Update(cs.tickInterval)
	cs.ticks++
	cs.statTicks.Store(int64(cs.ticks))
}

// Run pumps the scheduler every tick interval until ctx is cancelled
// onFrame, if set, is called after each pump with the ticks it ran
func (cs *ClockScheduler) Run(ctx context.Context, onFrame func(ticks int)) error {
	ticker := time.NewTicker(cs.tickInterval)
	defer ticker.Stop()

	cs.lastRead = cs.clock.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			n := cs.Pump()
			if onFrame != nil {
				onFrame(n)
			}
		}
	}
}
