package engine

import (
	"context"
	"testing"
	"time"

	"github.com/lixenwraith/marble/status"
)

// countingSystem records each update it receives
type countingSystem struct {
	priority int
	calls    int
	dts      []time.Duration
	order    *[]int
}

func (s *countingSystem) Update(dt time.Duration) {
	s.calls++
	s.dts = append(s.dts, dt)
	if s.order != nil {
		*s.order = append(*s.order, s.priority)
	}
}

func (s *countingSystem) Priority() int { return s.priority }

func newTestScheduler(tick time.Duration) (*ClockScheduler, *MockTimeProvider, *countingSystem) {
	w := NewWorld()
	sys := &countingSystem{priority: 10}
	w.AddSystem(sys)
	clock := NewMockTimeProvider(time.Unix(0, 0))
	return NewClockScheduler(w, clock, tick), clock, sys
}

func TestClockScheduler_DrainsDebtInWholeTicks(t *testing.T) {
	tick := 10 * time.Millisecond
	cs, clock, sys := newTestScheduler(tick)

	tests := []struct {
		advance   time.Duration
		wantTicks int
		wantDebt  time.Duration
	}{
		{5 * time.Millisecond, 0, 5 * time.Millisecond},
		{5 * time.Millisecond, 1, 0},
		{35 * time.Millisecond, 3, 5 * time.Millisecond},
		{0, 0, 5 * time.Millisecond},
	}

	for i, tt := range tests {
		clock.Advance(tt.advance)
		if got := cs.Pump(); got != tt.wantTicks {
			t.Errorf("step %d: expected %d ticks, got %d", i, tt.wantTicks, got)
		}
		if cs.Debt() != tt.wantDebt {
			t.Errorf("step %d: expected debt %v, got %v", i, tt.wantDebt, cs.Debt())
		}
	}

	if sys.calls != 4 {
		t.Errorf("Expected 4 system updates, got %d", sys.calls)
	}
	for _, dt := range sys.dts {
		if dt != tick {
			t.Errorf("Expected fixed dt %v, got %v", tick, dt)
		}
	}
	if cs.Ticks() != 4 {
		t.Errorf("Expected tick counter 4, got %d", cs.Ticks())
	}
}

func TestClockScheduler_CatchUpCap(t *testing.T) {
	tick := 10 * time.Millisecond
	cs, clock, sys := newTestScheduler(tick)
	cs.SetMaxCatchUpTicks(3)

	clock.Advance(105 * time.Millisecond)
	if got := cs.Pump(); got != 3 {
		t.Errorf("Expected capped 3 ticks, got %d", got)
	}
	if sys.calls != 3 {
		t.Errorf("Expected 3 updates, got %d", sys.calls)
	}
	if cs.Debt() != 5*time.Millisecond {
		t.Errorf("Expected remainder debt 5ms, got %v", cs.Debt())
	}

	reg := MustGetResource[*status.Registry](cs.world.Resources)
	if dropped := reg.Ints.Get("engine.dropped_ticks").Load(); dropped != 7 {
		t.Errorf("Expected 7 dropped ticks, got %d", dropped)
	}
}

func TestClockScheduler_PauseDiscardsElapsed(t *testing.T) {
	tick := 10 * time.Millisecond
	cs, clock, sys := newTestScheduler(tick)

	cs.Pause()
	clock.Advance(time.Second)
	if got := cs.Pump(); got != 0 {
		t.Errorf("Expected no ticks while paused, got %d", got)
	}

	clock.Advance(time.Second)
	cs.Resume()
	clock.Advance(tick)
	if got := cs.Pump(); got != 1 {
		t.Errorf("Expected 1 tick after resume, got %d", got)
	}
	if sys.calls != 1 {
		t.Errorf("Expected 1 update total, got %d", sys.calls)
	}
}

func TestWorld_SystemsRunInPriorityOrder(t *testing.T) {
	w := NewWorld()
	var order []int
	w.AddSystem(&countingSystem{priority: 30, order: &order})
	w.AddSystem(&countingSystem{priority: 10, order: &order})
	w.AddSystem(&countingSystem{priority: 20, order: &order})

	w.Update(time.Millisecond)

	want := []int{10, 20, 30}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("Expected order %v, got %v", want, order)
		}
	}
}

func TestClockScheduler_RunStopsOnCancel(t *testing.T) {
	w := NewWorld()
	cs := NewClockScheduler(w, NewMonotonicTimeProvider(), time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	frames := 0
	err := cs.Run(ctx, func(int) {
		frames++
		if frames == 3 {
			cancel()
		}
	})
	if err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if frames < 3 {
		t.Errorf("Expected at least 3 frames, got %d", frames)
	}
}

func TestResourceStore_GetAndMustGet(t *testing.T) {
	rs := NewResourceStore()
	type gravity struct{ G float32 }

	if _, ok := GetResource[*gravity](rs); ok {
		t.Error("Expected missing resource")
	}
	AddResource(rs, &gravity{G: 10})
	if g := MustGetResource[*gravity](rs); g.G != 10 {
		t.Errorf("Expected G=10, got %v", g.G)
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for missing resource")
		}
	}()
	MustGetResource[*status.Registry](rs)
}
