// Package view renders a side-on terminal plot of the simulation with tcell
package view

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/marble/component"
	"github.com/lixenwraith/marble/core"
	"github.com/lixenwraith/marble/engine"
	"github.com/lixenwraith/marble/geom"
	"github.com/lixenwraith/marble/parameter"
	"github.com/lixenwraith/marble/status"
)

const (
	// holdFrames keeps a tilt key active; terminals report presses but no releases
	holdFrames = 6

	// bottomMargin is the number of rows kept below world y = 0
	bottomMargin = 1
)

var (
	styleBody   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleGoal   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	stylePlane  = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

// Viewer draws the world in the X/Y plane and maps arrow keys onto plane Control
type Viewer struct {
	screen    tcell.Screen
	world     *engine.World
	scheduler *engine.ClockScheduler
	registry  *status.Registry
	goal      *engine.GoalResource
	clock     *engine.TimeResource

	width, height int

	// World x at the screen's center column and the scale of one cell
	originX      float32
	unitsPerCell float32

	axis     [2]int8
	holdLeft int
}

// New creates a viewer for world driven by scheduler
// The screen must already be initialized
func New(screen tcell.Screen, world *engine.World, scheduler *engine.ClockScheduler) *Viewer {
	v := &Viewer{
		screen:       screen,
		world:        world,
		scheduler:    scheduler,
		registry:     engine.MustGetResource[*status.Registry](world.Resources),
		goal:         engine.MustGetResource[*engine.GoalResource](world.Resources),
		clock:        engine.MustGetResource[*engine.TimeResource](world.Resources),
		unitsPerCell: parameter.ViewUnitsPerCell,
	}
	v.width, v.height = screen.Size()
	return v
}

// Run polls input, pumps the scheduler and redraws every frame until ctx is done or the user quits
func (v *Viewer) Run(ctx context.Context) error {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-eventChan:
			if !v.HandleEvent(ev) {
				return nil
			}

		case <-ticker.C:
			v.applyControl()
			v.scheduler.Pump()
			v.Draw()
		}
	}
}

// HandleEvent processes one terminal event, returning false when the user asked to quit
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			v.press([2]int8{-1, 0})
		case tcell.KeyRight:
			v.press([2]int8{1, 0})
		case tcell.KeyUp:
			v.press([2]int8{0, -1})
		case tcell.KeyDown:
			v.press([2]int8{0, 1})
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				if v.scheduler.IsPaused() {
					v.scheduler.Resume()
				} else {
					v.scheduler.Pause()
				}
			case '+':
				v.unitsPerCell = max(v.unitsPerCell/1.25, 0.01)
			case '-':
				v.unitsPerCell *= 1.25
			}
		}

	case *tcell.EventResize:
		v.width, v.height = v.screen.Size()
		v.screen.Sync()
	}
	return true
}

// Axis returns the control input currently applied to planes
func (v *Viewer) Axis() [2]int8 {
	return v.axis
}

func (v *Viewer) press(axis [2]int8) {
	v.axis = axis
	v.holdLeft = holdFrames
}

// applyControl writes the held axis into every Control component, releasing it when the hold expires
func (v *Viewer) applyControl() {
	if v.holdLeft > 0 {
		v.holdLeft--
	} else {
		v.axis = [2]int8{}
	}

	controls, ok := engine.BorrowComponentsMut[component.Control](v.world)
	if !ok {
		return
	}
	defer controls.Release()
	for _, c := range controls.All() {
		c.Axis = v.axis
	}
}

// Draw renders planes, goals, bodies and the status line
func (v *Viewer) Draw() {
	v.screen.Clear()

	if planes, ok := engine.BorrowComponentsMut[component.BodyPlane](v.world); ok {
		for _, p := range planes.All() {
			v.drawPlane(p.Plane)
		}
		planes.Release()
	}
	if goals, ok := engine.BorrowComponentsSparseMut[component.EndSphere](v.world); ok {
		for _, g := range goals.All() {
			v.drawSphere(g.Sphere, 'o', styleGoal)
		}
		goals.Release()
	}
	if bodies, ok := engine.BorrowComponentsSparseMut[component.BodySphere](v.world); ok {
		for _, b := range bodies.All() {
			v.drawSphere(b.Sphere, '●', styleBody)
		}
		bodies.Release()
	}

	v.drawStatus()
	v.screen.Show()
}

// Project maps a world point to a screen cell; ok is false when it falls off screen
func (v *Viewer) Project(p mgl32.Vec3) (x, y int, ok bool) {
	x = v.width/2 + int(math.Round(float64((p.X()-v.originX)/v.unitsPerCell)))
	y = v.height - 1 - bottomMargin - int(math.Round(float64(p.Y()/v.rowUnits())))
	return x, y, x >= 0 && x < v.width && y >= 1 && y < v.height
}

func (v *Viewer) rowUnits() float32 {
	return v.unitsPerCell * parameter.ViewAspect
}

// cellCenter is the world point at the middle of cell (x, y) on the z = 0 slice
func (v *Viewer) cellCenter(x, y int) mgl32.Vec3 {
	return mgl32.Vec3{
		v.originX + float32(x-v.width/2)*v.unitsPerCell,
		float32(v.height-1-bottomMargin-y) * v.rowUnits(),
		0,
	}
}

func (v *Viewer) drawSphere(s geom.Sphere, ch rune, style tcell.Style) {
	cx, cy, _ := v.Project(s.Center)
	rx := int(s.Radius/v.unitsPerCell) + 1
	ry := int(s.Radius/v.rowUnits()) + 1

	for y := cy - ry; y <= cy+ry; y++ {
		for x := cx - rx; x <= cx+rx; x++ {
			if x < 0 || x >= v.width || y < 1 || y >= v.height {
				continue
			}
			d := v.cellCenter(x, y).Sub(mgl32.Vec3{s.Center.X(), s.Center.Y(), 0})
			if d.LenSqr() <= s.Radius*s.Radius {
				v.screen.SetContent(x, y, ch, nil, style)
			}
		}
	}
	// Spheres smaller than a cell still show up
	if x, y, ok := v.Project(s.Center); ok {
		v.screen.SetContent(x, y, ch, nil, style)
	}
}

// drawPlane draws the z = 0 cross-section of the plane: one cell per column,
// or a full column for near-vertical walls
func (v *Viewer) drawPlane(p geom.Plane) {
	const eps = 1e-4
	nx, ny := p.Normal.X(), p.Normal.Y()

	if mgl32.Abs(ny) > eps {
		for x := 0; x < v.width; x++ {
			wx := v.cellCenter(x, 0).X()
			wy := (p.D - nx*wx) / ny
			if _, y, ok := v.Project(mgl32.Vec3{wx, wy, 0}); ok {
				v.screen.SetContent(x, y, '─', nil, stylePlane)
			}
		}
		return
	}
	if mgl32.Abs(nx) > eps {
		wx := p.D / nx
		x, _, _ := v.Project(mgl32.Vec3{wx, 0, 0})
		if x < 0 || x >= v.width {
			return
		}
		for y := 1; y < v.height; y++ {
			v.screen.SetContent(x, y, '│', nil, stylePlane)
		}
	}
}

func (v *Viewer) drawStatus() {
	state := "running"
	if v.scheduler.IsPaused() {
		state = "paused"
	}
	if v.goal.Reached {
		state = fmt.Sprintf("goal reached by %d at tick %d", v.goal.Body, v.goal.Tick)
	}

	snap := v.registry.Snapshot()
	line := fmt.Sprintf(" tick %d | bodies %.0f | contacts %.0f/%.0f | %s | arrows tilt, space pause, +/- zoom, q quit ",
		v.clock.Tick, snap["physics.bodies"], snap["physics.contacts.static"], snap["physics.contacts.dynamic"], state)

	x := 0
	for _, r := range line {
		if x >= v.width {
			break
		}
		v.screen.SetContent(x, 0, r, nil, styleStatus)
		x++
	}
	for ; x < v.width; x++ {
		v.screen.SetContent(x, 0, ' ', nil, styleStatus)
	}
}
