// Command marble runs the marble physics simulation headless or in a terminal viewer
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/pkg/profile"

	"github.com/lixenwraith/marble/asset"
	"github.com/lixenwraith/marble/component"
	"github.com/lixenwraith/marble/core"
	"github.com/lixenwraith/marble/engine"
	"github.com/lixenwraith/marble/parameter"
	"github.com/lixenwraith/marble/scene"
	"github.com/lixenwraith/marble/status"
	"github.com/lixenwraith/marble/system"
	"github.com/lixenwraith/marble/view"
)

var (
	sceneFlag   = flag.String("scene", "", "Scene TOML file (built-in level when empty)")
	ticksFlag   = flag.Int("ticks", 600, "Ticks to simulate when running headless")
	viewFlag    = flag.Bool("view", false, "Open the terminal viewer")
	saveFlag    = flag.String("save", "", "Write a snapshot of the final state to this path")
	restoreFlag = flag.String("restore", "", "Start from a snapshot instead of a scene")
	debugFlag   = flag.Bool("debug", false, "Write debug log to logs/marble.log")
	profileFlag = flag.String("profile", "", "Write a CPU profile into this directory")
)

// options is the parsed command line
type options struct {
	scenePath   string
	ticks       int
	view        bool
	savePath    string
	restorePath string
}

func main() {
	flag.Parse()
	os.Exit(realMain())
}

func realMain() int {
	// Panic recovery: restore the terminal before reporting
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}
	if *profileFlag != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profileFlag), profile.NoShutdownHook).Stop()
	}

	opts := options{
		scenePath:   *sceneFlag,
		ticks:       *ticksFlag,
		view:        *viewFlag,
		savePath:    *saveFlag,
		restorePath: *restoreFlag,
	}
	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "marble: %v\n", err)
		return 1
	}
	return 0
}

// newWorld creates a world with every simulation system registered
func newWorld() *engine.World {
	w := engine.NewWorld()
	w.AddSystem(system.NewControlSystem(w))
	w.AddSystem(system.NewPhysicsSystem(w))
	w.AddSystem(system.NewGoalSystem(w))
	w.AddSystem(system.NewDiagnosticsSystem(w))
	return w
}

// populate fills w from a snapshot or scene and returns the scene name
func populate(w *engine.World, opts options) (string, error) {
	if opts.restorePath != "" {
		snap, err := scene.LoadSnapshot(opts.restorePath)
		if err != nil {
			return "", err
		}
		snap.Restore(w)
		return snap.Scene, nil
	}

	var (
		s   *scene.Scene
		err error
	)
	if opts.scenePath == "" {
		s, err = scene.Parse([]byte(asset.DefaultScene))
		err = errors.Wrap(err, "built-in scene")
	} else {
		s, err = scene.Load(opts.scenePath)
	}
	if err != nil {
		return "", err
	}
	s.Build(w)
	return s.Name, nil
}

func run(opts options, out io.Writer) error {
	w := newWorld()
	name, err := populate(w, opts)
	if err != nil {
		return err
	}

	if opts.view {
		if err := runViewer(w); err != nil {
			return err
		}
	} else {
		runHeadless(w, opts.ticks)
		report(out, w, name)
	}

	if opts.savePath != "" {
		if err := scene.Save(opts.savePath, scene.Capture(w, name)); err != nil {
			return err
		}
	}
	return nil
}

// runHeadless steps the simulation a fixed number of ticks, stopping early once the goal is reached
func runHeadless(w *engine.World, ticks int) {
	cs := engine.NewClockScheduler(w, engine.NewMonotonicTimeProvider(), parameter.TickInterval)
	goal := engine.MustGetResource[*engine.GoalResource](w.Resources)
	for range ticks {
		cs.Step()
		if goal.Reached {
			break
		}
	}
	log.Printf("marble: headless run stopped after %d ticks", cs.Ticks())
}

func runViewer(w *engine.World) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}
	core.SetCrashHook(screen.Fini)
	defer screen.Fini()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cs := engine.NewClockScheduler(w, engine.NewMonotonicTimeProvider(), parameter.TickInterval)
	cs.SetMaxCatchUpTicks(parameter.MaxCatchUpTicks)
	err = view.New(screen, w, cs).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// report prints the final tick, goal state, body positions and metrics
func report(out io.Writer, w *engine.World, name string) {
	clock := engine.MustGetResource[*engine.TimeResource](w.Resources)
	goal := engine.MustGetResource[*engine.GoalResource](w.Resources)

	fmt.Fprintf(out, "scene %q after %d ticks (%v simulated)\n", name, clock.Tick, clock.SimTime)
	if goal.Reached {
		fmt.Fprintf(out, "goal reached by body %d at tick %d\n", goal.Body, goal.Tick)
	} else {
		fmt.Fprintln(out, "goal not reached")
	}

	if spheres, ok := engine.BorrowComponentsSparseMut[component.BodySphere](w); ok {
		for e, s := range spheres.All() {
			fmt.Fprintf(out, "body %d at (%.3f, %.3f, %.3f)\n", e, s.Center.X(), s.Center.Y(), s.Center.Z())
		}
		spheres.Release()
	}

	reg := engine.MustGetResource[*status.Registry](w.Resources)
	reg.Ints.Range(func(key string, v *atomic.Int64) {
		fmt.Fprintf(out, "%s = %d\n", key, v.Load())
	})
	reg.Floats.Range(func(key string, v *status.AtomicFloat) {
		fmt.Fprintf(out, "%s = %.4f\n", key, v.Get())
	})
}
