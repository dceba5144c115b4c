package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/marble/asset"
	"github.com/lixenwraith/marble/engine"
	"github.com/lixenwraith/marble/scene"
)

func TestRun_HeadlessDefaultScene(t *testing.T) {
	var out bytes.Buffer
	if err := run(options{ticks: 120}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, `scene "`+asset.DefaultSceneName+`"`) {
		t.Errorf("Expected scene name in report, got:\n%s", text)
	}
	if !strings.Contains(text, "physics.bodies = 3") {
		t.Errorf("Expected body count metric in report, got:\n%s", text)
	}
	if !strings.Contains(text, "engine.ticks") {
		t.Errorf("Expected scheduler metrics in report, got:\n%s", text)
	}
}

func writeScene(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.toml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const dropScene = `
name = "drop"

[[plane]]
normal = [0.0, 1.0, 0.0]

[[sphere]]
center = [0.0, 2.0, 0.0]
radius = 0.5
`

func TestRun_SaveThenRestore(t *testing.T) {
	scenePath := writeScene(t, dropScene)
	snapPath := filepath.Join(t.TempDir(), "state.msgpack")

	if err := run(options{scenePath: scenePath, ticks: 30, savePath: snapPath}, &bytes.Buffer{}); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	snap, err := scene.LoadSnapshot(snapPath)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if snap.Tick != 30 || snap.Scene != "drop" {
		t.Errorf("Expected drop at tick 30, got %q at %d", snap.Scene, snap.Tick)
	}

	var out bytes.Buffer
	if err := run(options{ticks: 10, restorePath: snapPath}, &out); err != nil {
		t.Fatalf("restored run failed: %v", err)
	}
	if !strings.Contains(out.String(), `scene "drop" after 40 ticks`) {
		t.Errorf("Expected restored run to continue from tick 30, got:\n%s", out.String())
	}
}

func TestRun_SceneFile(t *testing.T) {
	path := writeScene(t, dropScene)

	var out bytes.Buffer
	if err := run(options{scenePath: path, ticks: 240}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "body 1 at (0.000, 0.500, 0.000)") {
		t.Errorf("Expected ball resting on the floor, got:\n%s", out.String())
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		opts options
	}{
		{"missing scene", options{scenePath: filepath.Join(dir, "nope.toml")}},
		{"missing snapshot", options{restorePath: filepath.Join(dir, "nope.msgpack")}},
		{"unwritable save", options{ticks: 1, savePath: filepath.Join(dir, "no", "such", "dir.msgpack")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(tt.opts, &bytes.Buffer{}); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestNewWorld_RegistersSystems(t *testing.T) {
	w := newWorld()
	if got := len(w.Systems()); got != 4 {
		t.Errorf("Expected 4 systems, got %d", got)
	}
	if _, ok := engine.GetResource[*engine.GoalResource](w.Resources); !ok {
		t.Error("Expected goal resource")
	}
}
