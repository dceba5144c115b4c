package status

import "testing"

func TestRegistry_SnapshotCollectsAllMetrics(t *testing.T) {
	reg := NewRegistry()
	reg.Ints.Get("physics.contacts").Add(3)
	reg.Floats.Get("physics.max_depth").Set(0.25)

	snap := reg.Snapshot()
	if snap["physics.contacts"] != 3 {
		t.Errorf("Expected contacts 3, got %v", snap["physics.contacts"])
	}
	if snap["physics.max_depth"] != 0.25 {
		t.Errorf("Expected max_depth 0.25, got %v", snap["physics.max_depth"])
	}
}

func TestMetricMap_GetReturnsCachedPointer(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	a := m.Get("x")
	b := m.Get("x")
	if a != b {
		t.Error("Expected same pointer for repeated Get")
	}
	if m.Count() != 1 {
		t.Errorf("Expected 1 metric, got %d", m.Count())
	}
}

func TestAtomicFloat_Max(t *testing.T) {
	var f AtomicFloat
	f.Max(0.5)
	f.Max(0.2)
	if got := f.Get(); got != 0.5 {
		t.Errorf("Expected 0.5, got %v", got)
	}
}
