package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a manually driven clock for deterministic scheduler tests
type MockTimeProvider struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockTimeProvider returns a clock frozen at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

// Now returns the frozen time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Advance moves the clock forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// AdvanceTicks moves the clock forward by n whole tick intervals
func (m *MockTimeProvider) AdvanceTicks(n int, interval time.Duration) {
	m.Advance(time.Duration(n) * interval)
}
