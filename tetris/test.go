package tetris

import (
	"sync"
	"time"
)

// MockTicker is a manually driven implementation of the ticker interface.
type MockTicker struct {
	ch          chan time.Time
	stop, reset bool
	mu          sync.Mutex
}

func newMockTicker() *MockTicker          { return &MockTicker{ch: make(chan time.Time)} }
func (m *MockTicker) C() <-chan time.Time { return m.ch }
func (m *MockTicker) Tick()               { m.ch <- time.Now() }
func (m *MockTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}
func (m *MockTicker) Reset(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset = true
}
func (m *MockTicker) IsReset() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reset
}
func (m *MockTicker) IsStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop
}

// FixedSource is a deterministic Source that always yields the same shape
// and color with no spawn spin.
type FixedSource struct {
	Shape Shape
	Color Color
}

func (s FixedSource) NextShape() Shape   { return s.Shape }
func (s FixedSource) NextColor() Color   { return s.Color }
func (s FixedSource) NextRotations() int { return 0 }

// NewTestBoard creates a board that keeps spawning the given shape, with
// row compaction on.
func NewTestBoard(shape Shape) *Board {
	return NewBoard(BoardOptions{
		Source:            FixedSource{Shape: shape, Color: White},
		GravityAfterClear: true,
	})
}

// NewTestGame creates a game around an existing board and returns it with
// a manual ticker.
func NewTestGame(b *Board) (*Game, *MockTicker) {
	ticker := newMockTicker()
	return &Game{
		UpdateCh: make(chan bool),
		DoneCh:   make(chan bool, 1),
		actionCh: make(chan Action),
		board:    b,
		ticker:   ticker,
		store:    nullStore{},
		interval: time.Second,
	}, ticker
}
