package engine

import (
	"sync"
	"time"
)

// meterWindow is the span over which frame rate is averaged
const meterWindow = time.Second

// FPSMeter measures frame rate over fixed one-second windows
type FPSMeter struct {
	clock TimeProvider

	mu          sync.Mutex
	windowStart time.Time
	frames      int
	fps         float64
}

// NewFPSMeter creates a meter reading time from clock
func NewFPSMeter(clock TimeProvider) *FPSMeter {
	return &FPSMeter{clock: clock}
}

// Mark records one frame; ok is true when a window closed and fps was updated
func (m *FPSMeter) Mark() (fps float64, ok bool) {
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.windowStart.IsZero() {
		m.windowStart = now
		return m.fps, false
	}
	m.frames++

	elapsed := now.Sub(m.windowStart)
	if elapsed < meterWindow {
		return m.fps, false
	}
	m.fps = float64(m.frames) / elapsed.Seconds()
	m.frames = 0
	m.windowStart = now
	return m.fps, true
}

// FPS returns the rate measured over the last completed window
func (m *FPSMeter) FPS() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fps
}
