package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/weathermood/status"
)

// ErrStopped is returned by WaitFrame once the scheduler has been stopped
var ErrStopped = errors.New("engine: scheduler stopped")

// FrameScheduler releases one frame per interval on the wall clock
// Deadlines advance by a fixed step so short stalls are absorbed; falling
// more than two frames behind resynchronizes to now instead of bursting
type FrameScheduler struct {
	clock    TimeProvider
	interval time.Duration

	mu           sync.Mutex
	nextDeadline time.Time

	stopChan chan struct{}
	stopOnce sync.Once
	stopped  atomic.Bool

	meter *FPSMeter

	// Cached metric pointers
	statFrames *atomic.Int64
	statResync *atomic.Int64
	statFPS    *status.AtomicFloat
}

// NewFrameScheduler creates a scheduler running at fps frames per second
// Non-positive fps falls back to 60
func NewFrameScheduler(fps int, reg *status.Registry) *FrameScheduler {
	return newFrameScheduler(fps, NewMonotonicTimeProvider(), reg)
}

func newFrameScheduler(fps int, clock TimeProvider, reg *status.Registry) *FrameScheduler {
	if fps <= 0 {
		fps = 60
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &FrameScheduler{
		clock:      clock,
		interval:   time.Second / time.Duration(fps),
		stopChan:   make(chan struct{}),
		meter:      NewFPSMeter(clock),
		statFrames: reg.Ints.Get("engine.frames"),
		statResync: reg.Ints.Get("engine.resync"),
		statFPS:    reg.Floats.Get("engine.fps"),
	}
}

// Interval returns the frame period
func (s *FrameScheduler) Interval() time.Duration {
	return s.interval
}

// WaitFrame blocks until the next frame deadline
// Returns ErrStopped after Stop and the context error on cancellation
func (s *FrameScheduler) WaitFrame(ctx context.Context) error {
	if s.stopped.Load() {
		return ErrStopped
	}

	now := s.clock.Now()
	s.mu.Lock()
	if s.nextDeadline.IsZero() {
		s.nextDeadline = now
	}
	deadline := s.nextDeadline
	s.mu.Unlock()

	if wait := deadline.Sub(now); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-s.stopChan:
			return ErrStopped
		case <-ctx.Done():
			return ctx.Err()
		}
	} else {
		select {
		case <-s.stopChan:
			return ErrStopped
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	now = s.clock.Now()
	s.mu.Lock()
	s.nextDeadline = s.nextDeadline.Add(s.interval)
	if now.Sub(s.nextDeadline) > s.interval*2 {
		s.nextDeadline = now.Add(s.interval)
		s.statResync.Add(1)
	}
	s.mu.Unlock()

	s.statFrames.Add(1)
	if fps, ok := s.meter.Mark(); ok {
		s.statFPS.Set(fps)
	}
	return nil
}

// FPS returns the most recent measured frame rate
func (s *FrameScheduler) FPS() float64 {
	return s.meter.FPS()
}

// Stop releases any waiter with ErrStopped; safe to call repeatedly
func (s *FrameScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.stopped.Store(true)
		close(s.stopChan)
	})
}
