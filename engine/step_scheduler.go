package engine

import (
	"context"
	"sync"
)

// StepScheduler releases frames only when Step is called
// Used for deterministic tests and headless rendering
type StepScheduler struct {
	steps    chan struct{}
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewStepScheduler creates a stepped scheduler with no pending frames
func NewStepScheduler() *StepScheduler {
	return &StepScheduler{
		steps:    make(chan struct{}),
		stopChan: make(chan struct{}),
	}
}

// WaitFrame blocks until Step, Stop or ctx cancellation
func (s *StepScheduler) WaitFrame(ctx context.Context) error {
	select {
	case <-s.steps:
		return nil
	case <-s.stopChan:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Step hands n frames to the waiting loop, blocking until each is taken
// Returns false if the scheduler stopped or ctx ended first
func (s *StepScheduler) Step(ctx context.Context, n int) bool {
	for range n {
		select {
		case s.steps <- struct{}{}:
		case <-s.stopChan:
			return false
		case <-ctx.Done():
			return false
		}
	}
	return true
}

// Stop releases the waiter with ErrStopped
func (s *StepScheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}
