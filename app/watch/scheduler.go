package watch

import (
	"sync"
	"time"

	"github.com/Gui-Oba/FocusAid/app/clock"
)

// Scheduler coalesces bursts of change notifications into a single
// trailing pass. Two states: idle (no run scheduled) and pending (one
// timer armed). The first notification arms the timer; further
// notifications while pending are absorbed without re-arming, so a
// burst collapses to exactly one run. The single timer handle also
// guarantees passes never overlap.
type Scheduler struct {
	clock clock.Clock
	delay time.Duration
	run   func()

	mu      sync.Mutex
	timer   *clock.Timer
	pending bool
	stopped bool
}

func NewScheduler(c clock.Clock, delay time.Duration, run func()) *Scheduler {
	return &Scheduler{
		clock: c,
		delay: delay,
		run:   run,
	}
}

// Notify records that the tree changed. Transitions idle to pending;
// a no-op while pending or after Stop.
func (s *Scheduler) Notify() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || s.pending {
		return
	}
	s.pending = true
	s.timer = s.clock.AfterFunc(s.delay, s.fire)
}

// Pending reports whether a run is currently scheduled.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Stop cancels any armed timer. A timer that fires after Stop is a
// no-op rather than touching torn-down state.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	s.pending = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Scheduler) fire() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.pending = false
	s.timer = nil
	s.mu.Unlock()

	s.run()
}
