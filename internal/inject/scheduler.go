// Package inject coordinates render passes against the host page. The host
// mutates its view continuously, so pass triggers can arrive while a pass is
// already running; the scheduler collapses those into one queued re-run
// instead of stacking passes.
package inject

import (
	"log/slog"
	"sync"
)

// Pass is one full sweep over the currently rendered events.
type Pass func()

// State of the scheduler.
type State int

const (
	// Idle means no pass is running.
	Idle State = iota
	// Injecting means a pass is running right now.
	Injecting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Injecting:
		return "injecting"
	default:
		return "unknown"
	}
}

// Scheduler serializes render passes. Any number of Notify calls during a
// running pass collapse into exactly one follow-up pass.
type Scheduler struct {
	logger *slog.Logger

	mu     sync.Mutex
	state  State
	queued bool
	pass   Pass
}

// New creates a scheduler; register a pass before notifying.
func New(logger *slog.Logger) *Scheduler {
	return &Scheduler{logger: logger}
}

// Register sets the pass to run. Registering replaces any previous pass.
func (s *Scheduler) Register(pass Pass) {
	s.mu.Lock()
	s.pass = pass
	s.mu.Unlock()
}

// State returns the scheduler's current state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Notify requests a render pass. When idle the pass runs on the calling
// goroutine before Notify returns. When a pass is already running the
// request is coalesced into a single follow-up run, so a burst of host
// mutations costs at most one extra pass.
func (s *Scheduler) Notify() {
	s.mu.Lock()
	if s.pass == nil {
		s.mu.Unlock()
		return
	}
	if s.state == Injecting {
		s.queued = true
		s.mu.Unlock()
		return
	}
	s.state = Injecting
	pass := s.pass
	s.mu.Unlock()

	for {
		s.runPass(pass)

		s.mu.Lock()
		if s.queued {
			s.queued = false
			pass = s.pass
			s.mu.Unlock()
			continue
		}
		s.state = Idle
		s.mu.Unlock()
		return
	}
}

// runPass executes one pass, containing panics so a bad pass cannot wedge
// the scheduler in the Injecting state.
func (s *Scheduler) runPass(pass Pass) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("render pass panicked", "panic", rec)
		}
	}()
	pass()
}
