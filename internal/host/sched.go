package host

import (
	"sync"
	"time"
)

// Scheduler queues callbacks onto the UI processing loop. Everything
// submitted runs on that single loop, one callback at a time; the
// overlay relies on this confinement instead of locks.
type Scheduler interface {
	// Invoke queues fn to run in the next scheduling quantum.
	Invoke(fn func())

	// InvokeLater queues fn to run once d has elapsed. The returned
	// cancel func is a no-op after fn has run.
	InvokeLater(d time.Duration, fn func()) (cancel func())
}

// timerEntry is a pending delayed callback.
type timerEntry struct {
	due       time.Time
	fn        func()
	cancelled bool
}

// StepScheduler is a Scheduler driven explicitly by the owner of the UI
// loop: each Step(now) call is one scheduling quantum, running every
// queued callback plus every delayed callback that has come due. The
// demo browser steps it from the Bubble Tea update loop; tests step it
// with a synthetic clock.
//
// Submission is safe from any goroutine (event listeners hop onto the
// loop through Invoke); the callbacks themselves run on whichever
// goroutine calls Step.
type StepScheduler struct {
	mu     sync.Mutex
	queue  []func()
	timers []*timerEntry
}

// NewStepScheduler creates an empty scheduler.
func NewStepScheduler() *StepScheduler {
	return &StepScheduler{}
}

// Invoke queues fn for the next Step.
func (s *StepScheduler) Invoke(fn func()) {
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	s.mu.Unlock()
}

// InvokeLater schedules fn to run on the first Step at or after now+d.
func (s *StepScheduler) InvokeLater(d time.Duration, fn func()) (cancel func()) {
	entry := &timerEntry{due: time.Now().Add(d), fn: fn}
	s.mu.Lock()
	s.timers = append(s.timers, entry)
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		entry.cancelled = true
		s.mu.Unlock()
	}
}

// Pending reports whether any callback is queued or timed.
func (s *StepScheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) > 0 {
		return true
	}
	for _, t := range s.timers {
		if !t.cancelled {
			return true
		}
	}
	return false
}

// Step runs one scheduling quantum: all callbacks queued before the
// call plus all due timers. Callbacks queued while stepping run in the
// next quantum.
func (s *StepScheduler) Step(now time.Time) {
	s.mu.Lock()
	due := make([]func(), 0, len(s.queue))

	remaining := s.timers[:0]
	for _, t := range s.timers {
		switch {
		case t.cancelled:
		case !t.due.After(now):
			due = append(due, t.fn)
		default:
			remaining = append(remaining, t)
		}
	}
	s.timers = remaining

	queued := s.queue
	s.queue = nil
	due = append(due, queued...)
	s.mu.Unlock()

	for _, fn := range due {
		fn()
	}
}

// Drain cancels every queued and timed callback without running it.
func (s *StepScheduler) Drain() {
	s.mu.Lock()
	s.queue = nil
	s.timers = nil
	s.mu.Unlock()
}
