package host

import (
	"sync"
	"time"
)

// Loop is a Scheduler backed by a single goroutine. Hosts without their
// own update loop (headless adapters, tests that want real time) run
// callbacks through it; everything submitted executes serially.
type Loop struct {
	fns  chan func()
	done chan struct{}
	once sync.Once
}

// NewLoop starts the processing goroutine.
func NewLoop() *Loop {
	l := &Loop{
		fns:  make(chan func(), 64),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	for {
		select {
		case <-l.done:
			return
		case fn := <-l.fns:
			fn()
		}
	}
}

// Invoke queues fn onto the loop. Calls after Close are dropped.
func (l *Loop) Invoke(fn func()) {
	select {
	case <-l.done:
	case l.fns <- fn:
	}
}

// InvokeLater queues fn onto the loop once d has elapsed.
func (l *Loop) InvokeLater(d time.Duration, fn func()) (cancel func()) {
	t := time.AfterFunc(d, func() {
		l.Invoke(fn)
	})
	return func() { t.Stop() }
}

// Close stops the loop. Queued callbacks that have not started are
// dropped.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.done) })
}
