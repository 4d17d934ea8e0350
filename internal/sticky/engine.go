package sticky

import (
	"github.com/perchtree/perch/internal/host"
	"github.com/perchtree/perch/internal/log"
)

// Engine owns the pinned chain for one decorated tree. It recomputes in
// response to structural and scroll triggers, coalescing bursts into at
// most one recomputation per scheduling quantum. All methods must run on
// the host UI loop; the engine carries no locks.
type Engine struct {
	tree   Tree
	sched  host.Scheduler
	offset func() int

	chain    Chain
	pending  bool
	attached bool
	disposed bool
}

// NewEngine binds an engine to a tree. offset reports the scroll pane's
// current first visible canvas line; it is read at recompute time, never
// cached.
func NewEngine(tree Tree, sched host.Scheduler, offset func() int) *Engine {
	return &Engine{
		tree:   tree,
		sched:  sched,
		offset: offset,
	}
}

// Attach activates the engine and schedules the initial recomputation.
// Attaching twice, or after disposal, is a no-op.
func (e *Engine) Attach() {
	if e.attached || e.disposed {
		return
	}
	e.attached = true
	e.scheduleRecompute()
}

// Dispose permanently deactivates the engine. Any recompute still queued
// on the scheduler becomes a no-op when it runs.
func (e *Engine) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.attached = false
	e.chain = nil
	log.Debug(log.CatEngine, "engine disposed")
}

// Disposed reports whether the engine has been permanently deactivated.
func (e *Engine) Disposed() bool { return e.disposed }

// Chain returns the currently pinned chain. The result is shared; callers
// must not mutate it.
func (e *Engine) Chain() Chain { return e.chain }

// NotifyExpanded reports that a node started showing its children.
func (e *Engine) NotifyExpanded(p Path) {
	log.Debug(log.CatEngine, "expanded", "path", p.String())
	e.scheduleRecompute()
}

// NotifyCollapsed reports that a node stopped showing its children.
func (e *Engine) NotifyCollapsed(p Path) {
	log.Debug(log.CatEngine, "collapsed", "path", p.String())
	e.scheduleRecompute()
}

// NotifyModelChanged reports any other structural mutation of the tree.
func (e *Engine) NotifyModelChanged() {
	e.scheduleRecompute()
}

// NotifyScrolled reports a scroll offset change.
func (e *Engine) NotifyScrolled(offset int) {
	e.scheduleRecompute()
}

// NotifyTreeEvent routes a widget change event to the matching trigger.
// It satisfies the Notifier listener signature.
func (e *Engine) NotifyTreeEvent(ev TreeEvent) {
	switch ev {
	case EventExpanded, EventCollapsed, EventModelChanged:
		e.scheduleRecompute()
	}
}

// scheduleRecompute queues one recomputation for the next scheduling
// quantum. Further triggers before it runs coalesce into the same pass.
func (e *Engine) scheduleRecompute() {
	if !e.attached || e.disposed || e.pending {
		return
	}
	e.pending = true
	e.sched.Invoke(func() {
		e.pending = false
		if e.disposed {
			return
		}
		e.recompute()
	})
}

// RecomputeNow derives the chain synchronously. The paint routine uses
// it to bootstrap a band on the first frame after attachment, before any
// scheduled recompute has run.
func (e *Engine) RecomputeNow() {
	if !e.attached || e.disposed {
		return
	}
	e.recompute()
}

func (e *Engine) recompute() {
	// The band itself covers rows at the top of the window, so the line
	// that decides the chain sits one nominal row height lower per
	// pinned entry.
	nominal := e.tree.RowHeight()
	if nominal <= 0 {
		nominal = DefaultRowHeight
	}
	y := e.offset() + len(e.chain)*nominal

	next := DeriveChain(e.tree, y, e.chain)
	if next.Equal(e.chain) {
		return
	}
	log.Debug(log.CatEngine, "chain updated", "depth", len(next), "y", y)
	e.chain = next
}
