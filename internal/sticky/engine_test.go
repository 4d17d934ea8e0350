package sticky

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/perchtree/perch/internal/host"
)

// offsetCounter counts recomputations: the engine reads the offset
// exactly once per recompute pass.
type offsetCounter struct {
	offset int
	reads  int
}

func (c *offsetCounter) fn() func() int {
	return func() int {
		c.reads++
		return c.offset
	}
}

func TestEngine_AttachSchedulesInitialRecompute(t *testing.T) {
	sched := host.NewStepScheduler()
	oc := &offsetCounter{offset: 1}
	e := NewEngine(sampleTree(), sched, oc.fn())

	e.Attach()
	require.Nil(t, e.Chain())
	require.Zero(t, oc.reads)

	sched.Step(time.Now())
	require.Equal(t, 1, oc.reads)
	require.Equal(t, Chain{NewPath("a"), NewPath("a", "b")}, e.Chain())
}

func TestEngine_CoalescesTriggerBursts(t *testing.T) {
	sched := host.NewStepScheduler()
	oc := &offsetCounter{}
	e := NewEngine(sampleTree(), sched, oc.fn())
	e.Attach()
	sched.Step(time.Now())
	require.Equal(t, 1, oc.reads)

	// A burst of mixed triggers inside one quantum runs one pass.
	e.NotifyScrolled(3)
	e.NotifyExpanded(NewPath("a", "b"))
	e.NotifyCollapsed(NewPath("d"))
	e.NotifyModelChanged()
	sched.Step(time.Now())
	require.Equal(t, 2, oc.reads)

	// A quiet quantum runs nothing.
	sched.Step(time.Now())
	require.Equal(t, 2, oc.reads)
}

func TestEngine_BandHeightCompensation(t *testing.T) {
	sched := host.NewStepScheduler()
	oc := &offsetCounter{offset: 1}
	e := NewEngine(sampleTree(), sched, oc.fn())
	e.Attach()
	sched.Step(time.Now())
	require.Len(t, e.Chain(), 2)

	// Scrolling back to the top keeps the band: the two pinned rows
	// cover rows a and a/b, so the deciding line is still inside a/b's
	// subtree.
	oc.offset = 0
	e.NotifyScrolled(0)
	sched.Step(time.Now())
	require.Equal(t, Chain{NewPath("a"), NewPath("a", "b")}, e.Chain())
}

func TestEngine_CollapseClearsChain(t *testing.T) {
	tree := sampleTree()
	sched := host.NewStepScheduler()
	oc := &offsetCounter{offset: 1}
	e := NewEngine(tree, sched, oc.fn())
	e.Attach()
	sched.Step(time.Now())
	require.Len(t, e.Chain(), 2)

	// Collapse everything under a: only top-level rows remain visible.
	tree.rows = treeFromPaths(1, "a", "d").rows
	oc.offset = 0
	e.NotifyCollapsed(NewPath("a"))
	sched.Step(time.Now())
	require.Empty(t, e.Chain())
}

func TestEngine_DisposeCancelsPendingRecompute(t *testing.T) {
	sched := host.NewStepScheduler()
	oc := &offsetCounter{offset: 1}
	e := NewEngine(sampleTree(), sched, oc.fn())
	e.Attach()
	e.Dispose()

	sched.Step(time.Now())
	require.Zero(t, oc.reads)
	require.Nil(t, e.Chain())
	require.True(t, e.Disposed())
}

func TestEngine_TriggersBeforeAttachAreIgnored(t *testing.T) {
	sched := host.NewStepScheduler()
	oc := &offsetCounter{offset: 1}
	e := NewEngine(sampleTree(), sched, oc.fn())

	e.NotifyScrolled(3)
	e.NotifyModelChanged()
	sched.Step(time.Now())
	require.Zero(t, oc.reads)

	e.Attach()
	e.Attach() // idempotent
	sched.Step(time.Now())
	require.Equal(t, 1, oc.reads)
}

func TestEngine_RecomputeNowIsSynchronous(t *testing.T) {
	sched := host.NewStepScheduler()
	oc := &offsetCounter{offset: 1}
	e := NewEngine(sampleTree(), sched, oc.fn())
	e.Attach()

	e.RecomputeNow()
	require.Equal(t, 1, oc.reads)
	require.Len(t, e.Chain(), 2)
}

func TestEngine_TreeEventRouting(t *testing.T) {
	sched := host.NewStepScheduler()
	oc := &offsetCounter{offset: 1}
	e := NewEngine(sampleTree(), sched, oc.fn())
	e.Attach()
	sched.Step(time.Now())

	e.NotifyTreeEvent(EventExpanded)
	sched.Step(time.Now())
	require.Equal(t, 2, oc.reads)

	e.NotifyTreeEvent(EventModelChanged)
	sched.Step(time.Now())
	require.Equal(t, 3, oc.reads)
}
