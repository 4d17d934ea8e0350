// Package attach installs the sticky overlay into a host panel whose
// construction timing the overlay does not control. It polls on the host
// scheduler with a bounded retry budget and reacts to panel lifecycle
// events, giving up silently when the panel never materializes.
package attach

import (
	"context"
	"time"

	"github.com/perchtree/perch/internal/host"
	"github.com/perchtree/perch/internal/log"
	"github.com/perchtree/perch/internal/sticky"
)

const (
	// DefaultInterval is the delay between installation attempts.
	DefaultInterval = 500 * time.Millisecond
	// DefaultMaxAttempts bounds the polling budget (~25s at the default
	// interval).
	DefaultMaxAttempts = 50

	// markerProp tags a scroll pane that already carries an overlay.
	markerProp = "sticky.overlay.installed"
)

// Config describes where and how to install the overlay.
type Config struct {
	// Registry is the host's panel registry.
	Registry *host.Registry
	// PanelName is the registry name of the panel hosting the tree.
	PanelName string
	// TreeID is the component ID of the tree widget inside the panel.
	TreeID string
	// Scheduler is the host's UI-loop-confined scheduler.
	Scheduler host.Scheduler
	// Scope ties the installed overlay's teardown to the host lifetime.
	Scope *host.DisposeScope
	// Style controls band appearance. Zero value means sticky.DefaultStyle.
	Style *sticky.Style

	// Interval between attempts; zero means DefaultInterval.
	Interval time.Duration
	// MaxAttempts bounds polling; zero means DefaultMaxAttempts.
	MaxAttempts int

	// OnResult, when set, runs once on the UI loop after polling ends,
	// with whether the overlay installed and how many attempts it took.
	OnResult func(installed bool, attempts int)
}

// Attacher drives the bounded installation of one overlay.
type Attacher struct {
	cfg      Config
	style    sticky.Style
	attempts int
	done     bool
	started  bool

	cancelTimer  func()
	cancelEvents context.CancelFunc
}

// New creates an attacher. Install starts it.
func New(cfg Config) *Attacher {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	style := sticky.DefaultStyle()
	if cfg.Style != nil {
		style = *cfg.Style
	}
	return &Attacher{cfg: cfg, style: style}
}

// Install begins polling for the target panel. It is idempotent: calling
// it again while polling, or after a successful installation, does
// nothing. Must run on the host UI loop.
func (a *Attacher) Install() {
	if a.started || a.done {
		return
	}
	a.started = true

	if a.cfg.Scope != nil {
		a.cfg.Scope.OnDispose(a.stop)
	}
	a.watchPanelEvents()
	a.attempt()
}

// watchPanelEvents re-attempts installation whenever a panel registers
// or becomes visible, so a late panel attaches without waiting out a
// full polling interval. Events arrive on a broker goroutine and hop to
// the UI loop through the scheduler.
func (a *Attacher) watchPanelEvents() {
	if a.cfg.Registry == nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancelEvents = cancel

	ch := a.cfg.Registry.Events().Subscribe(ctx)
	go func() {
		for ev := range ch {
			if ev.Payload.Name != a.cfg.PanelName {
				continue
			}
			a.cfg.Scheduler.Invoke(func() {
				if !a.done {
					a.attempt()
				}
			})
		}
	}()
}

// attempt makes one installation pass. Any panic is recovered and
// logged; a failed pass schedules the next one until the budget runs
// out.
func (a *Attacher) attempt() {
	if a.done {
		return
	}
	a.attempts++

	ok := func() (ok bool) {
		defer func() {
			if r := recover(); r != nil {
				log.Debug(log.CatAttach, "attempt panicked", "attempt", a.attempts, "recovered", r)
				ok = false
			}
		}()
		return a.tryInstall()
	}()

	if ok {
		a.done = true
		a.stop()
		log.Debug(log.CatAttach, "overlay installed", "panel", a.cfg.PanelName, "attempts", a.attempts)
		if a.cfg.OnResult != nil {
			a.cfg.OnResult(true, a.attempts)
		}
		return
	}

	if a.attempts >= a.cfg.MaxAttempts {
		a.done = true
		a.stop()
		log.Debug(log.CatAttach, "giving up", "panel", a.cfg.PanelName, "attempts", a.attempts)
		if a.cfg.OnResult != nil {
			a.cfg.OnResult(false, a.attempts)
		}
		return
	}

	a.cancelTimer = a.cfg.Scheduler.InvokeLater(a.cfg.Interval, a.attempt)
}

// tryInstall resolves the panel, tree, and enclosing scroll pane, then
// wraps the pane content in the overlay decorator.
func (a *Attacher) tryInstall() bool {
	if a.cfg.Registry == nil {
		return false
	}
	panel, ok := a.cfg.Registry.Lookup(a.cfg.PanelName)
	if !ok {
		return false
	}

	comp := host.Find(panel.Root, a.cfg.TreeID)
	if comp == nil {
		return false
	}
	tree, ok := comp.(sticky.Tree)
	if !ok {
		return false
	}

	pane := host.NearestScrollPane(comp)
	if pane == nil {
		return false
	}
	if _, installed := pane.Prop(markerProp); installed {
		// Someone else got here first; one overlay per pane.
		return true
	}

	// The pane's own column header and the sticky band would both claim
	// the top of the window; the band wins.
	pane.SetColumnHeader(nil)

	engine := sticky.NewEngine(tree, a.cfg.Scheduler, pane.Offset)
	probe := a.paneProbe(pane)
	deco := sticky.NewDecorator(pane.Content(), tree, engine, probe, a.style)
	pane.SetContent(deco)
	pane.SetProp(markerProp, true)

	removeScroll := pane.OnScroll(func(offset int) {
		engine.NotifyScrolled(offset)
	})
	var removeTree func()
	if notifier, ok := comp.(sticky.Notifier); ok {
		removeTree = notifier.OnTreeChanged(engine.NotifyTreeEvent)
	}

	if a.cfg.Scope != nil {
		a.cfg.Scope.OnDispose(func() {
			removeScroll()
			if removeTree != nil {
				removeTree()
			}
			engine.Dispose()
			if deco == pane.Content() {
				pane.SetContent(deco.Content())
			}
			pane.DeleteProp(markerProp)
		})
	}

	engine.Attach()
	return true
}

// paneProbe re-resolves the scroll pane from the registry each frame,
// falling back to the pane captured at install time when the lookup path
// is momentarily broken.
func (a *Attacher) paneProbe(installed *host.ScrollPane) func() *host.ScrollPane {
	return func() *host.ScrollPane {
		if panel, ok := a.cfg.Registry.Lookup(a.cfg.PanelName); ok {
			if comp := host.Find(panel.Root, a.cfg.TreeID); comp != nil {
				if pane := host.NearestScrollPane(comp); pane != nil {
					return pane
				}
			}
		}
		return installed
	}
}

// stop cancels the pending timer and the event subscription.
func (a *Attacher) stop() {
	a.done = true
	if a.cancelTimer != nil {
		a.cancelTimer()
		a.cancelTimer = nil
	}
	if a.cancelEvents != nil {
		a.cancelEvents()
		a.cancelEvents = nil
	}
}
