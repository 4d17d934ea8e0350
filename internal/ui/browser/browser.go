// Package browser contains the root Bubble Tea model for the perch demo
// browser: a scrollable filesystem tree with the pinned ancestor band
// installed over its scroll pane.
package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/perchtree/perch/internal/cachemanager"
	"github.com/perchtree/perch/internal/config"
	"github.com/perchtree/perch/internal/host"
	"github.com/perchtree/perch/internal/keys"
	"github.com/perchtree/perch/internal/log"
	"github.com/perchtree/perch/internal/sticky"
	"github.com/perchtree/perch/internal/sticky/attach"
	"github.com/perchtree/perch/internal/store"
	"github.com/perchtree/perch/internal/tracing"
	"github.com/perchtree/perch/internal/ui/filetree"
	"github.com/perchtree/perch/internal/ui/help"
	"github.com/perchtree/perch/internal/ui/styles"
	"github.com/perchtree/perch/internal/watcher"
)

const (
	// panelName is the registry name of the panel hosting the tree.
	panelName = "browser"
	// treeID is the component ID of the tree widget inside the panel.
	treeID = "filetree"

	// stepInterval is the scheduling quantum of the host UI loop. Each
	// tick steps the scheduler once.
	stepInterval = 50 * time.Millisecond

	// wheelStep is how many canvas lines one wheel notch scrolls.
	wheelStep = 3

	cellCacheTTL = time.Minute
)

// tickMsg drives one scheduling quantum.
type tickMsg time.Time

// treeChangedMsg reports a debounced change in the browsed directory.
type treeChangedMsg struct{}

// Config carries everything the browser model needs at construction.
type Config struct {
	// Dir is the directory to browse.
	Dir string
	// Cfg is the loaded application configuration.
	Cfg config.Config
	// ConfigPath is the config file to persist UI toggles to. Empty
	// disables persistence.
	ConfigPath string
	// Profiles persists per-directory view state. Nil disables it.
	Profiles store.ProfileRepository
	// Tracer records spans for tree and store operations. Nil or a
	// disabled provider records nothing.
	Tracer *tracing.Provider
}

// Model is the root browser state. The host plumbing (registry,
// scheduler, scroll pane) lives behind pointers, so the model stays a
// value type the way Bubble Tea expects.
type Model struct {
	cfg        config.Config
	configPath string
	dir        string
	keys       keys.KeyMap

	registry *host.Registry
	sched    *host.StepScheduler
	scope    *host.DisposeScope
	tree     *filetree.Model
	pane     *host.ScrollPane
	attacher *attach.Attacher

	watcherHandle *watcher.Watcher
	watcherCh     <-chan struct{}

	profiles store.ProfileRepository
	tracer   *tracing.Provider

	help     help.Model
	showHelp bool

	width  int
	height int
}

// New builds the browser over cfg.Dir and queues the overlay
// installation on the host scheduler.
func New(cfg Config) Model {
	treeOpts := []filetree.Option{
		filetree.WithCellCache(
			cachemanager.NewInMemoryCacheManager[string, string]("filetree-cells", cellCacheTTL, 5*time.Minute),
			cellCacheTTL,
		),
	}
	if cfg.Cfg.UI.ShowHidden {
		treeOpts = append(treeOpts, filetree.WithHidden())
	}

	m := Model{
		cfg:        cfg.Cfg,
		configPath: cfg.ConfigPath,
		dir:        cfg.Dir,
		keys:       keys.DefaultKeyMap(),
		registry:   host.NewRegistry(),
		sched:      host.NewStepScheduler(),
		scope:      host.NewDisposeScope(),
		tree:       filetree.New(treeID, cfg.Dir, treeOpts...),
		profiles:   cfg.Profiles,
		tracer:     cfg.Tracer,
		help:       help.New(),
	}

	m.pane = host.NewScrollPane("browser-pane", m.tree)
	m.registry.Register(panelName, m.pane)

	m.restoreProfile()

	if cfg.Cfg.Overlay.Enabled {
		style := m.bandStyle()
		m.attacher = attach.New(attach.Config{
			Registry:    m.registry,
			PanelName:   panelName,
			TreeID:      treeID,
			Scheduler:   m.sched,
			Scope:       m.scope,
			Style:       &style,
			Interval:    time.Duration(cfg.Cfg.Attach.IntervalMS) * time.Millisecond,
			MaxAttempts: cfg.Cfg.Attach.MaxAttempts,
			OnResult:    m.traceAttachResult,
		})
		// Install runs on the UI loop; the first tick picks it up.
		m.sched.Invoke(m.attacher.Install)
	}

	if cfg.Cfg.AutoReload && cfg.Cfg.Watcher.Enabled {
		w, err := watcher.New(watcher.Config{
			Dir:         cfg.Dir,
			DebounceDur: time.Duration(cfg.Cfg.Watcher.DebounceMS) * time.Millisecond,
		})
		if err == nil {
			if ch, err := w.Start(); err == nil {
				m.watcherHandle = w
				m.watcherCh = ch
			} else {
				_ = w.Stop()
			}
		}
		// The browser works fine without auto-reload; watcher init
		// errors are not fatal.
	}

	return m
}

// bandStyle derives the pinned band appearance from the theme styles
// and the overlay configuration.
func (m Model) bandStyle() sticky.Style {
	style := sticky.Style{
		Entry:         styles.BandStyle,
		Separator:     styles.BandSeparatorStyle,
		SeparatorRune: '─',
	}
	if !m.cfg.Overlay.Separator {
		// Keep the rule line so the band geometry stays stable, just
		// draw it blank.
		style.SeparatorRune = ' '
	}
	if m.cfg.UI.Mouse {
		style.Mark = func(index int, p sticky.Path, line string) string {
			return zone.Mark(makeBandZoneID(index), line)
		}
	}
	return style
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tick()}
	if m.watcherCh != nil {
		cmds = append(cmds, m.waitForChange())
	}
	return tea.Batch(cmds...)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(stepInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForChange blocks on the watcher channel until the directory
// listing changed.
func (m Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-m.watcherCh; !ok {
			return nil
		}
		return treeChangedMsg{}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help = m.help.SetSize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		m.sched.Step(time.Time(msg))
		return m, m.tick()

	case treeChangedMsg:
		m.reload()
		return m, m.waitForChange()

	case tea.MouseMsg:
		if !m.cfg.UI.Mouse {
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.showHelp {
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m.quit()
			case key.Matches(msg, m.keys.Help), msg.String() == "esc":
				m.showHelp = false
			}
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.tree.MoveCursor(-1)
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.Down):
		m.tree.MoveCursor(1)
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.PageUp):
		m.tree.MoveCursor(-m.viewportHeight())
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.PageDown):
		m.tree.MoveCursor(m.viewportHeight())
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.Top):
		m.tree.SetCursor(0)
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.Bottom):
		m.tree.SetCursor(m.tree.RowCount() - 1)
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.Expand):
		if p, ok := m.tree.CursorPath(); ok {
			m.tree.Expand(p)
		}

	case key.Matches(msg, m.keys.Collapse):
		m.collapseAtCursor()

	case key.Matches(msg, m.keys.Toggle):
		m.tree.Toggle()

	case key.Matches(msg, m.keys.Reload):
		m.reload()

	case key.Matches(msg, m.keys.Hidden):
		m.toggleHidden()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	}

	return m, nil
}

// collapseAtCursor collapses the directory under the cursor, or jumps
// to and collapses its parent when the cursor row is not expandable.
func (m Model) collapseAtCursor() {
	p, ok := m.tree.CursorPath()
	if !ok {
		return
	}
	if m.tree.Collapse(p) {
		return
	}
	if len(p) > 1 {
		parent := p.Parent()
		if m.tree.SelectPath(parent) {
			m.tree.Collapse(parent)
			m.ensureCursorVisible()
		}
	}
}

// toggleHidden flips dotfile visibility and persists the choice.
func (m *Model) toggleHidden() {
	show := !m.tree.ShowHidden()
	m.tree.SetShowHidden(show)
	m.cfg.UI.ShowHidden = show
	if m.configPath != "" {
		if err := config.SaveUI(m.configPath, m.cfg.UI); err != nil {
			log.Warn(log.CatConfig, "saving ui settings failed", "path", m.configPath, "error", err)
		}
	}
}

// handleMouse routes wheel scrolling, band clicks, and row clicks.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.pane.SetOffset(m.pane.Offset() - wheelStep)

	case msg.Button == tea.MouseButtonWheelDown:
		m.pane.SetOffset(m.pane.Offset() + wheelStep)

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease:
		m.handleClick(msg)
	}
	return m, nil
}

// handleClick selects the clicked row. A click on a pinned band entry
// jumps the cursor to that ancestor instead.
func (m Model) handleClick(msg tea.MouseMsg) {
	for i, p := range m.bandChain() {
		if z := zone.Get(makeBandZoneID(i)); z != nil && z.InBounds(msg) {
			if m.tree.SelectPath(p) {
				m.ensureCursorVisible()
			}
			return
		}
	}

	row := m.pane.Offset() + msg.Y
	if row >= 0 && row < m.tree.RowCount() {
		m.tree.SetCursor(row)
	}
}

// reload re-snapshots the browsed directory.
func (m Model) reload() {
	m.tree.Reload()

	if m.tracer != nil && m.tracer.Enabled() {
		_, span := m.tracer.Tracer().Start(context.Background(), "tree.reload",
			trace.WithAttributes(
				attribute.String(tracing.AttrTreeDir, m.dir),
				attribute.Int(tracing.AttrTreeRows, m.tree.RowCount()),
			))
		span.AddEvent(tracing.EventTreeReloaded)
		span.End()
	}
}

// traceAttachResult records the outcome of the overlay installation.
func (m Model) traceAttachResult(installed bool, attempts int) {
	if m.tracer == nil || !m.tracer.Enabled() {
		return
	}
	_, span := m.tracer.Tracer().Start(context.Background(), "attach.install",
		trace.WithAttributes(
			attribute.String(tracing.AttrPanelName, panelName),
			attribute.String(tracing.AttrTreeID, treeID),
			attribute.Int(tracing.AttrAttachAttempt, attempts),
		))
	if installed {
		span.AddEvent(tracing.EventOverlayAttached)
	} else {
		span.AddEvent(tracing.EventOverlayGaveUp)
	}
	span.End()
}

// restoreProfile applies the persisted view state for the browsed
// directory, when one exists.
func (m *Model) restoreProfile() {
	if m.profiles == nil {
		return
	}

	p, err := m.profiles.FindByDir(m.dir)
	if err != nil {
		var notFound *store.ProfileNotFoundError
		if !errors.As(err, &notFound) {
			log.Warn(log.CatStore, "restoring profile failed", "dir", m.dir, "error", err)
		}
		return
	}

	m.tree.SetShowHidden(p.ShowHidden)
	m.cfg.UI.ShowHidden = p.ShowHidden
	m.tree.ApplyExpanded(p.Expanded)
	if p.CursorPath != nil {
		m.tree.SelectPath(p.CursorPath)
	}
	m.pane.SetOffset(p.ScrollOffset)

	if m.tracer != nil && m.tracer.Enabled() {
		_, span := m.tracer.Tracer().Start(context.Background(), "store.restore_profile",
			trace.WithAttributes(attribute.String(tracing.AttrProfileDir, m.dir)))
		span.AddEvent(tracing.EventProfileRestored)
		span.End()
	}

	log.Debug(log.CatStore, "profile restored", "dir", m.dir, "expanded", len(p.Expanded))
}

// saveProfile persists the current view state for the browsed directory.
func (m Model) saveProfile() {
	if m.profiles == nil {
		return
	}

	profile := &store.Profile{
		Dir:          m.dir,
		Expanded:     m.tree.ExpandedPaths(),
		ScrollOffset: m.pane.Offset(),
		ShowHidden:   m.tree.ShowHidden(),
	}
	if p, ok := m.tree.CursorPath(); ok {
		profile.CursorPath = p
	}

	if err := m.profiles.Save(profile); err != nil {
		log.Warn(log.CatStore, "saving profile failed", "dir", m.dir, "error", err)
		return
	}

	if m.tracer != nil && m.tracer.Enabled() {
		_, span := m.tracer.Tracer().Start(context.Background(), "store.save_profile",
			trace.WithAttributes(attribute.String(tracing.AttrProfileDir, m.dir)))
		span.AddEvent(tracing.EventProfileSaved)
		span.End()
	}
}

// quit persists state, tears the host plumbing down, and exits.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.saveProfile()
	_ = m.Close()
	return m, tea.Quit
}

// Close releases resources held by the browser. Safe to call after
// quit; everything it touches tolerates double teardown.
func (m Model) Close() error {
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			log.Warn(log.CatWatcher, "stopping watcher failed", "error", err)
		}
	}
	m.scope.Dispose()
	m.sched.Drain()
	m.registry.Close()
	log.Debug(log.CatUI, "browser closed", "dir", m.dir)
	return nil
}

// bandChain returns the currently pinned chain, or nil when no overlay
// is installed.
func (m Model) bandChain() sticky.Chain {
	deco, ok := m.pane.Content().(*sticky.Decorator)
	if !ok {
		return nil
	}
	engine := deco.Engine()
	if engine == nil || engine.Disposed() {
		return nil
	}
	return engine.Chain()
}

// bandHeight is how many window lines the pinned band covers, including
// its separator rule.
func (m Model) bandHeight() int {
	chain := m.bandChain()
	if len(chain) == 0 {
		return 0
	}
	return len(chain)*m.tree.RowHeight() + 1
}

// viewportHeight is the scroll window height: the terminal minus the
// status bar.
func (m Model) viewportHeight() int {
	h := m.height
	if m.cfg.UI.ShowStatusBar {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// ensureCursorVisible scrolls the pane so the cursor row shows below
// the pinned band and above the window bottom.
func (m Model) ensureCursorVisible() {
	cursor := m.tree.Cursor()
	view := m.viewportHeight()
	offset := m.pane.Offset()

	if cursor >= offset+view {
		m.pane.SetOffset(cursor - view + 1)
		return
	}
	if cursor < offset+m.bandHeight() {
		// SetOffset clamps at zero.
		m.pane.SetOffset(cursor - m.bandHeight())
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	view := m.pane.Render(m.width, m.viewportHeight())
	if m.cfg.UI.ShowStatusBar {
		view = lipgloss.JoinVertical(lipgloss.Left, view, m.statusBar())
	}
	if m.showHelp {
		view = m.help.Overlay(view)
	}
	if m.cfg.UI.Mouse {
		view = zone.Scan(view)
	}
	return view
}

// statusBar renders the bottom line: directory, row count, and hints.
func (m Model) statusBar() string {
	parts := []string{
		m.dir,
		fmt.Sprintf("%d entries", m.tree.RowCount()),
	}
	if p, ok := m.tree.CursorPath(); ok {
		parts = append(parts, p.String())
	}
	if m.tree.ShowHidden() {
		parts = append(parts, "hidden")
	}
	parts = append(parts, "? help")

	bar := strings.Join(parts, " │ ")
	if m.width > 2 {
		// Leave room for the style's horizontal padding.
		bar = truncate.StringWithTail(bar, uint(m.width-2), "...")
	}
	return styles.StatusBarStyle.Width(m.width).Render(bar)
}
