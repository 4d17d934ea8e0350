// Package filetree is a filesystem tree widget for the demo browser. It
// renders a directory hierarchy onto a virtual canvas and exposes the
// read-only row geometry the sticky overlay consumes.
package filetree

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/perchtree/perch/internal/cachemanager"
	"github.com/perchtree/perch/internal/host"
	"github.com/perchtree/perch/internal/log"
	"github.com/perchtree/perch/internal/sticky"
	"github.com/perchtree/perch/internal/ui/styles"
)

const indentWidth = 2

// cellInput carries everything renderCell needs, so the render cache can
// re-produce a cell on a miss.
type cellInput struct {
	node     *Node
	expanded bool
	width    int
}

// Model holds the file tree state. It implements the tree-side contract
// of the sticky overlay: row geometry, cell rendering, and change
// notification.
type Model struct {
	host.Base

	dir        string
	showHidden bool
	root       *Node
	rows       []*Node
	rowIndex   map[string]int
	cursor     int

	cellCache *cachemanager.ReadThroughCache[string, string, cellInput]
	cacheTTL  time.Duration

	listeners []func(sticky.TreeEvent)
}

// Option configures a Model.
type Option func(*Model)

// WithHidden includes dotfiles in the listing.
func WithHidden() Option {
	return func(m *Model) { m.showHidden = true }
}

// WithCellCache caches rendered cells through the given manager.
func WithCellCache(mgr cachemanager.CacheManager[string, string], ttl time.Duration) Option {
	return func(m *Model) {
		m.cacheTTL = ttl
		m.cellCache = cachemanager.NewReadThroughCache[string, string, cellInput](mgr,
			func(ctx context.Context, in cellInput) (string, error) {
				return renderCell(in), nil
			}, false)
	}
}

// New snapshots dir into a tree widget with the given component ID.
func New(id, dir string, opts ...Option) *Model {
	m := &Model{
		Base: host.NewBase(id),
		dir:  dir,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.root = &Node{IsDir: true, loaded: true}
	m.root.children = loadDir(dir, m.showHidden)
	for _, c := range m.root.children {
		c.parent = m.root
	}
	m.refresh()
	return m
}

// Dir returns the browsed directory.
func (m *Model) Dir() string { return m.dir }

// ShowHidden reports whether dotfiles are included in the listing.
func (m *Model) ShowHidden() bool { return m.showHidden }

// SetShowHidden switches dotfile visibility and re-snapshots the tree
// when the setting changed.
func (m *Model) SetShowHidden(show bool) {
	if m.showHidden == show {
		return
	}
	m.showHidden = show
	m.Reload()
}

// refresh re-flattens the visible rows after any structural change.
func (m *Model) refresh() {
	m.rows = m.rows[:0]
	m.flatten(m.root)
	m.rowIndex = make(map[string]int, len(m.rows))
	for i, n := range m.rows {
		m.rowIndex[n.Path().String()] = i
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) flatten(n *Node) {
	for _, c := range n.children {
		m.rows = append(m.rows, c)
		if c.expanded {
			m.flatten(c)
		}
	}
}

// absPath resolves a node path under the browsed directory.
func (m *Model) absPath(p sticky.Path) string {
	return filepath.Join(append([]string{m.dir}, p...)...)
}

// find walks loaded children down the path.
func (m *Model) find(p sticky.Path) *Node {
	cur := m.root
	for _, name := range p {
		cur = cur.child(name)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Expand shows the children of the directory at p, loading them on
// first use.
func (m *Model) Expand(p sticky.Path) bool {
	n := m.find(p)
	if n == nil || !n.IsDir || n.expanded {
		return false
	}
	if !n.loaded {
		n.children = loadDir(m.absPath(p), m.showHidden)
		for _, c := range n.children {
			c.parent = n
		}
		n.loaded = true
	}
	n.expanded = true
	m.refresh()
	m.fire(sticky.EventExpanded)
	return true
}

// Collapse hides the children of the directory at p.
func (m *Model) Collapse(p sticky.Path) bool {
	n := m.find(p)
	if n == nil || !n.expanded {
		return false
	}
	n.expanded = false
	m.refresh()
	m.fire(sticky.EventCollapsed)
	return true
}

// Toggle expands or collapses the directory under the cursor.
func (m *Model) Toggle() {
	n := m.cursorNode()
	if n == nil || !n.IsDir {
		return
	}
	if n.expanded {
		m.Collapse(n.Path())
	} else {
		m.Expand(n.Path())
	}
}

// Reload re-snapshots the directory, preserving expansion state and the
// cursor where the entries still exist.
func (m *Model) Reload() {
	expanded := m.ExpandedPaths()
	var cursorPath sticky.Path
	if n := m.cursorNode(); n != nil {
		cursorPath = n.Path()
	}

	m.root = &Node{IsDir: true, loaded: true}
	m.root.children = loadDir(m.dir, m.showHidden)
	for _, c := range m.root.children {
		c.parent = m.root
	}
	m.refresh()
	for _, p := range expanded {
		m.Expand(sticky.NewPath(p...))
	}
	if cursorPath != nil {
		if row, ok := m.rowIndex[cursorPath.String()]; ok {
			m.cursor = row
		}
	}
	m.fire(sticky.EventModelChanged)
	log.Debug(log.CatTree, "reloaded", "dir", m.dir, "rows", len(m.rows))
}

// ExpandedPaths lists every expanded directory, shallow first, for
// persistence.
func (m *Model) ExpandedPaths() []sticky.Path {
	var out []sticky.Path
	var walk func(*Node)
	walk = func(n *Node) {
		for _, c := range n.children {
			if c.expanded {
				out = append(out, c.Path())
				walk(c)
			}
		}
	}
	walk(m.root)
	return out
}

// ApplyExpanded restores a persisted expansion set. Paths that no
// longer exist are skipped.
func (m *Model) ApplyExpanded(paths []sticky.Path) {
	for _, p := range paths {
		m.Expand(p)
	}
}

// Cursor returns the current cursor row.
func (m *Model) Cursor() int { return m.cursor }

// CursorPath returns the path under the cursor.
func (m *Model) CursorPath() (sticky.Path, bool) {
	if n := m.cursorNode(); n != nil {
		return n.Path(), true
	}
	return nil, false
}

func (m *Model) cursorNode() *Node {
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		return m.rows[m.cursor]
	}
	return nil
}

// MoveCursor moves the cursor by delta, clamped to the row range.
func (m *Model) MoveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= len(m.rows) {
		next = len(m.rows) - 1
	}
	if next < 0 {
		next = 0
	}
	m.cursor = next
}

// SetCursor jumps the cursor to the given row.
func (m *Model) SetCursor(row int) {
	m.cursor = row
	m.MoveCursor(0)
}

// SelectPath moves the cursor to the row showing p.
func (m *Model) SelectPath(p sticky.Path) bool {
	row, ok := m.rowIndex[p.String()]
	if ok {
		m.cursor = row
	}
	return ok
}

// --- sticky.Tree ---

func (m *Model) RowCount() int { return len(m.rows) }

func (m *Model) PathForRow(row int) (sticky.Path, bool) {
	if row < 0 || row >= len(m.rows) {
		return nil, false
	}
	return m.rows[row].Path(), true
}

func (m *Model) RowForPath(p sticky.Path) (int, bool) {
	row, ok := m.rowIndex[p.String()]
	return row, ok
}

func (m *Model) BoundsForRow(row int) (sticky.Bounds, bool) {
	if row < 0 || row >= len(m.rows) {
		return sticky.Bounds{}, false
	}
	return sticky.Bounds{
		Y:      row,
		Height: 1,
		Indent: m.rows[row].Depth() * indentWidth,
	}, true
}

func (m *Model) BoundsForPath(p sticky.Path) (sticky.Bounds, bool) {
	row, ok := m.rowIndex[p.String()]
	if !ok {
		return sticky.Bounds{}, false
	}
	return m.BoundsForRow(row)
}

func (m *Model) IsExpanded(p sticky.Path) bool {
	n := m.find(p)
	return n != nil && n.expanded
}

func (m *Model) IsLeaf(p sticky.Path) bool {
	n := m.find(p)
	return n == nil || !n.IsDir
}

func (m *Model) RowHeight() int { return 1 }

// RenderCell renders the entry at p into a one-line, width-cell block.
func (m *Model) RenderCell(p sticky.Path, expanded, leaf bool, row, width int) string {
	n := m.find(p)
	if n == nil {
		return ""
	}
	in := cellInput{node: n, expanded: expanded, width: width}
	if m.cellCache != nil {
		key := fmt.Sprintf("cell:%s:%d:%t", p, width, expanded)
		if cell, err := m.cellCache.Get(context.Background(), key, in, m.cacheTTL); err == nil {
			return cell
		}
	}
	return renderCell(in)
}

// renderCell draws one entry: expansion marker, styled name, and a
// size column for regular files when there is room.
func renderCell(in cellInput) string {
	if in.width <= 0 {
		return ""
	}
	n := in.node

	marker := "  "
	if n.IsDir {
		if in.expanded {
			marker = "▾ "
		} else {
			marker = "▸ "
		}
	}

	nameStyle := styles.FileStyle
	switch {
	case strings.HasPrefix(n.Name, "."):
		nameStyle = styles.HiddenStyle
	case n.IsSymlink:
		nameStyle = styles.SymlinkStyle
	case n.IsDir:
		nameStyle = styles.DirStyle
	}

	size := ""
	if !n.IsDir {
		size = styles.FormatSize(n.Size)
	}

	nameRoom := in.width - lipgloss.Width(marker)
	if size != "" && nameRoom > len(size)+8 {
		nameRoom -= len(size) + 1
	} else {
		size = ""
	}
	name := styles.TruncateString(n.Name, nameRoom)

	line := marker + nameStyle.Render(name)
	if size != "" {
		pad := in.width - lipgloss.Width(line) - len(size)
		if pad > 0 {
			sizeStyle := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)
			line += strings.Repeat(" ", pad) + sizeStyle.Render(size)
		}
	}
	return line
}

// --- sticky.Notifier ---

// OnTreeChanged registers a structural change listener.
func (m *Model) OnTreeChanged(fn func(sticky.TreeEvent)) (remove func()) {
	m.listeners = append(m.listeners, fn)
	idx := len(m.listeners) - 1
	return func() { m.listeners[idx] = func(sticky.TreeEvent) {} }
}

func (m *Model) fire(ev sticky.TreeEvent) {
	for _, fn := range m.listeners {
		fn(ev)
	}
}

// --- host.View ---

// RenderCanvas draws every visible row onto the virtual canvas. The
// cursor row carries the selection background so it reads through the
// scroll pane window.
func (m *Model) RenderCanvas(width int) string {
	if len(m.rows) == 0 {
		return styles.StatusBarStyle.Render("(empty directory)")
	}
	lines := make([]string, len(m.rows))
	for i, n := range m.rows {
		indent := n.Depth() * indentWidth
		if indent >= width {
			indent = 0
		}
		cell := m.RenderCell(n.Path(), n.expanded, !n.IsDir, i, width-indent)
		line := strings.Repeat(" ", indent) + cell
		if i == m.cursor {
			line = styles.SelectedRowStyle.Render(line)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
