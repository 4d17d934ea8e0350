package sticky

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/perchtree/perch/internal/host"
	"github.com/perchtree/perch/internal/log"
)

// Style controls how the pinned band paints.
type Style struct {
	// Entry styles every band line. Its background is forced across the
	// full width so scrolled content never bleeds through the band.
	Entry lipgloss.Style

	// Separator styles the rule drawn beneath the band's last entry.
	Separator lipgloss.Style

	// SeparatorRune fills the separator line. Zero means '─'.
	SeparatorRune rune

	// Mark, when set, post-processes the first line of each band entry.
	// The browser uses it to register mouse hit zones on pinned rows.
	Mark func(index int, p Path, line string) string
}

// DefaultStyle returns the stock band appearance.
func DefaultStyle() Style {
	return Style{
		Entry: lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "254", Dark: "236"}),
		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "250", Dark: "240"}),
		SeparatorRune: '─',
	}
}

// Decorator wraps a scroll pane's content view and paints the pinned
// ancestor band over the top of the visible window. Content renders
// first, unconditionally; a failing band leaves it untouched.
type Decorator struct {
	content host.View
	tree    Tree
	engine  *Engine
	pane    func() *host.ScrollPane
	style   Style
}

// NewDecorator wraps content. pane re-resolves the enclosing scroll pane
// on every frame; hosts rebuild panes on layout changes, so the binding
// is probed rather than cached.
func NewDecorator(content host.View, tree Tree, engine *Engine, pane func() *host.ScrollPane, style Style) *Decorator {
	return &Decorator{
		content: content,
		tree:    tree,
		engine:  engine,
		pane:    pane,
		style:   style,
	}
}

// Content returns the wrapped view, for uninstall.
func (d *Decorator) Content() host.View { return d.content }

// Engine returns the chain engine driving this decorator. Hosts use it
// to size scroll adjustments around the painted band.
func (d *Decorator) Engine() *Engine { return d.engine }

// RenderCanvas renders the wrapped content and composites the band over
// the canvas lines the scroll pane currently windows.
func (d *Decorator) RenderCanvas(width int) string {
	var canvas string
	if d.content != nil {
		canvas = d.content.RenderCanvas(width)
	}
	if d.engine == nil || d.engine.Disposed() || width <= 0 {
		return canvas
	}

	pane := d.pane()
	if pane == nil {
		return canvas
	}

	chain := d.engine.Chain()
	if len(chain) == 0 {
		// First frame after attachment: no scheduled recompute has run
		// yet, so derive synchronously once.
		d.engine.RecomputeNow()
		chain = d.engine.Chain()
	}
	if len(chain) == 0 {
		return canvas
	}

	band := d.renderBand(chain, width)
	if len(band) == 0 {
		return canvas
	}

	lines := strings.Split(canvas, "\n")
	offset := pane.Offset()
	for i, bandLine := range band {
		idx := offset + i
		for len(lines) <= idx {
			lines = append(lines, "")
		}
		lines[idx] = bandLine
	}
	return strings.Join(lines, "\n")
}

// renderBand paints the chain top to bottom: one block of lines per
// entry, then a separator rule beneath the last entry.
func (d *Decorator) renderBand(chain Chain, width int) []string {
	nominal := d.tree.RowHeight()
	if nominal <= 0 {
		nominal = DefaultRowHeight
	}

	var out []string
	for i, p := range chain {
		height := nominal
		indent := 0
		if b, ok := d.tree.BoundsForPath(p); ok {
			if b.Height > 0 {
				height = b.Height
			}
			if b.Indent > 0 {
				indent = b.Indent
			}
		}
		if indent >= width {
			indent = 0
		}

		row, _ := d.tree.RowForPath(p)
		cell := d.tree.RenderCell(p, d.tree.IsExpanded(p), d.tree.IsLeaf(p), row, width-indent)
		cellLines := strings.Split(cell, "\n")

		for ln := 0; ln < height; ln++ {
			var body string
			if ln < len(cellLines) {
				body = ansi.Truncate(cellLines[ln], width-indent, "")
			}
			line := d.opaque(strings.Repeat(" ", indent)+body, width)
			if ln == 0 && d.style.Mark != nil {
				line = d.style.Mark(i, p, line)
			}
			out = append(out, line)
		}
	}

	out = append(out, d.separator(width))
	log.Debug(log.CatPaint, "band painted", "entries", len(chain), "lines", len(out))
	return out
}

// opaque pads line to the full width and forces the band background
// behind it.
func (d *Decorator) opaque(line string, width int) string {
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return d.style.Entry.Render(line)
}

func (d *Decorator) separator(width int) string {
	r := d.style.SeparatorRune
	if r == 0 {
		r = '─'
	}
	return d.style.Separator.Render(strings.Repeat(string(r), width))
}
