package host

import "strings"

// ScrollPane shows a height-limited window into its content's virtual
// canvas. It may carry a column header decoration that consumes the top
// line of the window; the overlay installer strips that header so two
// header mechanisms never fight for layout space.
type ScrollPane struct {
	Base

	content      View
	columnHeader View
	offset       int

	onScroll []func(offset int)
	props    map[string]any
}

// NewScrollPane wraps content in a scroll pane.
func NewScrollPane(id string, content View) *ScrollPane {
	p := &ScrollPane{
		Base:    NewBase(id),
		content: content,
		props:   make(map[string]any),
	}
	p.adopt(content)
	return p
}

func (p *ScrollPane) adopt(v View) {
	if c, ok := v.(Component); ok {
		p.children = []Component{c}
		if ps, ok := c.(parentSettable); ok {
			ps.SetParent(p)
		}
	}
}

// Content returns the current content view.
func (p *ScrollPane) Content() View { return p.content }

// SetContent swaps the content view, adopting it as the pane's child.
func (p *ScrollPane) SetContent(v View) {
	p.content = v
	p.adopt(v)
}

// ColumnHeader returns the header decoration, or nil.
func (p *ScrollPane) ColumnHeader() View { return p.columnHeader }

// SetColumnHeader replaces the header decoration; nil removes it.
func (p *ScrollPane) SetColumnHeader(v View) { p.columnHeader = v }

// Offset returns the first visible canvas line.
func (p *ScrollPane) Offset() int { return p.offset }

// SetOffset scrolls the window to the given canvas line (clamped at
// zero) and notifies scroll listeners when the position changed.
func (p *ScrollPane) SetOffset(offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset == p.offset {
		return
	}
	p.offset = offset
	for _, fn := range p.onScroll {
		fn(offset)
	}
}

// OnScroll registers a scroll listener and returns its removal func.
func (p *ScrollPane) OnScroll(fn func(offset int)) (remove func()) {
	p.onScroll = append(p.onScroll, fn)
	idx := len(p.onScroll) - 1
	return func() {
		if idx < len(p.onScroll) {
			p.onScroll[idx] = func(int) {}
		}
	}
}

// Prop reads a client property set by decorators.
func (p *ScrollPane) Prop(key string) (any, bool) {
	v, ok := p.props[key]
	return v, ok
}

// SetProp stores a client property on the pane.
func (p *ScrollPane) SetProp(key string, value any) {
	p.props[key] = value
}

// DeleteProp removes a client property.
func (p *ScrollPane) DeleteProp(key string) {
	delete(p.props, key)
}

// Render windows the content canvas to height lines starting at the
// scroll offset, padding short content with blank lines. A column
// header, when present, occupies the first window line.
func (p *ScrollPane) Render(width, height int) string {
	if height <= 0 || p.content == nil {
		return ""
	}

	var out []string
	if p.columnHeader != nil {
		header := canvasLines(p.columnHeader.RenderCanvas(width))
		if len(header) > 0 {
			out = append(out, header[0])
			height--
		}
	}

	lines := canvasLines(p.content.RenderCanvas(width))
	for i := p.offset; i < p.offset+height; i++ {
		if i >= 0 && i < len(lines) {
			out = append(out, lines[i])
		} else {
			out = append(out, "")
		}
	}
	return strings.Join(out, "\n")
}
