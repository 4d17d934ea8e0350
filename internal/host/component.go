// Package host models the collaborating host UI the overlay installs
// into: a registry of asynchronously constructed named panels, a widget
// hierarchy with scroll panes, a UI-loop-confined scheduler, and a
// disposal scope. The overlay only ever reads host state; it never
// mutates host model data.
package host

import "strings"

// View renders the full virtual canvas of some content at the given
// width. Scroll panes window the canvas by their offset.
type View interface {
	RenderCanvas(width int) string
}

// Component is a node in the host widget hierarchy.
type Component interface {
	ID() string
	Parent() Component
	Children() []Component
}

// Base provides the Component plumbing for embedding widgets.
type Base struct {
	id       string
	parent   Component
	children []Component
}

// NewBase creates component plumbing with the given widget ID.
func NewBase(id string) Base {
	return Base{id: id}
}

func (b *Base) ID() string            { return b.id }
func (b *Base) Parent() Component     { return b.parent }
func (b *Base) Children() []Component { return b.children }

// SetParent records the enclosing component. Containers call this when
// adopting a child; widgets do not call it themselves.
func (b *Base) SetParent(p Component) { b.parent = p }

// parentSettable lets containers adopt children built around Base.
type parentSettable interface {
	SetParent(Component)
}

// Box is a plain container component.
type Box struct {
	Base
}

// NewBox creates an empty container.
func NewBox(id string) *Box {
	return &Box{Base: NewBase(id)}
}

// Add adopts child, wiring its parent pointer when possible.
func (b *Box) Add(child Component) {
	b.children = append(b.children, child)
	if ps, ok := child.(parentSettable); ok {
		ps.SetParent(b)
	}
}

// Find walks the hierarchy depth-first and returns the component with
// the given ID, or nil.
func Find(root Component, id string) Component {
	if root == nil {
		return nil
	}
	if root.ID() == id {
		return root
	}
	for _, child := range root.Children() {
		if found := Find(child, id); found != nil {
			return found
		}
	}
	return nil
}

// NearestScrollPane walks up from c and returns the closest enclosing
// scroll pane, or nil when none exists yet.
func NearestScrollPane(c Component) *ScrollPane {
	for cur := c; cur != nil; cur = cur.Parent() {
		if pane, ok := cur.(*ScrollPane); ok {
			return pane
		}
	}
	return nil
}

// canvasLines splits a rendered canvas into lines. An empty canvas is a
// zero-line canvas, not a single blank line.
func canvasLines(canvas string) []string {
	if canvas == "" {
		return nil
	}
	return strings.Split(canvas, "\n")
}
