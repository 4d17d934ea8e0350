package sticky

// DefaultRowHeight is the fallback cell height used when a tree reports
// no usable nominal row height and a row's real bounds are unavailable.
const DefaultRowHeight = 1

// Bounds locates a row on the tree's virtual canvas, in cell units.
type Bounds struct {
	// Y is the row's first canvas line.
	Y int
	// Height is the number of canvas lines the row occupies.
	Height int
	// Indent is the horizontal cell offset of the row's content.
	Indent int
}

// Bottom returns the first canvas line below the row.
func (b Bounds) Bottom() int {
	return b.Y + b.Height
}

// Contains reports whether canvas line y falls inside the row.
func (b Bounds) Contains(y int) bool {
	return y >= b.Y && y < b.Bottom()
}

// Tree is the read-only view of the host tree widget the overlay decorates.
// The tree is owned and mutated by the host; the overlay only reads it.
//
// Row indices cover the currently visible (expanded) rows, top to bottom.
// All vertical geometry is in cells on an unbounded virtual canvas.
type Tree interface {
	// RowCount returns the number of visible rows.
	RowCount() int

	// PathForRow returns the path of the visible row at index row.
	PathForRow(row int) (Path, bool)

	// RowForPath returns the visible row index for a path.
	RowForPath(p Path) (int, bool)

	// BoundsForRow returns the canvas bounds of the visible row at index row.
	BoundsForRow(row int) (Bounds, bool)

	// BoundsForPath returns the canvas bounds of the row showing p.
	BoundsForPath(p Path) (Bounds, bool)

	// IsExpanded reports whether the node at p currently shows its children.
	IsExpanded(p Path) bool

	// IsLeaf reports whether the node at p can never have children.
	IsLeaf(p Path) bool

	// RowHeight returns the nominal row height in cells, used when a
	// row's real bounds cannot be resolved. Implementations may return
	// zero; callers fall back to DefaultRowHeight.
	RowHeight() int

	// RenderCell renders the node at p into a width-cell drawable block.
	// The result may span multiple lines for rows taller than one cell.
	RenderCell(p Path, expanded, leaf bool, row, width int) string
}

// TreeEvent identifies a structural change reported by a tree widget.
type TreeEvent int

const (
	// EventExpanded fires after a node starts showing its children.
	EventExpanded TreeEvent = iota
	// EventCollapsed fires after a node stops showing its children.
	EventCollapsed
	// EventModelChanged fires after any other model mutation
	// (nodes inserted, removed, changed, or wholesale structure swaps).
	EventModelChanged
)

func (e TreeEvent) String() string {
	switch e {
	case EventExpanded:
		return "expanded"
	case EventCollapsed:
		return "collapsed"
	case EventModelChanged:
		return "model-changed"
	default:
		return "unknown"
	}
}

// Notifier is implemented by tree widgets that publish structural
// change events. The overlay engine subscribes to recompute its chain.
type Notifier interface {
	// OnTreeChanged registers a listener and returns its removal func.
	OnTreeChanged(fn func(TreeEvent)) (remove func())
}
