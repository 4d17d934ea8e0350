package filetree

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perchtree/perch/internal/cachemanager"
	"github.com/perchtree/perch/internal/sticky"
	"github.com/perchtree/perch/internal/testutil"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// sampleDir builds:
//
//	docs/ (guide.md, notes.txt)
//	src/  (pkg/ (lib.go), main.go)
//	.hidden
//	README.md
func sampleDir(t *testing.T) string {
	t.Helper()
	return testutil.NewBuilder(t).
		WithFile("docs/guide.md").
		WithFile("docs/notes.txt").
		WithFile("src/pkg/lib.go").
		WithFile("src/main.go").
		WithFile(".hidden").
		WithFile("README.md").
		Build()
}

func TestNew_TopLevelRowsDirsFirst(t *testing.T) {
	m := New("tree", sampleDir(t))

	var names []string
	for i := 0; i < m.RowCount(); i++ {
		p, ok := m.PathForRow(i)
		require.True(t, ok)
		names = append(names, p.String())
	}
	assert.Equal(t, []string{"/docs", "/src", "/README.md"}, names)
}

func TestNew_WithHiddenIncludesDotfiles(t *testing.T) {
	m := New("tree", sampleDir(t), WithHidden())

	row, ok := m.RowForPath(sticky.NewPath(".hidden"))
	require.True(t, ok)
	assert.Equal(t, 2, row) // after the two directories
}

func TestExpandCollapse(t *testing.T) {
	m := New("tree", sampleDir(t))

	var events []sticky.TreeEvent
	remove := m.OnTreeChanged(func(ev sticky.TreeEvent) { events = append(events, ev) })
	defer remove()

	require.True(t, m.Expand(sticky.NewPath("src")))
	assert.Equal(t, 5, m.RowCount()) // docs, src, src/pkg, src/main.go, README.md

	row, ok := m.RowForPath(sticky.NewPath("src", "pkg"))
	require.True(t, ok)
	assert.Equal(t, 2, row)
	assert.True(t, m.IsExpanded(sticky.NewPath("src")))
	assert.False(t, m.IsLeaf(sticky.NewPath("src", "pkg")))
	assert.True(t, m.IsLeaf(sticky.NewPath("src", "main.go")))

	// Expanding again is a no-op.
	require.False(t, m.Expand(sticky.NewPath("src")))

	require.True(t, m.Collapse(sticky.NewPath("src")))
	assert.Equal(t, 3, m.RowCount())
	assert.Equal(t, []sticky.TreeEvent{sticky.EventExpanded, sticky.EventCollapsed}, events)
}

func TestBounds_IndentFollowsDepth(t *testing.T) {
	m := New("tree", sampleDir(t))
	m.Expand(sticky.NewPath("src"))
	m.Expand(sticky.NewPath("src", "pkg"))

	b, ok := m.BoundsForPath(sticky.NewPath("src"))
	require.True(t, ok)
	assert.Equal(t, sticky.Bounds{Y: 1, Height: 1, Indent: 0}, b)

	b, ok = m.BoundsForPath(sticky.NewPath("src", "pkg"))
	require.True(t, ok)
	assert.Equal(t, sticky.Bounds{Y: 2, Height: 1, Indent: 2}, b)

	b, ok = m.BoundsForPath(sticky.NewPath("src", "pkg", "lib.go"))
	require.True(t, ok)
	assert.Equal(t, sticky.Bounds{Y: 3, Height: 1, Indent: 4}, b)
}

func TestReload_PreservesExpansionAndCursor(t *testing.T) {
	dir := sampleDir(t)
	m := New("tree", dir)
	m.Expand(sticky.NewPath("src"))
	m.SelectPath(sticky.NewPath("src", "main.go"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "NEW.md"), []byte("x"), 0644))
	m.Reload()

	assert.True(t, m.IsExpanded(sticky.NewPath("src")))
	_, ok := m.RowForPath(sticky.NewPath("NEW.md"))
	assert.True(t, ok)

	p, ok := m.CursorPath()
	require.True(t, ok)
	assert.Equal(t, "/src/main.go", p.String())
}

func TestReload_DropsVanishedExpansion(t *testing.T) {
	dir := sampleDir(t)
	m := New("tree", dir)
	m.Expand(sticky.NewPath("docs"))

	require.NoError(t, os.RemoveAll(filepath.Join(dir, "docs")))
	m.Reload()

	_, ok := m.RowForPath(sticky.NewPath("docs"))
	assert.False(t, ok)
	assert.Equal(t, 2, m.RowCount())
}

func TestCursorMovement(t *testing.T) {
	m := New("tree", sampleDir(t))

	m.MoveCursor(10)
	assert.Equal(t, m.RowCount()-1, m.Cursor())
	m.MoveCursor(-100)
	assert.Equal(t, 0, m.Cursor())

	m.SetCursor(1)
	p, ok := m.CursorPath()
	require.True(t, ok)
	assert.Equal(t, "/src", p.String())

	// Toggle on a directory expands it; on a file it does nothing.
	m.Toggle()
	assert.True(t, m.IsExpanded(sticky.NewPath("src")))
	m.Toggle()
	assert.False(t, m.IsExpanded(sticky.NewPath("src")))
}

func TestRenderCell_MarkerAndTruncation(t *testing.T) {
	m := New("tree", sampleDir(t))

	cell := m.RenderCell(sticky.NewPath("src"), false, false, 1, 20)
	assert.True(t, strings.HasPrefix(cell, "▸ "))

	cell = m.RenderCell(sticky.NewPath("src"), true, false, 1, 20)
	assert.True(t, strings.HasPrefix(cell, "▾ "))

	cell = m.RenderCell(sticky.NewPath("README.md"), false, true, 2, 8)
	assert.LessOrEqual(t, lipgloss.Width(cell), 8)
	assert.Contains(t, cell, "...")
}

func TestRenderCell_UsesCache(t *testing.T) {
	mgr := cachemanager.NewInMemoryCacheManager[string, string](
		"render-cache", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	m := New("tree", sampleDir(t), WithCellCache(mgr, time.Minute))

	first := m.RenderCell(sticky.NewPath("src"), false, false, 1, 20)
	second := m.RenderCell(sticky.NewPath("src"), false, false, 1, 20)
	assert.Equal(t, first, second)
}

func TestRenderCanvas_OneLinePerRow(t *testing.T) {
	m := New("tree", sampleDir(t))
	m.Expand(sticky.NewPath("src"))

	lines := strings.Split(m.RenderCanvas(30), "\n")
	require.Len(t, lines, m.RowCount())
	assert.Contains(t, lines[1], "src")
	// Nested rows are indented.
	assert.True(t, strings.HasPrefix(lines[2], "  "))
}

func TestExpandedPaths_RoundTrip(t *testing.T) {
	dir := sampleDir(t)
	m := New("tree", dir)
	m.Expand(sticky.NewPath("src"))
	m.Expand(sticky.NewPath("src", "pkg"))

	saved := m.ExpandedPaths()
	require.Len(t, saved, 2)

	fresh := New("tree2", dir)
	fresh.ApplyExpanded(saved)
	assert.True(t, fresh.IsExpanded(sticky.NewPath("src")))
	assert.True(t, fresh.IsExpanded(sticky.NewPath("src", "pkg")))
}
