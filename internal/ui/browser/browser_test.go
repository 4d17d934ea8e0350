package browser

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perchtree/perch/internal/config"
	"github.com/perchtree/perch/internal/sticky"
	"github.com/perchtree/perch/internal/store"
	"github.com/perchtree/perch/internal/testutil"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	zone.NewGlobal()
	os.Exit(m.Run())
}

func testConfig() config.Config {
	cfg := config.Defaults()
	// No real filesystem watcher in unit tests.
	cfg.Watcher.Enabled = false
	return cfg
}

func newTestModel(t *testing.T, dir string) Model {
	t.Helper()
	m := New(Config{Dir: dir, Cfg: testConfig()})
	t.Cleanup(func() { _ = m.Close() })
	return m
}

// step runs one scheduling quantum.
func step(m Model) {
	m.sched.Step(time.Now())
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestNew_RegistersPanel(t *testing.T) {
	m := newTestModel(t, testutil.SampleProject(t))

	panel, ok := m.registry.Lookup(panelName)
	require.True(t, ok, "expected browser panel to be registered")
	assert.Equal(t, m.pane, panel.Root)
}

func TestNew_OverlayInstallsOnFirstStep(t *testing.T) {
	m := newTestModel(t, testutil.SampleProject(t))

	_, ok := m.pane.Content().(*sticky.Decorator)
	assert.False(t, ok, "overlay should not be installed before the loop runs")

	step(m)

	deco, ok := m.pane.Content().(*sticky.Decorator)
	require.True(t, ok, "expected the decorator to wrap the pane content after one step")
	assert.NotNil(t, deco.Engine())
}

func TestNew_OverlayDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Overlay.Enabled = false
	m := New(Config{Dir: testutil.SampleProject(t), Cfg: cfg})
	defer m.Close()

	step(m)

	_, ok := m.pane.Content().(*sticky.Decorator)
	assert.False(t, ok, "disabled overlay must leave the pane content alone")
}

func TestUpdate_TickStepsScheduler(t *testing.T) {
	m := newTestModel(t, testutil.SampleProject(t))

	m = update(m, tickMsg(time.Now()))

	_, ok := m.pane.Content().(*sticky.Decorator)
	assert.True(t, ok, "a tick should run the queued installation")
}

func TestKeys_CursorMovement(t *testing.T) {
	m := newTestModel(t, testutil.SampleProject(t))
	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m = update(m, keyPress('j'))
	m = update(m, keyPress('j'))
	assert.Equal(t, 2, m.tree.Cursor())

	m = update(m, keyPress('k'))
	assert.Equal(t, 1, m.tree.Cursor())

	m = update(m, keyPress('G'))
	assert.Equal(t, m.tree.RowCount()-1, m.tree.Cursor())

	m = update(m, keyPress('g'))
	assert.Equal(t, 0, m.tree.Cursor())
}

func TestKeys_ExpandCollapse(t *testing.T) {
	m := newTestModel(t, testutil.SampleProject(t))
	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	docs := sticky.NewPath("docs")

	m = update(m, keyPress('l'))
	assert.True(t, m.tree.IsExpanded(docs), "expected 'l' to expand the directory under the cursor")

	m = update(m, keyPress('h'))
	assert.False(t, m.tree.IsExpanded(docs), "expected 'h' to collapse it again")
}

func TestKeys_CollapseOnFileJumpsToParent(t *testing.T) {
	m := newTestModel(t, testutil.SampleProject(t))
	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	docs := sticky.NewPath("docs")

	m.tree.Expand(docs)
	require.True(t, m.tree.SelectPath(sticky.NewPath("docs", "guide.md")))

	m = update(m, keyPress('h'))

	assert.False(t, m.tree.IsExpanded(docs))
	p, ok := m.tree.CursorPath()
	require.True(t, ok)
	assert.True(t, p.Equal(docs), "expected the cursor to land on the collapsed parent")
}

func TestKeys_ToggleHiddenPersistsConfig(t *testing.T) {
	dir := testutil.SampleProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("x\n"), 0o644))
	configPath := filepath.Join(t.TempDir(), ".perch.yaml")

	m := New(Config{Dir: dir, Cfg: testConfig(), ConfigPath: configPath})
	defer m.Close()
	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m = update(m, keyPress('.'))
	assert.True(t, m.tree.ShowHidden())

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())
	assert.True(t, v.GetBool("ui.show_hidden"))
}

func TestKeys_BottomScrollsViewport(t *testing.T) {
	m := newTestModel(t, testutil.FlatDir(t, 12))
	// 6 terminal lines minus the status bar leaves a 5 line window.
	m = update(m, tea.WindowSizeMsg{Width: 40, Height: 6})

	m = update(m, keyPress('G'))

	assert.Equal(t, 11, m.tree.Cursor())
	assert.Equal(t, 7, m.pane.Offset(), "expected the last row to sit on the window's bottom line")
}

func TestScrolling_CursorNeverHidesUnderBand(t *testing.T) {
	m := newTestModel(t, testutil.SampleProject(t))
	m = update(m, tea.WindowSizeMsg{Width: 40, Height: 6})
	step(m) // install the overlay

	m.tree.Expand(sticky.NewPath("docs"))
	m.pane.SetOffset(1)
	step(m) // run the scheduled chain recompute
	require.NotEmpty(t, m.bandChain(), "expected docs to be pinned once its first child scrolls to the top")

	// Row 1 (docs/guide.md) sits under the two line band; moving the
	// cursor onto it must scroll the pane back.
	m.tree.SetCursor(2)
	m = update(m, keyPress('k'))

	assert.Equal(t, 1, m.tree.Cursor())
	assert.Equal(t, 0, m.pane.Offset())
}

func TestMouse_WheelScrolls(t *testing.T) {
	m := newTestModel(t, testutil.FlatDir(t, 30))
	m = update(m, tea.WindowSizeMsg{Width: 40, Height: 10})

	m = update(m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Equal(t, wheelStep, m.pane.Offset())

	m = update(m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Equal(t, 0, m.pane.Offset())
}

func TestMouse_ClickSelectsRow(t *testing.T) {
	m := newTestModel(t, testutil.FlatDir(t, 10))
	m = update(m, tea.WindowSizeMsg{Width: 40, Height: 10})

	m = update(m, tea.MouseMsg{
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionRelease,
		Y:      4,
	})

	assert.Equal(t, 4, m.tree.Cursor())
}

func TestHelp_TogglesOverlay(t *testing.T) {
	m := newTestModel(t, testutil.SampleProject(t))
	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m = update(m, keyPress('?'))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Perch Help")

	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelp)
}

func TestView_StatusBar(t *testing.T) {
	dir := testutil.SampleProject(t)
	m := newTestModel(t, dir)
	m = update(m, tea.WindowSizeMsg{Width: 120, Height: 24})

	view := m.View()
	assert.Contains(t, view, dir)
	assert.Contains(t, view, "3 entries")
	assert.Contains(t, view, "? help")
}

func TestView_StatusBarHidden(t *testing.T) {
	cfg := testConfig()
	cfg.UI.ShowStatusBar = false
	m := New(Config{Dir: testutil.SampleProject(t), Cfg: cfg})
	defer m.Close()
	m = update(m, tea.WindowSizeMsg{Width: 120, Height: 24})

	assert.NotContains(t, m.View(), "? help")
}

func TestQuit_SavesProfile(t *testing.T) {
	dir := testutil.SampleProject(t)
	db, err := store.NewDB(filepath.Join(t.TempDir(), "perch.db"))
	require.NoError(t, err)
	defer db.Close()

	m := New(Config{Dir: dir, Cfg: testConfig(), Profiles: db.Profiles()})
	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m.tree.Expand(sticky.NewPath("docs"))
	require.True(t, m.tree.SelectPath(sticky.NewPath("docs", "notes.txt")))

	_, cmd := m.Update(keyPress('q'))
	require.NotNil(t, cmd, "expected quit to produce a command")

	p, err := db.Profiles().FindByDir(dir)
	require.NoError(t, err)
	require.Len(t, p.Expanded, 1)
	assert.True(t, p.Expanded[0].Equal(sticky.NewPath("docs")))
	assert.True(t, p.CursorPath.Equal(sticky.NewPath("docs", "notes.txt")))
}

func TestNew_RestoresProfile(t *testing.T) {
	dir := testutil.SampleProject(t)
	db, err := store.NewDB(filepath.Join(t.TempDir(), "perch.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Profiles().Save(&store.Profile{
		Dir:          dir,
		Expanded:     []sticky.Path{sticky.NewPath("src")},
		CursorPath:   sticky.NewPath("src", "main.go"),
		ScrollOffset: 1,
	}))

	m := New(Config{Dir: dir, Cfg: testConfig(), Profiles: db.Profiles()})
	defer m.Close()

	assert.True(t, m.tree.IsExpanded(sticky.NewPath("src")))
	p, ok := m.tree.CursorPath()
	require.True(t, ok)
	assert.True(t, p.Equal(sticky.NewPath("src", "main.go")))
	assert.Equal(t, 1, m.pane.Offset())
}

func TestBrowser_RunsAndQuits(t *testing.T) {
	m := New(Config{Dir: testutil.SampleProject(t), Cfg: testConfig()})

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))
	tm.Send(keyPress('q'))
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))
}
