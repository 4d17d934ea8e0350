package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Assignments(t *testing.T) {
	k := DefaultKeyMap()

	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{"Up uses k and up", k.Up, []string{"k", "up"}},
		{"Down uses j and down", k.Down, []string{"j", "down"}},
		{"PageUp uses ctrl+u and pgup", k.PageUp, []string{"ctrl+u", "pgup"}},
		{"PageDown uses ctrl+d and pgdown", k.PageDown, []string{"ctrl+d", "pgdown"}},
		{"Top uses g and home", k.Top, []string{"g", "home"}},
		{"Bottom uses G and end", k.Bottom, []string{"G", "end"}},
		{"Expand uses l and right", k.Expand, []string{"l", "right"}},
		{"Collapse uses h and left", k.Collapse, []string{"h", "left"}},
		{"Toggle uses enter and space", k.Toggle, []string{"enter", " "}},
		{"Reload uses r", k.Reload, []string{"r"}},
		{"Hidden uses dot", k.Hidden, []string{"."}},
		{"Help uses question mark", k.Help, []string{"?"}},
		{"Quit uses q and ctrl+c", k.Quit, []string{"q", "ctrl+c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
		})
	}
}

func TestDefaultKeyMap_HelpTextDefined(t *testing.T) {
	k := DefaultKeyMap()

	for _, b := range []struct {
		name    string
		binding key.Binding
	}{
		{"Up", k.Up}, {"Down", k.Down},
		{"PageUp", k.PageUp}, {"PageDown", k.PageDown},
		{"Top", k.Top}, {"Bottom", k.Bottom},
		{"Expand", k.Expand}, {"Collapse", k.Collapse},
		{"Toggle", k.Toggle}, {"Reload", k.Reload}, {"Hidden", k.Hidden},
		{"Help", k.Help}, {"Quit", k.Quit},
	} {
		t.Run(b.name, func(t *testing.T) {
			help := b.binding.Help()
			require.NotEmpty(t, help.Key, "key help should not be empty")
			require.NotEmpty(t, help.Desc, "description help should not be empty")
		})
	}
}

func TestShortHelp(t *testing.T) {
	k := DefaultKeyMap()
	help := k.ShortHelp()
	require.Len(t, help, 2)
	require.Equal(t, k.Help, help[0])
	require.Equal(t, k.Quit, help[1])
}

func TestFullHelp(t *testing.T) {
	k := DefaultKeyMap()
	help := k.FullHelp()
	require.Len(t, help, 3)

	require.Contains(t, help[0], k.Up)
	require.Contains(t, help[0], k.Down)
	require.Contains(t, help[1], k.Expand)
	require.Contains(t, help[1], k.Collapse)
	require.Contains(t, help[1], k.Reload)
	require.Contains(t, help[2], k.Quit)
}
