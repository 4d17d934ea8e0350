// Package overlay composites a block of rendered content on top of a
// background view without clearing the screen. The browser uses it for
// the help card and transient status messages.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position anchors the foreground block inside the viewport.
type Position int

const (
	// Center anchors the block in the middle of the viewport.
	Center Position = iota
	// Top anchors the block at the top, horizontally centered.
	Top
	// Bottom anchors the block at the bottom, horizontally centered.
	Bottom
)

// Config describes the viewport and where the block goes.
type Config struct {
	// Width and Height are the viewport dimensions.
	Width  int
	Height int
	// Position anchors the block.
	Position Position
	// PadY keeps the block away from the top/bottom edge for the Top
	// and Bottom anchors.
	PadY int
}

// Place draws fg over bg at the configured anchor. Splicing is
// ANSI-aware so styling on either side of the block survives.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	startX, startY := anchor(cfg, lipgloss.Width(fg), len(fgLines))

	for i, fgLine := range fgLines {
		y := startY + i
		if y >= len(bgLines) {
			break
		}
		bgLines[y] = splice(bgLines[y], fgLine, startX)
	}

	return strings.Join(bgLines, "\n")
}

// splice replaces the cells [x, x+width(fg)) of the background line
// with fg, keeping whatever background shows on either side.
func splice(bgLine, fgLine string, x int) string {
	left := ansi.Truncate(bgLine, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	endX := x + ansi.StringWidth(fgLine)
	var right string
	if endX < ansi.StringWidth(bgLine) {
		right = ansi.TruncateLeft(bgLine, endX, "")
	}

	return left + fgLine + right
}

// anchor resolves the top-left cell of the block, clamped to the
// viewport origin when the block is larger than the viewport.
func anchor(cfg Config, fgWidth, fgHeight int) (x, y int) {
	x = (cfg.Width - fgWidth) / 2
	switch cfg.Position {
	case Top:
		y = cfg.PadY
	case Bottom:
		y = cfg.Height - fgHeight - cfg.PadY
	default:
		y = (cfg.Height - fgHeight) / 2
	}

	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}
