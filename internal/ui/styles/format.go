// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// TruncateString truncates a string to fit within maxWidth, adding ellipsis if needed.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}

	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	return runewidth.Truncate(s, maxWidth, "...")
}

// FormatSize renders a byte count in a compact human form.
func FormatSize(n int64) string {
	switch {
	case n < 1<<10:
		return fmt.Sprintf("%dB", n)
	case n < 1<<20:
		return fmt.Sprintf("%.1fK", float64(n)/(1<<10))
	case n < 1<<30:
		return fmt.Sprintf("%.1fM", float64(n)/(1<<20))
	default:
		return fmt.Sprintf("%.1fG", float64(n)/(1<<30))
	}
}
