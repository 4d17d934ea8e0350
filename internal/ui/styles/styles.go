// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"} // Main/primary text
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BBBBBB"} // Sizes, counts, secondary info
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#696969"} // Hints, help text, footers

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"} // Success states
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"} // Warnings
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"} // Errors

	// Selection
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	SelectionBgColor        = lipgloss.AdaptiveColor{Light: "#D6E4FF", Dark: "#2D3A55"}

	// Overlay colors
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#8C8C8C", Dark: "#8C8C8C"}

	// Pinned band colors
	BandBgColor        = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#303030"}
	BandSeparatorColor = lipgloss.AdaptiveColor{Light: "#BBBBBB", Dark: "#585858"}

	// File kind colors
	DirColor     = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}
	FileColor    = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	SymlinkColor = lipgloss.AdaptiveColor{Light: "#179299", Dark: "#94E2D5"}
	HiddenColor  = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"}

	// Selection indicator style (used for ">" prefix in lists)
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)
	SelectedRowStyle        = lipgloss.NewStyle().Background(SelectionBgColor)

	// Pinned band styles
	BandStyle          = lipgloss.NewStyle().Background(BandBgColor)
	BandSeparatorStyle = lipgloss.NewStyle().Foreground(BandSeparatorColor)

	// File kind styles
	DirStyle     = lipgloss.NewStyle().Foreground(DirColor).Bold(true)
	FileStyle    = lipgloss.NewStyle().Foreground(FileColor)
	SymlinkStyle = lipgloss.NewStyle().Foreground(SymlinkColor)
	HiddenStyle  = lipgloss.NewStyle().Foreground(HiddenColor)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)
)
