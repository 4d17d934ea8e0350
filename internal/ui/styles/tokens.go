// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary   ColorToken = "text.primary"
	TokenTextSecondary ColorToken = "text.secondary"
	TokenTextMuted     ColorToken = "text.muted"

	// Borders
	TokenBorderDefault ColorToken = "border.default"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	// Selection
	TokenSelectionIndicator ColorToken = "selection.indicator"
	TokenSelectionBg        ColorToken = "selection.bg"

	// Overlays/Modals
	TokenOverlayTitle  ColorToken = "overlay.title"
	TokenOverlayBorder ColorToken = "overlay.border"

	// Pinned band
	TokenBandBg        ColorToken = "band.bg"
	TokenBandSeparator ColorToken = "band.separator"

	// File kinds
	TokenDir     ColorToken = "file.dir"
	TokenFile    ColorToken = "file.regular"
	TokenSymlink ColorToken = "file.symlink"
	TokenHidden  ColorToken = "file.hidden"
)

// AllTokens returns every valid color token.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,
		TokenBorderDefault,
		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,
		TokenSelectionIndicator,
		TokenSelectionBg,
		TokenOverlayTitle,
		TokenOverlayBorder,
		TokenBandBg,
		TokenBandSeparator,
		TokenDir,
		TokenFile,
		TokenSymlink,
		TokenHidden,
	}
}
