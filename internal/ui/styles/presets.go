// Package styles contains Lip Gloss style definitions.
package styles

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"nord":             NordPreset,
}

// DefaultPreset is the stock perch color scheme.
// Color values mirror the styles.go AdaptiveColor definitions (Dark values).
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default perch theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#CCCCCC",
		TokenTextSecondary: "#BBBBBB",
		TokenTextMuted:     "#696969",

		TokenBorderDefault: "#696969",

		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",

		TokenSelectionIndicator: "#FFFFFF",
		TokenSelectionBg:        "#2D3A55",

		TokenOverlayTitle:  "#C9C9C9",
		TokenOverlayBorder: "#8C8C8C",

		TokenBandBg:        "#303030",
		TokenBandSeparator: "#585858",

		TokenDir:     "#89B4FA",
		TokenFile:    "#CCCCCC",
		TokenSymlink: "#94E2D5",
		TokenHidden:  "#666666",
	},
}

// CatppuccinMochaPreset uses the Catppuccin Mocha palette.
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Catppuccin Mocha palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#CDD6F4",
		TokenTextSecondary: "#BAC2DE",
		TokenTextMuted:     "#6C7086",

		TokenBorderDefault: "#585B70",

		TokenStatusSuccess: "#A6E3A1",
		TokenStatusWarning: "#F9E2AF",
		TokenStatusError:   "#F38BA8",

		TokenSelectionIndicator: "#F5E0DC",
		TokenSelectionBg:        "#313244",

		TokenOverlayTitle:  "#CDD6F4",
		TokenOverlayBorder: "#585B70",

		TokenBandBg:        "#1E1E2E",
		TokenBandSeparator: "#45475A",

		TokenDir:     "#89B4FA",
		TokenFile:    "#CDD6F4",
		TokenSymlink: "#94E2D5",
		TokenHidden:  "#6C7086",
	},
}

// NordPreset uses the Nord palette.
var NordPreset = Preset{
	Name:        "nord",
	Description: "Nord palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#ECEFF4",
		TokenTextSecondary: "#D8DEE9",
		TokenTextMuted:     "#4C566A",

		TokenBorderDefault: "#4C566A",

		TokenStatusSuccess: "#A3BE8C",
		TokenStatusWarning: "#EBCB8B",
		TokenStatusError:   "#BF616A",

		TokenSelectionIndicator: "#ECEFF4",
		TokenSelectionBg:        "#3B4252",

		TokenOverlayTitle:  "#ECEFF4",
		TokenOverlayBorder: "#4C566A",

		TokenBandBg:        "#2E3440",
		TokenBandSeparator: "#434C5E",

		TokenDir:     "#81A1C1",
		TokenFile:    "#ECEFF4",
		TokenSymlink: "#88C0D0",
		TokenHidden:  "#4C566A",
	},
}
