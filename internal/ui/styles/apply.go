// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Colors map[string]string
}

// ApplyTheme applies a complete theme configuration.
// Order of application:
// 1. Start with default colors
// 2. Apply preset (if specified)
// 3. Apply individual color overrides
// 4. Rebuild all Style objects
func ApplyTheme(cfg ThemeConfig) error {
	colors := maps.Clone(DefaultPreset.Colors)

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	applyColors(colors)
	rebuildStyles()

	return nil
}

func applyColors(colors map[ColorToken]string) {
	// Overrides apply to both terminal modes
	makeColor := func(hex string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
	}

	if c, ok := colors[TokenTextPrimary]; ok {
		TextPrimaryColor = makeColor(c)
	}
	if c, ok := colors[TokenTextSecondary]; ok {
		TextSecondaryColor = makeColor(c)
	}
	if c, ok := colors[TokenTextMuted]; ok {
		TextMutedColor = makeColor(c)
	}
	if c, ok := colors[TokenBorderDefault]; ok {
		BorderDefaultColor = makeColor(c)
	}
	if c, ok := colors[TokenStatusSuccess]; ok {
		StatusSuccessColor = makeColor(c)
	}
	if c, ok := colors[TokenStatusWarning]; ok {
		StatusWarningColor = makeColor(c)
	}
	if c, ok := colors[TokenStatusError]; ok {
		StatusErrorColor = makeColor(c)
	}
	if c, ok := colors[TokenSelectionIndicator]; ok {
		SelectionIndicatorColor = makeColor(c)
	}
	if c, ok := colors[TokenSelectionBg]; ok {
		SelectionBgColor = makeColor(c)
	}
	if c, ok := colors[TokenOverlayTitle]; ok {
		OverlayTitleColor = makeColor(c)
	}
	if c, ok := colors[TokenOverlayBorder]; ok {
		OverlayBorderColor = makeColor(c)
	}
	if c, ok := colors[TokenBandBg]; ok {
		BandBgColor = makeColor(c)
	}
	if c, ok := colors[TokenBandSeparator]; ok {
		BandSeparatorColor = makeColor(c)
	}
	if c, ok := colors[TokenDir]; ok {
		DirColor = makeColor(c)
	}
	if c, ok := colors[TokenFile]; ok {
		FileColor = makeColor(c)
	}
	if c, ok := colors[TokenSymlink]; ok {
		SymlinkColor = makeColor(c)
	}
	if c, ok := colors[TokenHidden]; ok {
		HiddenColor = makeColor(c)
	}
}

// rebuildStyles recreates all Style objects with updated colors.
// This is necessary because lipgloss.Style objects capture colors at creation time.
func rebuildStyles() {
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)
	SelectedRowStyle = lipgloss.NewStyle().Background(SelectionBgColor)

	BandStyle = lipgloss.NewStyle().Background(BandBgColor)
	BandSeparatorStyle = lipgloss.NewStyle().Foreground(BandSeparatorColor)

	DirStyle = lipgloss.NewStyle().Foreground(DirColor).Bold(true)
	FileStyle = lipgloss.NewStyle().Foreground(FileColor)
	SymlinkStyle = lipgloss.NewStyle().Foreground(SymlinkColor)
	HiddenStyle = lipgloss.NewStyle().Foreground(HiddenColor)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(TextSecondaryColor).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(StatusErrorColor).
		Bold(true).
		Padding(1, 2)
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
