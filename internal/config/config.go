// Package config provides configuration types and defaults for perch.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/perchtree/perch/internal/log"
)

// Config holds all configuration options for perch.
type Config struct {
	AutoReload bool          `mapstructure:"auto_reload"`
	UI         UIConfig      `mapstructure:"ui"`
	Theme      ThemeConfig   `mapstructure:"theme"`
	Overlay    OverlayConfig `mapstructure:"overlay"`
	Attach     AttachConfig  `mapstructure:"attach"`
	Watcher    WatcherConfig `mapstructure:"watcher"`
	Store      StoreConfig   `mapstructure:"store"`
	Tracing    TracingConfig `mapstructure:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowHidden    bool `mapstructure:"show_hidden"`     // Include dotfiles in the tree
	ShowStatusBar bool `mapstructure:"show_status_bar"` // Show status bar at bottom
	Mouse         bool `mapstructure:"mouse"`           // Enable mouse wheel and click support
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "catppuccin-mocha", "nord"
	Preset string `mapstructure:"preset"`

	// Colors allows overriding individual color tokens.
	// Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   colors:
	//     band:
	//       bg: "#FF0000"
	// Or quoted dot notation:
	//   colors:
	//     "band.bg": "#FF0000"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
// This handles both nested YAML structures and already-flat keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// flattenColors recursively flattens a nested map into dot-notation keys.
func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// OverlayConfig holds pinned-header overlay configuration.
type OverlayConfig struct {
	// Enabled controls whether the pinned ancestor band is installed.
	// Default: true
	Enabled bool `mapstructure:"enabled"`

	// Separator controls the rule drawn under the band.
	// Default: true
	Separator bool `mapstructure:"separator"`
}

// AttachConfig holds overlay attachment polling configuration.
type AttachConfig struct {
	// IntervalMS is the delay between attachment attempts in
	// milliseconds. Default: 500
	IntervalMS int `mapstructure:"interval_ms"`

	// MaxAttempts bounds the polling. Default: 50
	MaxAttempts int `mapstructure:"max_attempts"`
}

// WatcherConfig holds filesystem watcher configuration.
type WatcherConfig struct {
	// Enabled controls whether the browsed directory is watched for
	// changes. Default: true
	Enabled bool `mapstructure:"enabled"`

	// DebounceMS collapses bursts of filesystem events into one
	// reload. Default: 500
	DebounceMS int `mapstructure:"debounce_ms"`
}

// StoreConfig holds profile persistence configuration.
type StoreConfig struct {
	// Enabled controls whether view state is persisted per directory.
	// Default: true
	Enabled bool `mapstructure:"enabled"`

	// Path is the SQLite database location.
	// Default: ~/.perch/perch.db
	Path string `mapstructure:"path"`
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/perch/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultStorePath returns the default profile database location.
// Returns ~/.perch/perch.db or empty string if home dir unavailable.
func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".perch", "perch.db")
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/perch/traces/traces.jsonl or empty string if home
// dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "perch", "traces", "traces.jsonl")
}

// ValidateAttach checks attachment configuration for errors.
// Returns nil if the configuration is valid (zero values use defaults).
func ValidateAttach(attach AttachConfig) error {
	if attach.IntervalMS < 0 {
		return fmt.Errorf("attach.interval_ms must not be negative, got %d", attach.IntervalMS)
	}
	if attach.MaxAttempts < 0 {
		return fmt.Errorf("attach.max_attempts must not be negative, got %d", attach.MaxAttempts)
	}
	return nil
}

// ValidateWatcher checks watcher configuration for errors.
func ValidateWatcher(watcher WatcherConfig) error {
	if watcher.DebounceMS < 0 {
		return fmt.Errorf("watcher.debounce_ms must not be negative, got %d", watcher.DebounceMS)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// Validate checks the whole configuration for errors.
func Validate(cfg Config) error {
	if err := ValidateAttach(cfg.Attach); err != nil {
		return err
	}
	if err := ValidateWatcher(cfg.Watcher); err != nil {
		return err
	}
	if err := ValidateTracing(cfg.Tracing); err != nil {
		return err
	}
	return nil
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		AutoReload: true,
		UI: UIConfig{
			ShowHidden:    false,
			ShowStatusBar: true,
			Mouse:         true,
		},
		Theme: ThemeConfig{
			// Default theme uses the "default" preset
			Preset: "",
		},
		Overlay: OverlayConfig{
			Enabled:   true,
			Separator: true,
		},
		Attach: AttachConfig{
			IntervalMS:  500,
			MaxAttempts: 50,
		},
		Watcher: WatcherConfig{
			Enabled:    true,
			DebounceMS: 500,
		},
		Store: StoreConfig{
			Enabled: true,
			Path:    DefaultStorePath(),
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Perch Configuration

# Reload the tree automatically when the directory changes
auto_reload: true

# UI settings
ui:
  show_hidden: false      # Include dotfiles in the tree
  show_status_bar: true   # Show status bar at bottom
  mouse: true             # Enable mouse wheel and click support

# Theme configuration
# Use a preset theme or customize individual colors
theme:
  # Use a preset:
  # preset: catppuccin-mocha
  #
  # Available presets:
  #   default           - Default perch theme
  #   catppuccin-mocha  - Warm, cozy dark theme
  #   nord              - Arctic, north-bluish palette
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   band.bg: "#2A2A3A"
  #   file.dir: "#89B4FA"

# Pinned ancestor band
overlay:
  enabled: true     # Pin the ancestor chain of the first visible row
  separator: true   # Draw a rule under the pinned band

# Overlay attachment polling
# attach:
#   interval_ms: 500    # Delay between attachment attempts
#   max_attempts: 50    # Give up silently after this many attempts

# Filesystem watcher
watcher:
  enabled: true       # Watch the browsed directory for changes
  debounce_ms: 500    # Collapse event bursts into one reload

# Per-directory view state (expansion, cursor, scroll position)
store:
  enabled: true
  # path: ~/.perch/perch.db

# Tracing configuration
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/perch/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
