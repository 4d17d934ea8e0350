package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.True(t, cfg.AutoReload)
	assert.False(t, cfg.UI.ShowHidden)
	assert.True(t, cfg.UI.ShowStatusBar)
	assert.True(t, cfg.UI.Mouse)
	assert.True(t, cfg.Overlay.Enabled)
	assert.True(t, cfg.Overlay.Separator)
	assert.Equal(t, 500, cfg.Attach.IntervalMS)
	assert.Equal(t, 50, cfg.Attach.MaxAttempts)
	assert.True(t, cfg.Watcher.Enabled)
	assert.Equal(t, 500, cfg.Watcher.DebounceMS)
	assert.True(t, cfg.Store.Enabled)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "file", cfg.Tracing.Exporter)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRate)
}

func TestDefaults_AreValid(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestFlattenedColors_NestedStructure(t *testing.T) {
	theme := ThemeConfig{
		Colors: map[string]any{
			"band": map[string]any{
				"bg":        "#111111",
				"separator": "#222222",
			},
			"text.primary": "#333333",
		},
	}

	flat := theme.FlattenedColors()
	assert.Equal(t, "#111111", flat["band.bg"])
	assert.Equal(t, "#222222", flat["band.separator"])
	assert.Equal(t, "#333333", flat["text.primary"])
}

func TestFlattenedColors_MapAnyAny(t *testing.T) {
	theme := ThemeConfig{
		Colors: map[string]any{
			"file": map[any]any{
				"dir": "#444444",
			},
		},
	}

	flat := theme.FlattenedColors()
	assert.Equal(t, "#444444", flat["file.dir"])
}

func TestValidateAttach(t *testing.T) {
	assert.NoError(t, ValidateAttach(AttachConfig{}))
	assert.NoError(t, ValidateAttach(AttachConfig{IntervalMS: 100, MaxAttempts: 10}))
	assert.Error(t, ValidateAttach(AttachConfig{IntervalMS: -1}))
	assert.Error(t, ValidateAttach(AttachConfig{MaxAttempts: -1}))
}

func TestValidateWatcher(t *testing.T) {
	assert.NoError(t, ValidateWatcher(WatcherConfig{DebounceMS: 250}))
	assert.Error(t, ValidateWatcher(WatcherConfig{DebounceMS: -1}))
}

func TestValidateTracing_SampleRate(t *testing.T) {
	assert.NoError(t, ValidateTracing(TracingConfig{SampleRate: 0.5}))
	assert.Error(t, ValidateTracing(TracingConfig{SampleRate: -0.1}))
	assert.Error(t, ValidateTracing(TracingConfig{SampleRate: 1.1}))
}

func TestValidateTracing_Exporter(t *testing.T) {
	for _, exporter := range []string{"", "none", "file", "stdout", "otlp"} {
		assert.NoError(t, ValidateTracing(TracingConfig{Exporter: exporter, SampleRate: 1.0}))
	}
	assert.Error(t, ValidateTracing(TracingConfig{Exporter: "jaeger", SampleRate: 1.0}))
}

func TestValidateTracing_RequiredPaths(t *testing.T) {
	err := ValidateTracing(TracingConfig{Enabled: true, Exporter: "file", SampleRate: 1.0})
	require.Error(t, err, "file exporter needs file_path when enabled")

	err = ValidateTracing(TracingConfig{Enabled: true, Exporter: "otlp", SampleRate: 1.0})
	require.Error(t, err, "otlp exporter needs otlp_endpoint when enabled")

	// Disabled tracing skips path checks.
	assert.NoError(t, ValidateTracing(TracingConfig{Exporter: "file", SampleRate: 1.0}))
}

func TestWriteDefaultConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(configPath))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)

	// The template must be parseable YAML.
	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	assert.Contains(t, parsed, "ui")
	assert.Contains(t, parsed, "overlay")
	assert.Contains(t, parsed, "watcher")
}
