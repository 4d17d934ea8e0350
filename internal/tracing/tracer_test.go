package tracing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.False(t, cfg.Enabled, "tracing should be disabled by default")
	require.Equal(t, "file", cfg.Exporter)
	require.Equal(t, "", cfg.FilePath)
	require.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
	require.Equal(t, 1.0, cfg.SampleRate)
	require.Equal(t, "perch", cfg.ServiceName)
}

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(Config{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, provider, "should return provider even when disabled")
	require.False(t, provider.Enabled())

	tracer := provider.Tracer()
	require.NotNil(t, tracer, "disabled provider still hands out a tracer")

	ctx, span := tracer.Start(context.Background(), "test-span")
	require.NotNil(t, ctx)
	require.NotNil(t, span)
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_FileExporter(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")

	provider, err := NewProvider(Config{
		Enabled:     true,
		Exporter:    "file",
		FilePath:    tracePath,
		SampleRate:  1.0,
		ServiceName: "test-service",
	})
	require.NoError(t, err)
	require.True(t, provider.Enabled())

	_, span := provider.Tracer().Start(context.Background(), "tree.reload")
	sc := span.SpanContext()
	require.True(t, sc.IsValid())
	require.True(t, sc.TraceID().IsValid())
	require.True(t, sc.SpanID().IsValid())
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))

	_, err = os.Stat(tracePath)
	require.NoError(t, err, "trace file should exist after shutdown")
}

func TestNewProvider_FileExporterRequiresPath(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "file"})
	require.Error(t, err)
}

func TestNewProvider_NoneExporter(t *testing.T) {
	provider, err := NewProvider(Config{
		Enabled:     true,
		Exporter:    "none",
		SampleRate:  1.0,
		ServiceName: "test-service",
	})
	require.NoError(t, err)
	require.True(t, provider.Enabled())

	_, span := provider.Tracer().Start(context.Background(), "test-span")
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_UnknownExporter(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "zipkin"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported exporter")
}
