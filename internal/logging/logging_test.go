package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "countrydex.log")

	result := NewLoggerWithPath(Config{Level: "debug", Format: FormatJSON, Output: OutputFile, File: path})
	t.Cleanup(func() { _ = result.Close() })

	require.True(t, result.UsingFile)
	assert.False(t, result.FallbackUsed)
	assert.Equal(t, zerolog.DebugLevel, result.Logger.GetLevel())

	result.Logger.Info().Str("k", "v").Msg("hello")
	require.NoError(t, result.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Contains(t, string(data), `"k":"v"`)
}

func TestNewLoggerWithPath_FallbackWithoutPath(t *testing.T) {
	result := NewLoggerWithPath(Config{Level: "warn", Output: OutputFile})

	assert.False(t, result.UsingFile)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)
	assert.NoError(t, result.Close())
}

func TestNewLoggerWithPath_InvalidLevelDefaultsToInfo(t *testing.T) {
	result := NewLoggerWithPath(Config{Level: "loud"})
	assert.Equal(t, zerolog.InfoLevel, result.Logger.GetLevel())
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	logger := ComponentLogger(base, "source")
	logger.Info().Msg("x")

	assert.Contains(t, buf.String(), `"component":"source"`)
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TraceIDFromContext(ctx))

	generated := GetOrGenerateTraceID(ctx)
	_, err := ulid.Parse(generated)
	require.NoError(t, err)

	ctx = ContextWithTraceID(ctx, generated)
	assert.Equal(t, generated, TraceIDFromContext(ctx))
	assert.Equal(t, generated, GetOrGenerateTraceID(ctx))
}

func TestPrintMessages(t *testing.T) {
	var buf bytes.Buffer
	PrintLogPathMessage(&buf, "/tmp/x.log")
	PrintFallbackWarning(&buf, "denied")

	assert.Contains(t, buf.String(), "Logging to /tmp/x.log")
	assert.Contains(t, buf.String(), "denied")
}
