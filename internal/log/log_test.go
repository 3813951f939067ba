package log

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, LevelTrace, LevelFromString("trace"))
	assert.Equal(t, slog.LevelDebug, LevelFromString("DEBUG"))
	assert.Equal(t, slog.LevelInfo, LevelFromString("info"))
	assert.Equal(t, slog.LevelWarn, LevelFromString(" warn "))
	assert.Equal(t, slog.LevelError, LevelFromString("error"))
	assert.Equal(t, slog.LevelError, LevelFromString("verbose"))
}

func TestNewWritesFileAndMirrorsErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lazyjson.log")
	var stderr bytes.Buffer

	logger, closer, err := New(Options{Level: "trace", File: path, Stderr: &stderr})
	require.NoError(t, err)

	logger.Log(context.Background(), LevelTrace, "tracing", "id", "/a")
	logger.Info("loaded", "bytes", 12)
	logger.Error("render failed", "error", "boom")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "level=TRACE")
	assert.Contains(t, string(data), "msg=loaded")
	assert.Contains(t, string(data), "msg=\"render failed\"")

	assert.Equal(t, "Error: render failed\n  error: boom\n", stderr.String())
}

func TestNewWithoutFileDiscards(t *testing.T) {
	logger, closer, err := New(Options{Level: "debug"})
	require.NoError(t, err)
	logger.Error("nowhere")
	assert.NoError(t, closer.Close())
}

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	logger := slog.New(slog.DiscardHandler)
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}
