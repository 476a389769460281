package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := NewConfig("info", "json", "gacha-bot", "test", "dev", false)
	InitLoggerWithWriter(cfg, &buf)

	slog.Info("hello", "key", "value")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "gacha-bot", entry["service"])
}

func TestInitLoggerWithWriterLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	cfg := NewConfig("warn", "text", "gacha-bot", "test", "dev", false)
	InitLoggerWithWriter(cfg, &buf)

	slog.Info("filtered out")
	assert.Empty(t, buf.String())

	slog.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()

	_, ok := RequestIDFromContext(ctx)
	assert.False(t, ok)

	id := GenerateRequestID()
	ctx = WithRequestID(ctx, id)

	got, ok := RequestIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestFromContextIncludesRequestID(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(NewConfig("info", "json", "gacha-bot", "test", "dev", false), &buf)

	ctx := WithRequestID(context.Background(), "req-123")
	FromContext(ctx).Info("traced")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["request_id"])
}

func TestConfigLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Config{Level: "debug"}.LogLevel())
	assert.Equal(t, slog.LevelWarn, Config{Level: "WARNING"}.LogLevel())
	assert.Equal(t, slog.LevelInfo, Config{Level: "bogus"}.LogLevel())
}
