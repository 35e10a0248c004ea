package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/paveg/medalprep/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(&buf, logger.Options{Level: "info"})
	require.NoError(t, err)

	ctx := context.Background()
	log.Debug(ctx, "hidden")
	log.Info(ctx, "stage finished", logger.String("stage", "join"), logger.Int("rows", 12))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=\"stage finished\"")
	assert.Contains(t, out, "stage=join")
	assert.Contains(t, out, "rows=12")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(&buf, logger.Options{Level: "debug", Format: "json"})
	require.NoError(t, err)

	log.With(logger.String("run_id", "abc")).Named("join").
		Warn(context.Background(), "duplicate key", logger.Float64("value", 1.5), logger.Error(errors.New("boom")))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "abc", entry["run_id"])

	group, ok := entry["join"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 1.5, group["value"], 0)
	assert.Equal(t, "boom", group["error"])
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	_, err := logger.New(&bytes.Buffer{}, logger.Options{Level: "loud"})
	require.Error(t, err)

	_, err = logger.New(&bytes.Buffer{}, logger.Options{Format: "xml"})
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range tests {
		got, err := logger.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestNop(t *testing.T) {
	log := logger.Nop()
	log.Error(context.Background(), "discarded")
	assert.NotNil(t, log.With(logger.Any("k", 1)))
}
