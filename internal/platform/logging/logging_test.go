package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/project-tracker/internal/platform/logging"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), "log line: %s", buf.String())
	return line
}

func TestNew_Formats(t *testing.T) {
	t.Parallel()

	var jsonBuf, textBuf, otherBuf bytes.Buffer
	logging.New("info", "json", &jsonBuf).Info("project added")
	logging.New("info", "text", &textBuf).Info("project added")
	logging.New("info", "logfmt", &otherBuf).Info("project added")

	line := decodeLine(t, &jsonBuf)
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, "project added", line["msg"])

	assert.Contains(t, textBuf.String(), "level=INFO")
	assert.Contains(t, textBuf.String(), `msg="project added"`)

	assert.Equal(t, "project added", decodeLine(t, &otherBuf)["msg"])
}

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level    string
		emitted  slog.Level
		filtered slog.Level
	}{
		{level: "debug", emitted: slog.LevelDebug, filtered: slog.LevelDebug - 1},
		{level: "info", emitted: slog.LevelInfo, filtered: slog.LevelDebug},
		{level: "WARN", emitted: slog.LevelWarn, filtered: slog.LevelInfo},
		{level: "error", emitted: slog.LevelError, filtered: slog.LevelWarn},
		{level: "verbose", emitted: slog.LevelInfo, filtered: slog.LevelDebug},
		{level: "", emitted: slog.LevelInfo, filtered: slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := logging.New(tt.level, "json", &buf)
			ctx := context.Background()

			logger.Log(ctx, tt.filtered, "dropped")
			assert.Zero(t, buf.Len(), "level %v should be filtered", tt.filtered)

			logger.Log(ctx, tt.emitted, "kept")
			assert.NotZero(t, buf.Len(), "level %v should be emitted", tt.emitted)
		})
	}
}

func TestNew_SourceOnlyAtDebug(t *testing.T) {
	t.Parallel()

	var debugBuf, infoBuf bytes.Buffer
	logging.New("debug", "json", &debugBuf).Info("listener subscribed")
	logging.New("info", "json", &infoBuf).Info("listener subscribed")

	assert.Contains(t, decodeLine(t, &debugBuf), slog.SourceKey)
	assert.NotContains(t, decodeLine(t, &infoBuf), slog.SourceKey)
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	assert.Same(t, slog.Default(), logging.FromContext(context.Background()))

	first := slog.New(slog.DiscardHandler)
	second := slog.New(slog.DiscardHandler)
	ctx := logging.WithLogger(context.Background(), first)
	assert.Same(t, first, logging.FromContext(ctx))

	ctx = logging.WithLogger(ctx, second)
	assert.Same(t, second, logging.FromContext(ctx))
}

func TestNew_Redaction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		attr   slog.Attr
		secret string
	}{
		{"authorization field", slog.String("authorization", "Bearer supersecret-token"), "supersecret-token"},
		{"cookie field", slog.String("cookie", "session=abc123"), "abc123"},
		{"password field", slog.String("password", "hunter2"), "hunter2"},
		{"secret prefix", slog.String("secret_key", "s3cr3t-value"), "s3cr3t-value"},
		{"bearer value", slog.String("raw_header", "Bearer eyJhbGciOiJSUzI1NiJ9"), "eyJhbGciOiJSUzI1NiJ9"},
		{"inline api key", slog.String("note", "api_key=abcdef123456"), "abcdef123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logging.New("info", "json", &buf).Info("request", tt.attr)

			assert.NotContains(t, buf.String(), tt.secret)
			assert.Contains(t, buf.String(), "[REDACTED]")
		})
	}
}

func TestNew_KeepsProjectFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logging.New("info", "json", &buf).Info("project moved",
		slog.String("project_id", "0b6c2d1e-7d43-4f7e-9a55-3c9c1d2e8f10"),
		slog.String("to", "finished"),
		slog.String("path", "/api/v1/buckets/finished/drop"),
	)

	line := decodeLine(t, &buf)
	assert.Equal(t, "0b6c2d1e-7d43-4f7e-9a55-3c9c1d2e8f10", line["project_id"])
	assert.Equal(t, "finished", line["to"])
	assert.Equal(t, "/api/v1/buckets/finished/drop", line["path"])
}
