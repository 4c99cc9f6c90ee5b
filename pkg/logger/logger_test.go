package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ptcdevs/ghlogin/pkg/logger"
)

type ctxKey struct{}

func requestID(ctx context.Context) (slog.Attr, bool) {
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return slog.String("request_id", v), true
	}
	return slog.Attr{}, false
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestNewWithWriter_Extractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, slog.LevelInfo, requestID, nil)

	ctx := context.WithValue(context.Background(), ctxKey{}, "rid-1")
	log.With("component", "test").InfoContext(ctx, "hello")

	m := decode(t, &buf)
	require.Equal(t, "rid-1", m["request_id"])
	require.Equal(t, "test", m["component"])
}

func TestNewWithWriter_NoExtractedValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger.NewWithWriter(&buf, slog.LevelInfo, requestID).Info("hello")

	require.NotContains(t, decode(t, &buf), "request_id")
}

func TestNewWithWriter_Level(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, slog.LevelWarn)
	log.Info("dropped")
	require.Zero(t, buf.Len())

	log.Warn("kept")
	require.Equal(t, "kept", decode(t, &buf)["msg"])
}

func TestRedaction(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, slog.LevelInfo)
	log.Info("exchange",
		slog.String("access_token", "gho_secret"),
		slog.String("Client_Secret", "shh"),
		slog.Group("req", slog.String("code", "abc"), slog.String("path", "/callback")),
		slog.String("scope", "repo"),
	)

	out := buf.String()
	require.NotContains(t, out, "gho_secret")
	require.NotContains(t, out, "shh")
	require.NotContains(t, out, `"abc"`)

	m := decode(t, &buf)
	require.Equal(t, logger.Redacted, m["access_token"])
	require.Equal(t, "repo", m["scope"])
	require.Equal(t, "/callback", m["req"].(map[string]any)["path"])
}

func TestIsSensitiveKey(t *testing.T) {
	t.Parallel()

	require.True(t, logger.IsSensitiveKey("ACCESS_TOKEN"))
	require.True(t, logger.IsSensitiveKey("cookie"))
	require.False(t, logger.IsSensitiveKey("scope"))
	require.False(t, logger.IsSensitiveKey("error_code"))
}

func TestNewWithSentry_NoDSN(t *testing.T) {
	t.Parallel()

	cfg := logger.SentryConfig{}
	require.False(t, cfg.Enabled())
	require.NotNil(t, logger.NewWithSentry(cfg))
	require.NoError(t, logger.FlushSentry(time.Millisecond)(context.Background()))
}

func TestNewNope(t *testing.T) {
	t.Parallel()
	require.False(t, logger.NewNope().Enabled(context.Background(), slog.LevelError))
}
