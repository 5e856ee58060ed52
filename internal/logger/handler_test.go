package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyHandlerRedactsSecrets(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log.Info("user signed in", "username", "manager1", "token", "eyJhbGciOi.secret.sig")

	out := buf.String()
	assert.Contains(t, out, "user signed in")
	assert.Contains(t, out, "manager1")
	assert.Contains(t, out, redacted)
	assert.NotContains(t, out, "eyJhbGciOi")
}

func TestPrettyHandlerAddsRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, nil)).WithGroup("upstream").With("target", "core")

	ctx := WithRequestID(context.Background(), "req-123")
	log.InfoContext(ctx, "backend call")
	log.DebugContext(ctx, "hidden at info")

	out := buf.String()
	assert.Contains(t, out, "req-123")
	assert.Contains(t, out, "upstream.target")
	assert.NotContains(t, out, "hidden at info")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel(" warn "))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
	require.Equal(t, "", RequestID(context.Background()))
}
