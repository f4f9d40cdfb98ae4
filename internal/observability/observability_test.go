package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"

	"synth-dashboard/internal/config"
)

func TestNewCore_JSON(t *testing.T) {
	var buf bytes.Buffer
	core := NewCore(config.LoggerConfig{Level: "info", Format: "json"}, zapcore.AddSync(&buf))
	logger := slog.New(zapslog.NewHandler(core))

	logger.Debug("hidden")
	logger.Info("recompute complete", "rows", 12)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"recompute complete"`)
	assert.Contains(t, out, `"rows":12`)
}

func TestNewCore_TextDebug(t *testing.T) {
	var buf bytes.Buffer
	core := NewCore(config.LoggerConfig{Level: "debug", Format: "text"}, zapcore.AddSync(&buf))
	logger := slog.New(zapslog.NewHandler(core))

	logger.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", GetRequestID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestSpans(t *testing.T) {
	ctx, parent := StartSpan(context.Background(), "GET /dashboards/sales")
	_, child := StartSpan(ctx, "recompute")

	assert.Equal(t, parent.TraceID, child.TraceID)
	assert.Equal(t, parent.SpanID, child.ParentID)
	assert.Len(t, parent.SpanID, 16)
	assert.Same(t, parent, GetSpan(ctx))

	child.SetTag("rows", "10")
	child.SetError(errors.New("boom"))
	child.Finish()

	require.NotNil(t, child.Duration)
	assert.Equal(t, SpanStatusError, child.Status)
	assert.Equal(t, "boom", child.Error)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	child.Log(ctx, logger)
	assert.True(t, strings.Contains(buf.String(), "operation=recompute"))
}
