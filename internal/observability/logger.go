package observability

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"

	"synth-dashboard/internal/config"
)

// NewLogger returns a slog.Logger whose records are encoded by zap.
func NewLogger(cfg config.LoggerConfig) *slog.Logger {
	return slog.New(zapslog.NewHandler(NewCore(cfg, zapcore.Lock(os.Stdout)), zapslog.WithCaller(true)))
}

// NewCore builds the zap core behind NewLogger, writing to ws.
func NewCore(cfg config.LoggerConfig, ws zapcore.WriteSyncer) zapcore.Core {
	level := zap.NewAtomicLevelAt(parseLogLevel(cfg.Level))

	var encoder zapcore.Encoder
	switch strings.ToLower(cfg.Format) {
	case "text":
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	default:
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	return zapcore.NewCore(encoder, ws, level)
}

func parseLogLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

type contextKey string

const RequestIDKey contextKey = "request_id"

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}
