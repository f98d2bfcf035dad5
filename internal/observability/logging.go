// Package observability carries log correlation ids through contexts.
package observability

import (
	"context"
	"log/slog"
)

// LogContext holds structured logging context information.
type LogContext struct {
	RequestID string
	PollID    string
}

type logContextKeyType string

const logContextKey logContextKeyType = "log-context"

const (
	KeyRequestID = "request_id"
	KeyPollID    = "poll_id"
)

// WithRequestID adds an HTTP request id to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	lc := GetContext(ctx)
	lc.RequestID = requestID
	return context.WithValue(ctx, logContextKey, lc)
}

// WithPollID adds a health poll id to the context.
func WithPollID(ctx context.Context, pollID string) context.Context {
	lc := GetContext(ctx)
	lc.PollID = pollID
	return context.WithValue(ctx, logContextKey, lc)
}

// GetContext returns the structured log context from the provided context.
func GetContext(ctx context.Context) LogContext {
	if lc, ok := ctx.Value(logContextKey).(LogContext); ok {
		return lc
	}
	return LogContext{}
}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	return GetContext(ctx).RequestID
}

// Attrs returns the context's correlation attributes followed by extra.
func Attrs(ctx context.Context, extra ...slog.Attr) []slog.Attr {
	lc := GetContext(ctx)
	attrs := make([]slog.Attr, 0, 2+len(extra))
	if lc.RequestID != "" {
		attrs = append(attrs, slog.String(KeyRequestID, lc.RequestID))
	}
	if lc.PollID != "" {
		attrs = append(attrs, slog.String(KeyPollID, lc.PollID))
	}
	return append(attrs, extra...)
}

// Log writes msg to logger with the context's correlation attributes.
// A nil logger uses slog.Default().
func Log(ctx context.Context, logger *slog.Logger, level slog.Level, msg string, attrs ...slog.Attr) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.LogAttrs(ctx, level, msg, Attrs(ctx, attrs...)...)
}
