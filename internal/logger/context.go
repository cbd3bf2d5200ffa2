package logger

import (
	"context"

	"go.uber.org/zap"
)

// loggerKey is the private context key for the request-scoped logger.
type loggerKey struct{}

// ContextWithLogger attaches a logger to the context. The MCP tool
// handler uses this to carry the per-call request_id logger down the
// pipeline.
func ContextWithLogger(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

// FromContext returns the logger attached to ctx, or a no-op logger
// when none was attached.
func FromContext(ctx context.Context) *zap.Logger {
	if log, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return log
	}
	return zap.NewNop()
}
