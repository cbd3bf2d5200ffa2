package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestContextRoundTrip(t *testing.T) {
	log := zap.NewNop().Named("request")

	ctx := ContextWithLogger(context.Background(), log)
	if got := FromContext(ctx); got != log {
		t.Error("FromContext returned a different logger than was attached")
	}
}

func TestFromContext_MissingLoggerIsNop(t *testing.T) {
	got := FromContext(context.Background())
	if got == nil {
		t.Fatal("FromContext returned nil")
	}
	// Must be safe to log through without any setup.
	got.Info("no-op")
}
