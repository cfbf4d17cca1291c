package contextutil

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func TestLoggerFromContext(t *testing.T) {
	custom := slog.New(slog.NewTextHandler(io.Discard, nil))

	if got := LoggerFromContext(context.Background()); got != slog.Default() {
		t.Error("LoggerFromContext() without logger should return slog.Default()")
	}

	ctx := WithLogger(context.Background(), custom)
	if got := LoggerFromContext(ctx); got != custom {
		t.Error("LoggerFromContext() should return the logger stored by WithLogger")
	}
}

func TestLoggerOr(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))

	if got := LoggerOr(context.Background(), fallback); got != fallback {
		t.Error("LoggerOr() without logger should return fallback")
	}

	ctx := context.WithValue(context.Background(), loggerKey, "not a logger")
	if got := LoggerOr(ctx, fallback); got != fallback {
		t.Error("LoggerOr() with wrong value type should return fallback")
	}
}
