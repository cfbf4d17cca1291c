package main

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"notekeeper/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newLogger builds the process logger writing to console. With a log file configured,
// output is also written to the rotated file; the returned closer closes it.
func newLogger(cfg *config.Config, console io.Writer) (*slog.Logger, io.Closer) {
	out := console
	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // Megabytes
			MaxBackups: 5,
			MaxAge:     30, // Days
			Compress:   true,
		}
		out = io.MultiWriter(console, rotator)
		closer = rotator
	}

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler), closer
}
