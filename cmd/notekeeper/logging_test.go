package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"notekeeper/internal/config"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		withFile bool
		want     string
	}{
		{name: "text to console", format: "text", want: "msg=hello"},
		{name: "json to console", format: "json", want: `"msg":"hello"`},
		{name: "text to console and file", format: "text", withFile: true, want: "msg=hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{LogLevel: slog.LevelInfo, LogFormat: tt.format}
			if tt.withFile {
				cfg.LogFile = filepath.Join(t.TempDir(), "notekeeper.log")
			}

			var console bytes.Buffer
			logger, closer := newLogger(cfg, &console)
			logger.Info("hello")
			logger.Debug("hidden")
			if err := closer.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			if !strings.Contains(console.String(), tt.want) {
				t.Errorf("console = %q, want %q", console.String(), tt.want)
			}
			if strings.Contains(console.String(), "hidden") {
				t.Error("debug record written at info level")
			}

			if tt.withFile {
				data, err := os.ReadFile(cfg.LogFile)
				if err != nil {
					t.Fatalf("ReadFile() error = %v", err)
				}
				if !strings.Contains(string(data), tt.want) {
					t.Errorf("log file = %q, want %q", data, tt.want)
				}
			}
		})
	}
}
