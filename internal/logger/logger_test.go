package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetRestores(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	restore := Set(zap.New(core))

	Info("hidden")
	Warn("shown", zap.String("k", "v"))
	restore()
	Warn("after restore")

	if logs.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Message != "shown" {
		t.Errorf("unexpected message %q", entry.Message)
	}
	if entry.ContextMap()["k"] != "v" {
		t.Errorf("missing field, got %v", entry.ContextMap())
	}
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ron.log")
	prev := Log
	defer Set(prev)

	if err := InitWithFileConfig("debug", DefaultFileConfig(path), false); err != nil {
		t.Fatalf("init: %v", err)
	}
	Debug("written to file")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file missing entry: %q", data)
	}
}
