package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestNewWritesJSONToOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matcher.log")

	log, err := New(true, false, path)
	if err != nil {
		t.Fatalf("creating logger: %v", err)
	}

	log.Debug("hidden below info")
	log.Info("analysis complete", zap.Duration("took", 1500*time.Millisecond))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	out := string(data)

	if strings.Contains(out, "hidden below info") {
		t.Fatalf("debug entry written at info level: %s", out)
	}
	if !strings.Contains(out, `"step":"analysis complete"`) {
		t.Fatalf("expected message under the step key, got %s", out)
	}
	if !strings.Contains(out, `"took":1500`) {
		t.Fatalf("expected duration in milliseconds, got %s", out)
	}
}

func TestNewDebugLevel(t *testing.T) {
	log, err := New(false, true, filepath.Join(t.TempDir(), "debug.log"))
	if err != nil {
		t.Fatalf("creating logger: %v", err)
	}
	if !log.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("expected debug level to be enabled")
	}
}
