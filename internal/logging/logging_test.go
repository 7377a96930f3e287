package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{Level: "warn", Prefix: "rush-test", Output: &buf})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("shown", "reason", "hit-snowman")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info line should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "hit-snowman") || !strings.Contains(out, "rush-test") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "rush.log")
	var console bytes.Buffer

	logger, closer, err := New(Options{File: path, Output: &console, Quiet: true})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	logger.Info("run ended", "distance", 42)
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file missing: %v", err)
	}
	if !strings.Contains(string(data), "run ended") {
		t.Errorf("log file content %q", data)
	}
	if console.Len() != 0 {
		t.Error("quiet mode should keep the console clean")
	}
}
