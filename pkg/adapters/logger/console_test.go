package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/posterkit/pkg/ports"
)

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewConsole(ports.LevelInfo, WithWriters(&out, &errOut))

	l.Debug("Cropped to %dx%d", 1, 1)
	l.Info("Cropped to %dx%d", 800, 600)
	l.Error("Failed to crop image: %s", "boom")

	if strings.Contains(out.String(), "1x1") {
		t.Error("debug message should be filtered at info level")
	}
	if !strings.Contains(out.String(), "800x600") {
		t.Errorf("info message missing from stdout: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "boom") {
		t.Errorf("error message missing from stderr: %q", errOut.String())
	}
}

func TestConsoleLogger_WithComponent(t *testing.T) {
	var out bytes.Buffer
	l := NewConsole(ports.LevelDebug, WithWriters(&out, &out)).WithComponent("crop")

	l.Debug("Decoded source %dx%d", 1200, 900)

	if !strings.Contains(out.String(), "[crop]") {
		t.Errorf("expected component prefix, got %q", out.String())
	}
}

func TestConsoleLogger_WithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posterkit.log")
	var out bytes.Buffer
	l := NewConsole(ports.LevelInfo, WithWriters(&out, &out), WithFile(path, 1))

	l.Warn("Cropped to %dx%d", 10, 20)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "10x20") || !strings.Contains(string(data), "warn") {
		t.Errorf("unexpected log file contents: %q", data)
	}
}

func TestConsoleLogger_Quiet(t *testing.T) {
	var out bytes.Buffer
	l := NewConsole(ports.LevelQuiet, WithWriters(&out, &out))
	l.Error("Failed to crop image: %s", "x")
	if out.Len() != 0 {
		t.Errorf("quiet logger wrote %q", out.String())
	}
}
