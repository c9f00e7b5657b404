package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/brightwell/internal/constants"
)

func TestInitWritesToRotatingFile(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	t.Cleanup(func() { Close(); Logger = nil })

	Debug("hidden debug message")
	Warn("visible warning", "habit", "Meditate")
	Close()

	data, err := os.ReadFile(filepath.Join(configDir, constants.LogDirName, constants.LogFileName))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "visible warning") || !strings.Contains(content, "Meditate") {
		t.Errorf("expected warning in log file, got %q", content)
	}
	if strings.Contains(content, "hidden debug message") {
		t.Error("debug message should be filtered at warn level")
	}
}

func TestInitDebugModeMirrorsToStderr(t *testing.T) {
	var stderr bytes.Buffer
	logDir := filepath.Join(t.TempDir(), "custom-logs")

	if err := Init(Config{Debug: true, LogDir: logDir, Stderr: &stderr}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	t.Cleanup(func() { Close(); Logger = nil })

	Debug("applying migration", "version", 1)

	if !strings.Contains(stderr.String(), "applying migration") {
		t.Errorf("expected debug output on stderr, got %q", stderr.String())
	}
	if _, err := os.Stat(logDir); err != nil {
		t.Errorf("custom log directory was not created: %v", err)
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestConfigDir(t *testing.T) {
	cfg := Config{ConfigDir: "/home/me/.config/brightwell"}
	if got := cfg.Dir(); got != filepath.Join("/home/me/.config/brightwell", constants.LogDirName) {
		t.Errorf("unexpected default dir %s", got)
	}
	cfg.LogDir = "/var/log/brightwell"
	if got := cfg.Dir(); got != "/var/log/brightwell" {
		t.Errorf("expected override, got %s", got)
	}
}
