package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	err := Init(Config{
		Debug:     false,
		ConfigDir: configDir,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}

	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Info("goal submitted", "title", "Meditate")

	data, err := os.ReadFile(filepath.Join(logDir, "keepmoving.log"))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "goal submitted") {
		t.Errorf("log file = %q, want it to contain the info line", data)
	}
}

func TestInitDebugModeWritesStderr(t *testing.T) {
	var stderr bytes.Buffer

	err := Init(Config{
		Debug:     true,
		ConfigDir: filepath.Join(t.TempDir(), "config"),
		Stderr:    &stderr,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}

	Debug("cache invalidated", "key", "summary")

	if !strings.Contains(stderr.String(), "cache invalidated") {
		t.Errorf("stderr = %q, want debug line", stderr.String())
	}
}

func TestNonDebugModeIsSilentOnStderr(t *testing.T) {
	var stderr bytes.Buffer

	err := Init(Config{
		ConfigDir: filepath.Join(t.TempDir(), "config"),
		Stderr:    &stderr,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	Warn("request failed")

	if stderr.Len() != 0 {
		t.Errorf("stderr = %q, want nothing outside debug mode", stderr.String())
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
