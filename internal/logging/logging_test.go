package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestSetup_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	Setup(true, false, &buf)

	slog.Debug("debug message")
	if !strings.Contains(buf.String(), "debug message") {
		t.Error("expected debug message to be logged at debug level")
	}
}

func TestSetup_InfoLevelSuppressesDebug(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	slog.Debug("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug message should be suppressed at info level")
	}

	slog.Info("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("expected info message to be logged")
	}
}

func TestSetup_JSONHandler(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, true, &buf)

	slog.Info("structured", "label", "Svc Token")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "structured" {
		t.Errorf("unexpected msg field: %v", entry["msg"])
	}
	if entry["label"] != "Svc Token" {
		t.Errorf("unexpected label field: %v", entry["label"])
	}
}
