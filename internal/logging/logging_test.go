package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewConsoleWritesLevelAndMessage(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("recovered blocks", "count", 3)

	out := buf.String()
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "recovered blocks") || !strings.Contains(out, "count=3") {
		t.Fatalf("unexpected console output: %q", out)
	}
}

func TestNewJSONEmitsStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("integrity check failed", "ok", false)

	out := buf.String()
	if !strings.Contains(out, `"msg":"integrity check failed"`) || !strings.Contains(out, `"ok":false`) {
		t.Fatalf("unexpected json output: %q", out)
	}
}

func TestNewRejectsUnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestDebugSuppressedBelowInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("should not appear")
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be suppressed, got %q", buf.String())
	}
}
