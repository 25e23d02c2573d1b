package debug

import (
	"bytes"
	"strings"
	"testing"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetNoColor(true)
	t.Cleanup(func() {
		SetDebug(false)
		SetOutput(nil)
	})
	return &buf
}

func TestSetDebug(t *testing.T) {
	// Initially disabled
	SetDebug(false)
	if IsEnabled() {
		t.Error("Debug should be disabled initially")
	}

	// Enable
	SetDebug(true)
	if !IsEnabled() {
		t.Error("Debug should be enabled")
	}

	// Disable again
	SetDebug(false)
	if IsEnabled() {
		t.Error("Debug should be disabled again")
	}
}

func TestDebugOutput(t *testing.T) {
	buf := captureOutput(t)
	SetDebug(true)

	Debug("test message %s", "arg")

	output := buf.String()
	if !strings.Contains(output, "DEBUG") {
		t.Errorf("Output should contain DEBUG level, got: %s", output)
	}
	if !strings.Contains(output, "test message arg") {
		t.Errorf("Output should contain message, got: %s", output)
	}
	// Should contain timestamp
	if !strings.Contains(output, ":") {
		t.Errorf("Output should contain timestamp, got: %s", output)
	}
}

func TestDebugDisabled(t *testing.T) {
	buf := captureOutput(t)
	SetDebug(false)

	Debug("should not appear")
	DebugSection("section")
	DebugValue("key", "value")
	DebugJSON("data", map[string]int{"a": 1})

	if buf.Len() != 0 {
		t.Errorf("Expected no output when disabled, got: %s", buf.String())
	}
}

func TestDebugSection(t *testing.T) {
	buf := captureOutput(t)
	SetDebug(true)

	DebugSection("Generate")

	if !strings.Contains(buf.String(), "=== Generate ===") {
		t.Errorf("Output should contain section header, got: %s", buf.String())
	}
}

func TestDebugValue(t *testing.T) {
	buf := captureOutput(t)
	SetDebug(true)

	DebugValue("[app] Target", "src")

	output := buf.String()
	if !strings.Contains(output, "[app] Target = src") {
		t.Errorf("Output should contain key and value, got: %s", output)
	}
}

func TestDebugJSON(t *testing.T) {
	buf := captureOutput(t)
	SetDebug(true)

	DebugJSON("payload", map[string]string{"name": "Button"})

	output := buf.String()
	if !strings.Contains(output, `"name": "Button"`) {
		t.Errorf("Output should contain indented JSON, got: %s", output)
	}
}
