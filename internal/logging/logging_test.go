package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_HasComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelDebug, "text", &buf)

	New("scorer").Info("hello")

	output := buf.String()
	if !strings.Contains(output, "component=scorer") {
		t.Errorf("expected component=scorer in output, got: %s", output)
	}
	if !strings.Contains(output, "hello") {
		t.Errorf("expected 'hello' in output, got: %s", output)
	}
}

func TestInit_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelInfo, "json", &buf)

	New("scorer").Info("hello")

	if !strings.Contains(buf.String(), `"component":"scorer"`) {
		t.Errorf("expected JSON output, got: %s", buf.String())
	}
}

func TestInit_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelWarn, "text", &buf)

	New("scorer").Debug("too quiet")

	if buf.Len() != 0 {
		t.Errorf("debug message logged at warn level: %s", buf.String())
	}
}
