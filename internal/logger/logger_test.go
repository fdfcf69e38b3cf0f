package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false, "")

	log.Debug("hidden")
	log.Info("user created", "user_id", "u1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected debug to be filtered, got %d lines", len(lines))
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if entry["msg"] != "user created" || entry["user_id"] != "u1" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNewDevelopmentWritesText(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true, "")

	log.Debug("visible", "path", "/api/users")

	out := buf.String()
	if !strings.Contains(out, "level=DEBUG") || !strings.Contains(out, "path=/api/users") {
		t.Fatalf("unexpected text output %q", out)
	}
}
