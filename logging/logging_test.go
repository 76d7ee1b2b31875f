package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestHandlerFlatJSONLine(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, slog.LevelInfo))

	log.Info("food eaten", "score", 3, "cell", "5,18")

	line := buf.String()
	if !strings.HasSuffix(line, "\n") || strings.Count(line, "\n") != 1 {
		t.Fatalf("want exactly one newline-terminated line, got %q", line)
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("line is not valid JSON: %v", err)
	}
	if m["msg"] != "food eaten" || m["level"] != "INFO" {
		t.Fatalf("payload = %v", m)
	}
	if m["score"] != float64(3) || m["cell"] != "5,18" {
		t.Fatalf("attrs missing from payload: %v", m)
	}
	if _, ok := m["time"]; !ok {
		t.Fatal("payload missing time")
	}
}

func TestHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, slog.LevelWarn))

	log.Info("dropped")
	log.Warn("kept")

	if strings.Contains(buf.String(), "dropped") {
		t.Fatal("info line should be filtered below warn")
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Fatal("warn line should pass the filter")
	}
}

func TestHandlerGroupsNest(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, slog.LevelInfo)).
		With("round", "r1").
		WithGroup("snake")

	log.Info("step", "heading", "right")

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if m["round"] != "r1" {
		t.Fatalf("pre-group attr should stay at top level: %v", m)
	}
	snake, ok := m["snake"].(map[string]any)
	if !ok || snake["heading"] != "right" {
		t.Fatalf("grouped attr should nest under the group key: %v", m)
	}
}
