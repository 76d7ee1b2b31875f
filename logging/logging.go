// Package logging provides the slog setup shared by the binaries: a compact
// one-JSON-object-per-line handler, and a helper that points the default
// logger at a file so log output never fights the TUI for the terminal.
package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"
)

// Handler is a slog.Handler that writes one flat JSON object per line.
// It is geared toward CLI/daemon logs, not throughput.
type Handler struct {
	w     io.Writer
	mu    *sync.Mutex
	level slog.Leveler

	attrs  []boundAttr
	groups []string
}

// boundAttr is an attr captured by WithAttrs together with the group path
// that was open at the time, so later WithGroup calls do not re-nest it.
type boundAttr struct {
	groups []string
	attr   slog.Attr
}

// NewHandler returns a Handler writing to w at the given minimum level.
// A nil level defaults to Info.
func NewHandler(w io.Writer, level slog.Leveler) slog.Handler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &Handler{w: w, mu: &sync.Mutex{}, level: level}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	payload := make(map[string]any, 4+len(h.attrs))

	when := r.Time
	if when.IsZero() {
		when = time.Now()
	}
	payload["time"] = when.Format(time.RFC3339Nano)
	payload["level"] = r.Level.String()
	payload["msg"] = r.Message

	for _, ba := range h.attrs {
		addAttr(payload, ba.groups, ba.attr)
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(payload, h.groups, a)
		return true
	})

	b, err := json.Marshal(payload)
	if err != nil {
		// Last resort: never drop a log line entirely.
		b = []byte(`{"msg":` + strconv.Quote(r.Message) + `}`)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.w.Write(append(b, '\n'))
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]boundAttr(nil), h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, boundAttr{groups: h.groups, attr: a})
	}
	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

func addAttr(root map[string]any, groups []string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Key == "" {
		return
	}

	dst := root
	for _, g := range groups {
		m, ok := dst[g].(map[string]any)
		if !ok {
			m = map[string]any{}
			dst[g] = m
		}
		dst = m
	}

	if attr.Value.Kind() == slog.KindGroup {
		child := map[string]any{}
		for _, ga := range attr.Value.Group() {
			addAttr(child, nil, ga)
		}
		dst[attr.Key] = child
		return
	}
	dst[attr.Key] = attr.Value.Any()
}

// SetupFile opens path for appending and installs a Handler on it as the
// slog default. The caller closes the returned file on exit.
func SetupFile(path string, level slog.Level) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	slog.SetDefault(slog.New(NewHandler(f, level)))
	return f, nil
}

// SetupStderr installs a Handler on stderr as the slog default.
func SetupStderr(level slog.Level) {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, level)))
}
