package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// NewCLIHandler returns a slog.Handler that writes plain, single-line
// diagnostic output to stderr at the given level. It deliberately emits no
// ANSI color: the colored terminal renderer is an external collaborator
// outside this repository's scope (§1), so this handler only ever produces
// the plain level-prefixed text a renderer could choose to recolor.
func NewCLIHandler(level slog.Level) slog.Handler {
	return &cliHandler{out: os.Stderr, level: level}
}

type cliHandler struct {
	out   io.Writer
	level slog.Level
	attrs []slog.Attr
}

func (h *cliHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *cliHandler) Handle(_ context.Context, r slog.Record) error {
	line := fmt.Sprintf("%s: %s", levelTag(r.Level), r.Message)
	for _, a := range h.attrs {
		line += fmt.Sprintf(" %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		line += fmt.Sprintf(" %s=%v", a.Key, a.Value)
		return true
	})
	_, err := fmt.Fprintln(h.out, line)
	return err
}

func (h *cliHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &cliHandler{out: h.out, level: h.level, attrs: merged}
}

func (h *cliHandler) WithGroup(string) slog.Handler {
	// Groups are not rendered specially by this plain-text handler.
	return h
}

func levelTag(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "✗"
	case level >= slog.LevelWarn:
		return "!"
	case level >= slog.LevelInfo:
		return "→"
	default:
		return "debug"
	}
}
