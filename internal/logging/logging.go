// Package logging configures the structured loggers of the stitchplan tools.
//
// Libraries stay silent: the package logger starts out as a logger that
// discards everything, and the command line tool replaces it with [SetLogger]
// once its configuration is known.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
)

// Output formats accepted by [New].
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// Nop returns a logger that discards all records without formatting them.
func Nop() *slog.Logger { return slog.New(nopHandler{}) }

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(Nop())
}

// SetLogger replaces the package logger. Passing nil restores the silent
// default. It is safe to call concurrently with [Logger].
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = Nop()
	}
	current.Store(l)
}

// Logger returns the package logger.
func Logger() *slog.Logger {
	return current.Load()
}

// ParseLevel parses debug, info, warn or error, optionally with an offset as
// in "debug+2". The empty string selects info.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("logging: parse level: %w", err)
	}
	return l, nil
}

// New returns a logger writing records at or above level to w in the given
// format.
func New(w io.Writer, format string, level slog.Level) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(format) {
	case FormatText, "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case FormatPretty:
		return slog.New(NewPrettyHandler(w, PrettyOptions{Level: level})), nil
	default:
		return nil, fmt.Errorf("logging: unknown format %q (want text, json or pretty)", format)
	}
}
