package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Component identifiers for color-coded logging
type Component string

const (
	ComponentGenerator Component = "PASSTICKET"
	ComponentRACF      Component = "RACF"
	ComponentPolicy    Component = "POLICY"
	ComponentCLI       Component = "GENPTKT"
)

// ANSI color codes
const (
	colorReset   = "\033[0m"
	colorGreen   = "\033[32m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// componentColors maps components to their display colors
var componentColors = map[Component]string{
	ComponentGenerator: colorBlue,
	ComponentRACF:      colorMagenta,
	ComponentPolicy:    colorCyan,
	ComponentCLI:       colorGreen,
}

// ColorHandler is a custom slog handler that adds color-coded component output
type ColorHandler struct {
	slog.Handler
	out       io.Writer
	mu        *sync.Mutex
	component Component
	useColors bool
	attrs     []slog.Attr
}

// NewColorHandler creates a new color-coded handler
func NewColorHandler(out io.Writer, component Component, useColors bool, level slog.Leveler) *ColorHandler {
	opts := &slog.HandlerOptions{
		Level: level,
	}
	return &ColorHandler{
		Handler:   slog.NewTextHandler(out, opts),
		out:       out,
		mu:        &sync.Mutex{},
		component: component,
		useColors: useColors,
	}
}

// Handle processes a log record with color-coded output
func (h *ColorHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	color, reset := componentColors[h.component], colorReset
	if !h.useColors {
		color, reset = "", ""
	}

	// Format: emoji [COMPONENT] message attrs...
	fmt.Fprintf(h.out, "%s%s [%s]%s %s", color, getLevelEmoji(r.Level), h.component, reset, r.Message)

	for _, a := range h.attrs {
		fmt.Fprintf(h.out, " %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(h.out, " %s=%v", a.Key, a.Value)
		return true
	})
	fmt.Fprintln(h.out)

	return nil
}

// WithAttrs returns a new handler with the given attributes
func (h *ColorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ColorHandler{
		Handler:   h.Handler.WithAttrs(attrs),
		out:       h.out,
		mu:        h.mu,
		component: h.component,
		useColors: h.useColors,
		attrs:     append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...),
	}
}

// WithGroup returns a new handler with the given group
func (h *ColorHandler) WithGroup(name string) slog.Handler {
	return &ColorHandler{
		Handler:   h.Handler.WithGroup(name),
		out:       h.out,
		mu:        h.mu,
		component: h.component,
		useColors: h.useColors,
		attrs:     h.attrs,
	}
}

func getLevelEmoji(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "\U0001F534" // Red circle
	case level >= slog.LevelWarn:
		return "\U0001F7E1" // Yellow circle
	case level >= slog.LevelInfo:
		return "\U0001F535" // Blue circle
	default:
		return "\U0001F7E3" // Purple circle
	}
}

// ParseLevel maps a config level name to a slog level. Unknown names fall
// back to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger wraps slog.Logger with component-specific functionality
type Logger struct {
	*slog.Logger
	component Component
}

// New creates a component logger on stderr. Stdout is reserved for the
// ticket record.
func New(component Component, level slog.Leveler) *Logger {
	useColors := os.Getenv("NO_COLOR") == "" && os.Getenv("TERM") != "dumb"
	return NewWithWriter(component, os.Stderr, useColors, level)
}

// NewWithWriter creates a logger with a custom writer
func NewWithWriter(component Component, w io.Writer, useColors bool, level slog.Leveler) *Logger {
	handler := NewColorHandler(w, component, useColors, level)
	return &Logger{
		Logger:    slog.New(handler),
		component: component,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWithWriter(ComponentGenerator, io.Discard, false, slog.LevelError+1)
}

// For derives a logger for another component sharing the same writer.
func (l *Logger) For(component Component) *Logger {
	h, ok := l.Handler().(*ColorHandler)
	if !ok {
		return l
	}
	nh := *h
	nh.component = component
	nh.attrs = nil
	return &Logger{
		Logger:    slog.New(&nh),
		component: component,
	}
}

// Component returns the component this logger reports as.
func (l *Logger) Component() Component {
	return l.component
}

// Success logs a success message
func (l *Logger) Success(msg string, args ...any) {
	l.Info("\u2705 "+msg, args...)
}

// Deny logs a denial message
func (l *Logger) Deny(msg string, args ...any) {
	l.Error("\u274C "+msg, args...)
}

// Section logs a section header
func (l *Logger) Section(title string) {
	l.Debug("\u2550\u2550\u2550 " + title + " \u2550\u2550\u2550")
}
