package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/swd2tools/swd2/internal/terminal"
)

// Static errors for InteractiveHandler validation
var (
	ErrInteractiveHandlerWriterRequired       = errors.New("InteractiveHandler: Writer is required")
	ErrInteractiveHandlerCapabilitiesRequired = errors.New("InteractiveHandler: Capabilities is required")
	ErrInteractiveHandlerFormatterRequired    = errors.New("InteractiveHandler: Formatter is required")
)

// InteractiveHandler writes short, optionally colored lines for a person at
// a terminal. When a run log is being written, error records are followed by
// a hint naming the run log line that holds the full record.
type InteractiveHandler struct {
	capabilities terminal.Capabilities
	formatter    MessageFormatter
	lineTracker  LogLineTracker
	writer       io.Writer
	mu           *sync.Mutex
	level        slog.Leveler
	attrs        []slog.Attr
	groups       []string
}

// InteractiveHandlerOptions configures the InteractiveHandler.
type InteractiveHandlerOptions struct {
	// Level is the minimum log level to handle
	Level slog.Leveler

	// Writer is the output destination (typically os.Stderr)
	Writer io.Writer

	// Capabilities provides terminal feature detection
	Capabilities terminal.Capabilities

	// Formatter handles message formatting and coloring
	Formatter MessageFormatter

	// LineTracker counts run log lines; nil disables log file hints
	LineTracker LogLineTracker
}

// NewInteractiveHandler creates a new InteractiveHandler with the given options.
func NewInteractiveHandler(opts InteractiveHandlerOptions) (*InteractiveHandler, error) {
	if opts.Writer == nil {
		return nil, ErrInteractiveHandlerWriterRequired
	}
	if opts.Capabilities == nil {
		return nil, ErrInteractiveHandlerCapabilitiesRequired
	}
	if opts.Formatter == nil {
		return nil, ErrInteractiveHandlerFormatterRequired
	}
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}

	return &InteractiveHandler{
		capabilities: opts.Capabilities,
		formatter:    opts.Formatter,
		lineTracker:  opts.LineTracker,
		writer:       opts.Writer,
		mu:           &sync.Mutex{},
		level:        level,
	}, nil
}

// Enabled reports whether the terminal is interactive and level is high enough.
func (h *InteractiveHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.capabilities.IsInteractive() && level >= h.level.Level()
}

// Handle formats r with the accumulated attributes and writes it.
func (h *InteractiveHandler) Handle(_ context.Context, r slog.Record) error {
	if !h.capabilities.IsInteractive() {
		return nil
	}

	record := r.Clone()
	record.AddAttrs(h.prefixedAttrs()...)

	useColor := h.capabilities.SupportsColor()
	out := h.formatter.FormatRecordInteractive(record, useColor) + "\n"

	if record.Level >= slog.LevelError && h.lineTracker != nil {
		if hint := h.formatter.FormatLogFileHint(h.lineTracker.GetCurrentLine(), useColor); hint != "" {
			out += hint + "\n"
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, out)
	return err
}

// prefixedAttrs returns the handler's attributes with group names prepended to their keys.
func (h *InteractiveHandler) prefixedAttrs() []slog.Attr {
	if len(h.groups) == 0 {
		return h.attrs
	}
	prefix := strings.Join(h.groups, ".") + "."
	out := make([]slog.Attr, len(h.attrs))
	for i, attr := range h.attrs {
		out[i] = slog.Attr{Key: prefix + attr.Key, Value: attr.Value}
	}
	return out
}

// WithAttrs returns a new handler with additional attributes.
func (h *InteractiveHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

// WithGroup returns a new handler with an additional group.
func (h *InteractiveHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}
