package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/swd2tools/swd2/internal/terminal"
)

// Static errors for ConditionalTextHandler validation
var (
	ErrConditionalTextHandlerCapabilitiesRequired = errors.New("ConditionalTextHandler: Capabilities is required")
	ErrConditionalTextHandlerWriterRequired       = errors.New("ConditionalTextHandler: Writer is required")
)

// ConditionalTextHandler wraps a slog.TextHandler that only writes when the
// console is not interactive. Together with InteractiveHandler exactly one
// of the two produces console output.
type ConditionalTextHandler struct {
	capabilities terminal.Capabilities
	textHandler  slog.Handler
}

// ConditionalTextHandlerOptions configures the ConditionalTextHandler.
type ConditionalTextHandlerOptions struct {
	// Capabilities provides terminal feature detection
	Capabilities terminal.Capabilities

	// TextHandlerOptions will be passed to slog.NewTextHandler
	TextHandlerOptions *slog.HandlerOptions

	// Writer is the output destination for the text handler
	Writer io.Writer
}

// NewConditionalTextHandler creates a new ConditionalTextHandler.
func NewConditionalTextHandler(opts ConditionalTextHandlerOptions) (*ConditionalTextHandler, error) {
	if opts.Capabilities == nil {
		return nil, ErrConditionalTextHandlerCapabilitiesRequired
	}
	if opts.Writer == nil {
		return nil, ErrConditionalTextHandlerWriterRequired
	}

	return &ConditionalTextHandler{
		capabilities: opts.Capabilities,
		textHandler:  slog.NewTextHandler(opts.Writer, opts.TextHandlerOptions),
	}, nil
}

// Enabled reports whether the console is non-interactive and the text handler accepts level.
func (h *ConditionalTextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return !h.capabilities.IsInteractive() && h.textHandler.Enabled(ctx, level)
}

// Handle delegates to the text handler when the console is non-interactive.
func (h *ConditionalTextHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.capabilities.IsInteractive() {
		return nil
	}
	return h.textHandler.Handle(ctx, r)
}

// WithAttrs returns a new handler with additional attributes.
func (h *ConditionalTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ConditionalTextHandler{
		capabilities: h.capabilities,
		textHandler:  h.textHandler.WithAttrs(attrs),
	}
}

// WithGroup returns a new handler with an additional group.
func (h *ConditionalTextHandler) WithGroup(name string) slog.Handler {
	return &ConditionalTextHandler{
		capabilities: h.capabilities,
		textHandler:  h.textHandler.WithGroup(name),
	}
}
