package logging

import (
	"log/slog"
	"time"
)

// fakeCapabilities implements terminal.Capabilities for testing
type fakeCapabilities struct {
	interactive   bool
	supportsColor bool
}

func (c *fakeCapabilities) IsInteractive() bool { return c.interactive }
func (c *fakeCapabilities) SupportsColor() bool { return c.supportsColor }

func newRecord(level slog.Level, msg string, attrs ...slog.Attr) slog.Record {
	r := slog.NewRecord(time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC), level, msg, 0)
	r.AddAttrs(attrs...)
	return r
}
