package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInteractiveHandlerValidation(t *testing.T) {
	caps := &fakeCapabilities{}
	f := NewDefaultMessageFormatter()

	_, err := NewInteractiveHandler(InteractiveHandlerOptions{Capabilities: caps, Formatter: f})
	assert.ErrorIs(t, err, ErrInteractiveHandlerWriterRequired)

	_, err = NewInteractiveHandler(InteractiveHandlerOptions{Writer: &bytes.Buffer{}, Formatter: f})
	assert.ErrorIs(t, err, ErrInteractiveHandlerCapabilitiesRequired)

	_, err = NewInteractiveHandler(InteractiveHandlerOptions{Writer: &bytes.Buffer{}, Capabilities: caps})
	assert.ErrorIs(t, err, ErrInteractiveHandlerFormatterRequired)
}

func TestInteractiveHandler(t *testing.T) {
	tests := []struct {
		name        string
		interactive bool
		tracker     bool
		level       slog.Level
		want        string
	}{
		{"non-interactive writes nothing", false, false, slog.LevelError, ""},
		{"info line", true, false, slog.LevelInfo, "[INFO ] Writing target file path=[out/a.csv.z]\n"},
		{"error without run log", true, false, slog.LevelError, "[ERROR] Writing target file path=[out/a.csv.z]\n"},
		{
			"error with run log hint", true, true, slog.LevelError,
			"[ERROR] Writing target file path=[out/a.csv.z]\nHINT: Check log file around line 3 for more details\n",
		},
		{"below level", true, true, slog.LevelDebug, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			opts := InteractiveHandlerOptions{
				Level:        slog.LevelInfo,
				Writer:       &buf,
				Capabilities: &fakeCapabilities{interactive: tt.interactive},
				Formatter:    NewDefaultMessageFormatter(),
			}
			if tt.tracker {
				tracker := NewDefaultLogLineTracker()
				for range 3 {
					tracker.IncrementLine()
				}
				opts.LineTracker = tracker
			}
			h, err := NewInteractiveHandler(opts)
			require.NoError(t, err)

			logger := slog.New(h)
			logger.Log(context.Background(), tt.level, "Writing target file", slog.String("path", "out/a.csv.z"))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestInteractiveHandlerAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	h, err := NewInteractiveHandler(InteractiveHandlerOptions{
		Writer:       &buf,
		Capabilities: &fakeCapabilities{interactive: true},
		Formatter:    NewDefaultMessageFormatter(),
	})
	require.NoError(t, err)

	assert.Same(t, h, h.WithAttrs(nil))
	assert.Same(t, h, h.WithGroup(""))

	logger := slog.New(h).WithGroup("batch").With(slog.String("target", "out"))
	logger.Info("Batch finished")
	assert.Equal(t, "[INFO ] Batch finished batch.target=[out]\n", buf.String())

	buf.Reset()
	slog.New(h).Info("Plain")
	assert.Equal(t, "[INFO ] Plain\n", buf.String(), "derived handlers do not leak into the parent")
}
