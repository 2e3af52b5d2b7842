package logging

import (
	"bytes"
	"io"
	"sync/atomic"
)

// LogLineTracker tracks log line numbers to provide file hints for error messages.
type LogLineTracker interface {
	// GetCurrentLine returns the number of lines written so far
	GetCurrentLine() int

	// IncrementLine increments the line counter and returns the new line number
	IncrementLine() int

	// Reset resets the line counter to zero
	Reset()
}

// DefaultLogLineTracker is a LogLineTracker safe for concurrent use.
type DefaultLogLineTracker struct {
	lineCounter atomic.Int64
}

// NewDefaultLogLineTracker creates a new DefaultLogLineTracker.
func NewDefaultLogLineTracker() *DefaultLogLineTracker {
	return &DefaultLogLineTracker{}
}

// GetCurrentLine returns the current log line number.
func (t *DefaultLogLineTracker) GetCurrentLine() int {
	return int(t.lineCounter.Load())
}

// IncrementLine increments the line counter and returns the new line number.
func (t *DefaultLogLineTracker) IncrementLine() int {
	return int(t.lineCounter.Add(1))
}

// Reset resets the line counter to zero.
func (t *DefaultLogLineTracker) Reset() {
	t.lineCounter.Store(0)
}

// LineCountingWriter counts the newlines written through it into a tracker.
// Wrapping the run log file with it keeps the tracker in step with the file.
type LineCountingWriter struct {
	w       io.Writer
	tracker LogLineTracker
}

// NewLineCountingWriter wraps w.
func NewLineCountingWriter(w io.Writer, tracker LogLineTracker) *LineCountingWriter {
	return &LineCountingWriter{w: w, tracker: tracker}
}

func (c *LineCountingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	for i := bytes.Count(p[:n], []byte{'\n'}); i > 0; i-- {
		c.tracker.IncrementLine()
	}
	return n, err
}
