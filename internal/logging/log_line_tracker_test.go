package logging

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLogLineTracker(t *testing.T) {
	tracker := NewDefaultLogLineTracker()
	assert.Equal(t, 0, tracker.GetCurrentLine())
	assert.Equal(t, 1, tracker.IncrementLine())

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.IncrementLine()
		}()
	}
	wg.Wait()
	assert.Equal(t, 51, tracker.GetCurrentLine())

	tracker.Reset()
	assert.Equal(t, 0, tracker.GetCurrentLine())
}

func TestLineCountingWriter(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewDefaultLogLineTracker()
	w := NewLineCountingWriter(&buf, tracker)

	logger := slog.New(slog.NewJSONHandler(w, nil))
	logger.Info("one")
	logger.Info("two")

	n, err := w.Write([]byte("partial"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, 2, tracker.GetCurrentLine())
}
