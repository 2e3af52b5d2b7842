package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/swd2tools/swd2/internal/safefileio"
)

// Common errors
var ErrEmptyLogDirectory = errors.New("log directory cannot be empty")

// File permissions constants
const (
	logDirPerm  os.FileMode = 0o750
	logFilePerm os.FileMode = 0o600
)

// RunLogName returns the run log file name for one invocation.
func RunLogName(hostname string, started time.Time, runID string) string {
	return fmt.Sprintf("%s_%s_%s.json", hostname, started.UTC().Format("20060102T150405Z"), runID)
}

// OpenRunLog creates dir if needed and exclusively creates the run log file
// in it, refusing symlinks.
func OpenRunLog(dir, name string) (*os.File, error) {
	if dir == "" {
		return nil, ErrEmptyLogDirectory
	}
	if err := os.MkdirAll(dir, logDirPerm); err != nil {
		return nil, fmt.Errorf("cannot create log directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, name)
	f, err := safefileio.SafeOpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, logFilePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s safely: %w", path, err)
	}
	return f, nil
}

// Hostname returns the host name, or "unknown" when it cannot be determined.
func Hostname() string {
	h, err := os.Hostname()
	if err != nil || h == "" {
		return "unknown"
	}
	return h
}
