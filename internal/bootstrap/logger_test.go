package bootstrap

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swd2tools/swd2/internal/logging"
)

type fakeCapabilities struct {
	interactive bool
	color       bool
}

func (c fakeCapabilities) IsInteractive() bool { return c.interactive }
func (c fakeCapabilities) SupportsColor() bool { return c.color }

func restoreDefaultLogger(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func readJSONLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.NoError(t, scanner.Err())
	return records
}

func TestSetupLoggerConsoleOnly(t *testing.T) {
	restoreDefaultLogger(t)
	var console bytes.Buffer

	l, err := SetupLogger(LoggerConfig{
		Level:         slog.LevelInfo,
		ConsoleWriter: &console,
		Capabilities:  fakeCapabilities{},
	})
	require.NoError(t, err)
	defer l.Close()

	assert.NotEmpty(t, l.RunID)
	assert.Empty(t, l.LogPath)
	assert.Same(t, l.Logger, slog.Default())

	slog.Info("Compression completed", slog.String("path", "out/a.csv.z"))
	slog.Debug("hidden")

	out := console.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "Compression completed")
	assert.Contains(t, out, "path=out/a.csv.z")
	assert.NotContains(t, out, "hidden")
}

func TestSetupLoggerRunLog(t *testing.T) {
	restoreDefaultLogger(t)
	dir := filepath.Join(t.TempDir(), "logs")
	started := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	l, err := SetupLogger(LoggerConfig{
		Level:         slog.LevelDebug,
		LogDir:        dir,
		RunID:         "01HXRUN",
		ConsoleWriter: &bytes.Buffer{},
		Capabilities:  fakeCapabilities{},
		Started:       started,
	})
	require.NoError(t, err)

	assert.Equal(t, "01HXRUN", l.RunID)
	assert.Equal(t, filepath.Join(dir, logging.RunLogName(logging.Hostname(), started, "01HXRUN")), l.LogPath)
	assert.True(t, strings.HasSuffix(l.LogPath, "_20240501T123000Z_01HXRUN.json"))

	l.Logger.Log(context.Background(), logging.SlogCritical, "Batch finished")
	require.NoError(t, l.Close())
	require.NoError(t, l.Close(), "second close is a no-op")

	records := readJSONLines(t, l.LogPath)
	require.Len(t, records, 2, "init record plus one")
	last := records[1]
	assert.Equal(t, "Batch finished", last["msg"])
	assert.Equal(t, "CRITICAL", last["level"])
	assert.Equal(t, "01HXRUN", last["run_id"])
	assert.Equal(t, float64(1), last["schema_version"])
	assert.Equal(t, logging.Hostname(), last["hostname"])
	assert.Equal(t, float64(os.Getpid()), last["pid"])

	info, err := os.Stat(l.LogPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSetupLoggerInteractiveHint(t *testing.T) {
	restoreDefaultLogger(t)
	var console bytes.Buffer

	l, err := SetupLogger(LoggerConfig{
		Level:         slog.LevelInfo,
		LogDir:        t.TempDir(),
		ConsoleWriter: &console,
		Capabilities:  fakeCapabilities{interactive: true},
	})
	require.NoError(t, err)
	defer l.Close()

	l.Logger.Info("Reading source file")
	l.Logger.Error("Cannot read source file")

	out := console.String()
	assert.NotContains(t, out, "level=", "text handler is silent on an interactive console")
	assert.Contains(t, out, "Reading source file")
	assert.Contains(t, out, logging.LogFileHintPrefix+" 2")
}

func TestSetupLoggerGeneratesRunIDs(t *testing.T) {
	restoreDefaultLogger(t)
	cfg := LoggerConfig{ConsoleWriter: &bytes.Buffer{}, Capabilities: fakeCapabilities{}}

	a, err := SetupLogger(cfg)
	require.NoError(t, err)
	b, err := SetupLogger(cfg)
	require.NoError(t, err)

	assert.Len(t, a.RunID, 26)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestSetupLoggerBadLogDir(t *testing.T) {
	restoreDefaultLogger(t)
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	_, err := SetupLogger(LoggerConfig{
		LogDir:        filepath.Join(file, "logs"),
		ConsoleWriter: &bytes.Buffer{},
		Capabilities:  fakeCapabilities{},
	})
	assert.Error(t, err)
}
