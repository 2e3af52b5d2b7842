package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swd2tools/swd2/internal/safefileio"
)

func TestRunLogName(t *testing.T) {
	started := time.Date(2024, 5, 1, 14, 30, 5, 0, time.FixedZone("CEST", 2*3600))
	assert.Equal(t, "host_20240501T123005Z_01ABC.json", RunLogName("host", started, "01ABC"))
}

func TestOpenRunLog(t *testing.T) {
	base, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	dir := filepath.Join(base, "logs")

	f, err := OpenRunLog(dir, "run.json")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	fi, err := os.Stat(filepath.Join(dir, "run.json"))
	require.NoError(t, err)
	assert.Equal(t, logFilePerm, fi.Mode().Perm())

	_, err = OpenRunLog(dir, "run.json")
	assert.ErrorIs(t, err, safefileio.ErrFileExists)

	_, err = OpenRunLog("", "run.json")
	assert.ErrorIs(t, err, ErrEmptyLogDirectory)
}

func TestHostname(t *testing.T) {
	assert.NotEmpty(t, Hostname())
}
