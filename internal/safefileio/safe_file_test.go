package safefileio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// safeTempDir creates a temporary directory and resolves any symlinks in its path
// so that verifyPathComponents does not trip over e.g. /var -> /private/var.
func safeTempDir(t *testing.T) string {
	t.Helper()
	realPath, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err, "Failed to resolve symlinks in temp dir")
	return realPath
}

func TestSafeReadFile(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		want    []byte
		errType error
		wantErr bool
	}{
		{
			name: "regular file",
			setup: func(t *testing.T) string {
				p := filepath.Join(safeTempDir(t), "items.csv")
				require.NoError(t, os.WriteFile(p, []byte("id;name\n"), 0o600))
				return p
			},
			want: []byte("id;name\n"),
		},
		{
			name: "empty file",
			setup: func(t *testing.T) string {
				p := filepath.Join(safeTempDir(t), "empty.csv")
				require.NoError(t, os.WriteFile(p, nil, 0o600))
				return p
			},
			want: []byte{},
		},
		{
			name: "missing file",
			setup: func(t *testing.T) string {
				return filepath.Join(safeTempDir(t), "missing.csv")
			},
			wantErr: true,
		},
		{
			name: "directory",
			setup: func(t *testing.T) string {
				return safeTempDir(t)
			},
			wantErr: true,
			errType: ErrInvalidFilePath,
		},
		{
			name: "symlinked file",
			setup: func(t *testing.T) string {
				dir := safeTempDir(t)
				target := filepath.Join(dir, "real.csv")
				require.NoError(t, os.WriteFile(target, []byte("x"), 0o600))
				link := filepath.Join(dir, "link.csv")
				require.NoError(t, os.Symlink(target, link))
				return link
			},
			wantErr: true,
			errType: ErrIsSymlink,
		},
		{
			name: "symlinked directory component",
			setup: func(t *testing.T) string {
				dir := safeTempDir(t)
				realDir := filepath.Join(dir, "real")
				require.NoError(t, os.Mkdir(realDir, 0o750))
				require.NoError(t, os.WriteFile(filepath.Join(realDir, "a.csv"), []byte("x"), 0o600))
				linkDir := filepath.Join(dir, "linked")
				require.NoError(t, os.Symlink(realDir, linkDir))
				return filepath.Join(linkDir, "a.csv")
			},
			wantErr: true,
			errType: ErrIsSymlink,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)
			got, err := SafeReadFile(path)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errType != nil {
					assert.ErrorIs(t, err, tt.errType)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSafeWriteFileNew(t *testing.T) {
	for _, overwrite := range []bool{false, true} {
		dir := safeTempDir(t)
		p := filepath.Join(dir, "out.csv.z")

		require.NoError(t, SafeWriteFile(p, []byte("payload"), 0o640, overwrite))

		got, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), got)

		fi, err := os.Stat(p)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm()&0o600, "overwrite=%v", overwrite)
	}
}

func TestSafeWriteFileExisting(t *testing.T) {
	t.Run("refused without overwrite", func(t *testing.T) {
		p := filepath.Join(safeTempDir(t), "out.csv.z")
		require.NoError(t, os.WriteFile(p, []byte("old"), 0o600))

		err := SafeWriteFile(p, []byte("new"), 0o644, false)
		assert.ErrorIs(t, err, ErrFileExists)

		got, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, []byte("old"), got)
	})

	t.Run("replaced with overwrite", func(t *testing.T) {
		dir := safeTempDir(t)
		p := filepath.Join(dir, "out.csv.z")
		require.NoError(t, os.WriteFile(p, []byte("old content that is longer"), 0o600))

		require.NoError(t, SafeWriteFile(p, []byte("new"), 0o644, true))

		got, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), got)

		fi, err := os.Stat(p)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm(), "existing permissions are kept")

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "no temporary files left behind")
	})

	t.Run("directory target", func(t *testing.T) {
		dir := safeTempDir(t)
		target := filepath.Join(dir, "sub")
		require.NoError(t, os.Mkdir(target, 0o750))

		assert.ErrorIs(t, SafeWriteFile(target, []byte("x"), 0o644, true), ErrInvalidFilePath)
		assert.ErrorIs(t, SafeWriteFile(target, []byte("x"), 0o644, false), ErrFileExists)
	})
}

func TestSafeWriteFileSymlinks(t *testing.T) {
	dir := safeTempDir(t)
	real := filepath.Join(dir, "real.csv.z")
	require.NoError(t, os.WriteFile(real, []byte("keep"), 0o600))
	link := filepath.Join(dir, "link.csv.z")
	require.NoError(t, os.Symlink(real, link))

	assert.ErrorIs(t, SafeWriteFile(link, []byte("x"), 0o644, true), ErrIsSymlink)

	realDir := filepath.Join(dir, "realdir")
	require.NoError(t, os.Mkdir(realDir, 0o750))
	linkDir := filepath.Join(dir, "linkdir")
	require.NoError(t, os.Symlink(realDir, linkDir))

	assert.ErrorIs(t, SafeWriteFile(filepath.Join(linkDir, "a.csv.z"), []byte("x"), 0o644, false), ErrIsSymlink)
	assert.NoFileExists(t, filepath.Join(realDir, "a.csv.z"))

	got, err := os.ReadFile(real)
	require.NoError(t, err)
	assert.Equal(t, []byte("keep"), got)
}

func TestSafeWriteFileMissingDirectory(t *testing.T) {
	p := filepath.Join(safeTempDir(t), "nope", "out.csv.z")
	err := SafeWriteFile(p, []byte("x"), 0o644, false)
	require.Error(t, err)
	assert.NoFileExists(t, p)
}

func TestSafeOpenFile(t *testing.T) {
	dir := safeTempDir(t)
	p := filepath.Join(dir, "run.json")

	f, err := SafeOpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString("{}\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = SafeOpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	assert.ErrorIs(t, err, ErrFileExists)

	link := filepath.Join(dir, "link.json")
	require.NoError(t, os.Symlink(p, link))
	_, err = SafeOpenFile(link, os.O_WRONLY, 0)
	assert.ErrorIs(t, err, ErrIsSymlink)
}
