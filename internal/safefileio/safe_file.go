package safefileio

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
)

// MaxFileSize is the maximum allowed file size for SafeReadFile (128 MB).
// Game tables are a few hundred kilobytes; anything near this is not one.
const MaxFileSize = 128 * 1024 * 1024

// SafeReadFile reads a whole file after validating the path and checking file properties.
// It uses O_NOFOLLOW so the final component cannot be a symlink, and rejects
// symlinked directories on the way to it.
func SafeReadFile(filePath string) ([]byte, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}

	// #nosec G304 - absPath is cleaned above and opened with O_NOFOLLOW
	file, err := os.OpenFile(absPath, os.O_RDONLY|syscall.O_NOFOLLOW, 0)
	if err != nil {
		if isNoFollowError(err) {
			return nil, ErrIsSymlink
		}
		return nil, err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Warn("error closing file", slog.String("path", absPath), slog.Any("error", closeErr))
		}
	}()

	if err := verifyPathComponents(absPath); err != nil {
		return nil, err
	}

	return readFileContent(file, absPath)
}

// readFileContent reads and validates the content of an already opened file
func readFileContent(file *os.File, filePath string) ([]byte, error) {
	fileInfo, err := validateFile(file, filePath)
	if err != nil {
		return nil, err
	}

	if fileInfo.Size() > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	content, err := io.ReadAll(io.LimitReader(file, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if int64(len(content)) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	return content, nil
}

// SafeWriteFile writes content to filePath in one piece.
//
// Without overwrite the file is created exclusively and ErrFileExists is
// returned if anything is already there. With overwrite the content goes to a
// temporary file in the same directory which then replaces the target, so a
// failed write leaves the previous file intact. An existing target keeps its
// permission bits; perm applies to new files only.
func SafeWriteFile(filePath string, content []byte, perm os.FileMode, overwrite bool) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}

	if err := verifyPathComponents(absPath); err != nil {
		return err
	}

	if !overwrite {
		return writeExclusive(absPath, content, perm)
	}

	fi, err := os.Lstat(absPath)
	switch {
	case err == nil:
		if fi.Mode()&os.ModeSymlink != 0 {
			return ErrIsSymlink
		}
		if !fi.Mode().IsRegular() {
			return fmt.Errorf("%w: not a regular file: %s", ErrInvalidFilePath, absPath)
		}
		perm = fi.Mode().Perm()
	case errors.Is(err, fs.ErrNotExist):
	default:
		return fmt.Errorf("failed to stat %s: %w", absPath, err)
	}

	return writeReplace(absPath, content, perm)
}

// writeExclusive creates absPath with O_EXCL and removes it again if the write fails.
func writeExclusive(absPath string, content []byte, perm os.FileMode) (err error) {
	// #nosec G304 - absPath is cleaned by the caller and opened with O_NOFOLLOW
	file, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL|syscall.O_NOFOLLOW, perm)
	if err != nil {
		switch {
		case os.IsExist(err):
			return ErrFileExists
		case isNoFollowError(err):
			return ErrIsSymlink
		default:
			return fmt.Errorf("failed to open file: %w", err)
		}
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", closeErr)
		}
		if err != nil {
			_ = os.Remove(absPath)
		}
	}()

	if _, err = validateFile(file, absPath); err != nil {
		return err
	}

	if _, err = file.Write(content); err != nil {
		return fmt.Errorf("failed to write to %s: %w", absPath, err)
	}

	return nil
}

// writeReplace writes content next to absPath and renames it into place.
func writeReplace(absPath string, content []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(absPath), "."+filepath.Base(absPath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return fmt.Errorf("failed to write to %s: %w", tmpPath, err)
	}
	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpPath, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err = os.Rename(tmpPath, absPath); err != nil {
		return fmt.Errorf("failed to replace %s: %w", absPath, err)
	}

	return nil
}

// SafeOpenFile opens filePath with the given flags plus O_NOFOLLOW and checks
// that the result is a regular file. It is used for long-lived handles such
// as run logs.
func SafeOpenFile(filePath string, flag int, perm os.FileMode) (*os.File, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}

	// #nosec G304 - absPath is cleaned above and opened with O_NOFOLLOW
	file, err := os.OpenFile(absPath, flag|syscall.O_NOFOLLOW, perm)
	if err != nil {
		switch {
		case os.IsExist(err):
			return nil, ErrFileExists
		case isNoFollowError(err):
			return nil, ErrIsSymlink
		default:
			return nil, err
		}
	}

	if err := verifyPathComponents(absPath); err != nil {
		_ = file.Close()
		return nil, err
	}
	if _, err := validateFile(file, absPath); err != nil {
		_ = file.Close()
		return nil, err
	}

	return file, nil
}

// verifyPathComponents checks if any directory component of the path is a symlink.
func verifyPathComponents(absPath string) error {
	current := filepath.Dir(absPath)
	for {
		parent := filepath.Dir(current)
		if parent == current {
			return nil // root
		}

		fi, err := os.Lstat(current)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return fmt.Errorf("failed to stat %s: %w", current, err)
		}

		if fi.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("%w: %s", ErrIsSymlink, current)
		}

		current = parent
	}
}

// validateFile checks that an open file is a regular file and returns its FileInfo.
// Stat goes through the descriptor so the checked file is the one being used.
func validateFile(file *os.File, filePath string) (os.FileInfo, error) {
	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	if !fileInfo.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: not a regular file: %s", ErrInvalidFilePath, filePath)
	}

	return fileInfo, nil
}
