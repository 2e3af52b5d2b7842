// Package precheck decides whether a transcoding may read its source and
// write its target. Checks only stat and probe the filesystem; they never
// create, modify or remove anything, and results are not cached.
package precheck

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
)

// AccessMode selects the permission probed by FileSystem.Access.
type AccessMode uint8

// Access modes.
const (
	Read AccessMode = 1 << iota
	Write
)

// FileSystem is the part of the OS the checker needs.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Access(path string, mode AccessMode) error
}

// OSFileSystem implements FileSystem with os.Stat and access(2).
type OSFileSystem struct{}

// Stat follows symlinks like os.Stat.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// Access reports whether the process may use path in the given mode.
func (OSFileSystem) Access(path string, mode AccessMode) error {
	return access(path, mode)
}

// Checker runs precondition checks against a FileSystem.
type Checker struct {
	fs FileSystem
}

// New returns a Checker using fsys, or the OS when fsys is nil.
func New(fsys FileSystem) *Checker {
	if fsys == nil {
		fsys = OSFileSystem{}
	}
	return &Checker{fs: fsys}
}

var defaultChecker = New(nil)

// CheckSource validates path with the OS-backed checker.
func CheckSource(path string) error { return defaultChecker.CheckSource(path) }

// CheckTarget validates path with the OS-backed checker.
func CheckTarget(path string, overwrite bool) error {
	return defaultChecker.CheckTarget(path, overwrite)
}

// CheckBoth validates both paths with the OS-backed checker.
func CheckBoth(logger *slog.Logger, source, target string, overwrite bool) bool {
	return defaultChecker.CheckBoth(logger, source, target, overwrite)
}

// CheckSource returns a *Violation if path cannot be read as a regular file:
// NotFound, NotAFile or NoPermission, checked in that order.
func (c *Checker) CheckSource(path string) error {
	fi, err := c.fs.Stat(path)
	if err != nil {
		return statFailure(Source, path, err)
	}
	if !fi.Mode().IsRegular() {
		return &Violation{Kind: NotAFile, Role: Source, Path: path}
	}
	if err := c.fs.Access(path, Read); err != nil {
		return &Violation{Kind: NoPermission, Role: Source, Path: path}
	}
	return nil
}

// CheckTarget returns a *Violation if path may not be written. A missing path
// always passes. An existing one needs overwrite and must be a writable regular file.
func (c *Checker) CheckTarget(path string, overwrite bool) error {
	fi, err := c.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return statFailure(Target, path, err)
	}
	if !overwrite {
		return &Violation{Kind: AlreadyExists, Role: Target, Path: path}
	}
	if !fi.Mode().IsRegular() {
		return &Violation{Kind: NotAFile, Role: Target, Path: path}
	}
	if err := c.fs.Access(path, Write); err != nil {
		return &Violation{Kind: NoPermission, Role: Target, Path: path}
	}
	return nil
}

// Violations runs both checks and returns every failure, source first.
func (c *Checker) Violations(source, target string, overwrite bool) []error {
	var errs []error
	if err := c.CheckSource(source); err != nil {
		errs = append(errs, err)
	}
	if err := c.CheckTarget(target, overwrite); err != nil {
		errs = append(errs, err)
	}
	return errs
}

// CheckAll runs both checks, logs every failure at error level and returns
// them joined, or nil when the transcoding may proceed.
func (c *Checker) CheckAll(logger *slog.Logger, source, target string, overwrite bool) error {
	if logger == nil {
		logger = slog.Default()
	}

	errs := c.Violations(source, target, overwrite)
	for _, err := range errs {
		Report(logger, err)
	}
	return errors.Join(errs...)
}

// CheckBoth is CheckAll reduced to whether both checks passed.
func (c *Checker) CheckBoth(logger *slog.Logger, source, target string, overwrite bool) bool {
	return c.CheckAll(logger, source, target, overwrite) == nil
}

// Report logs a check failure with its path and kind.
func Report(logger *slog.Logger, err error) {
	var v *Violation
	if errors.As(err, &v) {
		logger.Error(v.Message(),
			slog.String("path", v.Path),
			slog.String("violation", v.Kind.String()))
		return
	}
	logger.Error("Precondition check failed", slog.Any("error", err))
}

func statFailure(role Role, path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &Violation{Kind: NotFound, Role: role, Path: path}
	case errors.Is(err, fs.ErrPermission):
		return &Violation{Kind: NoPermission, Role: role, Path: path}
	default:
		return fmt.Errorf("failed to stat %s %s: %w", role, path, err)
	}
}
