// Package translator runs the precondition checks, file I/O and codec for
// single files and for whole directories of game tables.
package translator

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/swd2tools/swd2/internal/codec"
	"github.com/swd2tools/swd2/internal/logging"
	"github.com/swd2tools/swd2/internal/precheck"
	"github.com/swd2tools/swd2/internal/safefileio"
)

// Default file extensions.
const (
	PlainExt      = ".csv"
	CompressedExt = ".z"
)

const targetPerm os.FileMode = 0o644

// Result is the outcome of transcoding one file.
type Result struct {
	Source string
	Target string
	Status Status
	Err    error
}

// OK reports whether the file was written.
func (r Result) OK() bool { return r.Status == Success }

// Translator transcodes files between the plain and the compressed form.
type Translator struct {
	logger  *slog.Logger
	checker *precheck.Checker
}

// Option configures a Translator.
type Option func(*Translator)

// WithLogger sets the diagnostic sink. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) { t.logger = logger }
}

// WithChecker replaces the OS-backed precondition checker.
func WithChecker(c *precheck.Checker) Option {
	return func(t *Translator) { t.checker = c }
}

// New creates a Translator.
func New(opts ...Option) *Translator {
	t := &Translator{}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	if t.checker == nil {
		t.checker = precheck.New(nil)
	}
	return t
}

type operation struct {
	transform func([]byte) ([]byte, error)
	completed string
	failed    string
	inspect   bool
}

var (
	encodeOp = operation{
		transform: codec.Encode,
		completed: logging.CompressCompleteTemplate,
		failed:    logging.CompressFailedTemplate,
	}
	decodeOp = operation{
		transform: codec.Decode,
		completed: logging.DecompressCompleteTemplate,
		failed:    logging.DecompressFailedTemplate,
		inspect:   true,
	}
)

// Encode compresses the plain table at source into target.
func (t *Translator) Encode(source, target string, overwrite bool) Result {
	return t.run(encodeOp, source, target, overwrite)
}

// Decode decompresses the game file at source into target. Stand-in
// characters are written as they are.
func (t *Translator) Decode(source, target string, overwrite bool) Result {
	return t.run(decodeOp, source, target, overwrite)
}

func (t *Translator) run(op operation, source, target string, overwrite bool) Result {
	res := Result{Source: source, Target: target}
	res.Err = t.transcode(op, source, target, overwrite)
	res.Status = StatusOf(res.Err)
	if res.Err != nil {
		t.logger.Error(op.failed, slog.String("path", source), slog.String("status", res.Status.String()))
		return res
	}
	t.logger.Info(op.completed, slog.String("path", target))
	return res
}

func (t *Translator) transcode(op operation, source, target string, overwrite bool) error {
	if err := t.checker.CheckAll(t.logger, source, target, overwrite); err != nil {
		return err
	}

	t.logger.Info(logging.FileReadTemplate, slog.String("path", source))
	data, err := safefileio.SafeReadFile(source)
	if err != nil {
		t.logger.Error("Cannot read source file", slog.String("path", source), slog.Any("error", err))
		return err
	}

	if op.inspect {
		if size, err := codec.PayloadSize(data); err == nil {
			t.logger.Debug("Declared payload size", slog.String("path", source), slog.Uint64("size", uint64(size)))
		}
	}

	out, err := op.transform(data)
	if err != nil {
		t.logger.Error("Cannot transcode file", slog.String("path", source), slog.Any("error", err))
		return err
	}

	t.logger.Info(logging.FileWriteTemplate, slog.String("path", target))
	if err := safefileio.SafeWriteFile(target, out, targetPerm, overwrite); err != nil {
		t.logger.Error("Cannot write target file", slog.String("path", target), slog.Any("error", err))
		return err
	}
	return nil
}

// EncodedName returns the compressed file name for a plain file: a.csv -> a.csv.z.
func EncodedName(source string) string {
	return source + CompressedExt
}

// DecodedName returns the plain file name for a compressed file by dropping
// its last extension: a.csv.z -> a.csv. A name without an extension gets .csv.
func DecodedName(source string) string {
	ext := filepath.Ext(source)
	if ext == "" || ext == filepath.Base(source) {
		return source + PlainExt
	}
	return strings.TrimSuffix(source, ext)
}
