package translator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/swd2tools/swd2/internal/logging"
)

// Batch defaults.
const (
	DefaultOutDir        = "out"
	DefaultCompressExt   = PlainExt
	DefaultDecompressExt = PlainExt + CompressedExt
)

const outDirPerm os.FileMode = 0o750

// Report collects the results of a batch run in processing order.
type Report struct {
	Dir     string
	OutDir  string
	Results []Result
}

// Count returns the number of results with the given status.
func (r *Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// OK reports whether every file in the batch was written.
func (r *Report) OK() bool {
	return r.Count(Success) == len(r.Results)
}

// Status is the worst status in the report: Error before Skip before Success.
func (r *Report) Status() Status {
	switch {
	case r.Count(Error) > 0:
		return Error
	case r.Count(Skip) > 0:
		return Skip
	default:
		return Success
	}
}

// EncodeAll compresses every dir/*ext file into outDir as name+ext+".z".
func (t *Translator) EncodeAll(dir, ext, outDir string, overwrite bool) (*Report, error) {
	return t.runAll(dir, ext, outDir, overwrite, t.Encode, EncodedName)
}

// DecodeAll decompresses every dir/*ext file into outDir with the final
// extension removed.
func (t *Translator) DecodeAll(dir, ext, outDir string, overwrite bool) (*Report, error) {
	return t.runAll(dir, ext, outDir, overwrite, t.Decode, DecodedName)
}

func (t *Translator) runAll(dir, ext, outDir string, overwrite bool,
	op func(source, target string, overwrite bool) Result, targetName func(string) string,
) (*Report, error) {
	if !strings.HasPrefix(ext, ".") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
	}

	files, err := Match(dir, ext)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, outDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outDir, err)
	}

	report := &Report{Dir: dir, OutDir: outDir}
	for i, source := range files {
		target := filepath.Join(outDir, targetName(filepath.Base(source)))
		logging.Subtitle(t.logger, slog.LevelInfo, fmt.Sprintf("%s %d/%d", logging.BatchFileTemplate, i+1, len(files)))
		report.Results = append(report.Results, op(source, target, overwrite))
	}

	status := report.Status()
	t.logger.Log(context.Background(), status.Level().Slog(), logging.BatchSummaryTemplate,
		slog.String("dir", dir),
		slog.String("out_dir", outDir),
		slog.Int("total", len(report.Results)),
		slog.Int("succeeded", report.Count(Success)),
		slog.Int("skipped", report.Count(Skip)),
		slog.Int("failed", report.Count(Error)),
	)
	return report, nil
}

// Match returns the regular entries of dir whose names end with ext, sorted.
func Match(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) || e.Name() == ext {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
