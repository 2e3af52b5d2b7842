package logging

import (
	"context"
	"log/slog"
	"strings"
)

// Messages shared by the translator and the CLI so the console and the run
// log use the same wording.
const (
	FileReadTemplate  = "Reading source file"
	FileWriteTemplate = "Writing target file"

	CompressCompleteTemplate   = "Compression completed"
	CompressFailedTemplate     = "Compression of file failed"
	DecompressCompleteTemplate = "Decompression completed"
	DecompressFailedTemplate   = "Decompression of file failed"

	BatchFileTemplate    = "File"
	BatchSummaryTemplate = "Batch finished"
)

// LogFileHintTemplates provides templates for log file hints
const (
	LogFileHintPrefix = "Check log file around line"
	LogFileHintSuffix = "for more details"
)

// Section rules drawn around Title and Subtitle banners.
var (
	RuleMajor = strings.Repeat("=", 60)
	RuleMinor = strings.Repeat("-", 60)
)

// Title logs a major section banner at info level.
func Title(logger *slog.Logger, title string) {
	logger.Info(title, slog.String(SectionKey, sectionTitle))
}

// Subtitle logs a minor section banner at the given level.
func Subtitle(logger *slog.Logger, level slog.Level, title string) {
	logger.Log(context.Background(), level, title, slog.String(SectionKey, sectionSubtitle))
}
