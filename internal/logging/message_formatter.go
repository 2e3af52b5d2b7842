package logging

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/swd2tools/swd2/internal/color"
)

// SectionKey marks a record as a section banner; see Title and Subtitle.
const SectionKey = "section"

// Section kinds stored under SectionKey.
const (
	sectionTitle    = "title"
	sectionSubtitle = "subtitle"
)

// variableKeys are rendered as [value], highlighted when colored.
var variableKeys = map[string]bool{
	"path":        true,
	"source":      true,
	"target":      true,
	"dir":         true,
	"out_dir":     true,
	"working_dir": true,
	"config":      true,
	"log_file":    true,
}

// priorityKeys are shown first in interactive output, in this order.
// "error" only counts when it holds an error value.
var priorityKeys = []string{
	"error", "path", "source", "target", "dir", "out_dir", "violation", "status",
	"total", "succeeded", "skipped", "failed",
}

// skipKeys are never shown in interactive output.
var skipKeys = map[string]bool{
	"time": true, "level": true, "msg": true, "run_id": true, "hostname": true,
	"pid": true, "schema_version": true, SectionKey: true,
}

// MessageFormatter turns slog records into console lines.
type MessageFormatter interface {
	// FormatRecordInteractive formats a record for a person at a terminal.
	FormatRecordInteractive(record slog.Record, useColor bool) string

	// FormatLogFileHint formats the pointer into the run log for error records.
	FormatLogFileHint(lineNumber int, useColor bool) string
}

// DefaultMessageFormatter is the MessageFormatter used by the CLI.
type DefaultMessageFormatter struct{}

// NewDefaultMessageFormatter creates a new DefaultMessageFormatter.
func NewDefaultMessageFormatter() *DefaultMessageFormatter {
	return &DefaultMessageFormatter{}
}

// FormatRecordInteractive formats a log record for interactive display.
// Section records become banners; other records show the priority
// attributes, or the first few attributes when none of those are present.
func (f *DefaultMessageFormatter) FormatRecordInteractive(record slog.Record, useColor bool) string {
	if section := recordSection(record); section != "" {
		return f.formatSection(section, record.Message, useColor)
	}

	var sb strings.Builder
	sb.WriteString(f.formatLevel(record.Level, useColor))
	sb.WriteString(" ")
	sb.WriteString(record.Message)

	for _, attr := range f.selectInteractiveAttrs(record) {
		sb.WriteString(" ")
		f.writeAttr(&sb, attr, useColor)
	}

	return sb.String()
}

func (f *DefaultMessageFormatter) selectInteractiveAttrs(record slog.Record) []slog.Attr {
	var found []slog.Attr
	for _, key := range priorityKeys {
		record.Attrs(func(attr slog.Attr) bool {
			if attr.Key != key && !strings.HasSuffix(attr.Key, "."+key) {
				return true
			}
			if key == "error" && !isErrorValue(attr.Value) {
				return true
			}
			found = append(found, attr)
			return false
		})
	}
	if len(found) > 0 {
		return found
	}

	const maxInteractiveAttrs = 3
	record.Attrs(func(attr slog.Attr) bool {
		if len(found) >= maxInteractiveAttrs {
			return false
		}
		if !skipKeys[attr.Key] {
			found = append(found, attr)
		}
		return true
	})
	return found
}

func isErrorValue(v slog.Value) bool {
	if v.Kind() != slog.KindAny {
		return false
	}
	_, ok := v.Any().(error)
	return ok
}

func recordSection(record slog.Record) string {
	var section string
	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == SectionKey {
			section = attr.Value.String()
			return false
		}
		return true
	})
	return section
}

func (f *DefaultMessageFormatter) formatSection(section, title string, useColor bool) string {
	rule, paint := RuleMinor, color.GreenDark
	if section == sectionTitle {
		rule, paint = RuleMajor, color.Green
	}
	text := rule + "\n" + title + "\n" + rule
	if !useColor {
		return text
	}
	return paint(text)
}

// FormatLogFileHint formats a log file hint message for error-level logs.
func (f *DefaultMessageFormatter) FormatLogFileHint(lineNumber int, useColor bool) string {
	if lineNumber <= 0 {
		return ""
	}

	prefix := "HINT: "
	if useColor {
		prefix = color.Cyan("* ")
	}
	return prefix + LogFileHintPrefix + " " + strconv.Itoa(lineNumber) + " " + LogFileHintSuffix
}

// formatLevel renders the level badge.
func (f *DefaultMessageFormatter) formatLevel(level slog.Level, useColor bool) string {
	l := LevelOf(level)
	if !useColor {
		return "[" + padLevel(l) + "]"
	}

	var symbol string
	switch l {
	case Debug:
		symbol = "*"
	case Info:
		symbol = "+"
	case Warn, Warning:
		symbol = "!"
	default:
		symbol = "X"
	}
	return l.Color()(symbol + " " + padLevel(l))
}

func padLevel(l Level) string {
	name := l.String()
	if l == Critical {
		name = "CRIT"
	}
	const width = 5
	if len(name) < width {
		name += strings.Repeat(" ", width-len(name))
	}
	return name
}

func (f *DefaultMessageFormatter) writeAttr(sb *strings.Builder, attr slog.Attr, useColor bool) {
	sb.WriteString(attr.Key)
	sb.WriteString("=")

	value := f.formatValue(attr.Value.Resolve())
	key := attr.Key
	if i := strings.LastIndexByte(key, '.'); i >= 0 {
		key = key[i+1:]
	}
	if !variableKeys[key] {
		sb.WriteString(value)
		return
	}

	if useColor {
		value = color.Orange(value)
	}
	sb.WriteString("[" + value + "]")
}

// formatValue formats a slog.Value for display
func (f *DefaultMessageFormatter) formatValue(value slog.Value) string {
	switch value.Kind() {
	case slog.KindString:
		return value.String()
	case slog.KindTime:
		return value.Time().Format(time.RFC3339)
	case slog.KindDuration:
		return value.Duration().String()
	case slog.KindGroup:
		attrs := value.Group()
		if len(attrs) == 0 {
			return "{}"
		}
		parts := make([]string, 0, len(attrs))
		for _, attr := range attrs {
			parts = append(parts, attr.Key+"="+f.formatValue(attr.Value))
		}
		return "{" + strings.Join(parts, ",") + "}"
	default:
		return value.String()
	}
}
