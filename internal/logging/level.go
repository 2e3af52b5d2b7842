package logging

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/swd2tools/swd2/internal/color"
)

// ErrUnknownLevel is returned by ParseLevel for a name that is not a Level.
var ErrUnknownLevel = errors.New("unknown log level")

// SlogCritical is the slog level used for CRITICAL records.
const SlogCritical = slog.Level(12)

// Level is a log level carrying its slog level and display color.
type Level int

// Log levels. Warn and Warning are aliases with the same slog level.
const (
	Debug Level = iota
	Info
	Warn
	Warning
	Error
	Critical
)

var levelNames = [...]string{
	Debug:    "DEBUG",
	Info:     "INFO",
	Warn:     "WARN",
	Warning:  "WARNING",
	Error:    "ERROR",
	Critical: "CRITICAL",
}

// Levels returns every level in ascending order.
func Levels() []Level {
	return []Level{Debug, Info, Warn, Warning, Error, Critical}
}

func (l Level) String() string {
	if l < Debug || l > Critical {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// Slog returns the slog level for l.
func (l Level) Slog() slog.Level {
	switch l {
	case Debug:
		return slog.LevelDebug
	case Warn, Warning:
		return slog.LevelWarn
	case Error:
		return slog.LevelError
	case Critical:
		return SlogCritical
	default:
		return slog.LevelInfo
	}
}

// Color returns the color used for l's badge.
func (l Level) Color() color.Color {
	switch l {
	case Debug:
		return color.GrayDark
	case Warn, Warning:
		return color.Yellow
	case Error:
		return color.Red
	case Critical:
		return color.RedAlert
	default:
		return color.Gray
	}
}

// ParseLevel looks a level up by name, ignoring case.
func ParseLevel(name string) (Level, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for _, l := range Levels() {
		if levelNames[l] == upper {
			return l, nil
		}
	}
	return Info, fmt.Errorf("%w %q: possible values are %s", ErrUnknownLevel, name, strings.Join(levelNames[:], ", "))
}

// LevelOf maps a slog level to the highest Level not above it.
// Levels below DEBUG map to Debug.
func LevelOf(sl slog.Level) Level {
	switch {
	case sl >= SlogCritical:
		return Critical
	case sl >= slog.LevelError:
		return Error
	case sl >= slog.LevelWarn:
		return Warn
	case sl >= slog.LevelInfo:
		return Info
	default:
		return Debug
	}
}

// ReplaceLevelName is a slog.HandlerOptions.ReplaceAttr hook printing
// CRITICAL instead of "ERROR+4".
func ReplaceLevelName(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok && lvl >= SlogCritical {
			a.Value = slog.StringValue(Critical.String())
		}
	}
	return a
}
