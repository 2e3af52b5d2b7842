// Package bootstrap wires the logging handler set for one CLI invocation.
package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/swd2tools/swd2/internal/logging"
	"github.com/swd2tools/swd2/internal/terminal"
)

// Version of the attribute set attached to every run log record.
const logSchemaVersion = 1

// LoggerConfig holds all configuration for logger setup
type LoggerConfig struct {
	Level  slog.Level
	LogDir string // empty disables the JSON run log
	RunID  string // generated when empty

	// ConsoleWriter receives console log lines. Defaults to os.Stderr.
	ConsoleWriter io.Writer
	Terminal      terminal.Options
	// Capabilities overrides detection from Terminal, for tests.
	Capabilities terminal.Capabilities
	// Started stamps the run log name. Defaults to time.Now().
	Started time.Time
}

// Logging is the logger installed by SetupLogger.
type Logging struct {
	Logger       *slog.Logger
	RunID        string
	LogPath      string
	Capabilities terminal.Capabilities

	file *os.File
}

// NewRunID returns a new sortable run identifier.
func NewRunID() string {
	return ulid.Make().String()
}

// SetupLogger builds the handler set, installs it as slog.Default and
// returns it. Close must be called to release the run log.
//
// Handlers, in order: JSON run log (when LogDir is set), interactive console,
// plain text console. The run log comes first so an error hint printed on the
// console names the line that was just written.
func SetupLogger(config LoggerConfig) (*Logging, error) {
	if config.RunID == "" {
		config.RunID = NewRunID()
	}
	if config.Started.IsZero() {
		config.Started = time.Now()
	}
	consoleWriter := config.ConsoleWriter
	if consoleWriter == nil {
		consoleWriter = os.Stderr
	}
	capabilities := config.Capabilities
	if capabilities == nil {
		capabilities = terminal.NewCapabilities(config.Terminal)
	}

	result := &Logging{RunID: config.RunID, Capabilities: capabilities}
	var handlers []slog.Handler
	var lineTracker logging.LogLineTracker

	// 1. Machine-readable run log
	if config.LogDir != "" {
		hostname := logging.Hostname()
		f, err := logging.OpenRunLog(config.LogDir, logging.RunLogName(hostname, config.Started, config.RunID))
		if err != nil {
			return nil, err
		}
		result.file = f
		result.LogPath = filepath.Join(config.LogDir, filepath.Base(f.Name()))

		tracker := logging.NewDefaultLogLineTracker()
		lineTracker = tracker
		jsonHandler := slog.NewJSONHandler(logging.NewLineCountingWriter(f, tracker), &slog.HandlerOptions{
			Level:       config.Level,
			ReplaceAttr: logging.ReplaceLevelName,
		})
		handlers = append(handlers, jsonHandler.WithAttrs([]slog.Attr{
			slog.String("hostname", hostname),
			slog.Int("pid", os.Getpid()),
			slog.Int("schema_version", logSchemaVersion),
			slog.String("run_id", config.RunID),
		}))
	}

	// 2. Interactive handler
	interactiveHandler, err := logging.NewInteractiveHandler(logging.InteractiveHandlerOptions{
		Level:        config.Level,
		Writer:       consoleWriter,
		Capabilities: capabilities,
		Formatter:    logging.NewDefaultMessageFormatter(),
		LineTracker:  lineTracker,
	})
	if err != nil {
		result.closeFile()
		return nil, fmt.Errorf("failed to create interactive handler: %w", err)
	}
	handlers = append(handlers, interactiveHandler)

	// 3. Plain text for pipes, CI and --quiet
	textHandler, err := logging.NewConditionalTextHandler(logging.ConditionalTextHandlerOptions{
		TextHandlerOptions: &slog.HandlerOptions{
			Level:       config.Level,
			ReplaceAttr: logging.ReplaceLevelName,
		},
		Writer:       consoleWriter,
		Capabilities: capabilities,
	})
	if err != nil {
		result.closeFile()
		return nil, fmt.Errorf("failed to create conditional text handler: %w", err)
	}
	handlers = append(handlers, textHandler)

	result.Logger = slog.New(logging.NewMultiHandler(handlers...))
	slog.SetDefault(result.Logger)

	result.Logger.Debug("Logger initialized",
		slog.String("log_level", logging.LevelOf(config.Level).String()),
		slog.String("run_id", config.RunID),
		slog.String("log_file", result.LogPath),
		slog.Bool("interactive_mode", capabilities.IsInteractive()),
		slog.Bool("color_support", capabilities.SupportsColor()),
	)
	return result, nil
}

// Close releases the run log file, if any.
func (l *Logging) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *Logging) closeFile() {
	if err := l.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
	}
}
