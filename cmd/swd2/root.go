package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/swd2tools/swd2/internal/bootstrap"
	"github.com/swd2tools/swd2/internal/config"
	"github.com/swd2tools/swd2/internal/logging"
	"github.com/swd2tools/swd2/internal/terminal"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	verbose    bool
	workingDir string
	logLevel   string
	logDir     string
	configPath string
	color      bool
	noColor    bool
	quiet      bool
}

// app holds the state of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer
	opts   globalOptions

	cfg     *config.Config
	workDir string
	logging *bootstrap.Logging
	logger  *slog.Logger
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "swd2",
		Short: "Translation tools for SteamWorld Dig 2",
		Long: `swd2 converts the game's compressed text tables (.csv.z) to editable CSV and back.

Polish letters the game font lacks are written as stand-in characters the
font does render, so translated text shows correctly in game.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "log debug messages")
	flags.StringVar(&a.opts.workingDir, "working-dir", "", "directory relative paths are resolved against (default \".\")")
	flags.StringVar(&a.opts.logLevel, "log-level", "", "log level: DEBUG, INFO, WARNING, ERROR, CRITICAL (default \"INFO\")")
	flags.StringVar(&a.opts.logDir, "log-dir", "", "directory for the per-run JSON log")
	flags.StringVar(&a.opts.configPath, "config", "", "path to the config file (default \"./"+config.DefaultFileName+"\" when present)")
	flags.BoolVar(&a.opts.color, "color", false, "force colored output")
	flags.BoolVar(&a.opts.noColor, "no-color", false, "disable colored output")
	flags.BoolVarP(&a.opts.quiet, "quiet", "q", false, "plain log lines and no banner")
	root.MarkFlagsMutuallyExclusive("color", "no-color")

	root.AddCommand(a.workingDirCommand(), a.translatorCommand())
	return root
}

// setup loads the configuration, applies flag overrides and installs the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logging.ParseLevel(cfg.Global.LogLevel)
	if err != nil {
		return err
	}
	if cfg.Global.Verbose && level > logging.Debug {
		level = logging.Debug
	}

	workDir, err := resolveWorkingDir(cfg.Global.WorkingDir)
	if err != nil {
		return err
	}
	a.workDir = workDir

	logDir := cfg.Global.LogDir
	if logDir != "" {
		logDir = a.resolve(logDir)
	}
	l, err := bootstrap.SetupLogger(bootstrap.LoggerConfig{
		Level:         level.Slog(),
		LogDir:        logDir,
		ConsoleWriter: a.stderr,
		Terminal: terminal.Options{
			ForceColor:          a.opts.color,
			DisableColor:        a.opts.noColor,
			ForceNonInteractive: a.opts.quiet,
		},
	})
	if err != nil {
		return failure(fmt.Errorf("failed to set up logging: %w", err))
	}
	a.logging = l
	a.logger = l.Logger

	useColor := l.Capabilities.SupportsColor()
	configureStyling(useColor)
	if !a.opts.quiet {
		if err := printBanner(a.stdout); err != nil {
			a.logger.Debug("Cannot render banner", slog.Any("error", err))
		}
	}
	if l.LogPath != "" {
		a.logger.Debug("Run log", slog.String("log_file", l.LogPath), slog.String("run_id", l.RunID))
	}
	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	if a.opts.configPath != "" {
		return config.Load(a.opts.configPath)
	}
	return config.LoadOptional(config.DefaultFileName)
}

// applyFlags overrides configuration values with explicitly set flags.
func (a *app) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("working-dir") {
		cfg.Global.WorkingDir = a.opts.workingDir
	}
	if flags.Changed("log-level") {
		cfg.Global.LogLevel = a.opts.logLevel
	}
	if flags.Changed("log-dir") {
		cfg.Global.LogDir = a.opts.logDir
	}
	if flags.Changed("verbose") {
		cfg.Global.Verbose = a.opts.verbose
	}
}

func resolveWorkingDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("invalid working directory %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("invalid working directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("invalid working directory: %s is not a directory", abs)
	}
	return abs, nil
}

// resolve makes a relative path relative to the working directory.
func (a *app) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(a.workDir, path)
}

func (a *app) close() {
	if err := a.logging.Close(); err != nil {
		fmt.Fprintf(a.stderr, "Warning: failed to close log file: %v\n", err)
	}
}

func (a *app) workingDirCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "working-dir",
		Short: "Show the tool location and the working directory",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			logging.Title(a.logger, "Working directory")
			if exe, err := os.Executable(); err == nil {
				a.logger.Info("Tool location", slog.String("path", filepath.Dir(exe)))
			}
			a.logger.Info("Working directory", slog.String("working_dir", a.workDir))
			fmt.Fprintln(a.stdout, a.workDir)
			return nil
		},
	}
}
