// Package config loads the swd2.toml settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pelletier/go-toml/v2"

	"github.com/swd2tools/swd2/internal/logging"
	"github.com/swd2tools/swd2/internal/safefileio"
	"github.com/swd2tools/swd2/internal/translator"
)

// DefaultFileName is looked up in the current directory when no --config is given.
const DefaultFileName = "swd2.toml"

// Default values for configuration fields
const (
	DefaultWorkingDir = "."
	DefaultLogLevel   = "INFO"
)

// Errors returned by Load and Validate
var (
	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrInvalidExtension = errors.New("invalid file extension")
	ErrEmptyOutDir      = errors.New("output directory must not be empty")
)

// Config is the root of swd2.toml.
type Config struct {
	Global     GlobalSpec     `toml:"global"`
	Translator TranslatorSpec `toml:"translator"`
}

// GlobalSpec holds settings shared by every command.
type GlobalSpec struct {
	WorkingDir string `toml:"working_dir"`
	LogLevel   string `toml:"log_level"`
	// LogDir enables the JSON run log when set.
	LogDir  string `toml:"log_dir"`
	Verbose bool   `toml:"verbose"`
}

// TranslatorSpec holds the translator command defaults.
type TranslatorSpec struct {
	Force         bool   `toml:"force"`
	OutDir        string `toml:"out_dir"`
	CompressExt   string `toml:"compress_ext"`
	DecompressExt string `toml:"decompress_ext"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills empty fields with their default values.
func ApplyDefaults(cfg *Config) {
	if cfg.Global.WorkingDir == "" {
		cfg.Global.WorkingDir = DefaultWorkingDir
	}
	if cfg.Global.LogLevel == "" {
		cfg.Global.LogLevel = DefaultLogLevel
	}
	if cfg.Translator.OutDir == "" {
		cfg.Translator.OutDir = translator.DefaultOutDir
	}
	if cfg.Translator.CompressExt == "" {
		cfg.Translator.CompressExt = translator.DefaultCompressExt
	}
	if cfg.Translator.DecompressExt == "" {
		cfg.Translator.DecompressExt = translator.DefaultDecompressExt
	}
}

// Validate checks field values after defaults have been applied.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Global.LogLevel); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Global.LogLevel)
	}
	if c.Translator.OutDir == "" {
		return ErrEmptyOutDir
	}
	for key, ext := range map[string]string{
		"compress_ext":   c.Translator.CompressExt,
		"decompress_ext": c.Translator.DecompressExt,
	} {
		if len(ext) < 2 || ext[0] != '.' {
			return fmt.Errorf("%w: %s = %q must start with a dot", ErrInvalidExtension, key, ext)
		}
	}
	return nil
}

// Parse decodes TOML content, applies defaults and validates the result.
// Unknown keys are rejected.
func Parse(content []byte) (*Config, error) {
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("failed to parse config: unknown keys:\n%s", strict.String())
		}
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads and parses the configuration file at path. The file must exist.
func Load(path string) (*Config, error) {
	content, err := safefileio.SafeReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional behaves like Load but returns the defaults when path does
// not exist.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}
