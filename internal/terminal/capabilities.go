// Package terminal decides whether console output goes to a person at an
// interactive terminal and whether that terminal should get colors.
//
// Color follows the usual conventions, highest priority first: command line
// flags, CLICOLOR_FORCE, NO_COLOR, CLICOLOR (interactive only), then the
// TERM value.
package terminal

import (
	"os"
	"strings"
)

// Options carries command line overrides for terminal detection.
type Options struct {
	ForceColor          bool // --color
	DisableColor        bool // --no-color
	ForceInteractive    bool
	ForceNonInteractive bool // --quiet

	// Stream is the file whose terminal status decides interactivity.
	// Defaults to os.Stderr, where interactive log lines go.
	Stream *os.File
}

// Capabilities describes the console the process writes to.
type Capabilities interface {
	IsInteractive() bool
	SupportsColor() bool
}

// DefaultCapabilities resolves Capabilities from the environment and Options.
// Results are computed on each call so tests can change the environment.
type DefaultCapabilities struct {
	options  Options
	isTTY    func(fd int) bool
	lookupFn func(key string) (string, bool)
}

// NewCapabilities creates Capabilities for the given overrides.
func NewCapabilities(options Options) *DefaultCapabilities {
	if options.Stream == nil {
		options.Stream = os.Stderr
	}
	return &DefaultCapabilities{
		options:  options,
		isTTY:    isTerminal,
		lookupFn: os.LookupEnv,
	}
}

func (c *DefaultCapabilities) getenv(key string) string {
	v, _ := c.lookupFn(key)
	return v
}

// IsInteractive reports whether log lines are read by a person.
func (c *DefaultCapabilities) IsInteractive() bool {
	switch {
	case c.options.ForceInteractive:
		return true
	case c.options.ForceNonInteractive:
		return false
	case isCIEnvironment(c.lookupFn):
		return false
	default:
		return c.isTTY(int(c.options.Stream.Fd()))
	}
}

// SupportsColor reports whether ANSI colors should be written.
func (c *DefaultCapabilities) SupportsColor() bool {
	if enabled, explicit := c.preference(); explicit {
		return enabled
	}

	if !c.IsInteractive() || !termSupportsColor(c.getenv("TERM")) {
		return false
	}

	// CLICOLOR only matters for a terminal; pipes ignore it.
	if v := c.getenv("CLICOLOR"); v != "" {
		return isTruthy(v)
	}
	return true
}

// preference returns the user's color choice and whether one was made.
func (c *DefaultCapabilities) preference() (enabled, explicit bool) {
	if c.options.ForceColor {
		return true, true
	}
	if c.options.DisableColor {
		return false, true
	}
	if isTruthy(c.getenv("CLICOLOR_FORCE")) {
		return true, true
	}
	// NO_COLOR counts when present, even if empty.
	if _, ok := c.lookupFn("NO_COLOR"); ok {
		return false, true
	}
	return false, false
}

// isTruthy accepts "1", "true" and "yes", case insensitive.
func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
