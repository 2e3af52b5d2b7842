package translator

import (
	"errors"

	"github.com/swd2tools/swd2/internal/color"
	"github.com/swd2tools/swd2/internal/logging"
	"github.com/swd2tools/swd2/internal/precheck"
)

// Status is the outcome of one file operation, carrying the log level and
// color it is reported with.
type Status int

// Statuses. Skip means a precondition failed and nothing was read or written.
const (
	Success Status = iota
	Error
	Skip
)

func (s Status) String() string {
	switch s {
	case Success:
		return "SUCCESS"
	case Skip:
		return "SKIP"
	default:
		return "ERROR"
	}
}

// Level returns the log level a result with this status is reported at.
func (s Status) Level() logging.Level {
	switch s {
	case Success:
		return logging.Info
	case Skip:
		return logging.Warning
	default:
		return logging.Error
	}
}

// Color returns the color of the status badge.
func (s Status) Color() color.Color {
	switch s {
	case Success:
		return color.Green
	case Skip:
		return color.Yellow
	default:
		return color.Red
	}
}

// Badge renders the status as "[NAME]", colored when useColor is set.
func (s Status) Badge(useColor bool) string {
	badge := "[" + s.String() + "]"
	if useColor {
		return s.Color()(badge)
	}
	return badge
}

// StatusOf classifies an operation error.
func StatusOf(err error) Status {
	var v *precheck.Violation
	switch {
	case err == nil:
		return Success
	case errors.As(err, &v):
		return Skip
	default:
		return Error
	}
}
