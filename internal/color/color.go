// Package color provides small helpers for coloring terminal output using
// ANSI escape sequences. Functions here return formatted strings; callers
// decide whether color is wanted at all.
//
//nolint:revive // package name conflicts with standard library
package color

import "strings"

// ANSI color codes
const (
	resetCode     = "\033[0m"
	grayCode      = "\033[90m" // Bright black/gray
	greenCode     = "\033[32m"
	yellowCode    = "\033[33m"
	redCode       = "\033[31m"
	blueCode      = "\033[34m"
	cyanCode      = "\033[36m"
	orangeCode    = "\033[38;2;255;127;0m"
	grayDarkCode  = "\033[38;2;127;127;127m"
	greenDarkCode = "\033[38;2;50;153;0m"
	redAlertCode  = "\033[38;2;254;76;76;48;2;153;0;0m" // light red on dark red
)

// Color represents a color function that wraps text with ANSI escape
// sequences.
type Color func(text string) string

// NewColor creates a color function with the specified ANSI code.
// Multi-line text is colored line by line so that every line resets on its own.
func NewColor(ansiCode string) Color {
	return func(text string) string {
		if !strings.Contains(text, "\n") {
			return ansiCode + text + resetCode
		}
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			lines[i] = ansiCode + line + resetCode
		}
		return strings.Join(lines, "\n")
	}
}

// Strip removes the escape sequences produced by this package.
func Strip(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if text[i] == '\033' && i+1 < len(text) && text[i+1] == '[' {
			j := i + 2
			for j < len(text) && text[j] != 'm' {
				j++
			}
			i = j
			continue
		}
		sb.WriteByte(text[i])
	}
	return sb.String()
}

// Predefined color functions
var (
	Gray      = NewColor(grayCode)
	GrayDark  = NewColor(grayDarkCode)
	Green     = NewColor(greenCode)
	GreenDark = NewColor(greenDarkCode)
	Yellow    = NewColor(yellowCode)
	Red       = NewColor(redCode)
	RedAlert  = NewColor(redAlertCode)
	Blue      = NewColor(blueCode)
	Cyan      = NewColor(cyanCode)

	// Orange marks variable parts of a message such as file paths.
	Orange = NewColor(orangeCode)
)
