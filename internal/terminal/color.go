package terminal

import "strings"

// colorTerminals lists TERM values (or prefixes) that are known to support
// basic terminal colors.
var colorTerminals = []string{
	"xterm",
	"screen",
	"tmux",
	"rxvt",
	"vt100",
	"vt220",
	"ansi",
	"linux",
	"cygwin",
	"putty",
}

// termSupportsColor checks a TERM value. Unknown terminals get no color.
func termSupportsColor(termValue string) bool {
	termValue = strings.ToLower(strings.TrimSpace(termValue))
	if termValue == "" || termValue == "dumb" {
		return false
	}

	for _, colorTerm := range colorTerminals {
		if termValue == colorTerm || strings.HasPrefix(termValue, colorTerm+"-") {
			return true
		}
	}
	return false
}
