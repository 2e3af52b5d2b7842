package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleAndSubtitle(t *testing.T) {
	var buf bytes.Buffer
	h, err := NewInteractiveHandler(InteractiveHandlerOptions{
		Level:        slog.LevelDebug,
		Writer:       &buf,
		Capabilities: &fakeCapabilities{interactive: true},
		Formatter:    NewDefaultMessageFormatter(),
	})
	require.NoError(t, err)
	logger := slog.New(h)

	Title(logger, "Translator utility")
	Subtitle(logger, slog.LevelDebug, "Summary")

	want := RuleMajor + "\nTranslator utility\n" + RuleMajor + "\n" +
		RuleMinor + "\nSummary\n" + RuleMinor + "\n"
	assert.Equal(t, want, buf.String())
	assert.Len(t, RuleMajor, 60)
}
