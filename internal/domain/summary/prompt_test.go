package summary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPromptSubstitutesYear(t *testing.T) {
	prompted := BuildPrompt("name John", 2026)

	require.Contains(t, prompted, "the current year is 2026")
	require.NotContains(t, prompted, yearPlaceholder)
}

func TestBuildPromptSeparatesWithBlankLine(t *testing.T) {
	prompted := BuildPrompt("  name John  ", 2026)

	parts := strings.Split(prompted, "\n\n")
	require.GreaterOrEqual(t, len(parts), 2)
	require.Equal(t, "name John", parts[len(parts)-1])
	require.False(t, strings.HasPrefix(prompted, "\n"))
	require.False(t, strings.HasSuffix(prompted, "\n"))
}

func TestPlainAnswerStripsMarkup(t *testing.T) {
	result := Result{Answer: "<p>Patient is <b>stable</b>.</p>"}

	require.Equal(t, "Patient is stable.", result.PlainAnswer())
}
