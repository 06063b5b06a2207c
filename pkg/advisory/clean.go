package advisory

import (
	"regexp"
	"strings"
)

var (
	boldRX  = regexp.MustCompile(`\*\*(.*?)\*\*`)
	fenceRX = regexp.MustCompile("(?m)^[ \t]*```[^\n]*(\n|$)")
)

// Clean strips markdown bold markers and code fence lines from model output.
// The content inside a fenced block is kept.
func Clean(s string) string {
	s = fenceRX.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")
	s = boldRX.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, "**", "")
	return strings.TrimSpace(s)
}
