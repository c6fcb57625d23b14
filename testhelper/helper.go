package testhelper

import (
	"regexp"
	"strings"
	"testing"
)

var (
	whiteSpaces = regexp.MustCompile(`^(\s+)`)
	leadingTabs = regexp.MustCompile(`^(\t+)`)
)

// replaceTab expands each leading tab to two spaces, the printer's default indent.
func replaceTab(match string) string {
	return strings.Repeat("  ", strings.Count(match, "\t"))
}

// TrimIndent strips the indentation of the second line from a raw string literal and
// drops the leading and trailing blank lines, so expected code can be indented with the
// test source.
func TrimIndent(t *testing.T, src string) string {
	t.Helper()

	lines := strings.Split(src, "\n")

	var indent string
	if len(lines) > 1 {
		indent = whiteSpaces.FindString(lines[1])
	}

	for i, line := range lines {
		line = strings.TrimPrefix(line, indent)
		lines[i] = leadingTabs.ReplaceAllStringFunc(line, replaceTab)
	}

	return strings.TrimRight(strings.Join(lines[1:], "\n"), "\n\t ")
}
