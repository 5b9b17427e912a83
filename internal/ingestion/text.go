// Package ingestion turns raw editor data into normalized resume documents.
package ingestion

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-fit/internal/types"
	"golang.org/x/text/unicode/norm"
)

var (
	spaceRun   = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	blankLines = regexp.MustCompile(`\n{3,}`)
	// listMarker matches the plain-text list markers editors commonly emit.
	listMarker = regexp.MustCompile(`^(?:[-*·]|\d+[.)])\s+`)
)

// CleanText normalizes multi-line text: NFC composition, LF line endings,
// collapsed runs of spaces, at most one blank line in a row, and no
// surrounding whitespace. Markdown and plain-text list items become bullet
// units.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = norm.NFC.String(content)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = blankLines.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// CleanLine normalizes single-line text such as names and titles.
func CleanLine(s string) string {
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

func cleanLine(line string) string {
	line = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	if line == "" {
		return ""
	}
	if isBulletLine(line) {
		return types.BulletMarker + " " + strings.TrimSpace(listMarker.ReplaceAllString(strings.TrimPrefix(line, types.BulletMarker), ""))
	}
	return line
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	return strings.HasPrefix(line, types.BulletMarker) || listMarker.MatchString(line)
}
