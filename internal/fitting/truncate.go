// Package fitting shrinks a resume document so it is more likely to fit its
// page budget. Every operation returns new data; inputs are never modified.
package fitting

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Ellipsis marks text cut by Truncate.
const Ellipsis = "…"

// MinTextLimit is the smallest text limit any reducer will apply.
const MinTextLimit = 1

// Truncate shortens s to at most limit runes. Text within the limit is
// returned unchanged. Otherwise the cut backs off to the last whitespace at
// or before the cut point and Ellipsis is appended; the ellipsis counts
// toward the limit. A word longer than the budget is hard-cut.
func Truncate(s string, limit int) string {
	limit = max(limit, MinTextLimit)
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	runes := []rune(s)
	ellipsisLen := utf8.RuneCountInString(Ellipsis)
	if limit <= ellipsisLen {
		return string(runes[:limit])
	}

	// runes[cut] exists because len(runes) > limit > cut.
	cut := limit - ellipsisLen
	end := cut
	for i := cut; i > 0; i-- {
		if unicode.IsSpace(runes[i]) {
			end = i
			break
		}
	}

	prefix := strings.TrimRightFunc(string(runes[:end]), unicode.IsSpace)
	if prefix == "" {
		prefix = strings.TrimRightFunc(string(runes[:cut]), unicode.IsSpace)
	}
	if prefix == "" {
		return string(runes[:limit])
	}
	return prefix + Ellipsis
}

// runeLen counts the characters of s the way limits do.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
