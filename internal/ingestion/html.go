package ingestion

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-fit/internal/types"
)

var (
	htmlTag   = regexp.MustCompile(`(?i)<\s*/?\s*(p|ul|ol|li|br|div|span|strong|em|b|i|u|a)\b[^>]*>`)
	lineBreak = regexp.MustCompile(`(?i)<\s*br\s*/?\s*>`)
)

// LooksLikeHTML reports whether s carries rich-text markup.
func LooksLikeHTML(s string) bool {
	return htmlTag.MatchString(s)
}

// HTMLToText flattens rich-text editor markup into plain text. Each list
// item becomes a bullet unit on its own line; other blocks become lines.
// Text without markup is returned unchanged.
func HTMLToText(s string) (string, error) {
	if !LooksLikeHTML(s) {
		return s, nil
	}

	s = lineBreak.ReplaceAllString(s, "\n")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var lines []string
	doc.Find("body").Contents().Each(func(_ int, sel *goquery.Selection) {
		lines = append(lines, blockLines(sel)...)
	})
	return strings.Join(lines, "\n"), nil
}

// blockLines renders one top-level node. Lists expand to one bullet line per
// item; everything else contributes its non-empty text lines.
func blockLines(sel *goquery.Selection) []string {
	if sel.Is("ul, ol") {
		var items []string
		sel.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
			if text := CleanLine(li.Text()); text != "" {
				items = append(items, types.BulletMarker+" "+text)
			}
		})
		return items
	}

	var out []string
	for _, line := range strings.Split(sel.Text(), "\n") {
		if line = CleanLine(line); line != "" {
			out = append(out, line)
		}
	}
	if sel.Is("li") {
		for i := range out {
			out[i] = types.BulletMarker + " " + out[i]
		}
	}
	return out
}
