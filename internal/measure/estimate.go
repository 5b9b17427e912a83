package measure

import (
	"context"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-fit/internal/rendering"
	"github.com/jonathan/resume-fit/internal/types"
)

const (
	// minCharsPerLine keeps very narrow pages from producing absurd line counts.
	minCharsPerLine = 20
	// bulletIndentChars is the width lost to the bullet marker and indent.
	bulletIndentChars = 3
	// tagPaddingChars approximates the border and spacing around a skill tag.
	tagPaddingChars = 3
)

// Metrics are the layout constants of one template, in layout units.
type Metrics struct {
	LineHeight    float64
	CharWidth     float64
	HeadingHeight float64
	NameHeight    float64
	SectionGap    float64
	EntryGap      float64
	MarginX       float64
	MarginY       float64
}

// DefaultMetrics holds the built-in template metrics. They track the
// embedded HTML template closely enough for fit decisions, not for typesetting.
var DefaultMetrics = map[string]Metrics{
	types.TemplateClassic: {LineHeight: 14.7, CharWidth: 5.6, HeadingHeight: 20, NameHeight: 30, SectionGap: 16, EntryGap: 6, MarginX: 44, MarginY: 40},
	types.TemplateModern:  {LineHeight: 15.4, CharWidth: 5.8, HeadingHeight: 24, NameHeight: 34, SectionGap: 20, EntryGap: 8, MarginX: 48, MarginY: 44},
	types.TemplateCompact: {LineHeight: 13.0, CharWidth: 5.2, HeadingHeight: 17, NameHeight: 26, SectionGap: 10, EntryGap: 4, MarginX: 32, MarginY: 28},
}

// Estimator derives a height from text volume without rendering. It is
// deterministic and cheap, so it doubles as the default provider for the CLI
// and for tests.
type Estimator struct {
	// Metrics overrides DefaultMetrics when non-nil.
	Metrics map[string]Metrics
}

// Measure estimates the rendered height of doc.
func (e Estimator) Measure(ctx context.Context, doc *types.Document, layout rendering.Layout) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if doc == nil {
		return 0, &Error{Provider: "estimate", Message: "document is nil"}
	}
	if layout.Profile.PageWidthUnits <= 0 || layout.Profile.PageHeightUnits <= 0 {
		return 0, &Error{Provider: "estimate", Message: "page geometry must be positive"}
	}

	m := e.metricsFor(doc.Template)
	if layout.Compact {
		m = compactMetrics(m)
	}

	charsPerLine := max(minCharsPerLine, int(math.Floor((layout.Profile.PageWidthUnits-2*m.MarginX)/m.CharWidth)))
	l := lineCounter{perLine: charsPerLine}
	content := estimateContent(doc, m, l)

	usable := layout.Profile.PageHeightUnits - 2*m.MarginY
	if usable <= 0 {
		return content, nil
	}
	return content / usable * layout.Profile.PageHeightUnits, nil
}

func (e Estimator) metricsFor(template string) Metrics {
	table := e.Metrics
	if table == nil {
		table = DefaultMetrics
	}
	if m, ok := table[template]; ok {
		return m
	}
	if m, ok := table[types.TemplateClassic]; ok {
		return m
	}
	return DefaultMetrics[types.TemplateClassic]
}

func compactMetrics(m Metrics) Metrics {
	m.LineHeight *= 0.85
	m.HeadingHeight *= 0.85
	m.SectionGap *= 0.5
	m.EntryGap *= 0.5
	m.MarginX *= 0.65
	m.MarginY *= 0.6
	return m
}

func estimateContent(doc *types.Document, m Metrics, l lineCounter) float64 {
	info := doc.PersonalInfo
	h := m.NameHeight
	h += float64(l.text(info.Headline)) * m.LineHeight
	if info.Email != "" || info.Phone != "" {
		h += m.LineHeight
	}

	section := func(body float64) {
		h += m.SectionGap + m.HeadingHeight + body
	}

	if info.Summary != "" {
		section(float64(l.text(info.Summary)) * m.LineHeight)
	}

	if len(doc.Experience) > 0 {
		var body float64
		for _, exp := range doc.Experience {
			lines := 1 + l.description(exp.Description)
			if exp.StartDate != "" || exp.EndDate != "" {
				lines++
			}
			body += float64(lines)*m.LineHeight + m.EntryGap
		}
		section(body)
	}

	if len(doc.Education) > 0 {
		var body float64
		for _, edu := range doc.Education {
			lines := 1 + l.description(edu.Description)
			if edu.StartDate != "" || edu.EndDate != "" {
				lines++
			}
			body += float64(lines)*m.LineHeight + m.EntryGap
		}
		section(body)
	}

	if len(doc.Skills) > 0 {
		section(float64(l.skills(doc.Skills, doc.SkillsDisplayMode)) * m.LineHeight)
	}

	if len(doc.Projects) > 0 {
		var body float64
		for _, proj := range doc.Projects {
			lines := 1 + l.description(proj.Description)
			body += float64(lines)*m.LineHeight + m.EntryGap
		}
		section(body)
	}

	return h
}

// lineCounter wraps text at a fixed number of characters per line.
type lineCounter struct {
	perLine int
}

// text counts wrapped lines; each non-empty paragraph takes at least one.
func (l lineCounter) text(s string) int {
	return l.wrap(s, l.perLine)
}

// description counts lines for a paragraph or a bullet list.
func (l lineCounter) description(desc string) int {
	if !types.HasBullets(desc) {
		return l.text(desc)
	}
	n := 0
	width := max(1, l.perLine-bulletIndentChars)
	for _, unit := range types.SplitBullets(desc) {
		n += l.wrap(unit, width)
	}
	return n
}

func (l lineCounter) skills(skills []types.SkillItem, mode string) int {
	switch mode {
	case types.SkillsDisplayList:
		return (len(skills) + 1) / 2
	case types.SkillsDisplayInline:
		names := make([]string, len(skills))
		for i, s := range skills {
			names[i] = s.Name
		}
		return l.text(strings.Join(names, ", "))
	default:
		lines, used := 1, 0
		for _, s := range skills {
			w := utf8.RuneCountInString(s.Name) + tagPaddingChars
			if used > 0 && used+w > l.perLine {
				lines++
				used = 0
			}
			used += w
		}
		return lines
	}
}

func (l lineCounter) wrap(s string, width int) int {
	if strings.TrimSpace(s) == "" {
		return 0
	}
	n := 0
	for _, para := range strings.Split(s, "\n") {
		chars := utf8.RuneCountInString(strings.TrimSpace(para))
		if chars == 0 {
			continue
		}
		n += (chars + width - 1) / width
	}
	return n
}
