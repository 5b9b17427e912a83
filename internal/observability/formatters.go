// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jonathan/resume-fit/internal/fitting"
	"github.com/jonathan/resume-fit/internal/measure"
	"github.com/jonathan/resume-fit/internal/pagination"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// headerRow is the row index lipgloss tables pass for the header
	headerRow = -1
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorAmber = lipgloss.Color("220")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer

	box    lipgloss.Style
	title  lipgloss.Style
	key    lipgloss.Style
	good   lipgloss.Style
	warn   lipgloss.Style
	dim    lipgloss.Style
	header lipgloss.Style
	border lipgloss.Style
	cell   lipgloss.Style
}

// NewPrinter creates a new Printer that writes to the given writer. Colors
// follow the capabilities of out, so buffers and pipes get plain text.
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:    out,
		box:    r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1).Width(boxWidth),
		title:  r.NewStyle().Bold(true).Foreground(colorCyan),
		key:    r.NewStyle().Foreground(colorGray).Width(16),
		good:   r.NewStyle().Foreground(colorGreen),
		warn:   r.NewStyle().Foreground(colorAmber),
		dim:    r.NewStyle().Foreground(colorDim),
		header: r.NewStyle().Foreground(colorGray).Bold(true),
		border: r.NewStyle().Foreground(colorDim),
		cell:   r.NewStyle(),
	}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	body := p.title.Render(title) + "\n" + strings.TrimRight(content, "\n")
	fmt.Fprintln(p.out, p.box.Render(body))
}

func (p *Printer) kv(sb *strings.Builder, key string, value any) {
	sb.WriteString(p.key.Render(key))
	sb.WriteString(fmt.Sprint(value))
	sb.WriteString("\n")
}

// PrintPageCount outputs the measurement of one document.
func (p *Printer) PrintPageCount(pc measure.PageCount) {
	var sb strings.Builder
	p.kv(&sb, "Paper", pc.Profile.Name)
	p.kv(&sb, "Page height", fmt.Sprintf("%.0f units", pc.Profile.PageHeightUnits))
	p.kv(&sb, "Content height", fmt.Sprintf("%.1f units", pc.Height))
	p.kv(&sb, "Pages", pc.TotalPages)
	p.printBox("PAGE COUNT", sb.String())
}

// PrintProfiles outputs one row per paper profile.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProfiles(counts []measure.PageCount) {
	if len(counts) == 0 {
		return
	}
	rows := make([][]string, 0, len(counts))
	for _, pc := range counts {
		rows = append(rows, []string{
			pc.Profile.Name,
			fmt.Sprintf("%.0f×%.0f", pc.Profile.PageWidthUnits, pc.Profile.PageHeightUnits),
			fmt.Sprintf("%.1f", pc.Height),
			fmt.Sprintf("%d", pc.TotalPages),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(p.border).
		Headers("Paper", "Size", "Height", "Pages").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == headerRow {
				return p.header.Padding(0, 1)
			}
			return p.cell.Padding(0, 1)
		})

	fmt.Fprintln(p.out, p.title.Render("PAGE COUNT BY PAPER"))
	fmt.Fprintln(p.out, t.Render())
}

// PrintReport outputs what a reduction pass did to each section.
func (p *Printer) PrintReport(report fitting.Report) {
	var sb strings.Builder
	p.kv(&sb, "Total pages", report.TotalPages)
	p.kv(&sb, "Severity", fmt.Sprintf("%.2f", report.Severity))
	if report.SecondPass {
		p.kv(&sb, "Second pass", p.warn.Render("applied"))
	}
	sb.WriteString("\n")

	for _, s := range report.Sections {
		line := fmt.Sprintf("%-11s items %d → %d", s.Section, s.ItemsBefore, s.ItemsAfter)
		if s.CharsBefore > 0 || s.CharsAfter > 0 {
			line += fmt.Sprintf(", chars %d → %d", s.CharsBefore, s.CharsAfter)
		}
		if s.Changed() {
			sb.WriteString("  • " + line + "\n")
		} else {
			sb.WriteString(p.dim.Render("    "+line+" (unchanged)") + "\n")
		}
	}
	p.printBox("REDUCTION REPORT", sb.String())
}

// PrintFitResult outputs the outcome of a fit loop.
func (p *Printer) PrintFitResult(result *fitting.FitResult) {
	if result == nil {
		return
	}

	outcome := string(result.Outcome)
	switch result.Outcome {
	case fitting.OutcomeFitted:
		outcome = p.good.Render(outcome)
	case fitting.OutcomeUnchanged:
		outcome = p.warn.Render(outcome)
	}

	var sb strings.Builder
	p.kv(&sb, "Outcome", outcome)
	p.kv(&sb, "Pages", fmt.Sprintf("%d → %d", result.InitialPages, result.FinalPages))
	p.kv(&sb, "Final height", fmt.Sprintf("%.1f units", result.FinalHeight))
	p.kv(&sb, "Iterations", result.Iterations)
	for i, r := range result.Reports {
		changed := 0
		for _, s := range r.Sections {
			if s.Changed() {
				changed++
			}
		}
		sb.WriteString(fmt.Sprintf("  %d. severity %.2f, %d sections changed\n", i+1, r.Severity, changed))
	}
	p.printBox("FIT RESULT", sb.String())
}

// PrintState outputs the navigator state.
func (p *Printer) PrintState(state pagination.State) {
	var sb strings.Builder
	p.kv(&sb, "Page", fmt.Sprintf("%d / %d", state.CurrentPage, state.TotalPages))
	p.kv(&sb, "Zoom", fmt.Sprintf("%.0f%%", state.Zoom*100))
	p.kv(&sb, "View", state.ViewMode)
	p.kv(&sb, "Phase", state.Phase)
	p.printBox("NAVIGATOR", sb.String())
}
