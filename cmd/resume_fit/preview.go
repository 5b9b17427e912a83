package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonathan/resume-fit/internal/geometry"
	"github.com/jonathan/resume-fit/internal/logging"
	"github.com/jonathan/resume-fit/internal/measure"
	"github.com/jonathan/resume-fit/internal/observability"
	"github.com/jonathan/resume-fit/internal/pagination"
	"github.com/jonathan/resume-fit/internal/types"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Page through a resume in the terminal",
	Long:  "Measures a resume and opens an interactive page navigator. Use --json to print the render instruction instead of starting the viewer.",
	RunE:  runPreview,
}

var (
	previewInput  string
	previewZoom   string
	previewPage   int
	previewJSON   bool
	previewLayout layoutFlags
)

func init() {
	previewCmd.Flags().StringVarP(&previewInput, "in", "i", "", "Path to resume document JSON (- for stdin)")
	previewCmd.Flags().StringVar(&previewZoom, "zoom", "preview", "Zoom preset (editor, preview)")
	previewCmd.Flags().IntVar(&previewPage, "page", 1, "Page to open on")
	previewCmd.Flags().BoolVar(&previewJSON, "json", false, "Print state and render instruction as JSON")
	previewLayout.register(previewCmd)

	if err := previewCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark flag as required: %v", err))
	}

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	doc, err := loadDocument(previewInput, cmd.InOrStdin())
	if err != nil {
		return err
	}
	layout, err := previewLayout.layout()
	if err != nil {
		return err
	}
	bounds, err := geometry.ZoomPreset(previewZoom)
	if err != nil {
		return err
	}
	m, err := newMeasurer()
	if err != nil {
		return err
	}

	nav := pagination.NewNavigator(layout.Profile, bounds)
	nav.BeginMeasure()
	pc, err := measure.Pages(ctx, m, doc, layout)
	if err != nil {
		return fmt.Errorf("failed to measure document: %w", err)
	}
	nav.SetMeasuredHeight(pc.Height)
	nav.Goto(previewPage)
	logger.Debug("Opened preview", "pages", pc.TotalPages, "paper", layout.Profile.Name)

	if previewJSON {
		return writeJSON(cmd.OutOrStdout(), "", map[string]any{
			"state":       nav.State(),
			"instruction": nav.Render(),
		})
	}

	final, err := tea.NewProgram(newPreviewModel(doc, nav), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}
	if fm, ok := final.(previewModel); ok && settings.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintState(fm.nav.State())
	}
	return nil
}

var (
	previewTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	previewDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	previewPageStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	previewFocusStyle = previewPageStyle.BorderForeground(lipgloss.Color("36"))
)

// basePageWidth is the terminal width of a page at zoom 1.
const basePageWidth = 56

// previewModel is the bubbletea model for the page navigator.
type previewModel struct {
	nav   *pagination.Navigator
	title string
	lines []string
}

func newPreviewModel(doc *types.Document, nav *pagination.Navigator) previewModel {
	return previewModel{
		nav:   nav,
		title: doc.PersonalInfo.FullName(),
		lines: documentLines(doc),
	}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "right", "l", "n", " ":
		m.nav.Next()
	case "left", "h", "p":
		m.nav.Prev()
	case "+", "=":
		m.nav.ZoomIn()
	case "-", "_":
		m.nav.ZoomOut()
	case "v":
		m.nav.ToggleViewMode()
	case "g", "home":
		m.nav.Goto(1)
	case "G", "end":
		m.nav.Goto(m.nav.State().TotalPages)
	}
	return m, nil
}

func (m previewModel) View() string {
	state := m.nav.State()
	instruction := m.nav.Render()

	var b strings.Builder
	b.WriteString(previewTitleStyle.Render(m.title))
	b.WriteString("  ")
	b.WriteString(previewDimStyle.Render(fmt.Sprintf("page %d / %d  zoom %.0f%%  %s",
		state.CurrentPage, state.TotalPages, state.Zoom*100, state.ViewMode)))
	b.WriteString("\n\n")

	width := max(20, int(basePageWidth*state.Zoom))
	pages := make([]string, 0, len(instruction.Viewports))
	for _, vp := range instruction.Viewports {
		style := previewPageStyle
		if vp.PageIndex == state.CurrentPage-1 {
			style = previewFocusStyle
		}
		if instruction.Mode == pagination.SideBySide {
			style = style.Width(width / 2)
		} else {
			style = style.Width(width)
		}
		pages = append(pages, style.Render(strings.Join(m.pageLines(vp.PageIndex, state.TotalPages), "\n")))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, pages...))

	b.WriteString("\n\n")
	b.WriteString(previewDimStyle.Render("←/→ page  +/- zoom  v view  g/G first/last  q quit"))
	return b.String()
}

// pageLines returns the slice of text lines that falls on page index when
// the lines are spread evenly over total pages.
func (m previewModel) pageLines(index, total int) []string {
	if len(m.lines) == 0 || total <= 0 {
		return []string{""}
	}
	per := (len(m.lines) + total - 1) / total
	start := min(index*per, len(m.lines))
	end := min(start+per, len(m.lines))
	if start == end {
		return []string{""}
	}
	return m.lines[start:end]
}

// documentLines flattens a document into the plain text lines the preview shows.
func documentLines(doc *types.Document) []string {
	var lines []string
	add := func(s ...string) {
		for _, v := range s {
			for _, line := range strings.Split(v, "\n") {
				if line = strings.TrimSpace(line); line != "" {
					lines = append(lines, line)
				}
			}
		}
	}

	if doc.PersonalInfo.Headline != "" {
		add(doc.PersonalInfo.Headline)
	}
	add(doc.PersonalInfo.Summary)

	if len(doc.Experience) > 0 {
		add("EXPERIENCE")
		for _, e := range doc.Experience {
			add(strings.TrimSpace(e.Title+" · "+e.Company), e.Description)
		}
	}
	if len(doc.Education) > 0 {
		add("EDUCATION")
		for _, e := range doc.Education {
			add(strings.TrimSpace(e.Degree+" "+e.Field+" · "+e.Institution), e.Description)
		}
	}
	if len(doc.Skills) > 0 {
		add("SKILLS")
		names := make([]string, 0, len(doc.Skills))
		for _, s := range doc.Skills {
			names = append(names, s.Name)
		}
		add(strings.Join(names, ", "))
	}
	if len(doc.Projects) > 0 {
		add("PROJECTS")
		for _, p := range doc.Projects {
			add(p.Name, p.Description)
		}
	}
	return lines
}
