// Package rendering renders resume documents to HTML for measurement.
package rendering

import (
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/jonathan/resume-fit/internal/geometry"
	"github.com/jonathan/resume-fit/internal/types"
)

//go:embed templates/resume.html.tmpl
var defaultTemplate string

// RootID is the element id whose height a browser measures.
const RootID = "resume"

// Layout is everything besides the document that changes its rendered height.
type Layout struct {
	Profile geometry.Profile
	Compact bool
}

// TemplateData is the data structure passed to the HTML template
type TemplateData struct {
	RootID            string
	Template          string
	PageWidth         float64
	Compact           bool
	Name              string
	Headline          string
	Contact           []string
	Summary           string
	Experience        []EntrySection
	Education         []EntrySection
	Projects          []EntrySection
	Skills            []string
	SkillsDisplayMode string
}

// EntrySection is one experience, education or project entry.
type EntrySection struct {
	Heading    string
	Subheading string
	Dates      string
	Paragraph  string
	Bullets    []string
}

// RenderHTML renders doc with the embedded default template.
func RenderHTML(doc *types.Document, layout Layout) (string, error) {
	tmpl, err := template.New("resume").Parse(defaultTemplate)
	if err != nil {
		return "", &TemplateError{Message: "failed to parse default template", Cause: err}
	}
	return execute(tmpl, doc, layout)
}

// RenderHTMLFile renders doc with the HTML template at templatePath.
func RenderHTMLFile(doc *types.Document, layout Layout, templatePath string) (string, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}
	return execute(tmpl, doc, layout)
}

func execute(tmpl *template.Template, doc *types.Document, layout Layout) (string, error) {
	data, err := buildTemplateData(doc, layout)
	if err != nil {
		return "", &RenderError{
			Message: "failed to build template data",
			Cause:   err,
		}
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return result.String(), nil
}

// parseTemplate reads and parses an HTML template file
func parseTemplate(templatePath string) (*template.Template, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", templatePath),
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", templatePath),
			Cause:   err,
		}
	}

	tmpl, err := template.New("resume").Parse(string(content))
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}

// buildTemplateData flattens the document into template-friendly sections
func buildTemplateData(doc *types.Document, layout Layout) (*TemplateData, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}
	if layout.Profile.PageWidthUnits <= 0 {
		return nil, fmt.Errorf("page width must be positive, got %v", layout.Profile.PageWidthUnits)
	}

	info := doc.PersonalInfo
	data := &TemplateData{
		RootID:            RootID,
		Template:          orDefault(doc.Template, types.TemplateClassic),
		PageWidth:         layout.Profile.PageWidthUnits,
		Compact:           layout.Compact,
		Name:              info.FullName(),
		Headline:          info.Headline,
		Contact:           nonEmpty(info.Email, info.Phone),
		Summary:           info.Summary,
		SkillsDisplayMode: orDefault(doc.SkillsDisplayMode, types.SkillsDisplayTags),
	}

	for _, exp := range doc.Experience {
		data.Experience = append(data.Experience, entry(exp.Title, exp.Company, formatDateRange(exp.StartDate, exp.EndDate), exp.Description))
	}
	for _, edu := range doc.Education {
		degree := strings.TrimSpace(strings.Join(nonEmpty(edu.Degree, edu.Field), ", "))
		data.Education = append(data.Education, entry(edu.Institution, degree, formatDateRange(edu.StartDate, edu.EndDate), edu.Description))
	}
	for _, proj := range doc.Projects {
		data.Projects = append(data.Projects, entry(proj.Name, strings.Join(proj.Technologies, " · "), "", proj.Description))
	}
	for _, skill := range doc.Skills {
		data.Skills = append(data.Skills, skill.Name)
	}

	return data, nil
}

// entry splits a bulleted description into list items; plain text stays a paragraph.
func entry(heading, sub, dates, desc string) EntrySection {
	e := EntrySection{Heading: heading, Subheading: sub, Dates: dates}
	if types.HasBullets(desc) {
		e.Bullets = types.SplitBullets(desc)
	} else {
		e.Paragraph = strings.TrimSpace(desc)
	}
	return e
}

// formatDateRange renders "start – end", treating an empty or "present" end as Present.
func formatDateRange(start, end string) string {
	if start == "" && end == "" {
		return ""
	}
	if end == "" || strings.EqualFold(end, "present") {
		end = "Present"
	}
	if start == "" {
		return end
	}
	return start + " – " + end
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
