package ingestion

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-fit/internal/types"
)

// ID prefixes for generated item IDs.
const (
	experiencePrefix = "exp_"
	educationPrefix  = "edu_"
	skillPrefix      = "skill_"
	projectPrefix    = "proj_"
)

// Normalize returns a cleaned deep copy of doc: text is NFC-composed and
// whitespace-normalized, rich-text descriptions become bullet text, missing
// item IDs are generated, and empty presentation selectors get defaults.
// Section order is preserved.
func Normalize(doc *types.Document) (*types.Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}
	out := doc.Clone()

	p := &out.PersonalInfo
	p.FirstName = CleanLine(p.FirstName)
	p.LastName = CleanLine(p.LastName)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = CleanLine(p.Phone)
	p.Headline = CleanLine(p.Headline)
	summary, err := normalizeDescription(p.Summary)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	p.Summary = summary

	for i := range out.Experience {
		e := &out.Experience[i]
		e.ID = ensureID(e.ID, experiencePrefix)
		e.Title = CleanLine(e.Title)
		e.Company = CleanLine(e.Company)
		e.StartDate = CleanLine(e.StartDate)
		e.EndDate = CleanLine(e.EndDate)
		if e.Description, err = normalizeDescription(e.Description); err != nil {
			return nil, fmt.Errorf("experience %s: %w", e.ID, err)
		}
	}

	for i := range out.Education {
		e := &out.Education[i]
		e.ID = ensureID(e.ID, educationPrefix)
		e.Institution = CleanLine(e.Institution)
		e.Degree = CleanLine(e.Degree)
		e.Field = CleanLine(e.Field)
		e.StartDate = CleanLine(e.StartDate)
		e.EndDate = CleanLine(e.EndDate)
		if e.Description, err = normalizeDescription(e.Description); err != nil {
			return nil, fmt.Errorf("education %s: %w", e.ID, err)
		}
	}

	for i := range out.Skills {
		s := &out.Skills[i]
		s.ID = ensureID(s.ID, skillPrefix)
		s.Name = CleanLine(s.Name)
		s.Level = CleanLine(s.Level)
		s.Category = CleanLine(s.Category)
	}

	for i := range out.Projects {
		pr := &out.Projects[i]
		pr.ID = ensureID(pr.ID, projectPrefix)
		pr.Name = CleanLine(pr.Name)
		pr.URL = strings.TrimSpace(pr.URL)
		pr.Technologies = cleanList(pr.Technologies)
		if pr.Description, err = normalizeDescription(pr.Description); err != nil {
			return nil, fmt.Errorf("project %s: %w", pr.ID, err)
		}
	}

	out.Template = strings.ToLower(strings.TrimSpace(out.Template))
	if out.Template == "" {
		out.Template = types.TemplateClassic
	}
	out.SkillsDisplayMode = strings.ToLower(strings.TrimSpace(out.SkillsDisplayMode))
	if out.SkillsDisplayMode == "" {
		out.SkillsDisplayMode = types.SkillsDisplayTags
	}

	return out, nil
}

func normalizeDescription(s string) (string, error) {
	text, err := HTMLToText(s)
	if err != nil {
		return "", err
	}
	return CleanText(text), nil
}

func ensureID(id, prefix string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return prefix + uuid.NewString()
}

// cleanList trims entries and drops empty ones. A nil list stays nil.
func cleanList(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = CleanLine(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
