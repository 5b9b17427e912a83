package fitting

import (
	"github.com/jonathan/resume-fit/internal/types"
)

// Section names used in reports.
const (
	SectionSummary    = "summary"
	SectionExperience = "experience"
	SectionEducation  = "education"
	SectionSkills     = "skills"
	SectionProjects   = "projects"
)

// SectionChange summarizes what one reduction did to a section.
type SectionChange struct {
	Section     string `json:"section"`
	ItemsBefore int    `json:"itemsBefore"`
	ItemsAfter  int    `json:"itemsAfter"`
	CharsBefore int    `json:"charsBefore"`
	CharsAfter  int    `json:"charsAfter"`
}

// Changed reports whether the section lost items or characters.
func (c SectionChange) Changed() bool {
	return c.ItemsBefore != c.ItemsAfter || c.CharsBefore != c.CharsAfter
}

// Report describes one reduction pass so a caller can review it before
// accepting the reduced document.
type Report struct {
	TotalPages int             `json:"totalPages"`
	Severity   float64         `json:"severity"`
	Limits     Limits          `json:"limits"`
	SecondPass bool            `json:"secondPass"`
	Sections   []SectionChange `json:"sections"`
}

// Changed reports whether any section changed.
func (r Report) Changed() bool {
	for _, s := range r.Sections {
		if s.Changed() {
			return true
		}
	}
	return false
}

// Reduce returns a reduced deep copy of doc for a document currently
// spanning totalPages pages. doc itself is left untouched.
func Reduce(doc *types.Document, totalPages int) *types.Document {
	reduced, _ := ReduceWithReport(doc, totalPages)
	return reduced
}

// ReduceWithReport is Reduce plus a per-section account of what changed.
func ReduceWithReport(doc *types.Document, totalPages int) (*types.Document, Report) {
	if doc == nil {
		doc = &types.Document{}
	}
	sev := Severity(totalPages)
	out := doc.Clone()

	out.PersonalInfo = ReduceSummary(out.PersonalInfo, sev)
	out.Experience = ReduceExperience(out.Experience, sev)
	out.Education = ReduceEducation(out.Education, sev)
	out.Skills = ReduceSkills(out.Skills, sev)
	out.Projects = ReduceProjects(out.Projects, sev)

	secondPass := totalPages > secondPassPages
	if secondPass {
		applySecondPass(out)
	}

	return out, Report{
		TotalPages: totalPages,
		Severity:   sev,
		Limits:     LimitsFor(sev),
		SecondPass: secondPass,
		Sections:   compare(doc, out),
	}
}

// applySecondPass hard-caps the summary and every experience description
// regardless of what the proportional pass left.
func applySecondPass(doc *types.Document) {
	doc.PersonalInfo.Summary = Truncate(doc.PersonalInfo.Summary, secondPassSummaryChars)
	for i := range doc.Experience {
		doc.Experience[i].Description = Truncate(doc.Experience[i].Description, secondPassExperienceChars)
	}
}

func compare(before, after *types.Document) []SectionChange {
	return []SectionChange{
		{
			Section:     SectionSummary,
			ItemsBefore: boolCount(before.PersonalInfo.Summary != ""),
			ItemsAfter:  boolCount(after.PersonalInfo.Summary != ""),
			CharsBefore: runeLen(before.PersonalInfo.Summary),
			CharsAfter:  runeLen(after.PersonalInfo.Summary),
		},
		{
			Section:     SectionExperience,
			ItemsBefore: len(before.Experience),
			ItemsAfter:  len(after.Experience),
			CharsBefore: sumExperienceChars(before.Experience),
			CharsAfter:  sumExperienceChars(after.Experience),
		},
		{
			Section:     SectionEducation,
			ItemsBefore: len(before.Education),
			ItemsAfter:  len(after.Education),
			CharsBefore: sumEducationChars(before.Education),
			CharsAfter:  sumEducationChars(after.Education),
		},
		{
			Section:     SectionSkills,
			ItemsBefore: len(before.Skills),
			ItemsAfter:  len(after.Skills),
		},
		{
			Section:     SectionProjects,
			ItemsBefore: len(before.Projects),
			ItemsAfter:  len(after.Projects),
			CharsBefore: sumProjectChars(before.Projects),
			CharsAfter:  sumProjectChars(after.Projects),
		},
	}
}

func sumExperienceChars(items []types.ExperienceItem) int {
	n := 0
	for _, it := range items {
		n += runeLen(it.Description)
	}
	return n
}

func sumEducationChars(items []types.EducationItem) int {
	n := 0
	for _, it := range items {
		n += runeLen(it.Description)
	}
	return n
}

func sumProjectChars(items []types.ProjectItem) int {
	n := 0
	for _, it := range items {
		n += runeLen(it.Description)
	}
	return n
}

func boolCount(b bool) int {
	if b {
		return 1
	}
	return 0
}
