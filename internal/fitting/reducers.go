package fitting

import (
	"strings"

	"github.com/jonathan/resume-fit/internal/types"
)

// ReduceSummary caps the summary at floor(300/sev) characters. The other
// personal fields are never shortened.
func ReduceSummary(info types.PersonalInfo, sev float64) types.PersonalInfo {
	info.Summary = Truncate(info.Summary, LimitsFor(sev).SummaryChars)
	return info
}

// ReduceExperience keeps the first max(2, floor(5/sev)) positions and caps
// each description at floor(250/sev) characters, bullet by bullet when the
// description is a bullet list.
func ReduceExperience(items []types.ExperienceItem, sev float64) []types.ExperienceItem {
	limits := LimitsFor(sev)
	out := head(items, limits.ExperienceItems)
	for i := range out {
		out[i].Description = ReduceDescription(out[i].Description, limits.ExperienceChars, limits.ExperienceBullets)
	}
	return out
}

// ReduceDescription shortens a description to limit characters. A description
// containing BulletMarker is split into bullet units: empty units are
// dropped, at most maxBullets are kept, each is cut to limit/kept characters,
// and the units are rejoined one per line behind the marker.
func ReduceDescription(desc string, limit, maxBullets int) string {
	if strings.TrimSpace(desc) == "" {
		return desc
	}
	if !types.HasBullets(desc) {
		return Truncate(desc, limit)
	}

	units := types.SplitBullets(desc)
	if len(units) == 0 {
		return desc
	}
	units = units[:min(len(units), max(1, maxBullets))]

	perUnit := max(MinTextLimit, limit/len(units))
	lines := make([]string, len(units))
	for i, unit := range units {
		lines[i] = types.BulletMarker + " " + Truncate(unit, perUnit)
	}
	return strings.Join(lines, "\n")
}

// ReduceEducation keeps the first max(1, floor(3/sev)) entries and caps each
// description at floor(100/sev) characters.
func ReduceEducation(items []types.EducationItem, sev float64) []types.EducationItem {
	limits := LimitsFor(sev)
	out := head(items, limits.EducationItems)
	for i := range out {
		out[i].Description = Truncate(out[i].Description, limits.EducationChars)
	}
	return out
}

// ReduceSkills keeps the first max(6, floor(15/sev)) skills. Skill text is
// never changed.
func ReduceSkills(items []types.SkillItem, sev float64) []types.SkillItem {
	return head(items, LimitsFor(sev).SkillItems)
}

// ReduceProjects keeps the first max(1, floor(3/sev)) projects and caps each
// description at floor(120/sev) characters.
func ReduceProjects(items []types.ProjectItem, sev float64) []types.ProjectItem {
	limits := LimitsFor(sev)
	out := head(items, limits.ProjectItems)
	for i := range out {
		out[i].Technologies = head(out[i].Technologies, len(out[i].Technologies))
		out[i].Description = Truncate(out[i].Description, limits.ProjectChars)
	}
	return out
}

// head copies the first n elements of items into a new slice. A nil input
// stays nil so absent sections remain absent.
func head[T any](items []T, n int) []T {
	if items == nil {
		return nil
	}
	n = max(0, min(n, len(items)))
	out := make([]T, n)
	copy(out, items[:n])
	return out
}
