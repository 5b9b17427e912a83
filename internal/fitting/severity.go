package fitting

import "math"

const (
	// MinSeverity applies to documents that already fit on one page.
	MinSeverity = 1.0
	// MaxSeverity caps proportional trimming; beyond it the second pass
	// applies fixed caps instead.
	MaxSeverity = 3.0
)

// Severity maps a page count to the reduction intensity in
// [MinSeverity, MaxSeverity]. It is non-decreasing in totalPages.
func Severity(totalPages int) float64 {
	return clampSeverity(float64(totalPages))
}

func clampSeverity(sev float64) float64 {
	if math.IsNaN(sev) {
		return MinSeverity
	}
	return math.Max(MinSeverity, math.Min(MaxSeverity, sev))
}

// Limits are the count and length caps the section reducers apply at one
// severity.
type Limits struct {
	SummaryChars      int `json:"summaryChars"`
	ExperienceItems   int `json:"experienceItems"`
	ExperienceBullets int `json:"experienceBullets"`
	ExperienceChars   int `json:"experienceChars"`
	EducationItems    int `json:"educationItems"`
	EducationChars    int `json:"educationChars"`
	SkillItems        int `json:"skillItems"`
	ProjectItems      int `json:"projectItems"`
	ProjectChars      int `json:"projectChars"`
}

// Base budgets at severity 1.
const (
	summaryChars    = 300
	experienceItems = 5
	experienceChars = 250
	educationItems  = 3
	educationChars  = 100
	skillItems      = 15
	projectItems    = 3
	projectChars    = 120

	minExperienceItems = 2
	minEducationItems  = 1
	minSkillItems      = 6
	minProjectItems    = 1
)

// Fixed caps of the second pass, applied when content spans more than
// secondPassPages pages.
const (
	secondPassPages           = 2
	secondPassSummaryChars    = 150
	secondPassExperienceChars = 120
)

// LimitsFor computes the limit table for a severity. Severity outside
// [MinSeverity, MaxSeverity] is clamped first.
func LimitsFor(sev float64) Limits {
	sev = clampSeverity(sev)
	return Limits{
		SummaryChars:      scaled(summaryChars, sev, MinTextLimit),
		ExperienceItems:   scaled(experienceItems, sev, minExperienceItems),
		ExperienceBullets: scaled(experienceItems, sev, minExperienceItems),
		ExperienceChars:   scaled(experienceChars, sev, MinTextLimit),
		EducationItems:    scaled(educationItems, sev, minEducationItems),
		EducationChars:    scaled(educationChars, sev, MinTextLimit),
		SkillItems:        scaled(skillItems, sev, minSkillItems),
		ProjectItems:      scaled(projectItems, sev, minProjectItems),
		ProjectChars:      scaled(projectChars, sev, MinTextLimit),
	}
}

// scaled returns max(floor, floor(base/sev)).
func scaled(base int, sev float64, floor int) int {
	return max(floor, int(math.Floor(float64(base)/sev)))
}
