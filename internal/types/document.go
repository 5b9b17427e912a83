// Package types provides type definitions for structured data used throughout the resume-fit system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// BulletMarker separates bullet units inside an experience description.
const BulletMarker = "•"

// Template names understood by the renderer and the estimating measurer.
const (
	TemplateClassic = "classic"
	TemplateModern  = "modern"
	TemplateCompact = "compact"
)

// Skills display modes.
const (
	SkillsDisplayTags   = "tags"
	SkillsDisplayList   = "list"
	SkillsDisplayInline = "inline"
)

// Document is the structured resume: personal info, four ordered sections and
// the presentation selectors.
type Document struct {
	PersonalInfo      PersonalInfo     `json:"personalInfo"`
	Experience        []ExperienceItem `json:"experience" validate:"dive"`
	Education         []EducationItem  `json:"education" validate:"dive"`
	Skills            []SkillItem      `json:"skills" validate:"dive"`
	Projects          []ProjectItem    `json:"projects" validate:"dive"`
	Template          string           `json:"template,omitempty" validate:"omitempty,oneof=classic modern compact"`
	SkillsDisplayMode string           `json:"skillsDisplayMode,omitempty" validate:"omitempty,oneof=tags list inline"`
}

// PersonalInfo holds the header block of the resume. Summary is the only
// field subject to length reduction.
type PersonalInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty"`
	Headline  string `json:"headline,omitempty"`
	Summary   string `json:"summary,omitempty"`
}

// ExperienceItem is one position. Description may hold bullet units
// separated by BulletMarker.
type ExperienceItem struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

// EducationItem is one degree or course of study.
type EducationItem struct {
	ID          string `json:"id" validate:"required"`
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

// SkillItem is a single skill. Skills are only ever count-limited.
type SkillItem struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Level    string `json:"level,omitempty"`
	Category string `json:"category,omitempty"`
}

// ProjectItem is a side project or notable piece of work.
type ProjectItem struct {
	ID           string   `json:"id" validate:"required"`
	Name         string   `json:"name"`
	URL          string   `json:"url,omitempty" validate:"omitempty,url"`
	Technologies []string `json:"technologies,omitempty"`
	Description  string   `json:"description,omitempty"`
}

// FullName joins first and last name.
func (p PersonalInfo) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// Validate validates the Document using the validator.
func (d *Document) Validate() error {
	validate := validator.New()
	return validate.Struct(d)
}

// Clone returns a deep copy of the document. Every slice of the copy is
// freshly allocated, so the copy can be modified without touching d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}

	c := *d
	c.Experience = cloneSlice(d.Experience)
	c.Education = cloneSlice(d.Education)
	c.Skills = cloneSlice(d.Skills)
	c.Projects = cloneSlice(d.Projects)
	for i := range c.Projects {
		c.Projects[i].Technologies = cloneSlice(d.Projects[i].Technologies)
	}
	return &c
}

// cloneSlice copies s into a new backing array; nil stays nil.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
