package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *Document {
	return &Document{
		PersonalInfo: PersonalInfo{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			Summary:   "Analyst of engines.",
		},
		Experience: []ExperienceItem{
			{ID: "exp_1", Title: "Analyst", Company: "Engines Ltd", Description: "• Wrote notes • Built tables"},
		},
		Education: []EducationItem{{ID: "edu_1", Institution: "Home"}},
		Skills:    []SkillItem{{ID: "sk_1", Name: "Mathematics"}},
		Projects: []ProjectItem{
			{ID: "proj_1", Name: "Note G", Technologies: []string{"Punch cards"}},
		},
		Template:          TemplateClassic,
		SkillsDisplayMode: SkillsDisplayTags,
	}
}

func TestDocument_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *Document)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid document",
			mutate:  func(_ *Document) {},
			wantErr: false,
		},
		{
			name:    "empty template and display mode are allowed",
			mutate:  func(d *Document) { d.Template = ""; d.SkillsDisplayMode = "" },
			wantErr: false,
		},
		{
			name:    "invalid email",
			mutate:  func(d *Document) { d.PersonalInfo.Email = "not-an-email" },
			wantErr: true,
			errMsg:  "email",
		},
		{
			name:    "unknown template",
			mutate:  func(d *Document) { d.Template = "fancy" },
			wantErr: true,
			errMsg:  "oneof",
		},
		{
			name:    "unknown skills display mode",
			mutate:  func(d *Document) { d.SkillsDisplayMode = "cloud" },
			wantErr: true,
			errMsg:  "oneof",
		},
		{
			name:    "experience without id",
			mutate:  func(d *Document) { d.Experience[0].ID = "" },
			wantErr: true,
			errMsg:  "required",
		},
		{
			name:    "skill without name",
			mutate:  func(d *Document) { d.Skills[0].Name = "" },
			wantErr: true,
			errMsg:  "required",
		},
		{
			name:    "project with malformed url",
			mutate:  func(d *Document) { d.Projects[0].URL = "not a url" },
			wantErr: true,
			errMsg:  "url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleDocument()
			tt.mutate(doc)
			err := doc.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDocument_CloneIsDeep(t *testing.T) {
	doc := sampleDocument()
	clone := doc.Clone()

	require.Equal(t, doc, clone)
	assert.NotSame(t, doc, clone)

	clone.PersonalInfo.Summary = "changed"
	clone.Experience[0].Title = "changed"
	clone.Education[0].Institution = "changed"
	clone.Skills[0].Name = "changed"
	clone.Projects[0].Technologies[0] = "changed"

	assert.Equal(t, "Analyst of engines.", doc.PersonalInfo.Summary)
	assert.Equal(t, "Analyst", doc.Experience[0].Title)
	assert.Equal(t, "Home", doc.Education[0].Institution)
	assert.Equal(t, "Mathematics", doc.Skills[0].Name)
	assert.Equal(t, "Punch cards", doc.Projects[0].Technologies[0])
}

func TestDocument_CloneNil(t *testing.T) {
	var doc *Document
	assert.Nil(t, doc.Clone())

	empty := (&Document{}).Clone()
	assert.Nil(t, empty.Experience)
	assert.Nil(t, empty.Skills)
}

func TestDocument_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(sampleDocument())
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"personalInfo"`)
	assert.Contains(t, s, `"firstName":"Ada"`)
	assert.Contains(t, s, `"skillsDisplayMode":"tags"`)
	assert.Contains(t, s, `"experience":[`)
}

func TestPersonalInfo_FullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", PersonalInfo{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", PersonalInfo{FirstName: "Ada"}.FullName())
	assert.Equal(t, "Lovelace", PersonalInfo{LastName: "Lovelace"}.FullName())
	assert.Equal(t, "", PersonalInfo{}.FullName())
}
