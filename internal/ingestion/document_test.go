package ingestion

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-fit/internal/schemas"
	"github.com/jonathan/resume-fit/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `{
	"personalInfo": {"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com"},
	"experience": [
		{"id": "exp_1", "title": "Analyst", "company": "Engine Co", "description": "<ul><li>Notes</li><li>Tables</li></ul>"}
	],
	"skills": [{"name": "Mathematics"}],
	"template": "compact"
}`

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleDocument))
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", doc.PersonalInfo.FullName())
	assert.Equal(t, types.TemplateCompact, doc.Template)
	assert.Equal(t, types.SkillsDisplayTags, doc.SkillsDisplayMode)
	assert.Equal(t, "• Notes\n• Tables", doc.Experience[0].Description)
	assert.NotEmpty(t, doc.Skills[0].ID)
	assert.NoError(t, doc.Validate())
}

func TestParseDocument_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, err error)
	}{
		{
			name:  "not json",
			input: `{"personalInfo": `,
			check: func(t *testing.T, err error) {
				var ve *schemas.ValidationError
				assert.True(t, errors.As(err, &ve))
			},
		},
		{
			name:  "schema violation",
			input: `{"personalInfo": {}, "template": "fancy"}`,
			check: func(t *testing.T, err error) {
				var ve *schemas.ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, "template", ve.Errors[0].Field)
			},
		},
		{
			name:  "struct validation",
			input: `{"personalInfo": {"email": "not-an-email"}}`,
			check: func(t *testing.T, err error) {
				var ve validator.ValidationErrors
				assert.True(t, errors.As(err, &ve))
			},
		},
		{
			name:  "blank skill name",
			input: `{"personalInfo": {}, "skills": [{"name": "   "}]}`,
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "invalid document")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.input))
			require.Error(t, err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe), "expected ParseError, got %T", err)
			assert.Equal(t, "document", pe.Source)
			tt.check(t, err)
		})
	}
}

func TestLoadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0644))

	doc, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Len(t, doc.Experience, 1)
}

func TestLoadDocument_FileNotFound(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadDocument_ReportsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"experience": []}`), 0644))

	_, err := LoadDocument(path)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, path, pe.Source)
	assert.Contains(t, err.Error(), path)
}

func TestParseError_Error(t *testing.T) {
	err := &ParseError{Source: "doc.json", Message: "invalid JSON"}
	assert.Equal(t, "failed to parse doc.json: invalid JSON", err.Error())
	assert.Nil(t, err.Unwrap())
}
