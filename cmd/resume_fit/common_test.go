package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-fit/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDocument_Stdin(t *testing.T) {
	doc, err := loadDocument("-", strings.NewReader(sampleDocument))
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", doc.PersonalInfo.FullName())
	assert.NotEmpty(t, doc.Skills[0].ID)
}

func TestLoadDocument_File(t *testing.T) {
	doc, err := loadDocument(writeDocument(t, sampleDocument), nil)
	require.NoError(t, err)
	assert.Len(t, doc.Experience, 2)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, "", map[string]int{"pages": 2}))
	assert.Equal(t, "{\n  \"pages\": 2\n}\n", buf.String())

	path := filepath.Join(t.TempDir(), "out.json")
	buf.Reset()
	require.NoError(t, writeJSON(&buf, path, map[string]int{"pages": 1}))
	assert.Empty(t, buf.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"pages": 1`)
}

func TestLayoutFlags(t *testing.T) {
	old := settings
	t.Cleanup(func() { settings = old })
	settings = config.Defaults()
	settings.Paper = "letter"

	tests := []struct {
		name        string
		flags       layoutFlags
		compact     bool
		wantPaper   string
		wantCompact bool
		wantErr     bool
	}{
		{name: "config paper", flags: layoutFlags{}, wantPaper: "letter"},
		{name: "flag wins", flags: layoutFlags{paper: "A4"}, wantPaper: "a4"},
		{name: "compact flag", flags: layoutFlags{compact: true}, wantPaper: "letter", wantCompact: true},
		{name: "compact config", flags: layoutFlags{}, compact: true, wantPaper: "letter", wantCompact: true},
		{name: "unknown paper", flags: layoutFlags{paper: "folio"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings.Compact = tt.compact
			layout, err := tt.flags.layout()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPaper, layout.Profile.Name)
			assert.Equal(t, tt.wantCompact, layout.Compact)
		})
	}
}
