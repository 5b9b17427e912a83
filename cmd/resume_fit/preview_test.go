package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonathan/resume-fit/internal/geometry"
	"github.com/jonathan/resume-fit/internal/pagination"
	"github.com/jonathan/resume-fit/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func previewDocument() *types.Document {
	return &types.Document{
		PersonalInfo: types.PersonalInfo{FirstName: "Ada", LastName: "Lovelace", Summary: "Analyst."},
		Experience: []types.ExperienceItem{
			{ID: "exp_1", Title: "Analyst", Company: "Engine Co", Description: "• Notes\n• Tables"},
		},
		Skills: []types.SkillItem{{ID: "skill_1", Name: "Mathematics"}, {ID: "skill_2", Name: "Music"}},
	}
}

func newTestPreview(t *testing.T, pages int) previewModel {
	t.Helper()
	nav := pagination.NewNavigator(geometry.A4, geometry.PreviewZoom)
	nav.SetTotalPages(pages)
	return newPreviewModel(previewDocument(), nav)
}

func press(m previewModel, keys ...string) previewModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(previewModel)
	}
	return m
}

func TestPreviewModel_Navigation(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		wantPage int
	}{
		{name: "next", keys: []string{"right"}, wantPage: 2},
		{name: "vim next", keys: []string{"l", "l"}, wantPage: 3},
		{name: "stops at last page", keys: []string{"l", "l", "l", "l"}, wantPage: 3},
		{name: "prev stops at first page", keys: []string{"left", "h"}, wantPage: 1},
		{name: "jump to last", keys: []string{"G"}, wantPage: 3},
		{name: "jump back to first", keys: []string{"G", "g"}, wantPage: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(newTestPreview(t, 3), tt.keys...)
			assert.Equal(t, tt.wantPage, m.nav.State().CurrentPage)
		})
	}
}

func TestPreviewModel_ZoomAndViewMode(t *testing.T) {
	m := press(newTestPreview(t, 2), "+", "+")
	assert.Equal(t, 1.2, m.nav.State().Zoom)

	m = press(m, "-")
	assert.Equal(t, 1.1, m.nav.State().Zoom)

	m = press(m, "v")
	assert.Equal(t, pagination.SideBySide, m.nav.State().ViewMode)
	assert.Contains(t, m.View(), "side-by-side")

	m = press(m, "v")
	assert.Equal(t, pagination.SinglePage, m.nav.State().ViewMode)
}

func TestPreviewModel_Quit(t *testing.T) {
	for _, key := range []string{"q", "esc"} {
		m := newTestPreview(t, 1)
		var msg tea.KeyMsg
		if key == "esc" {
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd, key)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestPreviewModel_View(t *testing.T) {
	m := newTestPreview(t, 2)

	view := m.View()
	assert.Contains(t, view, "Ada Lovelace")
	assert.Contains(t, view, "page 1 / 2")
	assert.Contains(t, view, "zoom 100%")
}

func TestPreviewModel_PageLines(t *testing.T) {
	m := newTestPreview(t, 2)
	m.lines = []string{"a", "b", "c", "d", "e"}

	assert.Equal(t, []string{"a", "b", "c"}, m.pageLines(0, 2))
	assert.Equal(t, []string{"d", "e"}, m.pageLines(1, 2))
	assert.Equal(t, []string{""}, m.pageLines(3, 2))

	m.lines = nil
	assert.Equal(t, []string{""}, m.pageLines(0, 1))
}

func TestDocumentLines(t *testing.T) {
	lines := documentLines(previewDocument())

	assert.Equal(t, []string{
		"Analyst.",
		"EXPERIENCE",
		"Analyst · Engine Co",
		"• Notes",
		"• Tables",
		"SKILLS",
		"Mathematics, Music",
	}, lines)
}
