package pagination

import (
	"testing"

	"github.com/jonathan/resume-fit/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReadyNavigator(total int) *Navigator {
	n := NewNavigator(geometry.A4, geometry.EditorZoom)
	n.SetTotalPages(total)
	return n
}

func TestNewNavigator(t *testing.T) {
	n := NewNavigator(geometry.A4, geometry.EditorZoom)
	s := n.State()

	assert.Equal(t, 1, s.CurrentPage)
	assert.Equal(t, 1, s.TotalPages)
	assert.Equal(t, 1.0, s.Zoom)
	assert.Equal(t, SinglePage, s.ViewMode)
	assert.Equal(t, PhaseIdle, s.Phase)
}

func TestNewNavigator_ClampsInitialZoom(t *testing.T) {
	n := NewNavigator(geometry.A4, geometry.ZoomBounds{Min: 1.5, Max: 2, Step: 0.1})
	assert.Equal(t, 1.5, n.State().Zoom)
}

func TestNavigator_Phases(t *testing.T) {
	n := NewNavigator(geometry.A4, geometry.EditorZoom)
	assert.Equal(t, PhaseMeasuring, n.BeginMeasure().Phase)
	assert.Equal(t, PhaseReady, n.SetTotalPages(3).Phase)
	assert.Equal(t, PhaseReady, n.Next().Phase)
	assert.Equal(t, PhaseReady, n.ZoomIn().Phase)
}

func TestNavigator_GotoClamps(t *testing.T) {
	n := newReadyNavigator(4)

	for _, page := range []int{-100, -1, 0, 1, 2, 3, 4, 5, 1000} {
		s := n.Goto(page)
		assert.GreaterOrEqual(t, s.CurrentPage, 1, "page %d", page)
		assert.LessOrEqual(t, s.CurrentPage, 4, "page %d", page)
	}

	assert.Equal(t, 1, n.Goto(0).CurrentPage)
	assert.Equal(t, 3, n.Goto(3).CurrentPage)
	assert.Equal(t, 4, n.Goto(99).CurrentPage)
}

func TestNavigator_NextPrevDoNotWrap(t *testing.T) {
	n := newReadyNavigator(2)

	assert.Equal(t, 1, n.Prev().CurrentPage)
	assert.Equal(t, 2, n.Next().CurrentPage)
	assert.Equal(t, 2, n.Next().CurrentPage)
	assert.Equal(t, 1, n.Prev().CurrentPage)
}

func TestNavigator_SetTotalPagesClampsDown(t *testing.T) {
	n := newReadyNavigator(5)
	n.Goto(4)

	s := n.SetTotalPages(6)
	assert.Equal(t, 4, s.CurrentPage, "growing keeps position")

	s = n.SetTotalPages(3)
	assert.Equal(t, 3, s.CurrentPage, "shrinking clamps down")
	assert.Equal(t, 3, s.TotalPages)

	s = n.SetTotalPages(0)
	assert.Equal(t, 1, s.TotalPages)
	assert.Equal(t, 1, s.CurrentPage)
}

func TestNavigator_ReplaceDocumentResets(t *testing.T) {
	n := newReadyNavigator(5)
	n.Goto(3)

	s := n.ReplaceDocument(5)
	assert.Equal(t, 1, s.CurrentPage)
	assert.Equal(t, 5, s.TotalPages)
}

func TestNavigator_SetMeasuredHeight(t *testing.T) {
	n := NewNavigator(geometry.Letter, geometry.EditorZoom)
	s := n.SetMeasuredHeight(2200)
	assert.Equal(t, 3, s.TotalPages)
}

func TestNavigator_Zoom(t *testing.T) {
	n := NewNavigator(geometry.A4, geometry.EditorZoom)

	assert.Equal(t, 1.1, n.ZoomIn().Zoom)
	assert.Equal(t, 1.2, n.ZoomIn().Zoom)
	assert.Equal(t, 1.2, n.ZoomIn().Zoom, "clamped at max")

	for i := 0; i < 20; i++ {
		n.ZoomOut()
	}
	assert.Equal(t, 0.5, n.State().Zoom, "clamped at min")

	assert.Equal(t, 0.6, n.ZoomIn().Zoom)
	assert.Equal(t, 1.2, n.SetZoom(7).Zoom)
}

func TestNavigator_ZoomIndependentOfPage(t *testing.T) {
	n := newReadyNavigator(3)
	n.Goto(2)
	n.ZoomIn()
	assert.Equal(t, 2, n.State().CurrentPage)
}

func TestNavigator_ToggleViewMode(t *testing.T) {
	n := newReadyNavigator(2)
	assert.Equal(t, SideBySide, n.ToggleViewMode().ViewMode)
	assert.Equal(t, SinglePage, n.ToggleViewMode().ViewMode)
}

func TestNavigator_RenderSinglePage(t *testing.T) {
	n := newReadyNavigator(3)
	n.Goto(3)
	n.SetZoom(0.5)

	r := n.Render()
	assert.Equal(t, SinglePage, r.Mode)
	require.Len(t, r.Viewports, 1)

	v := r.Viewports[0]
	assert.Equal(t, 2, v.PageIndex)
	assert.InDelta(t, -2*841*0.5, v.OffsetY, 1e-9)
	assert.InDelta(t, 841*0.5, v.Height, 1e-9)
	assert.InDelta(t, 595*0.5, v.Width, 1e-9)
	assert.True(t, v.Clip)
}

func TestNavigator_RenderSideBySide(t *testing.T) {
	n := newReadyNavigator(3)
	n.ToggleViewMode()

	r := n.Render()
	assert.Equal(t, SideBySide, r.Mode)
	require.Len(t, r.Viewports, 3)

	for i, v := range r.Viewports {
		assert.Equal(t, i, v.PageIndex)
		assert.InDelta(t, -float64(i)*841, v.OffsetY, 1e-9)
		assert.InDelta(t, float64(i)*(595+sideBySideGap), v.OffsetX, 1e-9)
		assert.False(t, v.Clip)
	}
}
