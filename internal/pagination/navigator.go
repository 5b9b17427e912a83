package pagination

import (
	"github.com/jonathan/resume-fit/internal/geometry"
)

// ViewMode selects how pages are laid out.
type ViewMode string

const (
	// SinglePage shows one clipped page-sized window at a time.
	SinglePage ViewMode = "single"
	// SideBySide shows every page next to each other.
	SideBySide ViewMode = "side-by-side"
)

// Phase is where the navigator is in the measure cycle.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseMeasuring Phase = "measuring"
	PhaseReady     Phase = "ready"
)

// sideBySideGap is the horizontal gap between pages, in layout units.
const sideBySideGap = 16

// State is the observable navigator state.
type State struct {
	CurrentPage int      `json:"currentPage"`
	TotalPages  int      `json:"totalPages"`
	Zoom        float64  `json:"zoom"`
	ViewMode    ViewMode `json:"viewMode"`
	Phase       Phase    `json:"phase"`
}

// Viewport is one visible window into the rendered content.
type Viewport struct {
	PageIndex int     `json:"pageIndex"`
	OffsetX   float64 `json:"offsetX"`
	OffsetY   float64 `json:"offsetY"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Scale     float64 `json:"scale"`
	Clip      bool    `json:"clip"`
}

// RenderInstruction tells a renderer which windows to draw.
type RenderInstruction struct {
	Mode      ViewMode   `json:"mode"`
	Viewports []Viewport `json:"viewports"`
}

// Navigator holds the current page, page total and zoom for one editing
// session. It is not safe for concurrent use.
type Navigator struct {
	profile geometry.Profile
	bounds  geometry.ZoomBounds
	state   State
}

// NewNavigator returns a navigator on page 1 of 1 at zoom 1 (clamped to bounds).
func NewNavigator(profile geometry.Profile, bounds geometry.ZoomBounds) *Navigator {
	return &Navigator{
		profile: profile,
		bounds:  bounds,
		state: State{
			CurrentPage: 1,
			TotalPages:  1,
			Zoom:        bounds.Clamp(1),
			ViewMode:    SinglePage,
			Phase:       PhaseIdle,
		},
	}
}

// State returns the current state.
func (n *Navigator) State() State {
	return n.state
}

// Profile returns the page geometry the navigator renders with.
func (n *Navigator) Profile() geometry.Profile {
	return n.profile
}

// Bounds returns the configured zoom bounds.
func (n *Navigator) Bounds() geometry.ZoomBounds {
	return n.bounds
}

// BeginMeasure marks that content changed and a new measurement is pending.
func (n *Navigator) BeginMeasure() State {
	n.state.Phase = PhaseMeasuring
	return n.state
}

// SetTotalPages records a new page total after a content edit. The current
// page is only moved when it no longer exists.
func (n *Navigator) SetTotalPages(total int) State {
	n.state.TotalPages = max(1, total)
	n.state.CurrentPage = clampPage(n.state.CurrentPage, n.state.TotalPages)
	n.state.Phase = PhaseReady
	return n.state
}

// SetMeasuredHeight converts a measured height to pages and records it.
func (n *Navigator) SetMeasuredHeight(height float64) State {
	return n.SetTotalPages(ComputePages(height, n.profile))
}

// ReplaceDocument records the page total of a wholly new document and
// returns to page 1.
func (n *Navigator) ReplaceDocument(total int) State {
	n.state.CurrentPage = 1
	return n.SetTotalPages(total)
}

// Goto moves to page, clamped to [1, TotalPages].
func (n *Navigator) Goto(page int) State {
	n.state.CurrentPage = clampPage(page, n.state.TotalPages)
	return n.state
}

// Next advances one page; no-op on the last page.
func (n *Navigator) Next() State {
	if n.state.CurrentPage < n.state.TotalPages {
		n.state.CurrentPage++
	}
	return n.state
}

// Prev goes back one page; no-op on the first page.
func (n *Navigator) Prev() State {
	if n.state.CurrentPage > 1 {
		n.state.CurrentPage--
	}
	return n.state
}

// ZoomIn increases zoom by one step.
func (n *Navigator) ZoomIn() State {
	return n.SetZoom(n.state.Zoom + n.bounds.Step)
}

// ZoomOut decreases zoom by one step.
func (n *Navigator) ZoomOut() State {
	return n.SetZoom(n.state.Zoom - n.bounds.Step)
}

// SetZoom sets an arbitrary zoom, clamped to the bounds.
func (n *Navigator) SetZoom(z float64) State {
	n.state.Zoom = n.bounds.Clamp(z)
	return n.state
}

// ToggleViewMode switches between single-page and side-by-side layout.
func (n *Navigator) ToggleViewMode() State {
	if n.state.ViewMode == SideBySide {
		n.state.ViewMode = SinglePage
	} else {
		n.state.ViewMode = SideBySide
	}
	return n.state
}

// Render computes the viewports for the current state.
func (n *Navigator) Render() RenderInstruction {
	zoom := n.state.Zoom
	width := n.profile.PageWidthUnits * zoom
	height := n.profile.PageHeightUnits * zoom

	if n.state.ViewMode == SideBySide {
		viewports := make([]Viewport, 0, n.state.TotalPages)
		for i := 0; i < n.state.TotalPages; i++ {
			viewports = append(viewports, Viewport{
				PageIndex: i,
				OffsetX:   float64(i) * (width + sideBySideGap),
				OffsetY:   -float64(i) * height,
				Width:     width,
				Height:    height,
				Scale:     zoom,
				Clip:      false,
			})
		}
		return RenderInstruction{Mode: SideBySide, Viewports: viewports}
	}

	index := n.state.CurrentPage - 1
	return RenderInstruction{
		Mode: SinglePage,
		Viewports: []Viewport{{
			PageIndex: index,
			OffsetY:   -float64(index) * height,
			Width:     width,
			Height:    height,
			Scale:     zoom,
			Clip:      true,
		}},
	}
}

func clampPage(page, total int) int {
	return max(1, min(page, total))
}
