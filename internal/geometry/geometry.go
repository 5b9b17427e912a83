// Package geometry describes page sizes in layout units and the zoom range a
// viewer may use.
package geometry

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrUnknownProfile is returned by Lookup for a paper name with no profile.
var ErrUnknownProfile = errors.New("unknown paper profile")

// Profile is the geometry of one rendered page for a paper size.
type Profile struct {
	Name            string  `json:"name"`
	PageWidthUnits  float64 `json:"pageWidthUnits"`
	PageHeightUnits float64 `json:"pageHeightUnits"`
}

var (
	// A4 is 210×297mm expressed in the A4 layout scale used by the editor.
	A4 = Profile{Name: "a4", PageWidthUnits: 595, PageHeightUnits: 841}
	// Letter is 8.5×11in at 96 DPI.
	Letter = Profile{Name: "letter", PageWidthUnits: 816, PageHeightUnits: 1056}
)

var profiles = map[string]Profile{
	A4.Name:     A4,
	Letter.Name: Letter,
}

// Lookup returns the profile registered under name (case-insensitive).
// An empty name resolves to A4.
func Lookup(name string) (Profile, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return A4, nil
	}
	p, ok := profiles[key]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownProfile, name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names lists the registered profile names in sorted order.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered profile, sorted by name.
func All() []Profile {
	names := Names()
	out := make([]Profile, 0, len(names))
	for _, name := range names {
		out = append(out, profiles[name])
	}
	return out
}

// ZoomBounds is the zoom range a navigator clamps to, and its step size.
type ZoomBounds struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

var (
	// EditorZoom is used by the inline editor preview.
	EditorZoom = ZoomBounds{Min: 0.5, Max: 1.2, Step: 0.1}
	// PreviewZoom is used by the full-screen preview.
	PreviewZoom = ZoomBounds{Min: 0.5, Max: 2.0, Step: 0.1}
)

// Clamp rounds z to two decimals so repeated steps do not accumulate floating
// point drift, then restricts it to [Min, Max]. Bounds are returned as
// configured, even when they carry more than two decimals.
func (b ZoomBounds) Clamp(z float64) float64 {
	if math.IsNaN(z) {
		z = 1
	}
	z = math.Round(z*100) / 100
	return math.Max(b.Min, math.Min(b.Max, z))
}

// Validate checks that the bounds describe a non-empty range with a positive step.
func (b ZoomBounds) Validate() error {
	if b.Min <= 0 {
		return fmt.Errorf("zoom min must be positive, got %v", b.Min)
	}
	if b.Max < b.Min {
		return fmt.Errorf("zoom max %v is below min %v", b.Max, b.Min)
	}
	if b.Step <= 0 {
		return fmt.Errorf("zoom step must be positive, got %v", b.Step)
	}
	return nil
}

// ZoomPreset resolves "editor" or "preview" to its bounds; empty means editor.
func ZoomPreset(name string) (ZoomBounds, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "editor":
		return EditorZoom, nil
	case "preview":
		return PreviewZoom, nil
	default:
		return ZoomBounds{}, fmt.Errorf("unknown zoom preset %q (known: editor, preview)", name)
	}
}
