// Package pagination derives page counts from measured content height and
// tracks the viewer's position among those pages.
package pagination

import (
	"math"

	"github.com/jonathan/resume-fit/internal/geometry"
)

// ComputePages returns ceil(height / pageHeight), never less than 1.
// It holds no state; call it again after every measurement.
func ComputePages(height float64, profile geometry.Profile) int {
	pageHeight := profile.PageHeightUnits
	if pageHeight <= 0 || math.IsNaN(height) || height <= 0 {
		return 1
	}
	if math.IsInf(height, 1) {
		return math.MaxInt32
	}

	pages := math.Ceil(height / pageHeight)
	if pages > math.MaxInt32 {
		return math.MaxInt32
	}
	return max(1, int(pages))
}

// Overflow reports how far the content runs past the last full page, as a
// fraction of a page (0 when the content ends exactly on a page boundary).
func Overflow(height float64, profile geometry.Profile) float64 {
	if profile.PageHeightUnits <= 0 || height <= 0 {
		return 0
	}
	frac := math.Mod(height, profile.PageHeightUnits) / profile.PageHeightUnits
	return math.Round(frac*1000) / 1000
}
