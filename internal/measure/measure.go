// Package measure provides Measurement Providers: capabilities that report
// how tall a document is once rendered.
package measure

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-fit/internal/geometry"
	"github.com/jonathan/resume-fit/internal/pagination"
	"github.com/jonathan/resume-fit/internal/rendering"
	"github.com/jonathan/resume-fit/internal/types"
	"golang.org/x/sync/errgroup"
)

// Measurer reports the rendered height of a document in layout units.
type Measurer interface {
	Measure(ctx context.Context, doc *types.Document, layout rendering.Layout) (float64, error)
}

// Func adapts a function to Measurer.
type Func func(ctx context.Context, doc *types.Document, layout rendering.Layout) (float64, error)

// Measure calls f.
func (f Func) Measure(ctx context.Context, doc *types.Document, layout rendering.Layout) (float64, error) {
	return f(ctx, doc, layout)
}

// Static always reports the same height. It suits callers whose renderer
// has already produced a measurement.
type Static float64

// Measure returns the fixed height.
func (s Static) Measure(_ context.Context, _ *types.Document, _ rendering.Layout) (float64, error) {
	return float64(s), nil
}

// Error represents a measurement failure
type Error struct {
	Provider string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s measurement failed: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s measurement failed: %s", e.Provider, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// PageCount is the outcome of measuring a document under one profile.
type PageCount struct {
	Profile    geometry.Profile `json:"profile"`
	Height     float64          `json:"height"`
	TotalPages int              `json:"totalPages"`
}

// Pages measures doc and converts the height to a page count.
func Pages(ctx context.Context, m Measurer, doc *types.Document, layout rendering.Layout) (PageCount, error) {
	height, err := m.Measure(ctx, doc, layout)
	if err != nil {
		return PageCount{}, err
	}
	return PageCount{
		Profile:    layout.Profile,
		Height:     height,
		TotalPages: pagination.ComputePages(height, layout.Profile),
	}, nil
}

// Profiles measures doc under every profile concurrently. Results keep the
// order of profiles; the first error cancels the remaining measurements.
func Profiles(ctx context.Context, m Measurer, doc *types.Document, compact bool, profiles ...geometry.Profile) ([]PageCount, error) {
	results := make([]PageCount, len(profiles))
	g, gctx := errgroup.WithContext(ctx)

	for i, profile := range profiles {
		g.Go(func() error {
			pc, err := Pages(gctx, m, doc, rendering.Layout{Profile: profile, Compact: compact})
			if err != nil {
				return fmt.Errorf("profile %s: %w", profile.Name, err)
			}
			results[i] = pc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
