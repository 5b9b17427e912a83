package fitting

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-fit/internal/logging"
	"github.com/jonathan/resume-fit/internal/measure"
	"github.com/jonathan/resume-fit/internal/rendering"
	"github.com/jonathan/resume-fit/internal/types"
)

// Defaults for FitOptions zero values.
const (
	DefaultTargetPages   = 1
	DefaultMaxIterations = 3
)

// Outcome classifies how a fit loop ended.
type Outcome string

const (
	// OutcomeFitted means the document now spans at most the target pages.
	OutcomeFitted Outcome = "fitted"
	// OutcomeImproved means pages went down but the target was not reached.
	OutcomeImproved Outcome = "improved"
	// OutcomeUnchanged means reduction did not lower the page count.
	OutcomeUnchanged Outcome = "unchanged"
)

// FitOptions bound the fit loop.
type FitOptions struct {
	TargetPages   int
	MaxIterations int
	// OnIteration, when set, is called after each reduction pass is measured.
	OnIteration func(Iteration)
}

// Iteration is one measured reduction pass.
type Iteration struct {
	Number int     `json:"iteration"`
	Report Report  `json:"report"`
	Pages  int     `json:"pages"`
	Height float64 `json:"height"`
}

func (o FitOptions) withDefaults() FitOptions {
	if o.TargetPages <= 0 {
		o.TargetPages = DefaultTargetPages
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	return o
}

// FitResult is the best document the loop found and how it got there.
type FitResult struct {
	Document     *types.Document `json:"document"`
	InitialPages int             `json:"initialPages"`
	FinalPages   int             `json:"finalPages"`
	FinalHeight  float64         `json:"finalHeight"`
	Iterations   int             `json:"iterations"`
	Outcome      Outcome         `json:"outcome"`
	Reports      []Report        `json:"reports"`
}

// FitLoop measures doc and, while it spans more than the target pages,
// reduces it with severity from the latest measurement and measures again.
// It stops at the target, after MaxIterations, when a pass changes nothing,
// or when a pass does not lower the page count. The returned document is a
// copy with the fewest pages seen; doc is never modified.
func FitLoop(ctx context.Context, doc *types.Document, m measure.Measurer, layout rendering.Layout, opts FitOptions) (*FitResult, error) {
	opts = opts.withDefaults()
	logger := logging.FromContext(ctx)

	initial, err := measure.Pages(ctx, m, doc, layout)
	if err != nil {
		return nil, fmt.Errorf("failed to measure initial document: %w", err)
	}

	result := &FitResult{
		Document:     doc.Clone(),
		InitialPages: initial.TotalPages,
		FinalPages:   initial.TotalPages,
		FinalHeight:  initial.Height,
		Reports:      []Report{},
	}

	current := doc
	pages := initial.TotalPages

	for pages > opts.TargetPages && result.Iterations < opts.MaxIterations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Iterations++

		reduced, report := ReduceWithReport(current, pages)
		result.Reports = append(result.Reports, report)
		if !report.Changed() {
			logger.Debug("Reduction changed nothing; stopping", "iteration", result.Iterations, "pages", pages)
			break
		}

		measured, err := measure.Pages(ctx, m, reduced, layout)
		if err != nil {
			return nil, fmt.Errorf("failed to measure reduced document at iteration %d: %w", result.Iterations, err)
		}
		logger.Debug("Reduction pass complete",
			"iteration", result.Iterations,
			"severity", report.Severity,
			"second_pass", report.SecondPass,
			"pages_before", pages,
			"pages_after", measured.TotalPages,
		)
		if opts.OnIteration != nil {
			opts.OnIteration(Iteration{
				Number: result.Iterations,
				Report: report,
				Pages:  measured.TotalPages,
				Height: measured.Height,
			})
		}

		if measured.TotalPages < result.FinalPages {
			result.Document = reduced
			result.FinalPages = measured.TotalPages
			result.FinalHeight = measured.Height
		}

		improved := measured.TotalPages < pages
		current = reduced
		pages = measured.TotalPages
		if !improved {
			logger.Debug("Page count did not improve; stopping", "iteration", result.Iterations, "pages", pages)
			break
		}
	}

	result.Outcome = classify(result.InitialPages, result.FinalPages, opts.TargetPages)
	return result, nil
}

func classify(initial, final, target int) Outcome {
	switch {
	case final <= target:
		return OutcomeFitted
	case final < initial:
		return OutcomeImproved
	default:
		return OutcomeUnchanged
	}
}
