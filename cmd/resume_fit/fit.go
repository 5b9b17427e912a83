package main

import (
	"fmt"

	"github.com/jonathan/resume-fit/internal/fitting"
	"github.com/jonathan/resume-fit/internal/logging"
	"github.com/jonathan/resume-fit/internal/observability"
	"github.com/spf13/cobra"
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Shorten a resume until it fits the page target",
	Long:  "Measures a resume, reduces it and measures again until it fits the target page count, stops improving, or runs out of iterations. Writes the shortest version found.",
	RunE:  runFit,
}

var (
	fitInput         string
	fitOutput        string
	fitReportFile    string
	fitTargetPages   int
	fitMaxIterations int
	fitLayout        layoutFlags
)

func init() {
	fitCmd.Flags().StringVarP(&fitInput, "in", "i", "", "Path to resume document JSON (- for stdin)")
	fitCmd.Flags().StringVarP(&fitOutput, "out", "o", "", "Path to write the fitted document (default stdout)")
	fitCmd.Flags().StringVar(&fitReportFile, "report", "", "Path to write the full fit result JSON")
	fitCmd.Flags().IntVarP(&fitTargetPages, "target", "t", 0, "Target page count (default from config)")
	fitCmd.Flags().IntVar(&fitMaxIterations, "max-iterations", 0, "Maximum reduction passes (default from config)")
	fitLayout.register(fitCmd)

	if err := fitCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark flag as required: %v", err))
	}

	rootCmd.AddCommand(fitCmd)
}

func runFit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	if fitTargetPages < 0 || fitMaxIterations < 0 {
		return fmt.Errorf("--target and --max-iterations must not be negative")
	}

	doc, err := loadDocument(fitInput, cmd.InOrStdin())
	if err != nil {
		return err
	}
	layout, err := fitLayout.layout()
	if err != nil {
		return err
	}
	m, err := newMeasurer()
	if err != nil {
		return err
	}

	opts := fitting.FitOptions{
		TargetPages:   settings.TargetPages,
		MaxIterations: settings.MaxIterations,
		OnIteration: func(it fitting.Iteration) {
			logger.Info("Reduction pass", "iteration", it.Number, "severity", it.Report.Severity, "pages", it.Pages)
		},
	}
	if fitTargetPages > 0 {
		opts.TargetPages = fitTargetPages
	}
	if fitMaxIterations > 0 {
		opts.MaxIterations = fitMaxIterations
	}

	progress := logging.NewProgress(logger)
	result, err := fitting.FitLoop(ctx, doc, m, layout, opts)
	if err != nil {
		return fmt.Errorf("fit failed: %w", err)
	}
	progress.Done("Fit complete",
		"outcome", result.Outcome,
		"pages_before", result.InitialPages,
		"pages_after", result.FinalPages,
	)

	if settings.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintFitResult(result)
	}
	if fitReportFile != "" {
		if err := writeJSON(cmd.OutOrStdout(), fitReportFile, result); err != nil {
			return err
		}
	}
	if err := writeJSON(cmd.OutOrStdout(), fitOutput, result.Document); err != nil {
		return err
	}

	if result.Outcome != fitting.OutcomeFitted {
		logger.Warn("Document still exceeds the page target", "pages", result.FinalPages, "target", opts.TargetPages)
	}
	return nil
}
