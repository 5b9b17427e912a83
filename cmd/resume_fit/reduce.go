package main

import (
	"fmt"

	"github.com/jonathan/resume-fit/internal/fitting"
	"github.com/jonathan/resume-fit/internal/logging"
	"github.com/jonathan/resume-fit/internal/measure"
	"github.com/jonathan/resume-fit/internal/observability"
	"github.com/spf13/cobra"
)

var reduceCmd = &cobra.Command{
	Use:   "reduce",
	Short: "Run one reduction pass over a resume",
	Long:  "Shortens each section of a resume with a severity derived from its page count, and writes the reduced copy. The input file is never modified.",
	RunE:  runReduce,
}

var (
	reduceInput  string
	reduceOutput string
	reducePages  int
	reduceLayout layoutFlags
)

func init() {
	reduceCmd.Flags().StringVarP(&reduceInput, "in", "i", "", "Path to resume document JSON (- for stdin)")
	reduceCmd.Flags().StringVarP(&reduceOutput, "out", "o", "", "Path to write the reduced document (default stdout)")
	reduceCmd.Flags().IntVar(&reducePages, "pages", 0, "Current page count; 0 measures the document first")
	reduceLayout.register(reduceCmd)

	if err := reduceCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark flag as required: %v", err))
	}

	rootCmd.AddCommand(reduceCmd)
}

func runReduce(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	if reducePages < 0 {
		return fmt.Errorf("--pages must not be negative, got %d", reducePages)
	}

	doc, err := loadDocument(reduceInput, cmd.InOrStdin())
	if err != nil {
		return err
	}

	pages := reducePages
	if pages == 0 {
		layout, err := reduceLayout.layout()
		if err != nil {
			return err
		}
		m, err := newMeasurer()
		if err != nil {
			return err
		}
		pc, err := measure.Pages(ctx, m, doc, layout)
		if err != nil {
			return fmt.Errorf("failed to measure document: %w", err)
		}
		pages = pc.TotalPages
		logger.Debug("Measured document", "pages", pages, "height", pc.Height)
	}

	reduced, report := fitting.ReduceWithReport(doc, pages)
	logger.Info("Reduced document", "pages", pages, "severity", report.Severity, "second_pass", report.SecondPass)

	if settings.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintReport(report)
	}
	return writeJSON(cmd.OutOrStdout(), reduceOutput, reduced)
}
