package main

import (
	"fmt"

	"github.com/jonathan/resume-fit/internal/geometry"
	"github.com/jonathan/resume-fit/internal/logging"
	"github.com/jonathan/resume-fit/internal/measure"
	"github.com/jonathan/resume-fit/internal/observability"
	"github.com/spf13/cobra"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Count the pages a resume occupies",
	Long:  "Measures the rendered height of a resume document and reports how many pages it spans, for one paper profile or all of them.",
	RunE:  runPages,
}

var (
	pagesInput  string
	pagesAll    bool
	pagesJSON   bool
	pagesOutput string
	pagesLayout layoutFlags
)

func init() {
	pagesCmd.Flags().StringVarP(&pagesInput, "in", "i", "", "Path to resume document JSON (- for stdin)")
	pagesCmd.Flags().BoolVar(&pagesAll, "all", false, "Measure against every paper profile")
	pagesCmd.Flags().BoolVar(&pagesJSON, "json", false, "Print JSON instead of a summary")
	pagesCmd.Flags().StringVarP(&pagesOutput, "out", "o", "", "Write JSON to this file instead of stdout")
	pagesLayout.register(pagesCmd)

	if err := pagesCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark flag as required: %v", err))
	}

	rootCmd.AddCommand(pagesCmd)
}

func runPages(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	doc, err := loadDocument(pagesInput, cmd.InOrStdin())
	if err != nil {
		return err
	}
	layout, err := pagesLayout.layout()
	if err != nil {
		return err
	}
	m, err := newMeasurer()
	if err != nil {
		return err
	}

	progress := logging.NewProgress(logger)
	out := cmd.OutOrStdout()

	if pagesAll {
		counts, err := measure.Profiles(ctx, m, doc, layout.Compact, geometry.All()...)
		if err != nil {
			return fmt.Errorf("failed to measure document: %w", err)
		}
		progress.Done("Measured document", "profiles", len(counts), "measurer", settings.Measurer)
		if pagesJSON || pagesOutput != "" {
			return writeJSON(out, pagesOutput, counts)
		}
		observability.NewPrinter(out).PrintProfiles(counts)
		return nil
	}

	pc, err := measure.Pages(ctx, m, doc, layout)
	if err != nil {
		return fmt.Errorf("failed to measure document: %w", err)
	}
	progress.Done("Measured document", "pages", pc.TotalPages, "measurer", settings.Measurer)

	if pagesJSON || pagesOutput != "" {
		return writeJSON(out, pagesOutput, pc)
	}
	observability.NewPrinter(out).PrintPageCount(pc)
	return nil
}
