package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-fit/internal/geometry"
	"github.com/jonathan/resume-fit/internal/ingestion"
	"github.com/jonathan/resume-fit/internal/measure"
	"github.com/jonathan/resume-fit/internal/rendering"
	"github.com/jonathan/resume-fit/internal/types"
	"github.com/spf13/cobra"
)

// layoutFlags are shared by every command that measures a document.
type layoutFlags struct {
	paper   string
	compact bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.paper, "paper", "", "Paper profile (a4, letter); defaults to the config value")
	cmd.Flags().BoolVar(&f.compact, "compact", false, "Measure with compact spacing")
}

// layout resolves the flags against the loaded settings.
func (f *layoutFlags) layout() (rendering.Layout, error) {
	paper := f.paper
	if paper == "" {
		paper = settings.Paper
	}
	profile, err := geometry.Lookup(paper)
	if err != nil {
		return rendering.Layout{}, err
	}
	return rendering.Layout{Profile: profile, Compact: f.compact || settings.Compact}, nil
}

// loadDocument reads a resume document from path, or from stdin when path is "-".
func loadDocument(path string, stdin io.Reader) (*types.Document, error) {
	if path != "-" {
		return ingestion.LoadDocument(path)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return ingestion.ParseDocument(data)
}

// newMeasurer builds the configured measurement provider.
func newMeasurer() (measure.Measurer, error) {
	timeout, err := settings.Timeout()
	if err != nil {
		return nil, fmt.Errorf("config error: 'browser_timeout': %w", err)
	}
	return measure.New(settings.Measurer, timeout)
}

// writeJSON writes v as indented JSON to path, or to out when path is empty.
func writeJSON(out io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err := out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
