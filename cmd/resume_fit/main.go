// Package main provides the resume_fit CLI: page counting, reduction, fitting,
// an interactive page preview and the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-fit/internal/config"
	"github.com/jonathan/resume-fit/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool

	// settings is the merged configuration, resolved before any command runs.
	settings config.Config
)

var rootCmd = &cobra.Command{
	Use:               "resume_fit",
	Short:             "Fit resumes to a page budget",
	Long:              "resume_fit measures how many pages a structured resume occupies, shortens it section by section until it fits a page target, and pages through the result.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a JSON or TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging and detailed output")
}

// setup loads the config file, applies defaults and attaches the logger.
func setup(cmd *cobra.Command, _ []string) error {
	var cfg config.Config
	if configFile != "" {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			return err
		}
		cfg = *loaded
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	settings = cfg.MergeWithDefaults(config.Defaults())
	if verbose {
		settings.Verbose = true
	}

	level := logging.ParseLevel(settings.LogLevel, settings.Verbose)
	logger := logging.New(os.Stderr, level)
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
