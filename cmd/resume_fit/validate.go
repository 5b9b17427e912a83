package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-fit/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a resume document against its JSON Schema",
	Long:  "Validates a resume document JSON file against the built-in document schema, or against a schema file given with --schema.",
	RunE:  runValidate,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the built-in document JSON Schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), schemas.DocumentSchema())
		return err
	},
}

var (
	validateInput  string
	validateSchema string
)

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to the JSON file to validate, or - for stdin")
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Path to a JSON Schema file (default: built-in document schema)")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(schemaCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	var err error
	switch {
	case validateSchema != "" && validateInput != "-":
		err = schemas.ValidateJSON(validateSchema, validateInput)
	case validateSchema != "":
		err = validateStdinAgainst(cmd.InOrStdin(), validateSchema)
	default:
		var data []byte
		if data, err = readInput(cmd.InOrStdin(), validateInput); err != nil {
			return err
		}
		err = schemas.ValidateDocumentJSON(data)
	}

	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Validation failed: %v", err)
		return fmt.Errorf("%s is not a valid document", inputName(validateInput))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %s\n", inputName(validateInput))
	return nil
}

// validateStdinAgainst checks JSON read from stdin against a schema file.
func validateStdinAgainst(stdin io.Reader, schemaPath string) error {
	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("schema file not found: %w", err)
	}
	data, err := readInput(stdin, "-")
	if err != nil {
		return err
	}
	return schemas.ValidateJSONString(string(schema), string(data))
}

// readInput reads path, or stdin when path is "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func inputName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}
