package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `{
	"personalInfo": {
		"firstName": "Ada",
		"lastName": "Lovelace",
		"email": "ada@example.com",
		"summary": "Analyst of the engine and author of the first published algorithm for it."
	},
	"experience": [
		{"id": "exp_1", "title": "Analyst", "company": "Engine Co", "startDate": "1842", "endDate": "1843", "description": "- Translated the memoir\n- Wrote the notes\n- Tabulated Bernoulli numbers"},
		{"id": "exp_2", "title": "Correspondent", "company": "Royal Society", "description": "Letters on mathematics and machinery."}
	],
	"education": [{"id": "edu_1", "institution": "Private tutors", "degree": "Mathematics"}],
	"skills": [{"name": "Mathematics"}, {"name": "Translation"}, {"name": "Music"}],
	"projects": [{"id": "proj_1", "name": "Note G", "technologies": ["Analytical Engine"], "description": "First published program."}]
}`

// getBinaryPath returns the path to the resume_fit binary for testing
func getBinaryPath(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", "resume_fit")
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/resume_fit ./cmd/resume_fit'", binaryPath)
	}
	return binaryPath
}

// writeDocument writes content to a temp file and returns its path.
func writeDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs the command tree in-process and returns stdout. Flags are
// reset first since cobra keeps their values between runs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithStdin(t, nil, args...)
}

// executeWithStdin is execute with stdin attached. A nil stdin leaves
// cobra reading os.Stdin.
func executeWithStdin(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(stdin)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
