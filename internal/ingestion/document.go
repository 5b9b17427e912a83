package ingestion

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-fit/internal/schemas"
	"github.com/jonathan/resume-fit/internal/types"
)

// ParseError represents a document that could not be turned into a valid
// resume. Cause holds the schema, JSON or struct validation error.
type ParseError struct {
	Source  string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to parse %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Source, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// LoadDocument reads and parses a document file.
func LoadDocument(path string) (*types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return parse(path, data)
}

// ParseDocument validates raw JSON against the document schema, decodes it,
// normalizes it and validates the result.
func ParseDocument(data []byte) (*types.Document, error) {
	return parse("document", data)
}

func parse(source string, data []byte) (*types.Document, error) {
	if err := schemas.ValidateDocumentJSON(data); err != nil {
		return nil, &ParseError{Source: source, Message: "schema validation failed", Cause: err}
	}

	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Source: source, Message: "invalid JSON", Cause: err}
	}

	normalized, err := Normalize(&doc)
	if err != nil {
		return nil, &ParseError{Source: source, Message: "normalization failed", Cause: err}
	}
	if err := normalized.Validate(); err != nil {
		return nil, &ParseError{Source: source, Message: "invalid document", Cause: err}
	}
	return normalized, nil
}
