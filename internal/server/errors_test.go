package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/resume-fit/internal/geometry"
	"github.com/jonathan/resume-fit/internal/ingestion"
	"github.com/jonathan/resume-fit/internal/measure"
	"github.com/jonathan/resume-fit/internal/schemas"
	"github.com/stretchr/testify/assert"
)

func TestErrSessionNotFound(t *testing.T) {
	err := &ErrSessionNotFound{ID: "abc"}
	assert.Equal(t, "session not found: abc", err.Error())
}

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "page", Message: "must be positive"}
	assert.Equal(t, "validation error: page - must be positive", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "session not found", err: &ErrSessionNotFound{ID: "x"}, want: http.StatusNotFound},
		{name: "validation", err: &ErrValidation{Field: "f"}, want: http.StatusBadRequest},
		{name: "parse error", err: &ingestion.ParseError{Source: "document", Message: "bad"}, want: http.StatusBadRequest},
		{name: "schema error", err: &schemas.ValidationError{}, want: http.StatusBadRequest},
		{name: "unknown paper", err: fmt.Errorf("lookup: %w", geometry.ErrUnknownProfile), want: http.StatusBadRequest},
		{name: "wrapped measurement", err: fmt.Errorf("measuring: %w", &measure.Error{Provider: "browser"}), want: http.StatusBadGateway},
		{name: "timeout", err: fmt.Errorf("measuring: %w", context.DeadlineExceeded), want: http.StatusGatewayTimeout},
		{name: "too large", err: &http.MaxBytesError{Limit: 1}, want: http.StatusRequestEntityTooLarge},
		{name: "unknown", err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
