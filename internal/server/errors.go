package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-fit/internal/geometry"
	"github.com/jonathan/resume-fit/internal/ingestion"
	"github.com/jonathan/resume-fit/internal/measure"
	"github.com/jonathan/resume-fit/internal/schemas"
)

// ErrSessionNotFound indicates the session ID is unknown or was deleted
type ErrSessionNotFound struct {
	ID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound    *ErrSessionNotFound
		invalid     *ErrValidation
		parseErr    *ingestion.ParseError
		schemaErr   *schemas.ValidationError
		fieldErrs   validator.ValidationErrors
		measureErr  *measure.Error
		maxBytesErr *http.MaxBytesError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &invalid),
		errors.As(err, &parseErr),
		errors.As(err, &schemaErr),
		errors.As(err, &fieldErrs),
		errors.Is(err, geometry.ErrUnknownProfile):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &measureErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
