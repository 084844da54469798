package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-reviewer/internal/agents"
	"github.com/jonathan/resume-reviewer/internal/fetch"
	"github.com/jonathan/resume-reviewer/internal/project"
	"github.com/jonathan/resume-reviewer/internal/workflow"
)

// ErrAgentsUnavailable is returned by agent endpoints when the server was
// started without an LLM API key.
var ErrAgentsUnavailable = errors.New("LLM agents are not configured (set GEMINI_API_KEY)")

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		fieldErrs     validator.ValidationErrors
		requestErr    *workflow.RequestError
		outputErr     *agents.OutputError
		apiErr        *agents.APICallError
		fetchErr      *fetch.Error
	)
	switch {
	case errors.Is(err, project.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, project.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, project.ErrInvalidName),
		errors.As(err, &validationErr),
		errors.As(err, &fieldErrs),
		errors.As(err, &requestErr):
		return http.StatusBadRequest
	case errors.Is(err, ErrAgentsUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &outputErr), errors.As(err, &apiErr), errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
