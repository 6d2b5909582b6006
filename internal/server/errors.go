package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/feedback-quality/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrMalformedBody indicates the body is not decodable JSON of the expected shape.
type ErrMalformedBody struct {
	Cause error
}

func (e *ErrMalformedBody) Error() string {
	return fmt.Sprintf("malformed request body: %v", e.Cause)
}

func (e *ErrMalformedBody) Unwrap() error {
	return e.Cause
}

// ErrBodyTooLarge indicates the body exceeded the size limit.
type ErrBodyTooLarge struct {
	Limit int64
}

func (e *ErrBodyTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// ErrBatchItem attributes an error to one element of a batch request.
type ErrBatchItem struct {
	Index int
	Err   error
}

func (e *ErrBatchItem) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ErrBatchItem) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation *ErrValidation
		malformed  *ErrMalformedBody
		tooLarge   *ErrBodyTooLarge
		schemaErr  *schemas.ValidationError
		fieldErrs  validator.ValidationErrors
	)
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &validation), errors.As(err, &malformed),
		errors.As(err, &schemaErr), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorDetails lists per-field problems for validation errors.
func errorDetails(err error) []string {
	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		details := make([]string, 0, len(schemaErr.Errors))
		for _, fe := range schemaErr.Errors {
			details = append(details, fe.Field+": "+fe.Message)
		}
		return details
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, fmt.Sprintf("%s: failed %q", strings.TrimPrefix(fe.Namespace(), "ResponseSet."), fe.Tag()))
		}
		return details
	}
	return nil
}

// errorResponse writes an error JSON response derived from err.
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	body := map[string]any{"error": http.StatusText(status)}
	if status < http.StatusInternalServerError {
		body["message"] = err.Error()
		if details := errorDetails(err); len(details) > 0 {
			body["message"] = "request failed validation"
			body["details"] = details
		}

		var item *ErrBatchItem
		if errors.As(err, &item) {
			body["item"] = item.Index
			if _, ok := body["details"]; ok {
				body["message"] = fmt.Sprintf("item %d: request failed validation", item.Index)
			}
		}
	}
	s.jsonResponse(w, status, body)
}
