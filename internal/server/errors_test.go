package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/feedback-quality/internal/schemas"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "items", Message: "duplicate question_id"}
	assert.Equal(t, "validation error: items - duplicate question_id", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrMalformedBody(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := &ErrMalformedBody{Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "too large", err: &ErrBodyTooLarge{Limit: 10}, expected: http.StatusRequestEntityTooLarge},
		{name: "schema", err: &schemas.ValidationError{Errors: []schemas.FieldError{{Field: "items", Message: "required"}}}, expected: http.StatusBadRequest},
		{name: "wrapped", err: fmt.Errorf("decoding: %w", &ErrValidation{Field: "x"}), expected: http.StatusBadRequest},
		{name: "batch item", err: &ErrBatchItem{Index: 3, Err: &ErrMalformedBody{Cause: errors.New("eof")}}, expected: http.StatusBadRequest},
		{name: "schema load", err: &schemas.SchemaLoadError{Path: "x"}, expected: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestErrorDetails(t *testing.T) {
	err := &schemas.ValidationError{Errors: []schemas.FieldError{
		{Field: "items.0.rating", Message: "Must be less than or equal to 5"},
	}}
	assert.Equal(t, []string{"items.0.rating: Must be less than or equal to 5"}, errorDetails(err))
	assert.Nil(t, errorDetails(errors.New("plain")))
}
