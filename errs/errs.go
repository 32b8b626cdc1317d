package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel values for the three failure conditions the repositories and
// tag-store operations can signal. Callers classify with errors.Is.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
)

// ApiErr wraps a sentinel with an HTTP status code and human-readable detail.
type ApiErr struct {
	StatusCode int
	err        error
	Details    string
}

// implements error interface. this allows us to pass an instance of ApiErr as
// an argument of type `error`
func (e *ApiErr) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.err.Error(), e.Details)
	}
	return e.err.Error()
}

// Unwrap makes errors.Is(err, sentinel) work for wrapped ApiErr values.
func (e *ApiErr) Unwrap() error {
	return e.err
}

// NewNotFound signals that a referenced Project/Issue/Tag does not exist.
func NewNotFound(details string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusNotFound, err: ErrNotFound, Details: details}
}

// NewAlreadyExists signals a unique-name or duplicate-content conflict.
func NewAlreadyExists(details string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusConflict, err: ErrAlreadyExists, Details: details}
}

// NewInvalidInput signals an empty, oversized or malformed field after
// normalization, or a value outside an enumerated set.
func NewInvalidInput(details string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusBadRequest, err: ErrInvalidInput, Details: details}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// StatusCode maps an error to the HTTP status the API layer should answer
// with. Unclassified errors map to 500.
func StatusCode(err error) int {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	switch {
	case IsNotFound(err):
		return http.StatusNotFound
	case IsAlreadyExists(err):
		return http.StatusConflict
	case IsInvalidInput(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
