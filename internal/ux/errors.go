package ux

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/uniattend/internal/errors"
)

// ErrorWithSuggestion wraps an error with helpful recovery suggestions
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface
func (e *ErrorWithSuggestion) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v\n\nSuggestion: %s", e.Err, e.Suggestion)
	}
	return e.Err.Error()
}

// Unwrap provides access to the underlying error
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// NewErrorWithSuggestion creates a new error with a suggestion
func NewErrorWithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
	}
}

// EnhanceError adds a suggestion to plain errors that match a known
// failure. Coded errors already carry their own suggestions and are
// returned as is.
func EnhanceError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.CodeOf(err); ok {
		return err
	}

	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "connection refused") || strings.Contains(errMsg, "no such host"):
		return NewErrorWithSuggestion(err,
			"Check that the backend is running and api_url points at it: uniattend config get api_url")
	case strings.Contains(errMsg, "deadline exceeded") || strings.Contains(errMsg, "Client.Timeout"):
		return NewErrorWithSuggestion(err,
			"The backend is slow to answer; raise http_timeout with 'uniattend config set http_timeout 30s'")
	case strings.Contains(errMsg, "permission denied"):
		return NewErrorWithSuggestion(err,
			"Check permissions of the uniattend home directory (see 'uniattend config path')")
	case strings.Contains(errMsg, "could not open a new TTY") || strings.Contains(errMsg, "not a terminal"):
		return NewErrorWithSuggestion(err,
			"Pass the values as flags, or use --headless for the QR screen")
	}
	return err
}
