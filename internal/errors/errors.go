package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeInvalidEmail       ErrorCode = "AUTH-001"
	ErrCodePasswordTooShort   ErrorCode = "AUTH-002"
	ErrCodeInvalidCredentials ErrorCode = "AUTH-003"
	ErrCodeNotLoggedIn        ErrorCode = "AUTH-004"
	ErrCodeForbidden          ErrorCode = "AUTH-005"

	// Session errors (SESSION-001 to SESSION-099)
	ErrCodeSessionExpired ErrorCode = "SESSION-001"
	ErrCodeSessionInvalid ErrorCode = "SESSION-002"
	ErrCodeSessionCorrupt ErrorCode = "SESSION-003"
	ErrCodeSessionLoading ErrorCode = "SESSION-004"

	// Attendance code errors (QR-001 to QR-099)
	ErrCodeMissingContext ErrorCode = "QR-001"
	ErrCodeCodeUnreadable ErrorCode = "QR-002"
	ErrCodeIssueFailed    ErrorCode = "QR-003"

	// Backend errors (API-001 to API-099)
	ErrCodeAPIRequest  ErrorCode = "API-001"
	ErrCodeAPIDecode   ErrorCode = "API-002"
	ErrCodeAPIContract ErrorCode = "API-003"

	// Network errors (NET-001 to NET-099)
	ErrCodeNetwork ErrorCode = "NET-001"

	// Input errors (INPUT-001 to INPUT-099)
	ErrCodeInputRequired ErrorCode = "INPUT-001"
	ErrCodeInputInvalid  ErrorCode = "INPUT-002"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigInvalid    ErrorCode = "CONFIG-001"
	ErrCodeConfigUnknownKey ErrorCode = "CONFIG-002"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileReadFailed  ErrorCode = "IO-001"
	ErrCodeFileWriteFailed ErrorCode = "IO-002"
	ErrCodeStorageFailed   ErrorCode = "IO-003"
)

// UniAttendError is an error with a code, suggestions and an optional docs link
type UniAttendError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *UniAttendError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)

	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			fmt.Fprintf(&b, "\n  • %s", suggestion)
		}
	}

	if e.DocsURL != "" {
		fmt.Fprintf(&b, "\n\nDocumentation: %s", e.DocsURL)
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *UniAttendError) Unwrap() error {
	return e.Cause
}

// New creates a new UniAttendError
func New(code ErrorCode, message string) *UniAttendError {
	return &UniAttendError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new UniAttendError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *UniAttendError {
	return &UniAttendError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *UniAttendError) WithSuggestion(suggestion string) *UniAttendError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *UniAttendError) WithSuggestions(suggestions ...string) *UniAttendError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *UniAttendError) WithDocs(url string) *UniAttendError {
	e.DocsURL = url
	return e
}

// CodeOf returns the code of the outermost UniAttendError in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var uaErr *UniAttendError
	if stderrors.As(err, &uaErr) {
		return uaErr.Code, true
	}
	return "", false
}

// HasCode reports whether any UniAttendError in err's chain carries code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		var uaErr *UniAttendError
		if !stderrors.As(err, &uaErr) {
			return false
		}
		if uaErr.Code == code {
			return true
		}
		err = uaErr.Cause
	}
	return false
}

// Category returns the prefix of a code ("AUTH", "NET", ...).
func (c ErrorCode) Category() string {
	s := string(c)
	if i := strings.IndexByte(s, '-'); i > 0 {
		return s[:i]
	}
	return s
}

// Common error constructors for frequently used errors

// NewNotLoggedInError is returned when a command needs a session and there is none
func NewNotLoggedInError() *UniAttendError {
	return New(ErrCodeNotLoggedIn, "not logged in").
		WithSuggestion("Run 'uniattend login' to sign in")
}

// NewSessionExpiredError is returned after the backend rejected the stored token
func NewSessionExpiredError(cause error) *UniAttendError {
	return Wrap(ErrCodeSessionExpired, "session expired, sign in again", cause).
		WithSuggestion("Run 'uniattend login' to start a new session")
}

// NewForbiddenError is returned when the principal lacks every required role
func NewForbiddenError(roles ...string) *UniAttendError {
	return New(ErrCodeForbidden, fmt.Sprintf("access denied: requires role %s", strings.Join(roles, " or "))).
		WithSuggestion("Run 'uniattend whoami' to see your roles")
}

// NewMissingContextError is returned when a screen is opened without the data it needs
func NewMissingContextError(detail string) *UniAttendError {
	return New(ErrCodeMissingContext, fmt.Sprintf("not enough data to generate the QR code: %s", detail))
}

// NewInputRequiredError is returned when a required flag or field is empty
func NewInputRequiredError(field string) *UniAttendError {
	return New(ErrCodeInputRequired, fmt.Sprintf("%s is required", field)).
		WithSuggestion(fmt.Sprintf("Provide %s", field))
}

// NewConfigInvalidError creates a configuration validation error
func NewConfigInvalidError(details string) *UniAttendError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", details)).
		WithSuggestion("Run 'uniattend config view' to inspect the effective configuration").
		WithSuggestion("Check UNIATTEND_* environment variables and .env")
}

// NewStorageError wraps a failure of the durable session storage
func NewStorageError(op string, cause error) *UniAttendError {
	return Wrap(ErrCodeStorageFailed, fmt.Sprintf("session storage %s failed", op), cause).
		WithSuggestion("Check the storage backend settings with 'uniattend config view'")
}
