package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/uniattend/internal/errors"
	"github.com/felixgeelhaar/uniattend/internal/i18n"
	"github.com/felixgeelhaar/uniattend/internal/ux"
)

// ErrorWithSuggestion wraps an error with actionable recovery suggestions
type ErrorWithSuggestion struct {
	Message     string
	Suggestions []string
	err         error
}

func (e *ErrorWithSuggestion) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, s := range e.Suggestions {
			b.WriteString("\n  • ")
			b.WriteString(s)
		}
	}

	if e.err != nil {
		b.WriteString("\n\nDetails: ")
		b.WriteString(e.err.Error())
	}

	return b.String()
}

func (e *ErrorWithSuggestion) Unwrap() error {
	return e.err
}

// NewErrorWithSuggestions creates an error with recovery suggestions
func NewErrorWithSuggestions(msg string, err error, suggestions ...string) error {
	return &ErrorWithSuggestion{
		Message:     msg,
		Suggestions: suggestions,
		err:         err,
	}
}

// LecturerRequiredError is returned when an administrator creates a
// schedule without naming the teacher.
func LecturerRequiredError() error {
	return NewErrorWithSuggestions(
		"Choose the teacher who runs this class",
		errors.NewInputRequiredError("--lecturer"),
		"List teachers: uniattend user teachers",
		"Pass the teacher id: uniattend schedule create --lecturer <id> ...",
	)
}

// HeadlessOutputError is returned when --headless is used without --out.
func HeadlessOutputError() error {
	return NewErrorWithSuggestions(
		"Headless mode writes every code to a file",
		errors.NewInputRequiredError("--out"),
		"Pass a target file: uniattend qr <scheduleId> --headless --out code.png",
	)
}

// printError writes err for the user: the localized message first, then
// the suggestions found in the chain.
func printError(w io.Writer, tr *i18n.Translator, err error) {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, ux.ErrAborted) {
		fmt.Fprintln(w, tr.T(i18n.Cancelled))
		return
	}

	var withSuggestions *ErrorWithSuggestion
	if stderrors.As(err, &withSuggestions) {
		fmt.Fprintln(w, tr.T(i18n.ErrorPrefix, withSuggestions.Message))
		if withSuggestions.err != nil {
			fmt.Fprintf(w, "  %s\n", tr.Describe(withSuggestions.err))
		}
		printSuggestions(w, withSuggestions.Suggestions)
		return
	}

	fmt.Fprintln(w, tr.T(i18n.ErrorPrefix, tr.Describe(err)))

	var suggestions []string
	var uaErr *errors.UniAttendError
	if stderrors.As(err, &uaErr) {
		suggestions = append(suggestions, uaErr.Suggestions...)
	}
	var uxErr *ux.ErrorWithSuggestion
	if stderrors.As(ux.EnhanceError(err), &uxErr) && uxErr.Suggestion != "" {
		suggestions = append(suggestions, uxErr.Suggestion)
	}
	printSuggestions(w, suggestions)
}

func printSuggestions(w io.Writer, suggestions []string) {
	for _, s := range suggestions {
		fmt.Fprintf(w, "  • %s\n", s)
	}
}
