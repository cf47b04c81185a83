package exitcode

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/felixgeelhaar/uniattend/internal/errors"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error returns success", nil, Success},
		{"not logged in", errors.NewNotLoggedInError(), AuthError},
		{"session expired wrapped", fmt.Errorf("journal: %w", errors.NewSessionExpiredError(nil)), AuthError},
		{"forbidden", errors.NewForbiddenError("teacher"), AuthError},
		{"network", errors.Wrap(errors.ErrCodeNetwork, "unreachable", stderrors.New("dial tcp")), NetworkError},
		{"missing input", errors.NewInputRequiredError("group"), UsageError},
		{"bad config", errors.NewConfigInvalidError("storage.backend"), UsageError},
		{"api failure", errors.New(errors.ErrCodeAPIRequest, "500"), GeneralError},
		{"cancelled", fmt.Errorf("qr: %w", context.Canceled), Interrupted},
		{"cobra unknown command", stderrors.New(`unknown command "foo" for "uniattend"`), UsageError},
		{"cobra required flag", stderrors.New(`required flag(s) "group" not set`), UsageError},
		{"cobra args", stderrors.New("accepts 1 arg(s), received 0"), UsageError},
		{"plain error", stderrors.New("something broke"), GeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExitCode(tt.err); got != tt.expected {
				t.Errorf("DetermineExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	codes := []int{Success, GeneralError, UsageError, AuthError, NetworkError, Interrupted}
	for _, code := range codes {
		if desc := GetExitCodeDescription(code); desc == "Unknown error" {
			t.Errorf("code %d has no description", code)
		}
	}
	if GetExitCodeDescription(42) != "Unknown error" {
		t.Error("unmapped code should be unknown")
	}
}
