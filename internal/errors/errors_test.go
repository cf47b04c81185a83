package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidEmail, "email must contain @")

	if err.Code != ErrCodeInvalidEmail {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidEmail)
	}
	if err.Message != "email must contain @" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeNetwork, "backend unreachable", cause)

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *UniAttendError
		contains []string
		excludes []string
	}{
		{
			name:     "message only",
			err:      New(ErrCodeForbidden, "access denied"),
			contains: []string{"[AUTH-005]", "access denied"},
			excludes: []string{"Suggestions:", "Documentation:"},
		},
		{
			name:     "with cause",
			err:      Wrap(ErrCodeStorageFailed, "write failed", fmt.Errorf("disk full")),
			contains: []string{"[IO-003]", "write failed: disk full"},
		},
		{
			name: "with suggestions and docs",
			err: New(ErrCodeConfigInvalid, "bad backend").
				WithSuggestions("use file", "use redis").
				WithDocs("https://example.com/config"),
			contains: []string{"Suggestions:", "• use file", "• use redis", "Documentation: https://example.com/config"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Error() = %q, missing %q", got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("Error() = %q, should not contain %q", got, unwanted)
				}
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", NewSessionExpiredError(nil))

	code, ok := CodeOf(wrapped)
	if !ok || code != ErrCodeSessionExpired {
		t.Errorf("CodeOf() = %v, %v; want %v, true", code, ok, ErrCodeSessionExpired)
	}

	if _, ok := CodeOf(stderrors.New("plain")); ok {
		t.Error("CodeOf() on a plain error should report false")
	}
}

func TestHasCode(t *testing.T) {
	inner := New(ErrCodeAPIRequest, "401")
	outer := NewSessionExpiredError(inner)

	if !HasCode(outer, ErrCodeSessionExpired) {
		t.Error("outer code not found")
	}
	if !HasCode(outer, ErrCodeAPIRequest) {
		t.Error("inner code not found through the cause chain")
	}
	if HasCode(outer, ErrCodeNetwork) {
		t.Error("unexpected code match")
	}
	if HasCode(nil, ErrCodeNetwork) {
		t.Error("nil error should not match")
	}
}

func TestCategory(t *testing.T) {
	tests := map[ErrorCode]string{
		ErrCodeNotLoggedIn:    "AUTH",
		ErrCodeSessionExpired: "SESSION",
		ErrCodeMissingContext: "QR",
		ErrCodeNetwork:        "NET",
		ErrorCode("bare"):     "bare",
	}
	for code, want := range tests {
		if got := code.Category(); got != want {
			t.Errorf("%s.Category() = %q, want %q", code, got, want)
		}
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *UniAttendError
		code ErrorCode
	}{
		{"not logged in", NewNotLoggedInError(), ErrCodeNotLoggedIn},
		{"session expired", NewSessionExpiredError(nil), ErrCodeSessionExpired},
		{"forbidden", NewForbiddenError("teacher", "admin"), ErrCodeForbidden},
		{"missing context", NewMissingContextError("schedule id"), ErrCodeMissingContext},
		{"input required", NewInputRequiredError("email"), ErrCodeInputRequired},
		{"config invalid", NewConfigInvalidError("storage.backend"), ErrCodeConfigInvalid},
		{"storage", NewStorageError("write", stderrors.New("boom")), ErrCodeStorageFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.code)
			}
			if tt.err.Message == "" {
				t.Error("Message should not be empty")
			}
		})
	}

	if !strings.Contains(NewForbiddenError("teacher", "admin").Message, "teacher or admin") {
		t.Error("forbidden message should list the accepted roles")
	}
}
