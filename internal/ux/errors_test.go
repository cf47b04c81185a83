package ux

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/felixgeelhaar/uniattend/internal/errors"
)

func TestNewErrorWithSuggestion(t *testing.T) {
	if NewErrorWithSuggestion(nil, "anything") != nil {
		t.Error("nil error should stay nil")
	}

	err := NewErrorWithSuggestion(stderrors.New("something failed"), "try this fix")
	if !strings.Contains(err.Error(), "something failed") || !strings.Contains(err.Error(), "try this fix") {
		t.Errorf("Error() = %q", err.Error())
	}

	plain := NewErrorWithSuggestion(stderrors.New("something failed"), "")
	if plain.Error() != "something failed" {
		t.Errorf("Error() = %q, want the bare message", plain.Error())
	}
}

func TestErrorWithSuggestionUnwrap(t *testing.T) {
	base := stderrors.New("base")
	err := NewErrorWithSuggestion(base, "hint")
	if !stderrors.Is(err, base) {
		t.Error("errors.Is should see through ErrorWithSuggestion")
	}
}

func TestEnhanceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantSubstr string
	}{
		{"connection refused", stderrors.New("dial tcp 127.0.0.1:8080: connect: connection refused"), "api_url"},
		{"timeout", stderrors.New("context deadline exceeded"), "http_timeout"},
		{"permission", stderrors.New("open /root/.uniattend/session.json: permission denied"), "config path"},
		{"tty", stderrors.New("could not open a new TTY"), "--headless"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnhanceError(tt.err)
			if !strings.Contains(got.Error(), tt.wantSubstr) {
				t.Errorf("EnhanceError() = %q, want it to mention %q", got.Error(), tt.wantSubstr)
			}
		})
	}
}

func TestEnhanceErrorLeavesOthersAlone(t *testing.T) {
	if EnhanceError(nil) != nil {
		t.Error("nil should stay nil")
	}

	plain := stderrors.New("unrelated")
	if EnhanceError(plain) != plain {
		t.Error("unknown errors should be returned unchanged")
	}

	coded := errors.Wrap(errors.ErrCodeNetwork, "failed", stderrors.New("connection refused"))
	if EnhanceError(coded) != error(coded) {
		t.Error("coded errors should be returned unchanged")
	}
}
