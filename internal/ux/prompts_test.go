package ux

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/uniattend/internal/errors"
)

var _ Prompter = (*FormPrompter)(nil)

func TestChooseWithoutChoices(t *testing.T) {
	p := &FormPrompter{}
	_, err := p.Choose(context.Background(), "Select a teacher", nil)
	if !errors.HasCode(err, errors.ErrCodeInputRequired) {
		t.Fatalf("Choose() error = %v, want %s", err, errors.ErrCodeInputRequired)
	}
}

func TestOrDefault(t *testing.T) {
	if got := orDefault("", "Yes"); got != "Yes" {
		t.Errorf("orDefault(\"\") = %q", got)
	}
	if got := orDefault("Иә", "Yes"); got != "Иә" {
		t.Errorf("orDefault(\"Иә\") = %q", got)
	}
}
