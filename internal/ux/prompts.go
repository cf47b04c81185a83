package ux

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/charmbracelet/huh"

	"github.com/felixgeelhaar/uniattend/internal/errors"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = huh.ErrUserAborted

// Prompter asks the user for input. Commands depend on it so tests can
// substitute canned answers.
type Prompter interface {
	Confirm(ctx context.Context, title string) (bool, error)
	Credentials(ctx context.Context, title, email string) (string, string, error)
	Choose(ctx context.Context, title string, choices []Choice) (string, error)
}

// Choice is one option of Choose. Value is returned when it is picked.
type Choice struct {
	Label string
	Value string
}

// FormPrompter runs huh forms on the terminal.
type FormPrompter struct {
	In         io.Reader
	Out        io.Writer
	Accessible bool
	// Labels holds the localized field titles
	Labels PromptLabels
}

// PromptLabels are the visible strings of the prompts.
type PromptLabels struct {
	Email    string
	Password string
	Yes      string
	No       string
	Required string
}

func (p *FormPrompter) run(ctx context.Context, form *huh.Form) error {
	if p.In != nil {
		form = form.WithInput(p.In)
	}
	if p.Out != nil {
		form = form.WithOutput(p.Out)
	}
	err := form.WithAccessible(p.Accessible).RunWithContext(ctx)
	if stderrors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

// Confirm asks a yes/no question, defaulting to no.
func (p *FormPrompter) Confirm(ctx context.Context, title string) (bool, error) {
	var ok bool
	confirm := huh.NewConfirm().
		Title(title).
		Affirmative(orDefault(p.Labels.Yes, "Yes")).
		Negative(orDefault(p.Labels.No, "No")).
		Value(&ok)
	if err := p.run(ctx, huh.NewForm(huh.NewGroup(confirm))); err != nil {
		return false, err
	}
	return ok, nil
}

// Credentials asks for email and password. email pre-fills the form.
func (p *FormPrompter) Credentials(ctx context.Context, title, email string) (string, string, error) {
	var password string
	required := func(s string) error {
		if s == "" {
			return errors.New(errors.ErrCodeInputRequired, orDefault(p.Labels.Required, "required"))
		}
		return nil
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(orDefault(p.Labels.Email, "Email")).
				Value(&email).
				Validate(required),
			huh.NewInput().
				Title(orDefault(p.Labels.Password, "Password")).
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(required),
		).Title(title),
	)
	if err := p.run(ctx, form); err != nil {
		return "", "", err
	}
	return email, password, nil
}

// Choose asks the user to pick one of choices and returns its value.
func (p *FormPrompter) Choose(ctx context.Context, title string, choices []Choice) (string, error) {
	if len(choices) == 0 {
		return "", errors.New(errors.ErrCodeInputRequired, "nothing to choose from")
	}
	options := make([]huh.Option[string], 0, len(choices))
	for _, c := range choices {
		options = append(options, huh.NewOption(c.Label, c.Value))
	}
	value := choices[0].Value
	sel := huh.NewSelect[string]().
		Title(title).
		Options(options...).
		Value(&value)
	if err := p.run(ctx, huh.NewForm(huh.NewGroup(sel))); err != nil {
		return "", err
	}
	return value, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
