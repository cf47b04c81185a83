package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/uniattend/internal/app"
	"github.com/felixgeelhaar/uniattend/internal/domain"
	"github.com/felixgeelhaar/uniattend/internal/errors"
	"github.com/felixgeelhaar/uniattend/internal/ux"
)

// CommandContext holds the global flags of one invocation.
type CommandContext struct {
	APIURL   string
	Home     string
	Format   string
	Query    string
	NoColor  bool
	LogLevel string
	Locale   string
}

// NewCommandContext extracts the persistent flags from cmd.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	flags := cmd.Flags()

	apiURL, err := flags.GetString("api-url")
	if err != nil {
		return nil, err
	}
	home, err := flags.GetString("home")
	if err != nil {
		return nil, err
	}
	format, err := flags.GetString("format")
	if err != nil {
		return nil, err
	}
	query, err := flags.GetString("query")
	if err != nil {
		return nil, err
	}
	noColor, err := flags.GetBool("no-color")
	if err != nil {
		return nil, err
	}
	logLevel, err := flags.GetString("log-level")
	if err != nil {
		return nil, err
	}
	locale, err := flags.GetString("locale")
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		APIURL:   apiURL,
		Home:     home,
		Format:   format,
		Query:    query,
		NoColor:  noColor,
		LogLevel: logLevel,
		Locale:   locale,
	}, nil
}

// testHooks lets tests replace the terminal prompts and keep the
// developer's .env out of the run.
var testHooks struct {
	prompter ux.Prompter
	envFiles []string
}

// AppOptions maps the flags onto app.Options, wiring the command's
// streams.
func (cc *CommandContext) AppOptions(cmd *cobra.Command) app.Options {
	envFiles := testHooks.envFiles
	if envFiles == nil {
		envFiles = []string{}
		if path := ux.DiscoverEnvFile(); path != "" {
			envFiles = append(envFiles, path)
		}
	}
	return app.Options{
		Home:     cc.Home,
		EnvFiles: envFiles,
		APIURL:   cc.APIURL,
		Format:   cc.Format,
		Query:    cc.Query,
		NoColor:  cc.NoColor,
		LogLevel: cc.LogLevel,
		Locale:   cc.Locale,
		In:       cmd.InOrStdin(),
		Out:      cmd.OutOrStdout(),
		Err:      cmd.ErrOrStderr(),
		Prompter: testHooks.prompter,
	}
}

// appFrom returns the App built by setupApp.
func appFrom(cmd *cobra.Command) (*app.App, error) {
	a, ok := app.FromContext(cmd.Context())
	if !ok {
		return nil, errors.New(errors.ErrCodeConfigInvalid, "application state is not initialized")
	}
	return a, nil
}

// parseID validates an id given as flag or argument called name.
func parseID(name, value string) (domain.ID, error) {
	if value == "" {
		return "", errors.NewInputRequiredError(name)
	}
	id, err := domain.ParseID(value)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInputInvalid, fmt.Sprintf("invalid %s", name), err)
	}
	return id, nil
}
