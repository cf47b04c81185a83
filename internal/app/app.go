// Package app assembles the state shared by every command of one process:
// configuration, logger, session store, backend client and authorizer.
package app

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/felixgeelhaar/uniattend/internal/authz"
	"github.com/felixgeelhaar/uniattend/internal/config"
	"github.com/felixgeelhaar/uniattend/internal/contract"
	"github.com/felixgeelhaar/uniattend/internal/errors"
	"github.com/felixgeelhaar/uniattend/internal/i18n"
	"github.com/felixgeelhaar/uniattend/internal/log"
	"github.com/felixgeelhaar/uniattend/internal/platform"
	"github.com/felixgeelhaar/uniattend/internal/session"
	"github.com/felixgeelhaar/uniattend/internal/storage"
	"github.com/felixgeelhaar/uniattend/internal/ux"
	"github.com/felixgeelhaar/uniattend/internal/version"
)

// Options are the command-line overrides applied over the loaded
// configuration. Empty values keep the configured setting.
type Options struct {
	Home     string
	EnvFiles []string
	APIURL   string
	Format   string
	Query    string
	NoColor  bool
	LogLevel string
	Locale   string

	In  io.Reader
	Out io.Writer
	Err io.Writer

	// HTTPClient replaces the default transport.
	HTTPClient *http.Client
	// Prompter replaces the interactive huh forms.
	Prompter ux.Prompter
}

// App is the application state.
type App struct {
	Config     config.Config
	Home       string
	ConfigPath string

	Logger     *log.Logger
	Translator *i18n.Translator
	Storage    storage.Store
	Session    *session.Store
	Client     *platform.Client
	Authz      *authz.Engine
	Formatter  ux.Formatter
	Prompter   ux.Prompter
	Location   *time.Location

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// New loads configuration, opens session storage, restores the session
// and builds the backend client. A 401 from the backend logs the session
// out.
func New(ctx context.Context, opts Options) (*App, error) {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}

	loaded, err := config.Load(config.Options{Home: opts.Home, EnvFiles: opts.EnvFiles})
	if err != nil {
		return nil, err
	}
	cfg := loaded.Config
	applyOverrides(&cfg, opts)
	cfg.Sanitize(loaded.Home)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	info := version.GetInfo()
	logCfg, err := log.FromSettings(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.File, info.Version)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, "invalid logging settings", err)
	}
	if cfg.Logging.File == "" {
		logCfg.Output = log.NewOutput(opts.Err)
	}
	logger := log.New(logCfg)
	log.SetDefaultLogger(logger)

	formatter, err := ux.NewFormatter(cfg.Output.Format, &ux.FormatterOptions{
		Writer:  opts.Out,
		NoColor: cfg.Output.NoColor,
		Query:   opts.Query,
	})
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	st, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		_ = logger.Close()
		return nil, errors.NewStorageError("open", err)
	}

	a := &App{
		Config:     cfg,
		Home:       loaded.Home,
		ConfigPath: loaded.Path,
		Logger:     logger,
		Translator: i18n.New(cfg.Locale),
		Storage:    st,
		Formatter:  formatter,
		Location:   time.Local,
		In:         opts.In,
		Out:        opts.Out,
		Err:        opts.Err,
	}

	a.Session = session.NewStore(st,
		session.WithRoleCatalog(cfg.RoleCatalog()),
		session.WithLogger(logger.With("component", "session")),
	)

	validator, err := contract.NewValidator(ctx, cfg.APIURL)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	clientOpts := []platform.Option{
		platform.WithTimeout(cfg.HTTPTimeout),
		platform.WithTokenSource(a.Session.AccessToken),
		platform.WithUnauthorizedHandler(a.expire),
		platform.WithUserAgent(info.UserAgent()),
		platform.WithLogger(logger.With("component", "platform")),
		platform.WithRequestValidator(validator),
	}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, platform.WithHTTPClient(opts.HTTPClient))
	}
	a.Client = platform.NewClient(cfg.APIURL, clientOpts...)
	a.Authz = authz.NewEngine(logger.With("component", "authz"))

	a.Prompter = opts.Prompter
	if a.Prompter == nil {
		a.Prompter = &ux.FormPrompter{
			In:  opts.In,
			Out: opts.Err,
			Labels: ux.PromptLabels{
				Email:    a.Translator.T(i18n.LoginEmail),
				Password: a.Translator.T(i18n.LoginPassword),
				Required: a.Translator.T(i18n.FieldsRequired),
			},
		}
	}

	if err := a.Session.Hydrate(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}

	logger.DebugContext(ctx, "application ready",
		"api_url", cfg.APIURL,
		"storage", cfg.Storage.Backend,
		"locale", a.Translator.Tag().String(),
	)
	return a, nil
}

func applyOverrides(cfg *config.Config, opts Options) {
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}
	if opts.Format != "" {
		cfg.Output.Format = opts.Format
	}
	if opts.NoColor {
		cfg.Output.NoColor = true
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.Locale != "" {
		cfg.Locale = opts.Locale
	}
}

// expire is the client's unauthorized handler.
func (a *App) expire(ctx context.Context) {
	a.Logger.WarnContext(ctx, "backend rejected the access token, signing out")
	if err := a.Session.Logout(ctx); err != nil {
		a.Logger.WithError(err).WarnContext(ctx, "failed to clear session")
	}
}

// Output writes data with the configured formatter.
func (a *App) Output(data any) error {
	return a.Formatter.Format(data)
}

// Text reports whether output is human-readable text.
func (a *App) Text() bool {
	_, ok := a.Formatter.(*ux.TextFormatter)
	return ok
}

// ScreenLogger returns a logger writing to the log file, for full-screen
// programs that own the terminal. The caller closes it.
func (a *App) ScreenLogger() (*log.Logger, error) {
	cfg, err := log.FromSettings(a.Config.Logging.Level, a.Config.Logging.Format,
		a.Config.LogFile(a.Home), version.GetInfo().Version)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to open log file", err)
	}
	return log.New(cfg), nil
}

// Close releases storage and the log file.
func (a *App) Close() error {
	var first error
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			first = err
		}
	}
	if a.Logger != nil {
		if err := a.Logger.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type contextKey struct{}

// WithContext returns ctx carrying a.
func WithContext(ctx context.Context, a *App) context.Context {
	return context.WithValue(ctx, contextKey{}, a)
}

// FromContext returns the App stored by WithContext.
func FromContext(ctx context.Context) (*App, bool) {
	a, ok := ctx.Value(contextKey{}).(*App)
	return a, ok && a != nil
}
