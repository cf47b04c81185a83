package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/uniattend/internal/domain"
	"github.com/felixgeelhaar/uniattend/internal/errors"
	"github.com/felixgeelhaar/uniattend/internal/i18n"
	"github.com/felixgeelhaar/uniattend/internal/issuance"
	"github.com/felixgeelhaar/uniattend/internal/log"
	"github.com/felixgeelhaar/uniattend/internal/platform"
)

// Issuer asks the backend for a fresh code for a schedule.
type Issuer func(ctx context.Context, scheduleID domain.ID) (string, error)

// ScheduleInfo describes the class a code is issued for.
type ScheduleInfo struct {
	Subject string
	Group   string
	Teacher string
	Time    string
}

// QROptions configures a QRModel.
type QROptions struct {
	Schedule   domain.ID
	Info       ScheduleInfo
	Authorized bool
	Token      string
	Issue      Issuer

	Translator *i18n.Translator
	Logger     *log.Logger
	NoColor    bool
	Now        func() time.Time

	// OutPath receives the PNG of every issued code.
	OutPath string
	// Status receives one line per written code.
	Status io.Writer
	// Limit quits after that many codes. Zero runs until quit.
	Limit int
	// ExitOnError quits on the first failure instead of waiting for retry.
	ExitOnError bool
}

// Messages
type (
	mountMsg struct{}

	tickMsg struct {
		gen uint64
	}

	issuedMsg struct {
		gen uint64
		raw string
		err error
	}

	savedMsg struct {
		digest  string
		path    string
		expires time.Time
		err     error
	}
)

// QRModel is the attendance code screen. It owns one issuance.Loop and
// turns its effects into Bubble Tea commands.
type QRModel struct {
	opts    QROptions
	loop    issuance.Loop
	ctx     context.Context
	cancel  context.CancelFunc
	keys    KeyMap
	spinner spinner.Model
	styles  Styles
	tr      *i18n.Translator
	logger  *log.Logger

	art      string
	artErr   error
	issued   int
	saveErr  error
	quitting bool
}

// NewQRModel creates the screen. Requests run under a context derived
// from ctx that is cancelled when the screen is left.
func NewQRModel(ctx context.Context, opts QROptions) QRModel {
	if opts.Translator == nil {
		opts.Translator = i18n.New("")
	}
	if opts.Logger == nil {
		opts.Logger = log.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	styles := DefaultStyles()
	if opts.NoColor {
		styles = PlainStyles()
	}
	ctx, cancel := context.WithCancel(ctx)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Status

	return QRModel{
		opts:    opts,
		loop:    issuance.New(opts.Schedule),
		ctx:     ctx,
		cancel:  cancel,
		keys:    DefaultKeyMap(),
		spinner: sp,
		styles:  styles,
		tr:      opts.Translator,
		logger:  opts.Logger.With("schedule", opts.Schedule.String()),
	}
}

// Init mounts the loop (required by Bubble Tea)
func (m QRModel) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return mountMsg{} },
		m.spinner.Tick,
	)
}

// Update handles messages (required by Bubble Tea)
func (m QRModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mountMsg:
		next, eff := m.loop.Mount(m.opts.Authorized, m.opts.Token)
		return m.apply(next, eff)

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tickMsg:
		next, eff := m.loop.Tick(msg.gen)
		return m.apply(next, eff)

	case issuedMsg:
		next, eff := m.loop.Resolve(msg.gen, msg.raw, msg.err, m.opts.Now())
		return m.apply(next, eff)

	case savedMsg:
		if msg.err != nil {
			m.saveErr = msg.err
			m.logger.WithError(msg.err).Error("failed to write code", "path", msg.path)
			return m.quit()
		}
		if m.opts.Status != nil {
			fmt.Fprintln(m.opts.Status, m.tr.T(i18n.QRSaved, msg.digest, msg.path, msg.expires.Format("15:04:05")))
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m QRModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		next issuance.Loop
		eff  issuance.Effect
	)
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		return m.quit()
	case key.Matches(msg, m.keys.Stop):
		next, eff = m.loop.Stop()
	case key.Matches(msg, m.keys.Resume):
		next, eff = m.loop.Resume()
	case key.Matches(msg, m.keys.Retry):
		next, eff = m.loop.Retry()
	default:
		return m, nil
	}
	return m.apply(next, eff)
}

// apply installs the next loop state and runs its effect.
func (m QRModel) apply(next issuance.Loop, eff issuance.Effect) (tea.Model, tea.Cmd) {
	prev := m.loop
	m.loop = next

	var cmds []tea.Cmd
	if eff.Request {
		m.logger.DebugContext(m.ctx, "requesting code", "gen", eff.Gen)
		cmds = append(cmds, m.request(eff.Gen))
	}
	if eff.Arm {
		cmds = append(cmds, tick(eff.Gen))
	}

	if prev.State() == issuance.StateRequesting && next.State() == issuance.StateDisplaying {
		code, _ := next.Code()
		m.issued++
		m.art, m.artErr = renderCode(code)
		m.logger.InfoContext(m.ctx, "code issued", "digest", code.Digest, "count", m.issued)
		var save tea.Cmd
		if m.opts.OutPath != "" {
			save = saveCode(m.opts.OutPath, code)
			cmds = append(cmds, save)
		}
		if m.opts.Limit > 0 && m.issued >= m.opts.Limit {
			m = m.unmount()
			return m, tea.Sequence(save, tea.Quit)
		}
	}

	if next.State() == issuance.StateError && prev.State() != issuance.StateError {
		m.logger.WithError(next.Err()).WarnContext(m.ctx, "code issuance failed", "terminal", next.Terminal())
		if m.opts.ExitOnError {
			return m.quit()
		}
	}

	return m, tea.Batch(cmds...)
}

// request calls the issuer for gen. The call is bound to the screen's
// context so leaving the screen abandons it.
func (m QRModel) request(gen uint64) tea.Cmd {
	issue, ctx, ref := m.opts.Issue, m.ctx, m.loop.ScheduleRef()
	return func() tea.Msg {
		if issue == nil {
			return issuedMsg{gen: gen, err: errors.New(errors.ErrCodeIssueFailed, "no code issuer configured")}
		}
		raw, err := issue(ctx, ref)
		return issuedMsg{gen: gen, raw: raw, err: err}
	}
}

func tick(gen uint64) tea.Cmd {
	return tea.Tick(issuance.TickInterval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func saveCode(path string, code issuance.Code) tea.Cmd {
	return func() tea.Msg {
		data, err := code.Bytes()
		if err == nil {
			if werr := os.WriteFile(path, data, 0o644); werr != nil {
				err = errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to write code image", werr)
			}
		}
		return savedMsg{digest: code.Digest, path: path, expires: code.ExpiresAt(), err: err}
	}
}

func renderCode(code issuance.Code) (string, error) {
	data, err := code.Bytes()
	if err != nil {
		return "", err
	}
	return RenderPNG(data)
}

func (m QRModel) unmount() QRModel {
	m.loop = m.loop.Unmount()
	m.cancel()
	m.quitting = true
	return m
}

func (m QRModel) quit() (tea.Model, tea.Cmd) {
	m = m.unmount()
	return m, tea.Quit
}

// Loop returns the issuance state.
func (m QRModel) Loop() issuance.Loop { return m.loop }

// Issued counts the codes received.
func (m QRModel) Issued() int { return m.issued }

// Err returns the failure that ended or interrupted the screen.
func (m QRModel) Err() error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.loop.State() == issuance.StateError {
		return m.loop.Err()
	}
	return nil
}

// View renders the screen (required by Bubble Tea)
func (m QRModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.tr.T(i18n.QRTitle)))
	b.WriteString("\n")
	b.WriteString(m.renderInfo())

	switch m.loop.State() {
	case issuance.StateIdle:
		b.WriteString(m.spinner.View() + " " + m.tr.T(i18n.Loading) + "\n")
	case issuance.StateRequesting:
		b.WriteString(m.renderCode())
		text := i18n.QRRequesting
		if _, ok := m.loop.Code(); ok {
			text = i18n.QRRefreshing
		}
		b.WriteString(m.spinner.View() + " " + m.styles.Status.Render(m.tr.T(text)) + "\n")
	case issuance.StateDisplaying:
		b.WriteString(m.renderCode())
		b.WriteString(m.styles.Success.Render(m.tr.T(i18n.QRCountdown, m.loop.Countdown())) + "\n")
	case issuance.StateStopped:
		b.WriteString(m.renderCode())
		b.WriteString(m.styles.Warning.Render(m.tr.T(i18n.QRStopped)) + "\n")
	case issuance.StateError:
		b.WriteString(m.styles.Error.Render(m.ErrorText()) + "\n")
	}

	help := i18n.QRHelp
	if m.loop.Terminal() {
		help = i18n.QRHelpTerminal
	}
	b.WriteString(m.styles.Help.Render(m.tr.T(help)))
	b.WriteString("\n")
	return b.String()
}

func (m QRModel) renderInfo() string {
	info := m.opts.Info
	rows := []struct {
		label i18n.Key
		value string
	}{
		{i18n.HeaderSubject, info.Subject},
		{i18n.HeaderGroup, info.Group},
		{i18n.HeaderTeacher, info.Teacher},
		{i18n.HeaderStart, info.Time},
	}
	var b strings.Builder
	for _, r := range rows {
		if r.value == "" {
			continue
		}
		b.WriteString(m.styles.Label.Render(m.tr.T(r.label)))
		b.WriteString(m.styles.Value.Render(r.value))
		b.WriteString("\n")
	}
	return b.String()
}

func (m QRModel) renderCode() string {
	if _, ok := m.loop.Code(); !ok {
		return ""
	}
	if m.artErr != nil {
		return m.styles.Muted.Render(m.tr.Describe(m.artErr)) + "\n"
	}
	return m.styles.Code.Render(m.art) + "\n"
}

// ErrorText is the message shown for a failed issuance: the localized
// text when the session is gone, the backend's own text when it sent
// one, the localized text for other known failures, and a generic
// message otherwise.
func (m QRModel) ErrorText() string {
	err := m.loop.Err()
	if err == nil {
		return ""
	}
	code, coded := errors.CodeOf(err)
	if coded && (code == errors.ErrCodeSessionExpired || code == errors.ErrCodeNotLoggedIn) {
		return m.tr.Describe(err)
	}
	if msg, ok := platform.BackendMessage(err); ok {
		return msg
	}
	if coded {
		switch code {
		case errors.ErrCodeForbidden, errors.ErrCodeMissingContext, errors.ErrCodeNetwork:
			return m.tr.Describe(err)
		}
	}
	return m.tr.T(i18n.QRFailed)
}
