package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/uniattend/internal/app"
	"github.com/felixgeelhaar/uniattend/internal/attendance"
	"github.com/felixgeelhaar/uniattend/internal/authz"
	"github.com/felixgeelhaar/uniattend/internal/domain"
	"github.com/felixgeelhaar/uniattend/internal/session"
	"github.com/felixgeelhaar/uniattend/internal/tui"
)

var qrCmd = &cobra.Command{
	Use:   "qr <scheduleId>",
	Short: "Show the rotating attendance QR code of a class",
	Long: `Show the attendance QR code of a class and refresh it every 10 seconds.

Students scan the code to mark themselves present. While the screen is
open:
  s      stop refreshing and keep the current code
  r      resume refreshing
  enter  retry after a failure
  q/esc  leave the screen

With --headless no screen is drawn: every issued code is written to
--out as PNG and one status line is printed per code. --count stops
after that many codes.

Examples:
  uniattend qr 55
  uniattend qr 55 --out code.png
  uniattend qr 55 --headless --out /srv/projector/code.png --count 30`,
	Args: cobra.ExactArgs(1),
	RunE: runQR,
}

func init() {
	qrCmd.Flags().String("out", "", "write every issued code to this PNG file")
	qrCmd.Flags().Bool("headless", false, "run without a screen (requires --out)")
	qrCmd.Flags().Int("count", 0, "stop after this many codes (0 runs until interrupted)")

	rootCmd.AddCommand(qrCmd)
}

func runQR(cmd *cobra.Command, args []string) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	scheduleID, err := parseID("scheduleId", args[0])
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")
	headless, _ := cmd.Flags().GetBool("headless")
	count, _ := cmd.Flags().GetInt("count")
	if headless && out == "" {
		return HeadlessOutputError()
	}

	sess, err := a.Session.Require()
	if err != nil {
		return err
	}

	opts := tui.QROptions{
		Schedule:   scheduleID,
		Info:       scheduleInfo(ctx, a, sess, scheduleID),
		Authorized: a.Authz.Evaluate(sess, authz.ActionQRGenerate).Allowed,
		Token:      a.Session.AccessToken(),
		Issue:      a.Client.GenerateQR,
		Translator: a.Translator,
		Logger:     a.Logger,
		NoColor:    a.Config.Output.NoColor,
		OutPath:    out,
		Limit:      count,
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(a.Out)}
	if headless {
		opts.ExitOnError = true
		opts.Status = a.Out
		programOpts = append(programOpts, tea.WithoutRenderer(), tea.WithInput(nil))
	} else {
		logger, err := a.ScreenLogger()
		if err != nil {
			return err
		}
		defer logger.Close()
		opts.Logger = logger
		programOpts = append(programOpts, tea.WithAltScreen(), tea.WithInput(a.In))
	}

	final, err := tea.NewProgram(tui.NewQRModel(ctx, opts), programOpts...).Run()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return err
	}
	model, ok := final.(tui.QRModel)
	if !ok {
		return nil
	}
	return model.Err()
}

// scheduleInfo looks the class up in the teacher's schedule for the
// screen header. The header is optional, so lookup failures are only
// logged.
func scheduleInfo(ctx context.Context, a *app.App, sess *session.Session, id domain.ID) tui.ScheduleInfo {
	if !sess.HasRole(domain.RoleTeacher) {
		return tui.ScheduleInfo{}
	}
	schedules, err := a.Client.LecturerSchedule(ctx, sess.SubjectID)
	if err != nil {
		a.Logger.WithError(err).DebugContext(ctx, "schedule lookup failed", "schedule", id.String())
		return tui.ScheduleInfo{}
	}
	for _, s := range schedules {
		if s.ID == id {
			return tui.ScheduleInfo{
				Subject: s.Subject,
				Group:   s.GroupName,
				Teacher: s.TeacherName,
				Time:    attendance.FormatRange(s.StartTime, s.EndTime, a.Location),
			}
		}
	}
	return tui.ScheduleInfo{}
}
