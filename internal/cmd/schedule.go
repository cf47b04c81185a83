package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/uniattend/internal/app"
	"github.com/felixgeelhaar/uniattend/internal/attendance"
	"github.com/felixgeelhaar/uniattend/internal/authz"
	"github.com/felixgeelhaar/uniattend/internal/domain"
	"github.com/felixgeelhaar/uniattend/internal/errors"
	"github.com/felixgeelhaar/uniattend/internal/i18n"
	"github.com/felixgeelhaar/uniattend/internal/platform"
	"github.com/felixgeelhaar/uniattend/internal/session"
	"github.com/felixgeelhaar/uniattend/internal/ux"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "List and create class sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var scheduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your classes",
	Long: `List the classes of the signed-in principal.

Teachers see the classes they run; students see the classes of their
group.`,
	Args: cobra.NoArgs,
	RunE: runScheduleList,
}

var scheduleCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a class session",
	Long: `Create a class session for a group and subject.

The time window is given either with --start and --end, or with --date
and one of the suggested --slot start times (see 'uniattend schedule
slots'). Teachers create classes for themselves; administrators name the
teacher with --lecturer or pick one from a list.

Examples:
  uniattend schedule create --subject 9 --group 1 --start 2024-05-01T08:00 --end 2024-05-01T09:00
  uniattend schedule create --subject 9 --group 1 --date 2024-05-01 --slot 10:00 --recurring`,
	Args: cobra.NoArgs,
	RunE: runScheduleCreate,
}

var scheduleSlotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Show the suggested hourly time slots",
	Args:  cobra.NoArgs,
	RunE:  runScheduleSlots,
}

func init() {
	f := scheduleCreateCmd.Flags()
	f.String("subject", "", "subject id")
	f.String("group", "", "group id")
	f.String("lecturer", "", "teacher id (administrators)")
	f.String("start", "", "start time, e.g. 2024-05-01T08:00")
	f.String("end", "", "end time, e.g. 2024-05-01T09:00")
	f.String("date", "", "class date for --slot, e.g. 2024-05-01")
	f.String("slot", "", "suggested slot start time, e.g. 08:00")
	f.Bool("recurring", false, "create a recurring series")

	scheduleCmd.AddCommand(scheduleListCmd, scheduleCreateCmd, scheduleSlotsCmd)
	rootCmd.AddCommand(scheduleCmd)
}

func runScheduleList(cmd *cobra.Command, _ []string) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	sess, err := a.Authz.Require(ctx, a.Session, authz.ActionScheduleRead)
	if err != nil {
		return err
	}

	schedules, err := schedulesFor(ctx, a, sess)
	if err != nil {
		return err
	}
	return a.Output(schedulesView(a.Translator, schedules, a.Location))
}

// schedulesFor picks the endpoint by role: teachers read their own
// classes, students the classes of their group.
func schedulesFor(ctx context.Context, a *app.App, sess *session.Session) ([]platform.Schedule, error) {
	switch {
	case sess.HasRole(domain.RoleTeacher):
		return a.Client.LecturerSchedule(ctx, sess.SubjectID)
	case sess.HasRole(domain.RoleStudent):
		if sess.GroupID.IsZero() {
			return nil, errors.New(errors.ErrCodeInputInvalid, "your profile has no group").
				WithSuggestion("Ask an administrator to assign you to a group")
		}
		return a.Client.GroupSchedule(ctx, sess.GroupID)
	default:
		return nil, errors.NewForbiddenError(domain.RoleTeacher, domain.RoleStudent)
	}
}

func runScheduleCreate(cmd *cobra.Command, _ []string) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	sess, err := a.Authz.Require(ctx, a.Session, authz.ActionScheduleCreate)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	subjectFlag, _ := flags.GetString("subject")
	groupFlag, _ := flags.GetString("group")
	lecturerFlag, _ := flags.GetString("lecturer")
	recurring, _ := flags.GetBool("recurring")

	subjectID, err := parseID("--subject", subjectFlag)
	if err != nil {
		return err
	}
	groupID, err := parseID("--group", groupFlag)
	if err != nil {
		return err
	}
	start, end, err := scheduleWindow(cmd, a)
	if err != nil {
		return err
	}
	lecturerID, err := resolveLecturer(ctx, a, sess, lecturerFlag)
	if err != nil {
		return err
	}

	msg, err := a.Client.CreateSchedule(ctx, platform.CreateScheduleRequest{
		SubjectID:  subjectID,
		StartTime:  attendance.WireTime(start),
		EndTime:    attendance.WireTime(end),
		GroupID:    groupID,
		LecturerID: lecturerID,
	}, recurring)
	if err != nil {
		return err
	}
	if msg == "" {
		msg = a.Translator.T(i18n.ScheduleCreated)
	}
	return a.Output(message{Message: msg})
}

// scheduleWindow reads --start/--end or --date/--slot.
func scheduleWindow(cmd *cobra.Command, a *app.App) (time.Time, time.Time, error) {
	flags := cmd.Flags()
	startFlag, _ := flags.GetString("start")
	endFlag, _ := flags.GetString("end")
	dateFlag, _ := flags.GetString("date")
	slotFlag, _ := flags.GetString("slot")

	var start, end time.Time
	if slotFlag != "" {
		slot, ok := attendance.FindSlot(slotFlag)
		if !ok {
			return start, end, errors.New(errors.ErrCodeInputInvalid, "--slot is not a suggested slot").
				WithSuggestion("See 'uniattend schedule slots'")
		}
		if dateFlag == "" {
			return start, end, errors.NewInputRequiredError("--date")
		}
		day, err := attendance.ParseTime(dateFlag, a.Location)
		if err != nil {
			return start, end, err
		}
		start, end, err = slot.On(day)
		if err != nil {
			return start, end, err
		}
	} else {
		if startFlag == "" {
			return start, end, errors.NewInputRequiredError("--start")
		}
		if endFlag == "" {
			return start, end, errors.NewInputRequiredError("--end")
		}
		var err error
		if start, err = attendance.ParseTime(startFlag, a.Location); err != nil {
			return start, end, err
		}
		if end, err = attendance.ParseTime(endFlag, a.Location); err != nil {
			return start, end, err
		}
	}

	if err := attendance.ValidateWindow(start, end); err != nil {
		return start, end, errors.Wrap(errors.ErrCodeInputInvalid, a.Translator.T(i18n.ScheduleTimeOrder), err)
	}
	return start, end, nil
}

// resolveLecturer returns the teacher the class is created for. Naming
// anyone but oneself needs the assign permission.
func resolveLecturer(ctx context.Context, a *app.App, sess *session.Session, flag string) (domain.ID, error) {
	if flag != "" {
		id, err := parseID("--lecturer", flag)
		if err != nil {
			return "", err
		}
		if id != sess.SubjectID {
			if _, err := a.Authz.Require(ctx, a.Session, authz.ActionScheduleAssign); err != nil {
				return "", err
			}
		}
		return id, nil
	}

	if sess.HasRole(domain.RoleTeacher) {
		return sess.SubjectID, nil
	}

	teachers, err := a.Client.ListTeachers(ctx)
	if err != nil {
		return "", err
	}
	if len(teachers) == 0 {
		return "", LecturerRequiredError()
	}
	choices := make([]ux.Choice, len(teachers))
	for i, t := range teachers {
		choices[i] = ux.Choice{Label: t.Name + " <" + t.Email + ">", Value: t.ID.String()}
	}
	picked, err := a.Prompter.Choose(ctx, a.Translator.T(i18n.SelectLecturer), choices)
	if err != nil {
		return "", err
	}
	return domain.ID(picked), nil
}

func runScheduleSlots(cmd *cobra.Command, _ []string) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	return a.Output(slotsView(a.Translator, attendance.Slots()))
}
