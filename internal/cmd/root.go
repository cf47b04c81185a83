package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/uniattend/internal/app"
	"github.com/felixgeelhaar/uniattend/internal/i18n"
)

// noAppAnnotation marks commands that run without session or backend.
const noAppAnnotation = "uniattend/no-app"

var rootCmd = &cobra.Command{
	Use:   "uniattend",
	Short: "Attendance tracking from the terminal",
	Long: `uniattend is the terminal client of the UniAttend attendance service.

Teachers issue rotating attendance QR codes for their classes, manage
schedules, groups and subjects, and read journals and statistics.
Students see the schedule of their group. Administrators manage
participants.

Get started:
  uniattend login
  uniattend schedule list
  uniattend qr <scheduleId>`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupApp,
}

// ExecuteContext runs the command line. Failures are printed localized
// and returned for exit code mapping.
func ExecuteContext(ctx context.Context) error {
	ctx, slot := withSlot(ctx)
	err := rootCmd.ExecuteContext(ctx)

	tr := slot.translator()
	if slot.app != nil {
		defer slot.app.Close()
	}
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		printError(rootCmd.ErrOrStderr(), tr, err)
	}
	return err
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("api-url", "", "backend base URL (overrides api_url)")
	flags.String("home", "", "uniattend home directory (default $UNIATTEND_HOME or ~/.uniattend)")
	flags.String("format", "", "output format: text, json or yaml")
	flags.String("query", "", "JMESPath expression applied to json/yaml output")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("locale", "", "message language: en, kk or ru")
}

// setupApp builds the App once for the executing command.
func setupApp(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[noAppAnnotation] == "true" {
		return nil
	}

	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	// Subcommands keep the context of an earlier Execute; the root always
	// carries the current one.
	ctx := cmd.Root().Context()
	a, err := app.New(ctx, cc.AppOptions(cmd))
	if err != nil {
		return err
	}
	if slot, ok := slotFrom(ctx); ok {
		slot.app = a
	}
	cmd.SetContext(app.WithContext(ctx, a))
	return nil
}

// localeFlag returns --locale without building the App.
func localeFlag() string {
	locale, _ := rootCmd.PersistentFlags().GetString("locale")
	return locale
}

type appSlot struct {
	app *app.App
}

func (s *appSlot) translator() *i18n.Translator {
	if s.app != nil {
		return s.app.Translator
	}
	return i18n.New(localeFlag())
}

type slotKey struct{}

func withSlot(ctx context.Context) (context.Context, *appSlot) {
	slot := &appSlot{}
	return context.WithValue(ctx, slotKey{}, slot), slot
}

func slotFrom(ctx context.Context) (*appSlot, bool) {
	slot, ok := ctx.Value(slotKey{}).(*appSlot)
	return slot, ok
}
