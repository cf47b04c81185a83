package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/uniattend/internal/authz"
)

var statsCmd = &cobra.Command{
	Use:   "stats <scheduleId>",
	Short: "Show who attended a class",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if _, err := a.Authz.Require(ctx, a.Session, authz.ActionStatsRead); err != nil {
		return err
	}

	scheduleID, err := parseID("scheduleId", args[0])
	if err != nil {
		return err
	}
	stats, err := a.Client.ScheduleStats(ctx, scheduleID)
	if err != nil {
		return err
	}
	return a.Output(statsView(a.Translator, stats))
}
