package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/uniattend/internal/attendance"
	"github.com/felixgeelhaar/uniattend/internal/authz"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show the attendance journal of a group in a subject",
	Long: `Show the attendance journal of a group in a subject.

Each row is a student, each column a class day. Days are ordered
chronologically.

Examples:
  uniattend journal --group 1 --subject 9
  uniattend journal --group 1 --subject 9 --format json --query 'rows[].name'`,
	Args: cobra.NoArgs,
	RunE: runJournal,
}

func init() {
	journalCmd.Flags().String("group", "", "group id")
	journalCmd.Flags().String("subject", "", "subject id")

	rootCmd.AddCommand(journalCmd)
}

func runJournal(cmd *cobra.Command, _ []string) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if _, err := a.Authz.Require(ctx, a.Session, authz.ActionJournalRead); err != nil {
		return err
	}

	groupFlag, _ := cmd.Flags().GetString("group")
	subjectFlag, _ := cmd.Flags().GetString("subject")
	groupID, err := parseID("--group", groupFlag)
	if err != nil {
		return err
	}
	subjectID, err := parseID("--subject", subjectFlag)
	if err != nil {
		return err
	}

	entries, err := a.Client.Journal(ctx, groupID, subjectID)
	if err != nil {
		return err
	}
	return a.Output(journalView(a.Translator, attendance.PivotJournal(entries, a.Location)))
}
