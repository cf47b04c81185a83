package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/uniattend/internal/authz"
	"github.com/felixgeelhaar/uniattend/internal/i18n"
)

var subjectCmd = &cobra.Command{
	Use:     "subject",
	Aliases: []string{"subjects"},
	Short:   "Manage subjects",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var subjectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subjects",
	Args:  cobra.NoArgs,
	RunE:  runSubjectList,
}

var subjectCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a subject",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSubjectCreate,
}

var subjectDeleteCmd = &cobra.Command{
	Use:   "delete <subjectId>",
	Short: "Delete a subject",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubjectDelete,
}

func init() {
	subjectDeleteCmd.Flags().BoolP("yes", "y", false, "delete without asking")

	subjectCmd.AddCommand(subjectListCmd, subjectCreateCmd, subjectDeleteCmd)
	rootCmd.AddCommand(subjectCmd)
}

func runSubjectList(cmd *cobra.Command, _ []string) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if _, err := a.Authz.Require(ctx, a.Session, authz.ActionSubjectRead); err != nil {
		return err
	}
	subjects, err := a.Client.ListSubjects(ctx)
	if err != nil {
		return err
	}
	return a.Output(subjectsView(a.Translator, subjects))
}

func runSubjectCreate(cmd *cobra.Command, args []string) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if _, err := a.Authz.Require(ctx, a.Session, authz.ActionSubjectWrite); err != nil {
		return err
	}

	name, err := nameArg(a, args, i18n.SubjectNameRequired)
	if err != nil {
		return err
	}
	subject, err := a.Client.CreateSubject(ctx, name)
	if err != nil {
		return err
	}
	return a.Output(namedView(a.Translator, a.Translator.T(i18n.Created),
		[]string{subject.ID.String()}, []string{subject.Name}, subject))
}

func runSubjectDelete(cmd *cobra.Command, args []string) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if _, err := a.Authz.Require(ctx, a.Session, authz.ActionSubjectWrite); err != nil {
		return err
	}

	id, err := parseID("subjectId", args[0])
	if err != nil {
		return err
	}
	if err := confirmDelete(ctx, cmd, a, i18n.ConfirmDeleteSubj); err != nil {
		return err
	}
	if err := a.Client.DeleteSubject(ctx, id); err != nil {
		return err
	}
	return a.Output(message{Message: a.Translator.T(i18n.Deleted)})
}
