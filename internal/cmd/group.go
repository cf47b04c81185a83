package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/uniattend/internal/app"
	"github.com/felixgeelhaar/uniattend/internal/authz"
	"github.com/felixgeelhaar/uniattend/internal/errors"
	"github.com/felixgeelhaar/uniattend/internal/i18n"
	"github.com/felixgeelhaar/uniattend/internal/ux"
)

var groupCmd = &cobra.Command{
	Use:     "group",
	Aliases: []string{"groups"},
	Short:   "Manage student groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups",
	Args:  cobra.NoArgs,
	RunE:  runGroupList,
}

var groupCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a group",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGroupCreate,
}

var groupDeleteCmd = &cobra.Command{
	Use:   "delete <groupId>",
	Short: "Delete a group",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupDelete,
}

var groupStudentsCmd = &cobra.Command{
	Use:   "students <groupId>",
	Short: "List the students of a group",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupStudents,
}

func init() {
	groupDeleteCmd.Flags().BoolP("yes", "y", false, "delete without asking")

	groupCmd.AddCommand(groupListCmd, groupCreateCmd, groupDeleteCmd, groupStudentsCmd)
	rootCmd.AddCommand(groupCmd)
}

func runGroupList(cmd *cobra.Command, _ []string) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if _, err := a.Authz.Require(ctx, a.Session, authz.ActionGroupRead); err != nil {
		return err
	}
	groups, err := a.Client.ListGroups(ctx)
	if err != nil {
		return err
	}
	return a.Output(groupsView(a.Translator, groups))
}

func runGroupCreate(cmd *cobra.Command, args []string) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if _, err := a.Authz.Require(ctx, a.Session, authz.ActionGroupWrite); err != nil {
		return err
	}

	name, err := nameArg(a, args, i18n.GroupNameRequired)
	if err != nil {
		return err
	}
	group, err := a.Client.CreateGroup(ctx, name)
	if err != nil {
		return err
	}
	return a.Output(namedView(a.Translator, a.Translator.T(i18n.Created),
		[]string{group.ID.String()}, []string{group.Name}, group))
}

func runGroupDelete(cmd *cobra.Command, args []string) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if _, err := a.Authz.Require(ctx, a.Session, authz.ActionGroupWrite); err != nil {
		return err
	}

	id, err := parseID("groupId", args[0])
	if err != nil {
		return err
	}
	if err := confirmDelete(ctx, cmd, a, i18n.ConfirmDeleteGroup); err != nil {
		return err
	}
	if err := a.Client.DeleteGroup(ctx, id); err != nil {
		return err
	}
	return a.Output(message{Message: a.Translator.T(i18n.Deleted)})
}

func runGroupStudents(cmd *cobra.Command, args []string) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if _, err := a.Authz.Require(ctx, a.Session, authz.ActionGroupMembers); err != nil {
		return err
	}

	id, err := parseID("groupId", args[0])
	if err != nil {
		return err
	}
	members, err := a.Client.GroupMembers(ctx, id)
	if err != nil {
		return err
	}
	return a.Output(usersView(a.Translator, members))
}

// nameArg returns the trimmed name argument, failing with the localized
// required message when it is missing or blank.
func nameArg(a *app.App, args []string, required i18n.Key) (string, error) {
	name := ""
	if len(args) > 0 {
		name = strings.TrimSpace(args[0])
	}
	if name == "" {
		return "", errors.New(errors.ErrCodeInputInvalid, a.Translator.T(required))
	}
	return name, nil
}

// confirmDelete asks before a destructive call unless --yes was given.
func confirmDelete(ctx context.Context, cmd *cobra.Command, a *app.App, question i18n.Key) error {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return nil
	}
	ok, err := a.Prompter.Confirm(ctx, a.Translator.T(question))
	if err != nil {
		return err
	}
	if !ok {
		return ux.ErrAborted
	}
	return nil
}
