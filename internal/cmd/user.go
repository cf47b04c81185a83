package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/uniattend/internal/attendance"
	"github.com/felixgeelhaar/uniattend/internal/authz"
	"github.com/felixgeelhaar/uniattend/internal/domain"
	"github.com/felixgeelhaar/uniattend/internal/errors"
	"github.com/felixgeelhaar/uniattend/internal/i18n"
	"github.com/felixgeelhaar/uniattend/internal/platform"
)

var userCmd = &cobra.Command{
	Use:     "user",
	Aliases: []string{"users"},
	Short:   "Manage participants (administrators)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Args:  cobra.NoArgs,
	RunE:  runUserList,
}

var userTeachersCmd = &cobra.Command{
	Use:   "teachers",
	Short: "List users holding the teacher role",
	Args:  cobra.NoArgs,
	RunE:  runUserTeachers,
}

var userRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a participant",
	Long: `Register a participant. Every field is required; the role defaults
to student.

Example:
  uniattend user register --email a.nurlan@uni.kz --name "Nurlan A." \
    --password secret1 --phone +77001234567 --birthday 2003-04-12 --group 1`,
	Args: cobra.NoArgs,
	RunE: runUserRegister,
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <userId>",
	Short: "Delete a participant",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserDelete,
}

func init() {
	userListCmd.Flags().Bool("all", false, "list every participant, not only assignable users")

	f := userRegisterCmd.Flags()
	f.String("email", "", "email address")
	f.String("name", "", "full name")
	f.String("password", "", "initial password")
	f.String("phone", "", "phone number")
	f.String("birthday", "", "date of birth, e.g. 2003-04-12")
	f.String("group", "", "group id")
	f.String("role", domain.RoleStudent, "role name")

	userDeleteCmd.Flags().BoolP("yes", "y", false, "delete without asking")

	userCmd.AddCommand(userListCmd, userTeachersCmd, userRegisterCmd, userDeleteCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserList(cmd *cobra.Command, _ []string) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if _, err := a.Authz.Require(ctx, a.Session, authz.ActionUserRead); err != nil {
		return err
	}

	all, _ := cmd.Flags().GetBool("all")
	var users []platform.User
	if all {
		users, err = a.Client.ListParticipants(ctx)
	} else {
		users, err = a.Client.ListUsers(ctx)
	}
	if err != nil {
		return err
	}
	return a.Output(usersView(a.Translator, users))
}

func runUserTeachers(cmd *cobra.Command, _ []string) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if _, err := a.Authz.Require(ctx, a.Session, authz.ActionUserRead); err != nil {
		return err
	}
	teachers, err := a.Client.ListTeachers(ctx)
	if err != nil {
		return err
	}
	return a.Output(usersView(a.Translator, teachers))
}

func runUserRegister(cmd *cobra.Command, _ []string) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if _, err := a.Authz.Require(ctx, a.Session, authz.ActionUserWrite); err != nil {
		return err
	}

	flags := cmd.Flags()
	get := func(name string) string {
		v, _ := flags.GetString(name)
		return strings.TrimSpace(v)
	}
	password, _ := flags.GetString("password")
	req := platform.SignUpRequest{
		Email:       get("email"),
		Name:        get("name"),
		Password:    password,
		PhoneNumber: get("phone"),
	}
	for _, required := range []struct{ flag, value string }{
		{"--email", req.Email},
		{"--name", req.Name},
		{"--password", req.Password},
		{"--phone", req.PhoneNumber},
		{"--birthday", get("birthday")},
		{"--group", get("group")},
	} {
		if required.value == "" {
			return errors.NewInputRequiredError(required.flag)
		}
	}
	if err := domain.ValidateEmail(req.Email); err != nil {
		return err
	}
	if err := domain.ValidatePassword(req.Password); err != nil {
		return err
	}

	birthday, err := attendance.ParseTime(get("birthday"), a.Location)
	if err != nil {
		return err
	}
	req.Birthday = birthday.Format("2006-01-02")

	if req.GroupID, err = parseID("--group", get("group")); err != nil {
		return err
	}
	role := get("role")
	roleID, ok := a.Config.RoleCatalog().IDOf(role)
	if !ok {
		return errors.New(errors.ErrCodeInputInvalid, "unknown role: "+role).
			WithSuggestion("Map it with: uniattend config set roles.<id> " + role)
	}
	req.RoleID = domain.ID(strconv.Itoa(roleID))

	user, err := a.Client.SignUp(ctx, req)
	if err != nil {
		return err
	}
	return a.Output(namedView(a.Translator, a.Translator.T(i18n.UserRegistered),
		[]string{user.ID.String()}, []string{user.Name}, user))
}

func runUserDelete(cmd *cobra.Command, args []string) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if _, err := a.Authz.Require(ctx, a.Session, authz.ActionUserWrite); err != nil {
		return err
	}

	id, err := parseID("userId", args[0])
	if err != nil {
		return err
	}
	if err := confirmDelete(ctx, cmd, a, i18n.ConfirmDeleteUser); err != nil {
		return err
	}
	if err := a.Client.DeleteUser(ctx, id); err != nil {
		return err
	}
	return a.Output(message{Message: a.Translator.T(i18n.Deleted)})
}
