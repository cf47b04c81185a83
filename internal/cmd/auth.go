package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/uniattend/internal/authz"
	"github.com/felixgeelhaar/uniattend/internal/domain"
	"github.com/felixgeelhaar/uniattend/internal/i18n"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the attendance service",
	Long: `Sign in with your email and password.

Without --email and --password an interactive form is shown. The session
is stored under the uniattend home directory (or in Redis, see
'uniattend config') and reused by every later command until it expires
or 'uniattend logout' is run.

Examples:
  uniattend login
  uniattend login --email teacher@uni.kz --password secret`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in profile",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password (prompted when empty)")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	tr := a.Translator

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	if email == "" || password == "" {
		email, password, err = a.Prompter.Credentials(ctx, tr.T(i18n.LoginTitle), email)
		if err != nil {
			return err
		}
	}

	creds := domain.Credentials{Email: strings.TrimSpace(email), Password: password}
	if err := creds.Validate(); err != nil {
		return err
	}

	principal, err := a.Client.SignIn(ctx, creds)
	if err != nil {
		return err
	}
	sess, err := a.Session.Login(ctx, *principal)
	if err != nil {
		return err
	}

	name := sess.DisplayName
	if name == "" {
		name = sess.Email
	}
	return a.Output(message{Message: tr.T(i18n.LoginSuccess, name)})
}

func runLogout(cmd *cobra.Command, _ []string) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	if err := a.Session.Logout(cmd.Context()); err != nil {
		return err
	}
	return a.Output(message{Message: a.Translator.T(i18n.LogoutDone)})
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	sess, err := a.Authz.Require(cmd.Context(), a.Session, authz.ActionProfileRead)
	if err != nil {
		return err
	}
	return a.Output(profileView(a.Translator, sess, a.Location))
}
