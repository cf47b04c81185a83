package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/felixgeelhaar/uniattend/internal/authz"
	"github.com/felixgeelhaar/uniattend/internal/i18n"
	"github.com/felixgeelhaar/uniattend/internal/platform"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show your groups and subjects",
	Long: `Show the groups and subjects of the signed-in teacher.

Both lists are fetched in parallel; if either request fails the command
fails and nothing is shown.`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

// dashboard is the teacher's overview.
type dashboard struct {
	Groups   []platform.Group   `json:"groups" yaml:"groups"`
	Subjects []platform.Subject `json:"subjects" yaml:"subjects"`

	tr      *i18n.Translator
	noColor bool
}

func (d dashboard) String() string {
	return fmt.Sprintf("%s\n\n%s",
		groupsView(d.tr, d.Groups).table.Render(d.noColor),
		subjectsView(d.tr, d.Subjects).table.Render(d.noColor))
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	a, err := appFrom(cmd)
	if err != nil {
		return err
	}
	if _, err := a.Authz.Require(cmd.Context(), a.Session, authz.ActionDashboardView); err != nil {
		return err
	}

	var (
		groups   []platform.Group
		subjects []platform.Subject
	)
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var err error
		groups, err = a.Client.ListGroups(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		subjects, err = a.Client.ListSubjects(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return a.Output(dashboard{
		Groups:   groups,
		Subjects: subjects,
		tr:       a.Translator,
		noColor:  a.Config.Output.NoColor,
	})
}
