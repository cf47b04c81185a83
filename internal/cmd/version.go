package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/uniattend/internal/version"
)

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noAppAnnotation: "true"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		cc, err := NewCommandContext(cmd)
		if err != nil {
			return err
		}
		f, err := formatterFor(cmd, cc, cc.Format, false)
		if err != nil {
			return err
		}
		return f.Format(version.GetInfo())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
