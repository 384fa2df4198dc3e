package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/d3s/internal/version"
)

//nolint:gochecknoglobals // Cobra command requires a global definition.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	// The version does not depend on the configuration file.
	PersistentPreRun: func(*cobra.Command, []string) {},
	Run: func(cmd *cobra.Command, _ []string) {
		short, _ := cmd.Flags().GetBool("short")
		if short {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.Short())

			return
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.Full())
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	versionCmd.Flags().BoolP("short", "s", false, "print only the version number.")
	rootCmd.AddCommand(versionCmd)
}
