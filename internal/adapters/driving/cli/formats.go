package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LindaBusdiecker/SharePointOnline/internal/core/domain"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the accepted display formats",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Display formats:")
		for _, f := range domain.DisplayFormats {
			alias := ""
			if f == domain.DisplayFormatUnspecified {
				alias = dimStyle.Render(" (alias: Undefined)")
			}
			fmt.Fprintf(out, "  %-12s %d%s\n", f, int(f), alias)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "spdatefmt %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(versionCmd)
}
