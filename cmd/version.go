package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gocrane/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gocrane",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, version.String())
		fmt.Fprintln(out, "Crane Lift Safety Analysis Tool")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
