package cmd

import (
	"github.com/spf13/cobra"
)

var designCmd = &cobra.Command{
	Use:   "design",
	Short: "Rigging design aids",
	Long: `Size rigging before a lift is planned in detail.

Subcommands:
  dynamic   - Scale static sling tensions for impact loading and wind
  spreader  - Design forces of a spreader beam
  sling     - Required sling rating and suggested pick points

All weights are in kg and lengths in m.`,
}

func init() {
	rootCmd.AddCommand(designCmd)
}
