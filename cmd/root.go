package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gocrane/internal/config"
	"github.com/alexiusacademia/gocrane/internal/logging"
	"github.com/alexiusacademia/gocrane/internal/version"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string

	// set up in PersistentPreRunE; diagnostics only, reports go to stdout
	logger = logging.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "gocrane",
	Short: "Crane Lift Safety Analysis Tool",
	Long: `gocrane - Go Crane Lift Planner

A CLI tool for checking mobile crane lifts before they happen.

This tool helps lift planners perform:
  - Load chart lookups with swing, outrigger and on-tires de-rating
  - Boom and hook geometry, reach and swing clearance checks
  - Multi-sling rigging tension and safety factor analysis
  - Ground bearing pressure checks under outrigger pads and mats
  - Complete lift plans from a JSON or YAML scenario file

Results are engineering estimates; a qualified lift supervisor must
verify every plan against the manufacturer's documentation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(cfgFile); err != nil {
			return err
		}

		level := config.GetString(config.KeyLogLevel)
		if logLevel != "" {
			level = logLevel
		}
		logger = logging.New(os.Stderr, level)

		if used := config.Used(); used != "" {
			logger.Debug().Str("file", used).Msg("config loaded")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   gocrane v%-47s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Crane Lift Planner                                   ║")
		fmt.Fprintf(out, "  ║   %-56s║\n", version.Author+" ©  "+version.Year)
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  A CLI tool for checking mobile crane lifts before they happen.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Load chart capacity with de-rating for swing and outriggers")
		fmt.Fprintln(out, "    • Reach, hook height and swing clearance")
		fmt.Fprintln(out, "    • 1 to 6 sling rigging tensions and safety factors")
		fmt.Fprintln(out, "    • Ground bearing pressure under pads, mats and tires")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gocrane --help' to see available commands.")
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./gocrane.yaml or $HOME/.gocrane/gocrane.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error, trace")
}

const (
	doubleRule = "═══════════════════════════════════════════════════════════════"
	singleRule = "───────────────────────────────────────────────────────────────"
)

// printTitle writes the framed report title
func printTitle(out io.Writer, title string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, doubleRule)
	pad := (len(doubleRule)/3 - len(title)) / 2
	fmt.Fprintf(out, "%s%s\n", strings.Repeat(" ", max(pad, 0)), title)
	fmt.Fprintln(out, doubleRule)
	fmt.Fprintln(out)
}

// section writes a section heading and returns a tabwriter for its rows
func section(out io.Writer, heading string) *tabwriter.Writer {
	fmt.Fprintf(out, "%s:\n", heading)
	fmt.Fprintln(out, singleRule)
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func check(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func verdict(ok bool) string {
	if ok {
		return "SAFE"
	}
	return "NOT SAFE"
}
