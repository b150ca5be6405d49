package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/alexiusacademia/gocrane/internal/capacity"
	"github.com/alexiusacademia/gocrane/internal/diagram"
	"github.com/spf13/cobra"
)

var (
	chartFile        string
	chartCrane       string
	chartShowDiagram bool
	chartExportFile  string
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Parse and print a crane load chart",
	Long: `Parse a load chart file and print its capacity tables.

Supported formats (chosen by extension):
  .csv   boom_length,radius,capacity rows (header optional)
  .json  {"charts":[{"boom_length":30,"points":[{"radius":3,"capacity":100000}]}]}
  .txt   manufacturer tables: "Boom Length: 30m" followed by radius/capacity rows

Without --file the built-in chart of --crane (or the configured default
crane) is printed.

Examples:
  # Check a chart file
  gocrane chart --file ltm1100.csv

  # Plot the curves in the terminal and to an image
  gocrane chart --file ltm1100.txt --diagram --output ltm1100.png`,
	RunE: runChart,
}

func init() {
	rootCmd.AddCommand(chartCmd)

	chartCmd.Flags().StringVarP(&chartFile, "file", "f", "", "Load chart file (.csv, .json or .txt)")
	chartCmd.Flags().StringVar(&chartCrane, "crane", "", "Print the built-in chart of this crane instead")

	// Diagram options
	chartCmd.Flags().BoolVar(&chartShowDiagram, "diagram", false, "Show ASCII capacity curves")
	chartCmd.Flags().StringVarP(&chartExportFile, "output", "o", "", "Export capacity curves to file (png, svg, pdf)")
}

func runChart(cmd *cobra.Command, args []string) error {
	var (
		chart capacity.Chart
		title string
	)
	if chartFile != "" {
		c, err := capacity.LoadFile(chartFile)
		if err != nil {
			return err
		}
		chart, title = c, filepath.Base(chartFile)
	} else {
		spec, err := lookupCrane(chartCrane, "")
		if err != nil {
			return err
		}
		chart, title = spec.CapacityChart, spec.Name()
	}
	logger.Debug().Str("chart", title).Int("booms", len(chart.BoomLengths())).Msg("chart loaded")

	out := cmd.OutOrStdout()
	printTitle(out, "LOAD CHART")

	w := section(out, "DE-RATING FACTORS")
	fmt.Fprintf(w, "  Source:\t%s\n", title)
	fmt.Fprintf(w, "  Over side:\t%.2f\n", chart.OverSideFactor)
	fmt.Fprintf(w, "  Over rear:\t%.2f\n", chart.OverRearFactor)
	fmt.Fprintf(w, "  Outriggers below 100%%:\t%.2f\n", chart.OutriggerIntermediateFactor)
	fmt.Fprintf(w, "  On tires:\t%.2f\n", chart.OnTiresFactor)
	fmt.Fprintf(w, "  Dynamic:\t%.2f\n", chart.DynamicFactor)
	w.Flush()
	fmt.Fprintln(out)

	for _, lc := range chart.LoadCharts() {
		w = section(out, fmt.Sprintf("BOOM %.1f m", lc.BoomLengthM))
		fmt.Fprintln(w, "  Radius (m)\tCapacity (kg)\tCapacity (t)")
		for _, p := range lc.Points {
			fmt.Fprintf(w, "  %.1f\t%.0f\t%.1f\n", p.RadiusM, p.CapacityKg, p.CapacityKg/1000)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	if chartShowDiagram {
		fmt.Fprint(out, diagram.ASCIICapacityCurves(chart, 60, 15))
		fmt.Fprintln(out)
	}

	if chartExportFile != "" {
		if err := diagram.ExportLoadChart(chart, title, chartExportFile); err != nil {
			return fmt.Errorf("error exporting chart: %w", err)
		}
		fmt.Fprintf(out, "Chart exported to: %s\n", chartExportFile)
	}

	return nil
}
