package cmd

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gocrane/internal/crane"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [id]",
	Short: "List the built-in crane specifications",
	Long: `List the built-in crane catalog, or show the full specification of one
crane when its id is given.

Examples:
  # List every crane
  gocrane catalog

  # Show one crane
  gocrane catalog liebherr_ltm_1100_5_2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		printTitle(out, "CRANE CATALOG")
		w := section(out, "AVAILABLE CRANES")
		fmt.Fprintln(w, "  ID\tName\tType\tMax Capacity\tBoom")
		for _, s := range crane.Catalog() {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%.0f t\t%.1f - %.1f m\n",
				s.ID, s.Name(), s.Type, s.MaxCapacityKg/1000, s.BoomLengthRange.Min, s.BoomLengthRange.Max)
		}
		w.Flush()
		fmt.Fprintln(out)
		return nil
	}

	spec, err := crane.Lookup(args[0])
	if err != nil {
		return err
	}
	printSpec(cmd, spec)
	return nil
}

func printSpec(cmd *cobra.Command, s crane.Spec) {
	out := cmd.OutOrStdout()
	printTitle(out, strings.ToUpper(s.Name()))

	w := section(out, "GENERAL")
	fmt.Fprintf(w, "  ID:\t%s\n", s.ID)
	fmt.Fprintf(w, "  Type:\t%s\n", s.Type)
	if s.Year > 0 {
		fmt.Fprintf(w, "  Year:\t%d\n", s.Year)
	}
	fmt.Fprintf(w, "  Base weight:\t%.0f kg\n", s.BaseWeightKg)
	fmt.Fprintf(w, "  Transport weight:\t%.0f kg\n", s.TransportWeightKg)
	fmt.Fprintf(w, "  Dimensions (L × W × H):\t%.2f × %.2f × %.2f m\n", s.LengthM, s.WidthM, s.HeightM)
	if s.EnginePowerKW > 0 {
		fmt.Fprintf(w, "  Engine power:\t%.0f kW\n", s.EnginePowerKW)
	}
	w.Flush()
	fmt.Fprintln(out)

	w = section(out, "BOOM & HOIST")
	fmt.Fprintf(w, "  Boom length:\t%.1f - %.1f m (%d sections)\n", s.BoomLengthRange.Min, s.BoomLengthRange.Max, s.BoomSections)
	fmt.Fprintf(w, "  Boom angle:\t%.0f° - %.0f°\n", s.MinBoomAngleDeg, s.MaxBoomAngleDeg)
	fmt.Fprintf(w, "  Pivot height:\t%.2f m\n", s.BoomPivotHeightM)
	fmt.Fprintf(w, "  Hoist length:\t%.1f - %.1f m\n", s.HoistLengthRange.Min, s.HoistLengthRange.Max)
	if s.MaxHoistSpeedMMin > 0 {
		fmt.Fprintf(w, "  Hoist speed:\t%.0f m/min\n", s.MaxHoistSpeedMMin)
	}
	if s.MaxSwingSpeedRPM > 0 {
		fmt.Fprintf(w, "  Swing speed:\t%.1f rpm\n", s.MaxSwingSpeedRPM)
	}
	w.Flush()
	fmt.Fprintln(out)

	w = section(out, "CAPACITY")
	fmt.Fprintf(w, "  Max capacity:\t%.0f kg\n", s.MaxCapacityKg)
	fmt.Fprintf(w, "  Radius:\t%.1f - %.1f m\n", s.MinRadiusM, s.MaxRadiusM)
	fmt.Fprintf(w, "  Max tip height:\t%.1f m\n", s.MaxTipHeightM)
	if s.CapacityChart.IsEmpty() {
		fmt.Fprintf(w, "  Load chart:\tnone\n")
	} else {
		lengths := make([]string, 0, len(s.CapacityChart.BoomLengths()))
		for _, l := range s.CapacityChart.BoomLengths() {
			lengths = append(lengths, fmt.Sprintf("%.1f", l))
		}
		fmt.Fprintf(w, "  Load chart booms:\t%s m\n", strings.Join(lengths, ", "))
	}
	w.Flush()
	fmt.Fprintln(out)

	w = section(out, "OUTRIGGERS & COUNTERWEIGHT")
	fmt.Fprintf(w, "  Outrigger base (W × L):\t%.2f × %.2f m\n", s.OutriggerBaseWidthM, s.OutriggerBaseLengthM)
	fmt.Fprintf(w, "  Max extension:\t%.2f m\n", s.OutriggerMaxExtensionM)
	fmt.Fprintf(w, "  Counterweight:\t%d × %.0f kg at %.1f m\n",
		s.CounterweightMaxSlabs, s.CounterweightSlabWeightKg, s.CounterweightMomentArmM)
	w.Flush()
	fmt.Fprintln(out)
}
