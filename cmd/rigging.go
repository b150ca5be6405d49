package cmd

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gocrane/internal/diagram"
	"github.com/alexiusacademia/gocrane/internal/lift"
	"github.com/alexiusacademia/gocrane/internal/rigging"
	"github.com/spf13/cobra"
)

var riggingFile string

var riggingCmd = &cobra.Command{
	Use:   "rigging",
	Short: "Analyze sling tensions of a rig from a scenario file",
	Long: `Solve the tension in every sling of a rig and check it against the
sling capacity reduced for its angle and hitch.

The load, pick points, slings, hardware and hook point are read from the
load and rigging sections of a scenario file (.json, .yaml or .yml); the
crane section is ignored and the hook stays at the scenario hook point.

  1 sling       carries the full weight
  2 slings      share it by distance to the center of gravity
  3 slings      solved exactly from force equilibrium
  4 to 6 slings least-squares solution with the smallest tensions

Each sling must keep a 5:1 ratio of capacity to tension.

Examples:
  gocrane rigging --file skid.yaml
  gocrane rigging -f skid.json`,
	RunE: runRigging,
}

func init() {
	rootCmd.AddCommand(riggingCmd)

	riggingCmd.Flags().StringVarP(&riggingFile, "file", "f", "", "Scenario file (.json, .yaml) [required]")
	riggingCmd.MarkFlagRequired("file")
}

func runRigging(cmd *cobra.Command, args []string) error {
	s, err := lift.LoadFile(riggingFile)
	if err != nil {
		return err
	}

	rig, err := s.RiggingConfiguration(s.Rigging.HookPoint)
	if err != nil {
		return err
	}
	analysis, err := rigging.Analyze(rig)
	if err != nil {
		return err
	}
	logger.Debug().Int("slings", len(rig.Slings)).Bool("safe", analysis.Safety.IsSafe).Msg("rigging analyzed")

	out := cmd.OutOrStdout()
	printTitle(out, "RIGGING ANALYSIS")

	w := section(out, "LOAD")
	if s.Name != "" {
		fmt.Fprintf(w, "  Scenario:\t%s\n", s.Name)
	}
	fmt.Fprintf(w, "  Weight:\t%.0f kg\n", s.Load.WeightKg)
	cog := s.Load.CenterOfGravity
	fmt.Fprintf(w, "  Center of gravity:\t(%.2f, %.2f, %.2f) m\n", cog.X, cog.Y, cog.Z)
	fmt.Fprintf(w, "  Slings:\t%d\n", len(rig.Slings))
	fmt.Fprintf(w, "  Hardware:\t%d\n", len(rig.Hardware))
	w.Flush()
	fmt.Fprintln(out)

	dyn := rigging.DynamicFactors{ImpactLoading: s.Dynamic.ImpactLoading, WindSpeedMS: s.Dynamic.WindSpeedMS}
	printRigging(cmd, analysis, dyn)

	return nil
}

// printRigging writes the sling table, warnings and the summary box
func printRigging(cmd *cobra.Command, a rigging.Analysis, dyn rigging.DynamicFactors) {
	out := cmd.OutOrStdout()

	w := section(out, "SLING TENSIONS")
	fmt.Fprintln(w, "  Sling\tTension\tAngle\tCapacity\tUtilization\t")
	for _, t := range a.SlingTensions {
		fmt.Fprintf(w, "  %s\t%.0f kg (%.1f kN)\t%.1f°\t%.0f kg\t%.1f%% %s\t%s\n",
			t.SlingID, t.TensionKg, t.TensionKN, t.AngleFromVerticalDeg,
			t.CapacityKg, t.UtilizationPct, diagram.Bar(t.UtilizationPct), check(t.IsSafe))
	}
	w.Flush()
	fmt.Fprintln(out)

	if m := dyn.Multiplier(); m > 1 {
		w = section(out, "DYNAMIC TENSIONS")
		fmt.Fprintf(w, "  Multiplier:\t%.3f\n", m)
		for _, t := range a.SlingTensions {
			fmt.Fprintf(w, "  %s:\t%.0f kg\n", t.SlingID, rigging.ApplyDynamicFactors(t.TensionKg, dyn))
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	if len(a.Warnings) > 0 {
		fmt.Fprintln(out, "WARNINGS:")
		fmt.Fprintln(out, singleRule)
		for _, msg := range a.Warnings {
			fmt.Fprintf(out, "  ⚠ %s\n", msg)
		}
		fmt.Fprintln(out)
	}

	sf := "∞"
	if !math.IsInf(a.Safety.OverallSafetyFactor, 1) {
		sf = fmt.Sprintf("%.2f", a.Safety.OverallSafetyFactor)
	}
	lines := []string{
		fmt.Sprintf("Safety factor: %s (min %.1f)", sf, rigging.MinSafetyFactor),
		fmt.Sprintf("Rigging weight: %.0f kg", a.TotalRiggingWeightKg),
	}
	if a.Safety.CriticalSlingID != "" {
		lines = append(lines, "Critical sling: "+a.Safety.CriticalSlingID)
	}
	if a.IsBalanced {
		lines = append(lines, "Balance: ✓ level")
	} else if a.TiltDeg != nil {
		lines = append(lines, fmt.Sprintf("Balance: ✗ tilts %.1f° / %.1f°", a.TiltDeg.X, a.TiltDeg.Y))
	}
	safe := a.Safety.IsSafe && a.Err() == nil
	lines = append(lines, fmt.Sprintf("Status: %s %s", check(safe), verdict(safe)))
	fmt.Fprint(out, diagram.DrawSummaryBox("RIGGING", lines))
	fmt.Fprintln(out)
}
