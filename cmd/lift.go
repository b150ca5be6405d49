package cmd

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gocrane/internal/config"
	"github.com/alexiusacademia/gocrane/internal/diagram"
	"github.com/alexiusacademia/gocrane/internal/lift"
	"github.com/alexiusacademia/gocrane/internal/rigging"
	"github.com/spf13/cobra"
)

var (
	liftFile       string
	liftExportFile string
	liftStrict     bool
)

var liftCmd = &cobra.Command{
	Use:   "lift",
	Short: "Run a complete lift plan from a scenario file",
	Long: `Run every check of a lift from a scenario file (.json, .yaml or .yml):

  1. Crane configuration against the crane limits
  2. Gross load (load + rigging) against the de-rated chart capacity
     and the 75% safe working load
  3. Sling tensions and safety factors with the hook placed by the crane
  4. Ground bearing under the outriggers, mats or tires
  5. Swing clearance against obstacles, when a swing is described

Ground safety factor, swing samples and clearance margin default to the
configuration (ground.safetyFactor, swing.steps, clearance.margin).

Examples:
  # Check a lift and draw the plan view
  gocrane lift --file skid.yaml --output skid-plan.png

  # Exit with an error when any check fails
  gocrane lift -f skid.yaml --strict`,
	RunE: runLift,
}

func init() {
	rootCmd.AddCommand(liftCmd)

	liftCmd.Flags().StringVarP(&liftFile, "file", "f", "", "Scenario file (.json, .yaml) [required]")
	liftCmd.Flags().StringVarP(&liftExportFile, "output", "o", "", "Export plan view to file (png, svg, pdf)")
	liftCmd.Flags().BoolVar(&liftStrict, "strict", false, "Return an error when the lift is not safe")

	liftCmd.MarkFlagRequired("file")
}

// planOptions reads the site defaults from the configuration
func planOptions() lift.Options {
	opts := lift.DefaultOptions()
	if v := config.GetFloat(config.KeyGroundSafetyFactor); v > 0 {
		opts.GroundSafetyFactor = v
	}
	if v := config.GetInt(config.KeySwingSteps); v > 0 {
		opts.SwingSteps = v
	}
	if v := config.GetFloat(config.KeyClearanceMargin); v >= 0 {
		opts.ClearanceMargin = v
	}
	return opts
}

func runLift(cmd *cobra.Command, args []string) error {
	s, err := lift.LoadFile(liftFile)
	if err != nil {
		return err
	}

	report, err := lift.Plan(s, planOptions())
	if err != nil {
		return err
	}
	logger.Info().
		Str("scenario", report.Scenario).
		Bool("safe", report.IsSafe()).
		Int("findings", len(report.Findings)).
		Msg("lift planned")

	out := cmd.OutOrStdout()
	printTitle(out, "LIFT PLAN")

	w := section(out, "CRANE")
	if report.Scenario != "" {
		fmt.Fprintf(w, "  Scenario:\t%s\n", report.Scenario)
	}
	fmt.Fprintf(w, "  Crane:\t%s\n", report.CraneName)
	fmt.Fprintf(w, "  Boom:\t%.1f m at %.1f°, swing %.0f°\n",
		report.Crane.BoomLengthM, report.Crane.BoomAngleDeg, report.Crane.SwingAngleDeg)
	fmt.Fprintf(w, "  Radius:\t%.1f m\n", report.RadiusM)
	fmt.Fprintf(w, "  Hook:\t(%.2f, %.2f, %.2f) m\n", report.Hook.X, report.Hook.Y, report.Hook.Z)
	fmt.Fprintf(w, "  Configuration:\t%s\n", okOrErr(report.ConfigErr))
	w.Flush()
	fmt.Fprintln(out)

	w = section(out, "CAPACITY")
	fmt.Fprintf(w, "  Load:\t%.0f kg\n", s.Load.WeightKg)
	fmt.Fprintf(w, "  Rigging:\t%.0f kg\n", report.GrossLoadKg-s.Load.WeightKg)
	fmt.Fprintf(w, "  Gross load:\t%.0f kg\n", report.GrossLoadKg)
	if report.HasCapacity {
		fmt.Fprintf(w, "  Rated capacity:\t%.0f kg\n", report.CapacityKg)
		fmt.Fprintf(w, "  Utilization:\t%.1f%% %s\n", report.UtilizationPct, diagram.Bar(report.UtilizationPct))
	} else {
		fmt.Fprintf(w, "  Rated capacity:\tunknown\n")
	}
	fmt.Fprintf(w, "  Within safe working load:\t%s\n", check(report.WithinSWL))
	w.Flush()
	fmt.Fprintln(out)

	if report.RiggingErr == nil || len(report.Rigging.SlingTensions) > 0 {
		printRigging(cmd, report.Rigging, rigging.DynamicFactors{
			ImpactLoading: s.Dynamic.ImpactLoading,
			WindSpeedMS:   s.Dynamic.WindSpeedMS,
		})
	}

	if report.Ground != nil {
		printBearing(cmd, *report.Ground)
	}

	if report.Swing != nil {
		w = section(out, "SWING")
		fmt.Fprintf(w, "  Samples:\t%d\n", len(report.Swing.Path))
		if report.Swing.Clear {
			fmt.Fprintf(w, "  Clearance:\t✓ clear of %d obstacles\n", len(s.Swing.Obstacles))
		} else {
			fmt.Fprintf(w, "  Clearance:\t✗ obstacle %d at sample %d\n",
				report.Swing.ObstacleIndex+1, report.Swing.CollisionIndex+1)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	if len(report.Findings) > 0 {
		fmt.Fprintln(out, "FINDINGS:")
		fmt.Fprintln(out, singleRule)
		for _, f := range report.Findings {
			fmt.Fprintf(out, "  • %s\n", f)
		}
		fmt.Fprintln(out)
	}

	safe := report.IsSafe()
	fmt.Fprint(out, diagram.DrawSummaryBox("LIFT PLAN", []string{
		fmt.Sprintf("Gross load: %.0f kg at %.1f m", report.GrossLoadKg, report.RadiusM),
		fmt.Sprintf("Findings: %d", len(report.Findings)),
		fmt.Sprintf("Status: %s %s", check(safe), verdict(safe)),
	}))
	fmt.Fprintln(out)

	if liftExportFile != "" {
		if err := exportLiftPlan(report, s, liftExportFile); err != nil {
			return fmt.Errorf("error exporting plan view: %w", err)
		}
		fmt.Fprintf(out, "Plan view exported to: %s\n", liftExportFile)
	}

	if liftStrict && !safe {
		return fmt.Errorf("lift is not safe: %s", strings.Join(report.Findings, "; "))
	}
	return nil
}

func exportLiftPlan(r lift.Report, s lift.Scenario, filename string) error {
	view := diagram.PlanView{
		Title:          r.CraneName,
		CraneOrigin:    r.Crane.Position,
		Supports:       r.Supports,
		BoomTip:        r.BoomTip,
		Hook:           r.Hook,
		CollisionIndex: -1,
		LoadDims:       s.Load.Dimensions,
	}
	if r.Scenario != "" {
		view.Title = r.Scenario + " - " + r.CraneName
	}
	if r.Swing != nil {
		view.SwingPath = r.Swing.Path
		view.CollisionIndex = r.Swing.CollisionIndex
		view.Obstacles = s.Swing.Obstacles
	}
	return diagram.ExportPlanView(view, filename)
}

func okOrErr(err error) string {
	if err != nil {
		return "✗ " + err.Error()
	}
	return "✓ valid"
}
