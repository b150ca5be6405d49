package cmd

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexiusacademia/gocrane/internal/config"
	"github.com/alexiusacademia/gocrane/internal/crane"
	"github.com/alexiusacademia/gocrane/internal/diagram"
	"github.com/alexiusacademia/gocrane/internal/kinematics"
	"github.com/spf13/cobra"
)

var (
	// Crane inputs
	capacityCrane     string
	capacityChartFile string

	// Operating condition
	capacityBoom      float64
	capacityRadius    float64
	capacitySwing     float64
	capacityExtension float64
	capacityOnTires   bool
	capacityLoad      float64

	// Options
	capacityInterpolated bool
	capacityShowDiagram  bool
)

var capacityCmd = &cobra.Command{
	Use:   "capacity",
	Short: "Look up the rated capacity for a boom length and radius",
	Long: `Look up the de-rated chart capacity of a crane for a boom length,
working radius and swing angle.

The load chart with the matching (or closest) boom length is read at the
radius and de-rated for:
  - Swing: 1.0 over the front, side and rear factors elsewhere
  - Outriggers: intermediate factor below 100% extension
  - On tires: on-tires factor when the outriggers are not set

With --interpolated the capacity is blended between the two bracketing boom
lengths instead, without any de-rating.

Examples:
  # LTM 1100 with a 30m boom at 15m radius
  gocrane capacity --crane liebherr_ltm_1100_5_2 --boom 30 --radius 15

  # Over the side with outriggers at 75%, checking a 12t load
  gocrane capacity --boom 30 --radius 15 --swing 90 --extension 75 --load 12000

  # Using a chart from the manufacturer
  gocrane capacity --boom 35 --radius 12 --chart ltm1100.csv --interpolated`,
	RunE: runCapacity,
}

func init() {
	rootCmd.AddCommand(capacityCmd)

	capacityCmd.Flags().StringVar(&capacityCrane, "crane", "", "Crane id (default from config crane.default)")
	capacityCmd.Flags().StringVar(&capacityChartFile, "chart", "", "Load chart file (.csv, .json or .txt) replacing the built-in chart")

	capacityCmd.Flags().Float64VarP(&capacityBoom, "boom", "b", 0, "Boom length (m) [required]")
	capacityCmd.Flags().Float64VarP(&capacityRadius, "radius", "r", 0, "Working radius (m) [required]")
	capacityCmd.Flags().Float64VarP(&capacitySwing, "swing", "s", 0, "Swing angle from the front (degrees)")
	capacityCmd.Flags().Float64VarP(&capacityExtension, "extension", "e", 100, "Outrigger extension (% of maximum)")
	capacityCmd.Flags().BoolVar(&capacityOnTires, "on-tires", false, "Crane standing on its tires")
	capacityCmd.Flags().Float64VarP(&capacityLoad, "load", "l", 0, "Load to check against the capacity (kg)")

	capacityCmd.Flags().BoolVar(&capacityInterpolated, "interpolated", false, "Interpolate between boom lengths (no de-rating)")
	capacityCmd.Flags().BoolVar(&capacityShowDiagram, "diagram", false, "Show ASCII capacity curve for the boom length")

	capacityCmd.MarkFlagRequired("boom")
	capacityCmd.MarkFlagRequired("radius")
}

// lookupCrane resolves a crane id, falling back to the configured default,
// and optionally replaces its chart from a file
func lookupCrane(id, chartFile string) (crane.Spec, error) {
	if id == "" {
		id = config.GetString(config.KeyDefaultCrane)
	}
	spec, err := crane.Lookup(id)
	if err != nil {
		return crane.Spec{}, err
	}
	if chartFile != "" {
		if err := spec.LoadCapacityChart(chartFile); err != nil {
			return crane.Spec{}, err
		}
		logger.Debug().Str("crane", spec.ID).Str("file", chartFile).Msg("load chart replaced")
	}
	return spec, nil
}

// boomAngleForRadius is the luffing angle that puts the tip at radiusM
func boomAngleForRadius(boomM, radiusM float64) (float64, error) {
	if boomM <= 0 {
		return 0, errors.New("boom length must be positive")
	}
	if radiusM < 0 || radiusM > boomM {
		return 0, fmt.Errorf("radius %.1fm cannot be reached with a %.1fm boom", radiusM, boomM)
	}
	return kinematics.Deg(math.Acos(radiusM / boomM)), nil
}

func runCapacity(cmd *cobra.Command, args []string) error {
	if capacityExtension < 0 || capacityExtension > 100 {
		return fmt.Errorf("outrigger extension %.0f%% must be between 0 and 100", capacityExtension)
	}

	spec, err := lookupCrane(capacityCrane, capacityChartFile)
	if err != nil {
		return err
	}
	if spec.CapacityChart.IsEmpty() {
		return &crane.ConfigError{Kind: crane.ErrCapacityChartNotFound, Current: capacityBoom}
	}

	angle, err := boomAngleForRadius(capacityBoom, capacityRadius)
	if err != nil {
		return err
	}

	cfg := spec.NewConfiguration()
	cfg.BoomLengthM = capacityBoom
	cfg.BoomAngleDeg = angle
	cfg.SwingAngleDeg = capacitySwing
	if capacityOnTires {
		cfg.SetOutriggerExtensionPct(0)
	} else {
		cfg.SetOutriggerExtensionPct(capacityExtension / 100)
	}

	var capacityKg float64
	var ok bool
	if capacityInterpolated {
		capacityKg, ok = spec.CapacityChart.CapacityInterpolated(capacityBoom, capacityRadius)
	} else {
		capacityKg, ok = cfg.CurrentCapacity()
	}
	if !ok {
		return &crane.ConfigError{Kind: crane.ErrCapacityChartNotFound, Current: capacityBoom}
	}
	logger.Debug().
		Str("crane", spec.ID).
		Float64("boom", capacityBoom).
		Float64("radius", capacityRadius).
		Float64("capacity", capacityKg).
		Msg("capacity lookup")

	out := cmd.OutOrStdout()
	printTitle(out, "CRANE CAPACITY LOOKUP")

	w := section(out, "CONFIGURATION")
	fmt.Fprintf(w, "  Crane:\t%s (%s)\n", spec.Name(), spec.ID)
	fmt.Fprintf(w, "  Boom length:\t%.1f m\n", capacityBoom)
	fmt.Fprintf(w, "  Boom angle:\t%.1f°\n", angle)
	fmt.Fprintf(w, "  Radius:\t%.1f m\n", capacityRadius)
	fmt.Fprintf(w, "  Hook height:\t%.1f m\n", cfg.HookHeight())
	fmt.Fprintf(w, "  Swing:\t%.0f°\n", capacitySwing)
	if cfg.OnTires() {
		fmt.Fprintf(w, "  Support:\ton tires\n")
	} else {
		fmt.Fprintf(w, "  Support:\toutriggers at %.0f%%\n", capacityExtension)
	}
	w.Flush()
	fmt.Fprintln(out)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(out, "  ⚠ %v\n\n", err)
	}

	w = section(out, "CAPACITY")
	if capacityInterpolated {
		fmt.Fprintf(w, "  Interpolated capacity:\t%.0f kg\n", capacityKg)
	} else {
		fmt.Fprintf(w, "  Swing factor:\t%.2f\n", spec.CapacityChart.SwingFactor(capacitySwing))
		fmt.Fprintf(w, "  Rated capacity:\t%.0f kg\n", capacityKg)
	}
	fmt.Fprintf(w, "  Safe working load (%.0f%%):\t%.0f kg\n", crane.SafeWorkingLoadRatio*100, capacityKg*crane.SafeWorkingLoadRatio)
	w.Flush()
	fmt.Fprintln(out)

	if capacityLoad > 0 {
		util := capacityLoad / capacityKg * 100
		lines := []string{
			fmt.Sprintf("Load:        %.0f kg", capacityLoad),
			fmt.Sprintf("Capacity:    %.0f kg", capacityKg),
			fmt.Sprintf("Utilization: %.1f%% %s", util, diagram.Bar(util)),
		}

		switch {
		case capacityLoad > capacityKg:
			lines = append(lines, "Status:      ✗ EXCEEDS CAPACITY")
		case capacityLoad > capacityKg*crane.SafeWorkingLoadRatio:
			lines = append(lines, "Status:      ⚠ ABOVE SAFE WORKING LOAD")
		default:
			lines = append(lines, "Status:      ✓ WITHIN SAFE WORKING LOAD")
		}
		fmt.Fprint(out, diagram.DrawSummaryBox("LOAD CHECK", lines))
		fmt.Fprintln(out)
	}

	if capacityShowDiagram {
		if lc, ok := spec.CapacityChart.ChartForBoomLength(capacityBoom); ok {
			fmt.Fprint(out, diagram.ASCIILoadChart(lc, 60, 15))
			fmt.Fprintln(out)
		}
	}

	return nil
}
