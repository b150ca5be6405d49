package cmd

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/gocrane/internal/config"
	"github.com/alexiusacademia/gocrane/internal/diagram"
	"github.com/alexiusacademia/gocrane/internal/ground"
	"github.com/alexiusacademia/gocrane/internal/kinematics"
	"github.com/spf13/cobra"
)

var (
	// Loading
	groundLoad   float64
	groundPoints int

	// Supports
	groundPad         float64
	groundPadMaterial string
	groundMat         string
	groundMatMaterial string

	// Soil
	groundSoil   string
	groundSafety float64

	groundListSoils bool
)

var groundCmd = &cobra.Command{
	Use:   "ground",
	Short: "Check ground bearing pressure under outrigger pads or mats",
	Long: `Check the bearing pressure under a number of equally loaded support
points against the allowable capacity of the soil.

  pressure (kPa)  = load (kg) × 9.81 / 1000 / contact area (m²)
  allowable (kPa) = soil capacity / safety factor

Soils are given by key (e.g. medium_sand, stiff_clay, bedrock) or as a
measured capacity in kPa (e.g. 250 or custom:250). Use --soils to list the
keys. With --mat the pads stand on mats of the given size.

Examples:
  # 80t total on four 0.6m pads on medium sand
  gocrane ground --load 80000 --points 4 --pad 0.6 --soil medium_sand

  # Same on 1.5m x 1.5m timber mats with a safety factor of 3
  gocrane ground --load 80000 --mat 1.5x1.5 --safety 3`,
	RunE: runGround,
}

func init() {
	rootCmd.AddCommand(groundCmd)

	groundCmd.Flags().Float64VarP(&groundLoad, "load", "l", 0, "Total load on all supports (kg) [required unless --soils]")
	groundCmd.Flags().IntVarP(&groundPoints, "points", "n", 4, "Number of equally loaded support points")

	groundCmd.Flags().Float64VarP(&groundPad, "pad", "p", 0, "Pad diameter (m) (default from config ground.padDiameter)")
	groundCmd.Flags().StringVar(&groundPadMaterial, "pad-material", "steel", "Pad material: steel, hardwood, composite")
	groundCmd.Flags().StringVar(&groundMat, "mat", "", "Mat size LxW (m), e.g. 1.5x1.5")
	groundCmd.Flags().StringVar(&groundMatMaterial, "mat-material", "timber", "Mat material: timber, composite, steel_plate")

	groundCmd.Flags().StringVar(&groundSoil, "soil", "", "Soil key or capacity in kPa (default from config ground.soil)")
	groundCmd.Flags().Float64Var(&groundSafety, "safety", 0, "Safety factor on the soil capacity (default from config ground.safetyFactor)")

	groundCmd.Flags().BoolVar(&groundListSoils, "soils", false, "List the soil types and their capacities")
}

// parseMatSize reads "LxW"
func parseMatSize(s string) (float64, float64, error) {
	ls, ws, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid mat size %q, expected LxW", s)
	}
	v, err := parseFloats(ls+","+ws, 2)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid mat size %w", err)
	}
	l, w := v[0], v[1]
	if l <= 0 || w <= 0 {
		return 0, 0, fmt.Errorf("invalid mat size %q: dimensions must be positive", s)
	}
	return l, w, nil
}

func printSoils(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	printTitle(out, "SOIL BEARING CAPACITIES")

	w := section(out, "SOIL TYPES")
	fmt.Fprintln(w, "  Key\tSoil\tAllowable\tDescription")
	for _, t := range ground.SoilTypes() {
		s := ground.Soil{Type: t}
		fmt.Fprintf(w, "  %s\t%s\t%.0f kPa\t%s\n", t.Key(), t, s.AllowableKPa(), s.Description())
	}
	w.Flush()
	fmt.Fprintln(out)
}

// groundSupports lays the points out on a circle so that each has a
// distinct position in the report
func groundSupports(n int, loadKg float64, support ground.SupportType) []ground.SupportPoint {
	points := make([]ground.SupportPoint, n)
	for i := range points {
		a := 2 * math.Pi * float64(i) / float64(n)
		points[i] = ground.SupportPoint{
			Position: kinematics.V(5*math.Sin(a), 5*math.Cos(a), 0),
			LoadKg:   loadKg / float64(n),
			Support:  support,
		}
	}
	return points
}

func runGround(cmd *cobra.Command, args []string) error {
	if groundListSoils {
		printSoils(cmd)
		return nil
	}
	if groundLoad <= 0 {
		return fmt.Errorf("load must be positive (use --load)")
	}
	if groundPoints <= 0 {
		return fmt.Errorf("number of support points must be positive")
	}

	soilName := groundSoil
	if soilName == "" {
		soilName = config.GetString(config.KeyGroundSoil)
	}
	soil, err := ground.ParseSoil(soilName)
	if err != nil {
		return err
	}

	sf := groundSafety
	if sf == 0 {
		sf = config.GetFloat(config.KeyGroundSafetyFactor)
	}
	padDiameter := groundPad
	if padDiameter == 0 {
		padDiameter = config.GetFloat(config.KeyGroundPadDiameter)
	}

	padMaterial, err := ground.ParsePadMaterial(groundPadMaterial)
	if err != nil {
		return err
	}
	var support ground.SupportType = ground.OutriggerPad{DiameterM: padDiameter, Material: padMaterial}
	if groundMat != "" {
		l, wd, err := parseMatSize(groundMat)
		if err != nil {
			return err
		}
		matMaterial, err := ground.ParseMatMaterial(groundMatMaterial)
		if err != nil {
			return err
		}
		support = ground.MatWithPad{
			Mat: ground.Mat{LengthM: l, WidthM: wd, Material: matMaterial},
			Pad: ground.OutriggerPad{DiameterM: padDiameter, Material: padMaterial},
		}
	}

	analysis, err := ground.Analyze(ground.Configuration{
		SupportPoints: groundSupports(groundPoints, groundLoad, support),
		Soil:          soil,
		SafetyFactor:  sf,
	})
	if err != nil {
		return err
	}
	logger.Debug().Str("soil", soil.String()).Bool("safe", analysis.IsSafe).Msg("ground analyzed")

	out := cmd.OutOrStdout()
	printTitle(out, "GROUND BEARING PRESSURE")

	w := section(out, "INPUT")
	fmt.Fprintf(w, "  Total load:\t%.0f kg\n", groundLoad)
	fmt.Fprintf(w, "  Support points:\t%d × %.0f kg\n", groundPoints, groundLoad/float64(groundPoints))
	fmt.Fprintf(w, "  Support:\t%s\n", support.Description())
	fmt.Fprintf(w, "  Contact area:\t%.3f m² each\n", support.ContactAreaM2())
	fmt.Fprintf(w, "  Soil:\t%s\n", soil)
	fmt.Fprintf(w, "  Soil capacity:\t%.0f kPa\n", soil.AllowableKPa())
	fmt.Fprintf(w, "  Safety factor:\t%.2f\n", sf)
	w.Flush()
	fmt.Fprintln(out)

	printBearing(cmd, analysis)

	if !analysis.IsSafe {
		area, err := ground.RequiredMatAreaM2(groundLoad/float64(groundPoints), soil, sf)
		if err == nil {
			side := math.Sqrt(area)
			fmt.Fprintf(out, "  Required contact area: %.2f m² per support (square mat %.2fm × %.2fm)\n\n", area, side, side)
		}
	}

	return nil
}

// printBearing writes the per-support table and the summary box
func printBearing(cmd *cobra.Command, a ground.Analysis) {
	out := cmd.OutOrStdout()

	w := section(out, "BEARING PRESSURE")
	fmt.Fprintln(w, "  #\tPressure\tAllowable\tUtilization\t")
	for _, p := range a.Pressures {
		fmt.Fprintf(w, "  %d\t%.1f kPa\t%.1f kPa\t%.1f%% %s\t%s\n", p.SupportIndex+1,
			p.PressureKPa, p.AllowableKPa, p.UtilizationPct, diagram.Bar(p.UtilizationPct), check(p.IsSafe))
	}
	w.Flush()
	fmt.Fprintln(out)

	lines := []string{fmt.Sprintf("Soil: %s", a.Soil)}
	if c, ok := a.Critical(); ok {
		lines = append(lines, fmt.Sprintf("Critical support: #%d at %.1f%%", c.SupportIndex+1, c.UtilizationPct))
	}
	lines = append(lines, fmt.Sprintf("Status: %s %s", check(a.IsSafe), verdict(a.IsSafe)))
	fmt.Fprint(out, diagram.DrawSummaryBox("GROUND", lines))
	fmt.Fprintln(out)
}
