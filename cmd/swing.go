package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gocrane/internal/config"
	"github.com/alexiusacademia/gocrane/internal/diagram"
	"github.com/alexiusacademia/gocrane/internal/kinematics"
	"github.com/spf13/cobra"
)

var (
	swingCrane string
	swingBoom  float64
	swingAngle float64
	swingHoist float64

	swingFrom  float64
	swingTo    float64
	swingSteps int

	swingObstacles []string
	swingLoadSize  string
	swingMargin    float64

	swingExportFile string
)

var swingCmd = &cobra.Command{
	Use:   "swing",
	Short: "Check a slew for clearance against obstacles",
	Long: `Sample the hook path while the boom slews between two swing angles
and check that the load hanging below the hook clears every obstacle.

Swing angles are clockwise from the crane front (0 = front, 90 = right).
Obstacles are axis-aligned boxes given as "x,y,z,width,depth,height" with
x,y,z the box center in meters relative to the slew center. The load is
given as "width,depth,height" and hangs below the hook. Both boxes are grown
by the margin on every side.

Only the sampled positions are tested; use more steps for long slews.

Examples:
  # Slew from the front to the right past a 4m cube
  gocrane swing --boom 30 --angle 60 --from 0 --to 90 --obstacle 12,8,15,4,4,4

  # Two obstacles, bigger load, plan view image
  gocrane swing -b 40 -a 55 --from -45 --to 45 --load-size 4,2.5,2 \
    --obstacle 10,15,20,3,3,3 --obstacle -10,15,20,3,3,3 -o swing.png`,
	RunE: runSwing,
}

func init() {
	rootCmd.AddCommand(swingCmd)

	swingCmd.Flags().StringVar(&swingCrane, "crane", "", "Crane id (default from config crane.default)")
	swingCmd.Flags().Float64VarP(&swingBoom, "boom", "b", 0, "Boom length (m) [required]")
	swingCmd.Flags().Float64VarP(&swingAngle, "angle", "a", 0, "Boom angle from horizontal (degrees) [required]")
	swingCmd.Flags().Float64Var(&swingHoist, "hoist", 10, "Hoist line below the boom tip (m)")

	swingCmd.Flags().Float64Var(&swingFrom, "from", 0, "Start swing angle (degrees)")
	swingCmd.Flags().Float64Var(&swingTo, "to", 0, "End swing angle (degrees) [required]")
	swingCmd.Flags().IntVar(&swingSteps, "steps", 0, "Number of samples along the path (default from config swing.steps)")

	swingCmd.Flags().StringArrayVar(&swingObstacles, "obstacle", nil, "Obstacle box x,y,z,width,depth,height (repeatable)")
	swingCmd.Flags().StringVar(&swingLoadSize, "load-size", "2,2,1", "Load box width,depth,height (m)")
	swingCmd.Flags().Float64Var(&swingMargin, "margin", -1, "Clearance margin (m) (default from config clearance.margin)")

	swingCmd.Flags().StringVarP(&swingExportFile, "output", "o", "", "Export plan view to file (png, svg, pdf)")

	swingCmd.MarkFlagRequired("boom")
	swingCmd.MarkFlagRequired("angle")
	swingCmd.MarkFlagRequired("to")
}

// parseFloats reads n comma separated numbers
func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%q: expected %d comma separated numbers, got %d", s, n, len(parts))
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}

func parseObstacle(s string) (kinematics.Box, error) {
	v, err := parseFloats(s, 6)
	if err != nil {
		return kinematics.Box{}, fmt.Errorf("invalid obstacle %w", err)
	}
	if v[3] <= 0 || v[4] <= 0 || v[5] <= 0 {
		return kinematics.Box{}, fmt.Errorf("invalid obstacle %q: dimensions must be positive", s)
	}
	return kinematics.Box{Center: kinematics.V(v[0], v[1], v[2]), Dimensions: kinematics.V(v[3], v[4], v[5])}, nil
}

func runSwing(cmd *cobra.Command, args []string) error {
	spec, err := lookupCrane(swingCrane, "")
	if err != nil {
		return err
	}

	steps := swingSteps
	if steps <= 0 {
		steps = config.GetInt(config.KeySwingSteps)
	}
	margin := swingMargin
	if margin < 0 {
		margin = config.GetFloat(config.KeyClearanceMargin)
	}

	dims, err := parseFloats(swingLoadSize, 3)
	if err != nil {
		return fmt.Errorf("invalid load size %w", err)
	}
	load := kinematics.V(dims[0], dims[1], dims[2])

	obstacles := make([]kinematics.Box, 0, len(swingObstacles))
	for _, s := range swingObstacles {
		box, err := parseObstacle(s)
		if err != nil {
			return err
		}
		obstacles = append(obstacles, box)
	}

	pivot := spec.BoomPivotHeightM
	path := kinematics.SwingPath(kinematics.Vec3{}, swingBoom, swingAngle, swingFrom, swingTo, pivot, swingHoist, steps)
	logger.Debug().Int("samples", len(path)).Int("obstacles", len(obstacles)).Msg("swing path sampled")

	out := cmd.OutOrStdout()
	printTitle(out, "SWING CLEARANCE CHECK")

	w := section(out, "SLEW")
	fmt.Fprintf(w, "  Crane:\t%s\n", spec.Name())
	fmt.Fprintf(w, "  Boom:\t%.1f m at %.1f°\n", swingBoom, swingAngle)
	fmt.Fprintf(w, "  Swing:\t%.0f° → %.0f° in %d samples\n", swingFrom, swingTo, len(path))
	fmt.Fprintf(w, "  Load box:\t%.1f × %.1f × %.1f m\n", load.X, load.Y, load.Z)
	fmt.Fprintf(w, "  Margin:\t%.2f m\n", margin)
	if len(path) > 0 {
		fmt.Fprintf(w, "  Hook height:\t%.1f m\n", path[0].Z)
	}
	w.Flush()
	fmt.Fprintln(out)

	collision := -1
	isClear := true
	if len(obstacles) > 0 {
		w = section(out, "OBSTACLES")
		fmt.Fprintln(w, "  #\tCenter (m)\tSize (m)\tStatus")
		for i, obs := range obstacles {
			idx, hit := kinematics.FirstCollision(path, load, obs, margin)
			status := "✓ clear"
			if hit {
				status = fmt.Sprintf("✗ hit at %.0f°", swingFrom+float64(idx)*sampleSpacing(swingFrom, swingTo, len(path)))
				if isClear || idx < collision {
					collision = idx
				}
				isClear = false
			}
			fmt.Fprintf(w, "  %d\t%.1f, %.1f, %.1f\t%.1f × %.1f × %.1f\t%s\n", i+1,
				obs.Center.X, obs.Center.Y, obs.Center.Z,
				obs.Dimensions.X, obs.Dimensions.Y, obs.Dimensions.Z, status)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	status := "✓ CLEAR"
	if !isClear {
		status = fmt.Sprintf("✗ COLLISION at sample %d", collision+1)
	}
	fmt.Fprint(out, diagram.DrawSummaryBox("SWING", []string{"Status: " + status}))
	fmt.Fprintln(out)

	if swingExportFile != "" {
		var tip kinematics.Vec3
		var hook kinematics.Vec3
		if len(path) > 0 {
			tip = kinematics.BoomTipPosition(kinematics.Vec3{}, swingBoom, swingAngle, swingFrom, pivot)
			hook = path[0]
		}
		view := diagram.PlanView{
			Title:          fmt.Sprintf("%s swing %.0f° to %.0f°", spec.Name(), swingFrom, swingTo),
			BoomTip:        tip,
			Hook:           hook,
			SwingPath:      path,
			CollisionIndex: collision,
			Obstacles:      obstacles,
			LoadDims:       load,
		}
		if err := diagram.ExportPlanView(view, swingExportFile); err != nil {
			return fmt.Errorf("error exporting plan view: %w", err)
		}
		fmt.Fprintf(out, "Plan view exported to: %s\n", swingExportFile)
	}

	return nil
}

// sampleSpacing is the swing angle between consecutive samples
func sampleSpacing(from, to float64, n int) float64 {
	if n < 2 {
		return 0
	}
	return (to - from) / float64(n-1)
}
