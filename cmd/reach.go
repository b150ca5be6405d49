package cmd

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gocrane/internal/kinematics"
	"github.com/spf13/cobra"
)

var (
	reachBoom   float64
	reachRadius float64
	reachHeight float64
	reachPivot  float64
	reachHoist  float64
)

var reachCmd = &cobra.Command{
	Use:   "reach",
	Short: "Find the boom angle that puts the hook at a height and radius",
	Long: `Solve the boom angle that puts the hook at a target height for a
working radius, given the boom length, boom pivot height and the hoist line
paid out below the tip.

The target is unreachable when the boom tip would have to sit farther from
the pivot than the boom is long.

Examples:
  # 40m boom, hook 20m high at 20m radius with 5m of hoist
  gocrane reach --boom 40 --radius 20 --height 20 --hoist 5

  # Different pivot height
  gocrane reach -b 30 -r 15 -H 10 --pivot 2.5 --hoist 3`,
	RunE: runReach,
}

func init() {
	rootCmd.AddCommand(reachCmd)

	reachCmd.Flags().Float64VarP(&reachBoom, "boom", "b", 0, "Boom length (m) [required]")
	reachCmd.Flags().Float64VarP(&reachRadius, "radius", "r", 0, "Working radius (m) [required]")
	reachCmd.Flags().Float64VarP(&reachHeight, "height", "H", 0, "Target hook height (m) [required]")
	reachCmd.Flags().Float64Var(&reachPivot, "pivot", 3, "Boom pivot height above the crane base (m)")
	reachCmd.Flags().Float64Var(&reachHoist, "hoist", 0, "Hoist line below the boom tip (m)")

	reachCmd.MarkFlagRequired("boom")
	reachCmd.MarkFlagRequired("radius")
	reachCmd.MarkFlagRequired("height")
}

func runReach(cmd *cobra.Command, args []string) error {
	if reachBoom <= 0 {
		return fmt.Errorf("boom length must be positive")
	}

	out := cmd.OutOrStdout()
	printTitle(out, "BOOM REACH")

	w := section(out, "TARGET")
	fmt.Fprintf(w, "  Boom length:\t%.1f m\n", reachBoom)
	fmt.Fprintf(w, "  Radius:\t%.1f m\n", reachRadius)
	fmt.Fprintf(w, "  Hook height:\t%.1f m\n", reachHeight)
	fmt.Fprintf(w, "  Pivot height:\t%.1f m\n", reachPivot)
	fmt.Fprintf(w, "  Hoist line:\t%.1f m\n", reachHoist)
	w.Flush()
	fmt.Fprintln(out)

	angle, ok := kinematics.BoomAngleForHeight(reachBoom, reachRadius, reachHeight, reachPivot, reachHoist)
	if !ok {
		needed := math.Hypot(reachRadius, reachHeight+reachHoist-reachPivot)
		return fmt.Errorf("target is out of reach: the boom tip is %.1fm from the pivot, boom is %.1fm", needed, reachBoom)
	}

	tip := kinematics.BoomTipPosition(kinematics.Vec3{}, reachBoom, angle, 0, reachPivot)
	hook := kinematics.HookPosition(kinematics.Vec3{}, reachBoom, angle, 0, reachPivot, reachHoist)
	logger.Debug().Float64("angle", angle).Float64("tipRadius", tip.Y).Msg("reach solved")

	w = section(out, "SOLUTION")
	fmt.Fprintf(w, "  Boom angle:\t%.2f°\n", angle)
	fmt.Fprintf(w, "  Boom tip:\t%.2f m radius, %.2f m high\n", tip.Y, tip.Z)
	fmt.Fprintf(w, "  Hook:\t%.2f m radius, %.2f m high\n", hook.Y, hook.Z)
	fmt.Fprintf(w, "  Hoist for target height:\t%.2f m\n", kinematics.HoistLengthForHeight(tip.Z, reachHeight))
	w.Flush()
	fmt.Fprintln(out)

	return nil
}
