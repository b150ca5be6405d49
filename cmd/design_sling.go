package cmd

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexiusacademia/gocrane/internal/kinematics"
	"github.com/alexiusacademia/gocrane/internal/rigging"
	"github.com/spf13/cobra"
)

var (
	slingLoad   float64
	slingCount  int
	slingAngle  float64
	slingHitch  string
	slingLength float64
	slingWidth  float64
	slingHeight float64
)

var designSlingCmd = &cobra.Command{
	Use:   "sling",
	Short: "Required sling rating and suggested pick points",
	Long: `Compute the vertical rating each sling needs for a load shared by n
slings at a maximum angle from vertical, with a 20% margin:

  required = (load / n) / (cos(angle) × hitch factor) × 1.2

Hitch factors: vertical 1.0, choker 0.75, basket 2.0, bridle 1.0.

With the load dimensions, pick points are suggested on top of the load
for 2 or 4 slings (center of gravity at the origin).

Examples:
  # 12t on four slings at up to 30° in vertical hitch
  gocrane design sling --load 12000 --slings 4 --angle 30

  # Two chokers with pick point suggestions for a 6m x 1m x 1m beam
  gocrane design sling -l 5000 -n 2 -a 45 --hitch choker --length 6 --width 1 --height 1`,
	RunE: runDesignSling,
}

func init() {
	designCmd.AddCommand(designSlingCmd)

	designSlingCmd.Flags().Float64VarP(&slingLoad, "load", "l", 0, "Load weight (kg) [required]")
	designSlingCmd.Flags().IntVarP(&slingCount, "slings", "n", 4, "Number of slings sharing the load")
	designSlingCmd.Flags().Float64VarP(&slingAngle, "angle", "a", 30, "Maximum sling angle from vertical (degrees)")
	designSlingCmd.Flags().StringVar(&slingHitch, "hitch", "vertical", "Hitch: vertical, choker, basket, bridle")

	// Load dimensions for pick point suggestions
	designSlingCmd.Flags().Float64Var(&slingLength, "length", 0, "Load length along X (m)")
	designSlingCmd.Flags().Float64Var(&slingWidth, "width", 0, "Load width along Y (m)")
	designSlingCmd.Flags().Float64Var(&slingHeight, "height", 0, "Load height (m)")

	designSlingCmd.MarkFlagRequired("load")
}

func runDesignSling(cmd *cobra.Command, args []string) error {
	if slingLoad <= 0 {
		return errors.New("load must be positive")
	}
	if slingCount <= 0 || slingCount > rigging.MaxSlings {
		return fmt.Errorf("number of slings must be 1 to %d", rigging.MaxSlings)
	}
	hitch, err := rigging.ParseHitchType(slingHitch)
	if err != nil {
		return err
	}

	required := rigging.RequiredSlingCapacity(slingLoad, slingCount, slingAngle, hitch)

	out := cmd.OutOrStdout()
	printTitle(out, "SLING SELECTION")

	w := section(out, "INPUT")
	fmt.Fprintf(w, "  Load:\t%.0f kg\n", slingLoad)
	fmt.Fprintf(w, "  Slings:\t%d\n", slingCount)
	fmt.Fprintf(w, "  Max angle from vertical:\t%.1f°\n", slingAngle)
	fmt.Fprintf(w, "  Hitch:\t%s (×%.2f)\n", hitch, hitch.CapacityFactor())
	w.Flush()
	fmt.Fprintln(out)

	w = section(out, "REQUIREMENT")
	fmt.Fprintf(w, "  Share per sling:\t%.0f kg\n", slingLoad/float64(slingCount))
	if math.IsInf(required, 1) {
		fmt.Fprintf(w, "  Required rating:\tnot achievable at %.1f°\n", slingAngle)
	} else {
		fmt.Fprintf(w, "  Required rating:\t%.0f kg per sling\n", required)
	}
	w.Flush()
	fmt.Fprintln(out)

	if slingLength > 0 && slingWidth > 0 {
		load := rigging.Load{
			WeightKg:   slingLoad,
			Dimensions: kinematics.V(slingLength, slingWidth, slingHeight),
		}
		points := rigging.SuggestPickPoints(load, slingCount)
		if len(points) == 0 {
			fmt.Fprintf(out, "  No pick point layout for %d slings; suggestions cover 2 or 4.\n\n", slingCount)
			return nil
		}

		w = section(out, "SUGGESTED PICK POINTS")
		fmt.Fprintln(w, "  #\tX (m)\tY (m)\tZ (m)")
		for i, p := range points {
			fmt.Fprintf(w, "  %d\t%.2f\t%.2f\t%.2f\n", i+1, p.X, p.Y, p.Z)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	return nil
}
