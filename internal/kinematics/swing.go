package kinematics

import "math"

// SwingPath samples hook positions while the boom slews from fromDeg to toDeg.
//
// steps == 0 yields an empty path and steps == 1 yields only the start
// position; otherwise both ends are included.
func SwingPath(base Vec3, boomLength, boomAngleDeg, fromDeg, toDeg, pivotHeight, hoistLength float64, steps int) []Vec3 {
	if steps <= 0 {
		return nil
	}
	if steps == 1 {
		return []Vec3{HookPosition(base, boomLength, boomAngleDeg, fromDeg, pivotHeight, hoistLength)}
	}

	path := make([]Vec3, 0, steps)
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps-1)
		swing := fromDeg + t*(toDeg-fromDeg)
		path = append(path, HookPosition(base, boomLength, boomAngleDeg, swing, pivotHeight, hoistLength))
	}
	return path
}

// Box is an axis-aligned box given by its center and full dimensions.
type Box struct {
	Center     Vec3 `json:"center" yaml:"center"`
	Dimensions Vec3 `json:"dimensions" yaml:"dimensions"`
}

// CheckClearance reports whether a load hanging below each sampled hook
// position stays clear of the obstacle. Both boxes are grown by margin on
// every side. Only the samples are tested, so a collision between two
// samples can be missed.
func CheckClearance(path []Vec3, loadDims Vec3, obstacle Box, margin float64) bool {
	_, hit := FirstCollision(path, loadDims, obstacle, margin)
	return !hit
}

// FirstCollision returns the index of the first path sample whose load box
// overlaps the obstacle.
func FirstCollision(path []Vec3, loadDims Vec3, obstacle Box, margin float64) (int, bool) {
	grow := Vec3{margin, margin, margin}
	loadHalf := loadDims.Scale(0.5).Add(grow)
	obsHalf := obstacle.Dimensions.Scale(0.5).Add(grow)

	for i, hook := range path {
		// load hangs below the hook
		center := Vec3{hook.X, hook.Y, hook.Z - loadDims.Z/2}

		if math.Abs(center.X-obstacle.Center.X) < loadHalf.X+obsHalf.X &&
			math.Abs(center.Y-obstacle.Center.Y) < loadHalf.Y+obsHalf.Y &&
			math.Abs(center.Z-obstacle.Center.Z) < loadHalf.Z+obsHalf.Z {
			return i, true
		}
	}
	return -1, false
}
