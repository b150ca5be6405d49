package kinematics

import "math"

// BoomTipPosition calculates where the boom tip sheave sits in world coordinates.
//
// boomAngleDeg is measured from horizontal (0 = horizontal, 90 = vertical).
// swingDeg is a compass bearing clockwise from +Y (0 = forward, 90 = right).
// pivotHeight is the boom foot height above the crane base.
func BoomTipPosition(base Vec3, boomLength, boomAngleDeg, swingDeg, pivotHeight float64) Vec3 {
	boomRad := Rad(boomAngleDeg)
	swingRad := Rad(swingDeg)

	horizontal := boomLength * math.Cos(boomRad)
	vertical := boomLength * math.Sin(boomRad)

	return Vec3{
		X: base.X + horizontal*math.Sin(swingRad),
		Y: base.Y + horizontal*math.Cos(swingRad),
		Z: base.Z + pivotHeight + vertical,
	}
}

// HookPosition calculates the hook position below the boom tip.
// The hoist line hangs vertically with no sag or sway.
func HookPosition(base Vec3, boomLength, boomAngleDeg, swingDeg, pivotHeight, hoistLength float64) Vec3 {
	tip := BoomTipPosition(base, boomLength, boomAngleDeg, swingDeg, pivotHeight)
	tip.Z -= hoistLength
	return tip
}

// BoomAngleForHeight returns the boom angle (degrees) that puts the hook at
// targetHookHeight for the given radius. ok is false if the boom tip cannot
// reach the required point.
func BoomAngleForHeight(boomLength, radius, targetHookHeight, pivotHeight, hoistLength float64) (angleDeg float64, ok bool) {
	tipHeight := targetHookHeight + hoistLength
	heightFromPivot := tipHeight - pivotHeight

	if math.Hypot(radius, heightFromPivot) > boomLength {
		return 0, false
	}

	return Deg(math.Atan2(heightFromPivot, radius)), true
}

// HoistLengthForHeight returns the cable length needed to lower the hook
// from the boom tip to targetHookHeight, never negative.
func HoistLengthForHeight(boomTipHeight, targetHookHeight float64) float64 {
	return math.Max(boomTipHeight-targetHookHeight, 0)
}
