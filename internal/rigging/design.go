package rigging

import (
	"math"

	"github.com/alexiusacademia/gocrane/internal/kinematics"
)

// DynamicFactors are the operating conditions that increase a static tension
type DynamicFactors struct {
	ImpactLoading bool
	WindSpeedMS   float64
}

// Multiplier composes the factors: ×1.25 for impact loading and
// ×(1 + wind/50) when the wind exceeds 5 m/s
func (f DynamicFactors) Multiplier() float64 {
	m := 1.0
	if f.ImpactLoading {
		m *= 1.25
	}
	if f.WindSpeedMS > 5 {
		m *= 1 + f.WindSpeedMS/50
	}
	return m
}

// ApplyDynamicFactors scales a static tension by the dynamic multiplier
func ApplyDynamicFactors(staticTensionKg float64, f DynamicFactors) float64 {
	return staticTensionKg * f.Multiplier()
}

// SpreaderBeamAnalysis holds the design forces of a spreader beam
type SpreaderBeamAnalysis struct {
	MaxBendingMomentNm float64
	MaxShearForceN     float64
	// elastic section modulus needed at 250 MPa
	RequiredSectionModulusM3 float64
}

// steel yield strength used for the section modulus (Pa)
const spreaderYieldPa = 250e6

// AnalyzeSpreaderBeam treats the beam as simply supported with the load and
// its own weight as a uniform load: M = WL/8, V = W/2, Z = M/fy.
func AnalyzeSpreaderBeam(beamLengthM, beamWeightKg, loadKg float64) SpreaderBeamAnalysis {
	w := (loadKg + beamWeightKg) * G
	m := w * beamLengthM / 8

	return SpreaderBeamAnalysis{
		MaxBendingMomentNm:       m,
		MaxShearForceN:           w / 2,
		RequiredSectionModulusM3: m / spreaderYieldPa,
	}
}

// SuggestPickPoints proposes attachment points on top of the load.
// Two points sit at ±0.4 of the length from the CoG along X; four points sit
// at ±0.35 of the length and width. Other counts yield nil.
func SuggestPickPoints(load Load, n int) []kinematics.Vec3 {
	cog := load.CenterOfGravity
	dims := load.Dimensions
	top := cog.Z + dims.Z*0.5

	switch n {
	case 2:
		dx := dims.X * 0.4
		return []kinematics.Vec3{
			{X: cog.X - dx, Y: cog.Y, Z: top},
			{X: cog.X + dx, Y: cog.Y, Z: top},
		}
	case 4:
		dx := dims.X * 0.35
		dy := dims.Y * 0.35
		return []kinematics.Vec3{
			{X: cog.X + dx, Y: cog.Y + dy, Z: top},
			{X: cog.X + dx, Y: cog.Y - dy, Z: top},
			{X: cog.X - dx, Y: cog.Y + dy, Z: top},
			{X: cog.X - dx, Y: cog.Y - dy, Z: top},
		}
	}
	return nil
}

// RequiredSlingCapacity returns the vertical rating each of n slings needs:
// (load/n) / (cos(maxAngle)·hitch factor) with a 20% margin. It returns 0
// for no slings, and +Inf when maxAngle leaves no vertical component.
func RequiredSlingCapacity(loadKg float64, n int, maxAngleFromVerticalDeg float64, hitch HitchType) float64 {
	if n <= 0 {
		return 0
	}

	cos := math.Cos(kinematics.Rad(maxAngleFromVerticalDeg))
	if cos <= minVerticalCosine {
		return math.Inf(1)
	}

	perSling := loadKg / float64(n)
	return perSling / (cos * hitch.CapacityFactor()) * 1.2
}
