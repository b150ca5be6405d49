// Package ground checks that the soil under a crane can carry the loads
// delivered through its outrigger pads, mats or tires.
package ground

import (
	"errors"
	"fmt"
	"math"

	"github.com/samber/lo"
)

// G is standard gravity (m/s²)
const G = 9.81

var (
	ErrNoSupportPoints     = errors.New("no support points defined")
	ErrInvalidSafetyFactor = errors.New("invalid safety factor")
	ErrInvalidContactArea  = errors.New("invalid contact area")
)

// Configuration is one ground bearing check
type Configuration struct {
	SupportPoints []SupportPoint
	Soil          Soil
	// applied to the soil capacity, must be at least 1
	SafetyFactor float64
}

// BearingPressure is the result for one support point
type BearingPressure struct {
	SupportIndex   int
	PressureKPa    float64
	AllowableKPa   float64
	IsSafe         bool
	UtilizationPct float64
}

// Analysis is the result of a ground bearing check
type Analysis struct {
	IsSafe    bool
	Soil      Soil
	Pressures []BearingPressure
}

// Critical returns the support point with the highest utilization
func (a Analysis) Critical() (BearingPressure, bool) {
	if len(a.Pressures) == 0 {
		return BearingPressure{}, false
	}
	return lo.MaxBy(a.Pressures, func(x, max BearingPressure) bool {
		return x.UtilizationPct > max.UtilizationPct
	}), true
}

// Analyze computes the bearing pressure under each support point and
// compares it with the soil capacity divided by the safety factor.
func Analyze(cfg Configuration) (Analysis, error) {
	if len(cfg.SupportPoints) == 0 {
		return Analysis{}, ErrNoSupportPoints
	}
	if !(cfg.SafetyFactor >= 1) {
		return Analysis{}, fmt.Errorf("%w: %.2f is below 1.0", ErrInvalidSafetyFactor, cfg.SafetyFactor)
	}

	allowable := cfg.Soil.AllowableKPa() / cfg.SafetyFactor

	pressures := make([]BearingPressure, len(cfg.SupportPoints))
	for i, p := range cfg.SupportPoints {
		area := p.ContactAreaM2()
		if area <= 0 {
			return Analysis{}, fmt.Errorf("%w: support point %d has area %.4f m²", ErrInvalidContactArea, i, area)
		}

		kpa := p.LoadKg * G / 1000 / area

		utilization := math.Inf(1)
		if allowable > 0 {
			utilization = kpa / allowable * 100
		}
		pressures[i] = BearingPressure{
			SupportIndex:   i,
			PressureKPa:    kpa,
			AllowableKPa:   allowable,
			IsSafe:         kpa <= allowable,
			UtilizationPct: utilization,
		}
	}

	return Analysis{
		IsSafe:    lo.EveryBy(pressures, func(b BearingPressure) bool { return b.IsSafe }),
		Soil:      cfg.Soil,
		Pressures: pressures,
	}, nil
}

// RequiredMatAreaM2 is the smallest contact area that keeps loadKg within
// the soil capacity at the given safety factor
func RequiredMatAreaM2(loadKg float64, soil Soil, safetyFactor float64) (float64, error) {
	if !(safetyFactor >= 1) {
		return 0, fmt.Errorf("%w: %.2f is below 1.0", ErrInvalidSafetyFactor, safetyFactor)
	}
	allowable := soil.AllowableKPa() / safetyFactor
	if allowable <= 0 {
		return 0, fmt.Errorf("soil %s has no bearing capacity", soil)
	}
	return loadKg * G / 1000 / allowable, nil
}
