package crane

import (
	"math"

	"github.com/alexiusacademia/gocrane/internal/kinematics"
	"github.com/samber/lo"
)

// SafeWorkingLoadRatio is the share of chart capacity a routine lift may use
const SafeWorkingLoadRatio = 0.75

// Configuration is the mutable state of one crane on site. Every derived
// quantity (radius, hook position, capacity) is computed from the current
// fields on each call.
type Configuration struct {
	Spec Spec

	// world position of the slew center at ground level
	Position kinematics.Vec3
	// crane facing direction, 0° = north (+Y)
	HeadingDeg float64

	BoomLengthM  float64
	BoomAngleDeg float64
	// relative to HeadingDeg
	SwingAngleDeg float64
	HoistLengthM  float64

	Outriggers    OutriggerSystem
	Counterweight CounterweightConfig
}

// NewConfiguration returns a 30m boom at 60° facing forward with 10m of
// cable, outriggers retracted and no counterweight installed
func (s Spec) NewConfiguration() Configuration {
	return Configuration{
		Spec:          s,
		BoomLengthM:   30,
		BoomAngleDeg:  60,
		SwingAngleDeg: 0,
		HoistLengthM:  10,
		Outriggers:    s.NewOutriggerSystem(),
		Counterweight: s.NewCounterweight(),
	}
}

func (c Configuration) azimuth() float64 {
	return c.SwingAngleDeg + c.HeadingDeg
}

// Radius is the horizontal distance from slew center to boom tip
func (c Configuration) Radius() float64 {
	return c.BoomLengthM * math.Cos(kinematics.Rad(c.BoomAngleDeg))
}

// BoomTipPosition returns the sheave position in world coordinates
func (c Configuration) BoomTipPosition() kinematics.Vec3 {
	return kinematics.BoomTipPosition(c.Position, c.BoomLengthM, c.BoomAngleDeg, c.azimuth(), c.Spec.BoomPivotHeightM)
}

// HookPosition returns the hook position in world coordinates
func (c Configuration) HookPosition() kinematics.Vec3 {
	return kinematics.HookPosition(c.Position, c.BoomLengthM, c.BoomAngleDeg, c.azimuth(), c.Spec.BoomPivotHeightM, c.HoistLengthM)
}

// HookHeight returns the hook Z coordinate
func (c Configuration) HookHeight() float64 {
	return c.HookPosition().Z
}

// OnTires reports whether capacity must be taken from the on-tires rating
func (c Configuration) OnTires() bool {
	return !c.Outriggers.AllDeployed()
}

// CurrentCapacity looks up the de-rated chart capacity for the current
// boom, radius, swing and outrigger state. When the required outriggers are
// not all deployed the crane is rated on tires with zero extension.
func (c Configuration) CurrentCapacity() (float64, bool) {
	onTires := c.OnTires()

	extension := 0.0
	if !onTires {
		extension = c.Outriggers.AverageExtensionRatio()
	}

	return c.Spec.CapacityChart.Capacity(c.BoomLengthM, c.Radius(), c.SwingAngleDeg, extension, onTires)
}

// CanLift checks a load against the current capacity. It fails when the load
// exceeds chart capacity, and returns false without error when the load is
// within capacity but above the safe working load.
func (c Configuration) CanLift(loadKg float64) (bool, error) {
	capacityKg, ok := c.CurrentCapacity()
	if !ok {
		return false, unsafeErr("cannot determine capacity for current configuration")
	}

	if loadKg > capacityKg {
		return false, &ConfigError{
			Kind:    ErrLoadExceedsCapacity,
			Current: loadKg,
			Max:     capacityKg,
			Radius:  c.Radius(),
		}
	}

	return loadKg <= capacityKg*SafeWorkingLoadRatio, nil
}

// Validate returns the first violated constraint, checked in order: boom
// length, boom angle, radius, hook height, outriggers, counterweight.
func (c Configuration) Validate() error {
	s := c.Spec

	if !s.BoomLengthRange.Contains(c.BoomLengthM) {
		return rangeErr(ErrBoomLengthOutOfRange, c.BoomLengthM, s.BoomLengthRange.Min, s.BoomLengthRange.Max)
	}

	if c.BoomAngleDeg < s.MinBoomAngleDeg || c.BoomAngleDeg > s.MaxBoomAngleDeg {
		return rangeErr(ErrBoomAngleInvalid, c.BoomAngleDeg, s.MinBoomAngleDeg, s.MaxBoomAngleDeg)
	}

	radius := c.Radius()
	if radius < s.MinRadiusM || radius > s.MaxRadiusM {
		return rangeErr(ErrRadiusOutOfRange, radius, s.MinRadiusM, s.MaxRadiusM)
	}

	if h := c.HookHeight(); h > s.MaxTipHeightM {
		return &ConfigError{Kind: ErrHeightExceeded, Current: h, Max: s.MaxTipHeightM}
	}

	if err := c.Outriggers.Validate(); err != nil {
		return err
	}

	return c.Counterweight.Validate()
}

// TotalWeightKg is the carrier weight plus installed counterweight
func (c Configuration) TotalWeightKg() float64 {
	return c.Spec.BaseWeightKg + c.Counterweight.TotalWeightKg()
}

// SetOutriggerExtensionPct moves every outrigger to pct (0-1) of its
// maximum extension, deploying them for pct > 0 and retracting at 0
func (c *Configuration) SetOutriggerExtensionPct(pct float64) {
	c.Outriggers.SetExtensionPct(pct)
}

// DeployedPadCount returns how many outriggers are Set
func (c Configuration) DeployedPadCount() int {
	return lo.CountBy(c.Outriggers.Outriggers[:], func(o Outrigger) bool { return o.IsDeployed() })
}

// State is a lightweight snapshot of the boom pose
type State struct {
	BoomLengthM   float64
	BoomAngleDeg  float64
	SwingAngleDeg float64
	Position      kinematics.Vec3
}

// State captures the current boom pose
func (c Configuration) State() State {
	return State{
		BoomLengthM:   c.BoomLengthM,
		BoomAngleDeg:  c.BoomAngleDeg,
		SwingAngleDeg: c.SwingAngleDeg,
		Position:      c.Position,
	}
}
