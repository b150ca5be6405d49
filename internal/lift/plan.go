package lift

import (
	"fmt"

	"github.com/alexiusacademia/gocrane/internal/crane"
	"github.com/alexiusacademia/gocrane/internal/ground"
	"github.com/alexiusacademia/gocrane/internal/kinematics"
	"github.com/alexiusacademia/gocrane/internal/rigging"
	"github.com/samber/lo"
)

// Options are the site defaults used where a scenario is silent
type Options struct {
	GroundSafetyFactor float64
	SwingSteps         int
	ClearanceMargin    float64
}

// DefaultOptions matches the configuration defaults
func DefaultOptions() Options {
	return Options{
		GroundSafetyFactor: 2.0,
		SwingSteps:         36,
		ClearanceMargin:    0.5,
	}
}

// SwingCheck is the result of sampling a slew against the obstacles
type SwingCheck struct {
	Path  []kinematics.Vec3
	Clear bool
	// first colliding sample and obstacle, -1 when clear
	CollisionIndex int
	ObstacleIndex  int
}

// Report aggregates every check of a lift plan. Failed checks are recorded
// in the report rather than stopping the plan.
type Report struct {
	Scenario  string
	CraneName string
	Crane     crane.State
	RadiusM   float64
	BoomTip   kinematics.Vec3
	Hook      kinematics.Vec3

	ConfigErr error

	CapacityKg     float64
	HasCapacity    bool
	GrossLoadKg    float64
	UtilizationPct float64
	// gross load within the safe working load
	WithinSWL   bool
	CapacityErr error

	Rigging           rigging.Analysis
	RiggingErr        error
	DynamicMultiplier float64
	PeakTensionKg     float64

	Ground    *ground.Analysis
	GroundErr error
	// world positions of the support points, in Ground.Pressures order
	Supports []kinematics.Vec3

	Swing *SwingCheck

	Findings []string
}

// IsSafe reports whether every check passed
func (r Report) IsSafe() bool {
	if r.ConfigErr != nil || r.CapacityErr != nil || !r.WithinSWL {
		return false
	}
	if r.RiggingErr != nil || !r.Rigging.Safety.IsSafe {
		return false
	}
	if r.GroundErr != nil || (r.Ground != nil && !r.Ground.IsSafe) {
		return false
	}
	return r.Swing == nil || r.Swing.Clear
}

// Plan runs the lift: crane configuration, capacity against the gross load
// (load plus rigging), rigging statics with the crane hook position, ground
// bearing under the supports and an optional swing clearance check.
//
// An error is returned only when the scenario cannot be turned into a crane
// and rigging at all; failed checks are reported in the Report.
func Plan(s Scenario, opts Options) (Report, error) {
	cfg, err := s.CraneConfiguration()
	if err != nil {
		return Report{}, err
	}

	hook := cfg.HookPosition()
	rig, err := s.RiggingConfiguration(hook)
	if err != nil {
		return Report{}, err
	}

	r := Report{
		Scenario:    s.Name,
		CraneName:   cfg.Spec.Name(),
		Crane:       cfg.State(),
		RadiusM:     cfg.Radius(),
		BoomTip:     cfg.BoomTipPosition(),
		Hook:        hook,
		ConfigErr:   cfg.Validate(),
		GrossLoadKg: s.Load.WeightKg + rig.WeightKg(),
	}
	if r.ConfigErr != nil {
		r.finding("Configuration: %v", r.ConfigErr)
	}

	r.checkCapacity(cfg)
	r.checkRigging(rig, s.Dynamic)

	if err := r.checkGround(s, cfg, opts); err != nil {
		return Report{}, err
	}

	if s.Swing != nil {
		r.Swing = checkSwing(cfg, *s.Swing, s.Load.Dimensions, opts)
		if !r.Swing.Clear {
			r.finding("Swing: load hits obstacle %d at sample %d of %d",
				r.Swing.ObstacleIndex+1, r.Swing.CollisionIndex+1, len(r.Swing.Path))
		}
	}

	return r, nil
}

func (r *Report) finding(format string, args ...any) {
	r.Findings = append(r.Findings, fmt.Sprintf(format, args...))
}

func (r *Report) checkCapacity(cfg crane.Configuration) {
	r.CapacityKg, r.HasCapacity = cfg.CurrentCapacity()
	if r.HasCapacity && r.CapacityKg > 0 {
		r.UtilizationPct = r.GrossLoadKg / r.CapacityKg * 100
	}

	r.WithinSWL, r.CapacityErr = cfg.CanLift(r.GrossLoadKg)
	switch {
	case r.CapacityErr != nil:
		r.finding("Capacity: %v", r.CapacityErr)
	case !r.WithinSWL:
		r.finding("Capacity: gross load %.0f kg is above %.0f%% of capacity (%.0f kg)",
			r.GrossLoadKg, crane.SafeWorkingLoadRatio*100, r.CapacityKg)
	}
}

func (r *Report) checkRigging(rig rigging.Configuration, dyn DynamicSetup) {
	analysis, err := rigging.Analyze(rig)
	if err != nil {
		r.RiggingErr = err
		r.finding("Rigging: %v", err)
		return
	}

	r.Rigging = analysis
	if err := analysis.Err(); err != nil {
		r.RiggingErr = err
		r.finding("Rigging: %v", err)
	}
	for _, w := range analysis.Warnings {
		r.finding("Rigging: %s", w)
	}

	factors := rigging.DynamicFactors{ImpactLoading: dyn.ImpactLoading, WindSpeedMS: dyn.WindSpeedMS}
	r.DynamicMultiplier = factors.Multiplier()

	peak := lo.MaxBy(analysis.SlingTensions, func(a, b rigging.SlingTension) bool { return a.TensionKg > b.TensionKg })
	r.PeakTensionKg = rigging.ApplyDynamicFactors(peak.TensionKg, factors)
	if r.DynamicMultiplier > 1 && peak.CapacityKg > 0 && r.PeakTensionKg > peak.CapacityKg {
		r.finding("Rigging: sling '%s' is overloaded under dynamic factors (%.0f kg > %.0f kg)",
			peak.SlingID, r.PeakTensionKg, peak.CapacityKg)
	}
}

func (r *Report) checkGround(s Scenario, cfg crane.Configuration, opts Options) error {
	total := cfg.TotalWeightKg() + r.GrossLoadKg
	gc, ok, err := s.GroundConfiguration(cfg, total, opts.GroundSafetyFactor)
	if err != nil {
		return err
	}
	if !ok {
		if s.Ground != nil {
			r.finding("Ground: no outrigger is set and no tires are described")
		}
		return nil
	}
	r.Supports = lo.Map(gc.SupportPoints, func(p ground.SupportPoint, _ int) kinematics.Vec3 { return p.Position })

	analysis, err := ground.Analyze(gc)
	if err != nil {
		r.GroundErr = err
		r.finding("Ground: %v", err)
		return nil
	}

	r.Ground = &analysis
	for _, p := range analysis.Pressures {
		if !p.IsSafe {
			r.finding("Ground: support %d at %.1f kPa exceeds %.1f kPa allowable on %s",
				p.SupportIndex+1, p.PressureKPa, p.AllowableKPa, analysis.Soil)
		}
	}
	return nil
}

func checkSwing(cfg crane.Configuration, sw SwingSetup, loadDims kinematics.Vec3, opts Options) *SwingCheck {
	steps := sw.Steps
	if steps == 0 {
		steps = opts.SwingSteps
	}

	path := kinematics.SwingPath(cfg.Position, cfg.BoomLengthM, cfg.BoomAngleDeg,
		sw.FromDeg+cfg.HeadingDeg, sw.ToDeg+cfg.HeadingDeg,
		cfg.Spec.BoomPivotHeightM, cfg.HoistLengthM, steps)

	check := &SwingCheck{Path: path, Clear: true, CollisionIndex: -1, ObstacleIndex: -1}
	for i, obs := range sw.Obstacles {
		if at, hit := kinematics.FirstCollision(path, loadDims, obs, opts.ClearanceMargin); hit {
			if check.Clear || at < check.CollisionIndex {
				check.Clear = false
				check.CollisionIndex = at
				check.ObstacleIndex = i
			}
		}
	}
	return check
}
