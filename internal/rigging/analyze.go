package rigging

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gocrane/internal/kinematics"
	"gonum.org/v1/gonum/mat"
)

const (
	// G is standard gravity (m/s²)
	G = 9.81

	// MinSafetyFactor is the rated-capacity to tension ratio a rig must keep
	MinSafetyFactor = 5.0

	// MaxSlings is the largest rig the solver handles
	MaxSlings = 6

	balanceToleranceM  = 0.05
	shallowAngleDeg    = 60.0
	highUtilizationPct = 90.0
	cogOffsetWarnM     = 0.2

	minSlingLengthM   = 0.001
	minMomentArmSumM  = 0.001
	singularDetTol    = 1e-6
	svdTol            = 1e-6
	minVerticalCosine = 1e-6
	negativeTensionKg = -0.001
)

// SlingTension is the solved state of one sling
type SlingTension struct {
	SlingID              string
	TensionKg            float64
	TensionKN            float64
	AngleFromVerticalDeg float64
	// rated capacity reduced for angle and hitch
	CapacityKg     float64
	UtilizationPct float64
	IsSafe         bool
}

// SafetyAnalysis summarizes the rig against the 5:1 requirement
type SafetyAnalysis struct {
	// minimum capacity/tension over all slings; +Inf when nothing is loaded
	OverallSafetyFactor float64
	CriticalSlingID     string
	IsSafe              bool
	// hook position minus load center of gravity
	CoGOffsetFromHook kinematics.Vec3
}

// Analysis is the result of a rigging analysis
type Analysis struct {
	SlingTensions        []SlingTension
	TotalRiggingWeightKg float64
	IsBalanced           bool
	// tilt about X and Y in degrees; nil when balanced
	TiltDeg  *kinematics.Vec3
	Safety   SafetyAnalysis
	Warnings []string
}

// Err turns the hard failures of an analysis into an error: the first
// overloaded sling, then an unbalanced load. Advisory warnings are ignored.
func (a Analysis) Err() error {
	for _, t := range a.SlingTensions {
		if !t.IsSafe {
			return fmt.Errorf("%w: sling '%s' at %.0f%% of capacity", ErrSlingOverloaded, t.SlingID, t.UtilizationPct)
		}
	}
	if !a.IsBalanced && a.TiltDeg != nil {
		tilt := math.Max(math.Abs(a.TiltDeg.X), math.Abs(a.TiltDeg.Y))
		return fmt.Errorf("%w: load tilts %.1f°", ErrUnbalancedLoad, tilt)
	}
	return nil
}

// Analyze solves sling tensions for the configuration and evaluates
// capacity, balance and safety.
//
// 1 sling carries the full weight. 2 slings share it by the inverse of
// their distance to the center of gravity, each corrected by its own angle.
// 3 slings are solved exactly from the equilibrium of forces. 4 to 6 slings
// are statically indeterminate and take the least-squares solution with the
// smallest sum of squared tensions.
func Analyze(cfg Configuration) (Analysis, error) {
	tensions, err := solveTensions(cfg.Load, cfg.Slings)
	if err != nil {
		return Analysis{}, err
	}

	slings := make([]SlingTension, len(cfg.Slings))
	for i, s := range cfg.Slings {
		slings[i], err = analyzeSling(s, tensions[i])
		if err != nil {
			return Analysis{}, err
		}
	}

	balanced, tilt := checkBalance(cfg.Load, cfg.Slings, slings)
	safety := analyzeSafety(cfg.Load, slings, cfg.HookPosition)

	return Analysis{
		SlingTensions:        slings,
		TotalRiggingWeightKg: cfg.WeightKg(),
		IsBalanced:           balanced,
		TiltDeg:              tilt,
		Safety:               safety,
		Warnings:             warnings(slings, safety),
	}, nil
}

func solveTensions(load Load, slings []Sling) ([]float64, error) {
	switch n := len(slings); {
	case n == 0:
		return nil, ErrInsufficientPickPoints
	case n == 1:
		return []float64{load.WeightKg}, nil
	case n == 2:
		return solveTwo(load, slings)
	case n == 3:
		return solveThree(load, slings)
	case n <= MaxSlings:
		return solveMulti(load, slings)
	default:
		return nil, fmt.Errorf("%w: too many slings (%d, max %d supported)", ErrInvalidConfiguration, n, MaxSlings)
	}
}

// direction returns the unit vector from attachment to hook point
func direction(s Sling) (kinematics.Vec3, error) {
	u, ok := s.HookPoint.Sub(s.Attachment).Normalize(minSlingLengthM)
	if !ok {
		return kinematics.Vec3{}, fmt.Errorf("%w: sling '%s' length too short", ErrInvalidConfiguration, s.Spec.ID)
	}
	return u, nil
}

// verticalCosine is the cosine of the sling angle from vertical
func verticalCosine(s Sling) (float64, error) {
	u, err := direction(s)
	if err != nil {
		return 0, err
	}
	return math.Max(-1, math.Min(1, u.Z)), nil
}

func solveTwo(load Load, slings []Sling) ([]float64, error) {
	r1 := slings[0].Attachment.Sub(load.CenterOfGravity).Norm()
	r2 := slings[1].Attachment.Sub(load.CenterOfGravity).Norm()
	if r1+r2 < minMomentArmSumM {
		return nil, fmt.Errorf("%w: pick points too close to center of gravity", ErrInvalidConfiguration)
	}

	// moment balance about the CoG, then per-sling angle correction
	shares := []float64{
		load.WeightKg * r2 / (r1 + r2),
		load.WeightKg * r1 / (r1 + r2),
	}

	tensions := make([]float64, 2)
	for i, s := range slings {
		cos, err := verticalCosine(s)
		if err != nil {
			return nil, err
		}
		if cos < minVerticalCosine {
			return nil, fmt.Errorf("%w: sling '%s' is horizontal or below the load", ErrInvalidConfiguration, s.Spec.ID)
		}
		tensions[i] = shares[i] / cos
	}
	return tensions, nil
}

// directionMatrix builds the 3×n matrix whose columns are sling unit vectors
func directionMatrix(slings []Sling) (*mat.Dense, error) {
	a := mat.NewDense(3, len(slings), nil)
	for i, s := range slings {
		u, err := direction(s)
		if err != nil {
			return nil, err
		}
		a.SetCol(i, []float64{u.X, u.Y, u.Z})
	}
	return a, nil
}

// loadVector is the force the slings must supply: the negated weight (N)
func loadVector(load Load) *mat.VecDense {
	return mat.NewVecDense(3, []float64{0, 0, load.WeightKg * G})
}

func solveThree(load Load, slings []Sling) ([]float64, error) {
	a, err := directionMatrix(slings)
	if err != nil {
		return nil, err
	}

	if math.Abs(mat.Det(a)) < singularDetTol {
		return nil, fmt.Errorf("%w: slings are coplanar or collinear, cannot solve", ErrInvalidConfiguration)
	}

	var t mat.VecDense
	if err := t.SolveVec(a, loadVector(load)); err != nil {
		return nil, fmt.Errorf("%w: cannot invert sling geometry matrix: %v", ErrSolveFailed, err)
	}

	return toKilograms(&t)
}

func solveMulti(load Load, slings []Sling) ([]float64, error) {
	a, err := directionMatrix(slings)
	if err != nil {
		return nil, err
	}
	n := len(slings)

	// normal equations AᵀA·T = Aᵀb solved through the SVD pseudo-inverse
	var ata mat.Dense
	ata.Mul(a.T(), a)
	var atb mat.VecDense
	atb.MulVec(a.T(), loadVector(load))

	var svd mat.SVD
	if ok := svd.Factorize(&ata, mat.SVDThin); !ok {
		return nil, fmt.Errorf("%w: SVD did not converge", ErrSolveFailed)
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	values := svd.Values(nil)

	// T = V·Σ⁺·Uᵀ·Aᵀb, dropping singular values below tolerance
	var utb mat.VecDense
	utb.MulVec(u.T(), &atb)
	scaled := mat.NewVecDense(n, nil)
	for i, s := range values {
		if s > svdTol {
			scaled.SetVec(i, utb.AtVec(i)/s)
		}
	}

	var t mat.VecDense
	t.MulVec(&v, scaled)

	return toKilograms(&t)
}

// toKilograms converts solved forces to kg, rejecting compressive results
func toKilograms(t *mat.VecDense) ([]float64, error) {
	out := make([]float64, t.Len())
	for i := range out {
		kg := t.AtVec(i) / G
		if math.IsNaN(kg) || math.IsInf(kg, 0) {
			return nil, fmt.Errorf("%w: non-finite tension", ErrSolveFailed)
		}
		if kg < negativeTensionKg {
			return nil, fmt.Errorf("%w: configuration produces negative tension, check pick point locations", ErrInvalidConfiguration)
		}
		out[i] = math.Abs(kg)
	}
	return out, nil
}

func analyzeSling(s Sling, tensionKg float64) (SlingTension, error) {
	cos, err := verticalCosine(s)
	if err != nil {
		return SlingTension{}, err
	}
	if cos <= minVerticalCosine {
		return SlingTension{}, fmt.Errorf("%w: sling '%s' is horizontal or below the load", ErrInvalidConfiguration, s.Spec.ID)
	}

	capacity := s.Spec.RatedCapacityKg * cos * s.Hitch.CapacityFactor()
	utilization := tensionKg / capacity * 100

	return SlingTension{
		SlingID:              s.Spec.ID,
		TensionKg:            tensionKg,
		TensionKN:            tensionKg * G / 1000,
		AngleFromVerticalDeg: kinematics.Deg(math.Acos(cos)),
		CapacityKg:           capacity,
		UtilizationPct:       utilization,
		IsSafe:               utilization <= 100,
	}, nil
}

// checkBalance compares the tension-weighted centroid of the attachments
// with the center of gravity. Any offset over 5cm, vertical included,
// counts as unbalanced; the tilt is taken from the offset in plan over the
// load height.
func checkBalance(load Load, slings []Sling, tensions []SlingTension) (bool, *kinematics.Vec3) {
	total := 0.0
	for _, t := range tensions {
		total += t.TensionKg
	}
	if total < 0.001 {
		return false, nil
	}

	var centroid kinematics.Vec3
	for i, s := range slings {
		centroid = centroid.Add(s.Attachment.Scale(tensions[i].TensionKg / total))
	}

	offset := centroid.Sub(load.CenterOfGravity)
	if offset.Norm() < balanceToleranceM {
		return true, nil
	}

	height := load.Dimensions.Z
	return false, &kinematics.Vec3{
		X: kinematics.Deg(math.Atan2(offset.X, height)),
		Y: kinematics.Deg(math.Atan2(offset.Y, height)),
	}
}

func analyzeSafety(load Load, tensions []SlingTension, hook kinematics.Vec3) SafetyAnalysis {
	minSF := math.Inf(1)
	critical := ""
	for _, t := range tensions {
		if t.TensionKg < 1e-9 {
			continue
		}
		if sf := t.CapacityKg / t.TensionKg; sf < minSF {
			minSF = sf
			critical = t.SlingID
		}
	}

	return SafetyAnalysis{
		OverallSafetyFactor: minSF,
		CriticalSlingID:     critical,
		IsSafe:              minSF >= MinSafetyFactor,
		CoGOffsetFromHook:   hook.Sub(load.CenterOfGravity),
	}
}

func warnings(tensions []SlingTension, safety SafetyAnalysis) []string {
	var out []string

	for _, t := range tensions {
		if t.AngleFromVerticalDeg > shallowAngleDeg {
			out = append(out, fmt.Sprintf(
				"Sling '%s' has shallow angle (%.1f° from vertical). Angles > 60° significantly increase tension.",
				t.SlingID, t.AngleFromVerticalDeg))
		}
		if t.UtilizationPct > highUtilizationPct {
			out = append(out, fmt.Sprintf("Sling '%s' is highly loaded (%.0f%% of capacity)", t.SlingID, t.UtilizationPct))
		}
		if !t.IsSafe {
			out = append(out, fmt.Sprintf("Sling '%s' is OVERLOADED (%.0f%% of capacity)!", t.SlingID, t.UtilizationPct))
		}
	}

	if safety.OverallSafetyFactor < MinSafetyFactor {
		out = append(out, fmt.Sprintf("Safety factor (%.1f:1) is below minimum required (5:1)", safety.OverallSafetyFactor))
	}

	if d := safety.CoGOffsetFromHook.Norm(); d > cogOffsetWarnM {
		out = append(out, fmt.Sprintf("Center of gravity is offset %.1fm from hook - load may swing during lift", d))
	}

	return out
}
