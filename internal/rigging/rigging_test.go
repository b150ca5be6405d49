package rigging

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/alexiusacademia/gocrane/internal/kinematics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wireSling(id string, attach, hook kinematics.Vec3, ratedKg float64) Sling {
	return Sling{
		Spec: SlingSpec{
			ID:              id,
			Material:        WireRope{Grade: ExtraImprovedPlowSteel},
			DiameterMM:      20,
			LengthM:         hook.Sub(attach).Norm(),
			RatedCapacityKg: ratedKg,
			SafetyFactor:    5,
		},
		Hitch:      Vertical,
		Attachment: attach,
		HookPoint:  hook,
	}
}

func centeredLoad(weightKg float64) Load {
	return Load{
		WeightKg:   weightKg,
		Dimensions: kinematics.V(4, 2, 1),
	}
}

func TestAnalyze_SingleVerticalSling(t *testing.T) {
	hook := kinematics.V(0, 0, 5)
	cfg := Configuration{
		Load:         centeredLoad(1000),
		Slings:       []Sling{wireSling("s1", kinematics.V(0, 0, 0), hook, 10000)},
		HookPosition: hook,
	}

	a, err := Analyze(cfg)
	require.NoError(t, err)
	require.Len(t, a.SlingTensions, 1)

	st := a.SlingTensions[0]
	assert.InDelta(t, 1000, st.TensionKg, 1e-9)
	assert.InDelta(t, 9.81, st.TensionKN, 1e-9)
	assert.InDelta(t, 0, st.AngleFromVerticalDeg, 1e-6)
	assert.InDelta(t, 10000, st.CapacityKg, 1e-6)
	assert.InDelta(t, 10, st.UtilizationPct, 1e-6)
	assert.True(t, st.IsSafe)

	assert.True(t, a.IsBalanced)
	assert.Nil(t, a.TiltDeg)
	assert.InDelta(t, 10, a.Safety.OverallSafetyFactor, 1e-6)
	assert.Equal(t, "s1", a.Safety.CriticalSlingID)
	assert.True(t, a.Safety.IsSafe)
	assert.Equal(t, []string{"Center of gravity is offset 5.0m from hook - load may swing during lift"}, a.Warnings)
	assert.NoError(t, a.Err())
}

func TestAnalyze_AttachmentAboveCenterOfGravityIsUnbalanced(t *testing.T) {
	hook := kinematics.V(0, 0, 5)
	a, err := Analyze(Configuration{
		Load:         centeredLoad(1000),
		Slings:       []Sling{wireSling("s1", kinematics.V(0, 0.03, 0.5), hook, 10000)},
		HookPosition: hook,
	})
	require.NoError(t, err)

	// 3cm in plan but 50cm above the CoG
	assert.False(t, a.IsBalanced)
	require.NotNil(t, a.TiltDeg)
	assert.InDelta(t, 0, a.TiltDeg.X, 1e-9)
	assert.InDelta(t, kinematics.Deg(math.Atan(0.03)), a.TiltDeg.Y, 1e-9)
	assert.Contains(t, a.Warnings, "Center of gravity is offset 5.0m from hook - load may swing during lift")
	assert.True(t, errors.Is(a.Err(), ErrUnbalancedLoad))
}

func TestAnalyze_SymmetricTwoPointLiftIsEven(t *testing.T) {
	hook := kinematics.V(0, 0, 4)
	cfg := Configuration{
		Load: centeredLoad(2000),
		Slings: []Sling{
			wireSling("left", kinematics.V(-2, 0, 0), hook, 10000),
			wireSling("right", kinematics.V(2, 0, 0), hook, 10000),
		},
		HookPosition: hook,
	}

	a, err := Analyze(cfg)
	require.NoError(t, err)

	cos := 4 / math.Sqrt(20)
	for _, st := range a.SlingTensions {
		assert.InDelta(t, 1000/cos, st.TensionKg, 1e-6)
		assert.InDelta(t, kinematics.Deg(math.Acos(cos)), st.AngleFromVerticalDeg, 1e-6)
		assert.InDelta(t, 10000*cos, st.CapacityKg, 1e-6)
	}
	assert.True(t, a.IsBalanced)
}

func TestAnalyze_TwoSlingsAtCenterOfGravity(t *testing.T) {
	hook := kinematics.V(0, 0, 4)
	cfg := Configuration{
		Load: centeredLoad(1000),
		Slings: []Sling{
			wireSling("a", kinematics.V(0, 0, 0), hook, 10000),
			wireSling("b", kinematics.V(0, 0, 0), hook, 10000),
		},
	}

	_, err := Analyze(cfg)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
}

func TestAnalyze_ThreeSlingTriangle(t *testing.T) {
	hook := kinematics.V(0, 0, 4)
	s3 := math.Sqrt(3)
	cfg := Configuration{
		Load: centeredLoad(3000),
		Slings: []Sling{
			wireSling("a", kinematics.V(2, 0, 0), hook, 10000),
			wireSling("b", kinematics.V(-1, s3, 0), hook, 10000),
			wireSling("c", kinematics.V(-1, -s3, 0), hook, 10000),
		},
		HookPosition: hook,
	}

	a, err := Analyze(cfg)
	require.NoError(t, err)

	expected := 1000 / (4 / math.Sqrt(20))
	for _, st := range a.SlingTensions {
		assert.InDelta(t, expected, st.TensionKg, 1e-6)
	}
	assert.True(t, a.IsBalanced)
}

func TestAnalyze_ThreeCoplanarSlingsFail(t *testing.T) {
	hook := kinematics.V(0, 0, 4)
	cfg := Configuration{
		Load: centeredLoad(3000),
		Slings: []Sling{
			wireSling("a", kinematics.V(-2, 0, 0), hook, 10000),
			wireSling("b", kinematics.V(0, 0, 0), hook, 10000),
			wireSling("c", kinematics.V(2, 0, 0), hook, 10000),
		},
	}

	_, err := Analyze(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
	assert.Contains(t, err.Error(), "coplanar")
}

func TestAnalyze_NegativeTensionIsRejected(t *testing.T) {
	hook := kinematics.V(0, 0, 10)
	cfg := Configuration{
		Load: centeredLoad(1000),
		Slings: []Sling{
			wireSling("a", kinematics.V(0, -1, 9), hook, 10000),
			wireSling("b", kinematics.V(-1, 0, 9), hook, 10000),
			wireSling("c", kinematics.V(-1, -1, 9), hook, 10000),
		},
	}

	_, err := Analyze(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
	assert.Contains(t, err.Error(), "negative tension")
}

func TestAnalyze_FourVerticalSlingsShareEvenly(t *testing.T) {
	var slings []Sling
	for _, p := range []kinematics.Vec3{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}} {
		slings = append(slings, wireSling("s", p, p.Add(kinematics.V(0, 0, 5)), 10000))
	}

	a, err := Analyze(Configuration{Load: centeredLoad(4000), Slings: slings, HookPosition: kinematics.V(0, 0, 5)})
	require.NoError(t, err)
	for _, st := range a.SlingTensions {
		assert.InDelta(t, 1000, st.TensionKg, 1e-6)
	}
	assert.True(t, a.IsBalanced)
}

func TestAnalyze_FourAngledSlingsToOneHook(t *testing.T) {
	hook := kinematics.V(0, 0, 4.5)
	var slings []Sling
	for _, p := range SuggestPickPoints(Load{Dimensions: kinematics.V(1.5/0.35, 1/0.35, 1)}, 4) {
		slings = append(slings, wireSling("s", p, hook, 10000))
	}

	a, err := Analyze(Configuration{Load: centeredLoad(4000), Slings: slings, HookPosition: hook})
	require.NoError(t, err)
	require.Len(t, a.SlingTensions, 4)

	cos := 4 / math.Sqrt(1.5*1.5+1+16)
	vertical := 0.0
	for _, st := range a.SlingTensions {
		assert.InDelta(t, a.SlingTensions[0].TensionKg, st.TensionKg, 1e-6)
		vertical += st.TensionKg * cos
	}
	assert.InDelta(t, 4000, vertical, 1e-6)
}

func TestAnalyze_SixSlings(t *testing.T) {
	hook := kinematics.V(0, 0, 6)
	var slings []Sling
	for i := 0; i < 6; i++ {
		angle := float64(i) * math.Pi / 3
		slings = append(slings, wireSling("s", kinematics.V(2*math.Cos(angle), 2*math.Sin(angle), 0), hook, 10000))
	}

	a, err := Analyze(Configuration{Load: centeredLoad(6000), Slings: slings, HookPosition: hook})
	require.NoError(t, err)

	expected := 1000 / (6 / math.Sqrt(40))
	for _, st := range a.SlingTensions {
		assert.InDelta(t, expected, st.TensionKg, 1e-6)
	}
}

func TestAnalyze_SlingCountLimits(t *testing.T) {
	_, err := Analyze(Configuration{Load: centeredLoad(1000)})
	assert.True(t, errors.Is(err, ErrInsufficientPickPoints))

	hook := kinematics.V(0, 0, 5)
	slings := make([]Sling, 7)
	for i := range slings {
		slings[i] = wireSling("s", kinematics.V(float64(i), 0, 0), hook, 1000)
	}
	_, err = Analyze(Configuration{Load: centeredLoad(1000), Slings: slings})
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
}

func TestAnalyze_ZeroLengthSling(t *testing.T) {
	p := kinematics.V(0, 0, 1)
	_, err := Analyze(Configuration{Load: centeredLoad(1000), Slings: []Sling{wireSling("s", p, p, 1000)}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
	assert.Contains(t, err.Error(), "too short")
}

func TestAnalyze_HorizontalSlingIsRejected(t *testing.T) {
	_, err := Analyze(Configuration{
		Load:   centeredLoad(1000),
		Slings: []Sling{wireSling("s", kinematics.V(0, 0, 0), kinematics.V(5, 0, 0), 1000)},
	})
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
}

func TestAnalyze_OffsetLoadTilts(t *testing.T) {
	load := centeredLoad(1000)
	load.Dimensions.Z = 2
	hook := kinematics.V(1, 0, 5)

	a, err := Analyze(Configuration{
		Load:         load,
		Slings:       []Sling{wireSling("s", kinematics.V(1, 0, 1), hook, 20000)},
		HookPosition: hook,
	})
	require.NoError(t, err)

	assert.False(t, a.IsBalanced)
	require.NotNil(t, a.TiltDeg)
	assert.InDelta(t, kinematics.Deg(math.Atan(0.5)), a.TiltDeg.X, 1e-9)
	assert.InDelta(t, 0, a.TiltDeg.Y, 1e-9)
	assert.Equal(t, kinematics.V(1, 0, 5), a.Safety.CoGOffsetFromHook)
	assert.Contains(t, a.Warnings, "Center of gravity is offset 5.1m from hook - load may swing during lift")
	assert.True(t, errors.Is(a.Err(), ErrUnbalancedLoad))
}

func TestAnalyze_Warnings(t *testing.T) {
	hook := kinematics.V(0, 0, 2)
	cfg := Configuration{
		Load: centeredLoad(2000),
		Slings: []Sling{
			wireSling("left", kinematics.V(-5, 0, 0), hook, 3000),
			wireSling("right", kinematics.V(5, 0, 0), hook, 3000),
		},
		HookPosition: hook,
	}

	a, err := Analyze(cfg)
	require.NoError(t, err)

	require.Len(t, a.Warnings, 8)
	assert.Equal(t, "Sling 'left' has shallow angle (68.2° from vertical). Angles > 60° significantly increase tension.", a.Warnings[0])
	assert.Contains(t, a.Warnings[1], "Sling 'left' is highly loaded")
	assert.Contains(t, a.Warnings[2], "Sling 'left' is OVERLOADED")
	assert.Contains(t, a.Warnings[6], "is below minimum required (5:1)")
	assert.Equal(t, "Center of gravity is offset 2.0m from hook - load may swing during lift", a.Warnings[7])

	assert.False(t, a.Safety.IsSafe)
	assert.True(t, errors.Is(a.Err(), ErrSlingOverloaded))
}

func TestAnalyze_HitchFactor(t *testing.T) {
	hook := kinematics.V(0, 0, 5)
	s := wireSling("s", kinematics.V(0, 0, 1), hook, 1000)

	s.Hitch = Basket
	a, err := Analyze(Configuration{Load: centeredLoad(1000), Slings: []Sling{s}, HookPosition: hook})
	require.NoError(t, err)
	assert.InDelta(t, 2000, a.SlingTensions[0].CapacityKg, 1e-6)
	assert.InDelta(t, 50, a.SlingTensions[0].UtilizationPct, 1e-6)

	s.Hitch = Choker
	a, err = Analyze(Configuration{Load: centeredLoad(1000), Slings: []Sling{s}, HookPosition: hook})
	require.NoError(t, err)
	assert.InDelta(t, 750, a.SlingTensions[0].CapacityKg, 1e-6)
	assert.False(t, a.SlingTensions[0].IsSafe)
}

func TestConfiguration_WeightKg(t *testing.T) {
	cfg := Configuration{
		Slings: []Sling{
			{Spec: SlingSpec{Material: WireRope{Grade: ImprovedPlowSteel}, DiameterMM: 20, LengthM: 10}},
			{Spec: SlingSpec{Material: Chain{Grade: Grade80}, DiameterMM: 10, LengthM: 5}},
			{Spec: SlingSpec{Material: Synthetic{Fiber: Polyester}, WidthMM: 100, LengthM: 4}},
		},
		Hardware: []Hardware{
			{Kind: Shackle{SizeMM: 32}, WeightKg: 20},
			{Kind: Swivel{}, WeightKg: 5},
		},
	}
	assert.InDelta(t, 100+50+4+25, cfg.WeightKg(), 1e-9)
}

func TestDynamicFactors(t *testing.T) {
	assert.Equal(t, 1000.0, ApplyDynamicFactors(1000, DynamicFactors{}))
	assert.Equal(t, 1250.0, ApplyDynamicFactors(1000, DynamicFactors{ImpactLoading: true}))
	assert.Equal(t, 1000.0, ApplyDynamicFactors(1000, DynamicFactors{WindSpeedMS: 5}))
	assert.InDelta(t, 1500, ApplyDynamicFactors(1000, DynamicFactors{ImpactLoading: true, WindSpeedMS: 10}), 1e-9)
}

func TestAnalyzeSpreaderBeam(t *testing.T) {
	a := AnalyzeSpreaderBeam(4, 500, 9500)
	assert.InDelta(t, 49050, a.MaxBendingMomentNm, 1e-6)
	assert.InDelta(t, 49050, a.MaxShearForceN, 1e-6)
	assert.InDelta(t, 1.962e-4, a.RequiredSectionModulusM3, 1e-12)
}

func TestSuggestPickPoints(t *testing.T) {
	load := Load{Dimensions: kinematics.V(10, 4, 2)}

	two := SuggestPickPoints(load, 2)
	assert.Equal(t, []kinematics.Vec3{{X: -4, Y: 0, Z: 1}, {X: 4, Y: 0, Z: 1}}, two)

	four := SuggestPickPoints(load, 4)
	require.Len(t, four, 4)
	assert.InDelta(t, 3.5, four[0].X, 1e-9)
	assert.InDelta(t, 1.4, four[0].Y, 1e-9)
	assert.InDelta(t, -1.4, four[3].Y, 1e-9)

	assert.Nil(t, SuggestPickPoints(load, 3))
}

func TestRequiredSlingCapacity(t *testing.T) {
	assert.InDelta(t, 12000, RequiredSlingCapacity(10000, 2, 60, Vertical), 1e-6)
	assert.InDelta(t, 6000, RequiredSlingCapacity(10000, 2, 60, Basket), 1e-6)
	assert.Equal(t, 0.0, RequiredSlingCapacity(10000, 0, 60, Vertical))
	assert.True(t, math.IsInf(RequiredSlingCapacity(10000, 2, 90, Vertical), 1))
}

func TestHitchType_Text(t *testing.T) {
	var v struct {
		Hitch HitchType `json:"hitch"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"hitch": "basket"}`), &v))
	assert.Equal(t, Basket, v.Hitch)
	assert.Equal(t, 2.0, v.Hitch.CapacityFactor())

	assert.Error(t, json.Unmarshal([]byte(`{"hitch": "lasso"}`), &v))

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"hitch": "basket"}`, string(out))
}

func TestLoad_ActivePickPoints(t *testing.T) {
	load := Load{PickPoints: []PickPoint{{ID: "a", Active: true}, {ID: "b"}, {ID: "c", Active: true}}}
	active := load.ActivePickPoints()
	require.Len(t, active, 2)
	assert.Equal(t, "c", active[1].ID)
}
