package ground

import (
	"errors"
	"math"
	"testing"

	"github.com/alexiusacademia/gocrane/internal/crane"
	"github.com/alexiusacademia/gocrane/internal/kinematics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// squareMat is a 1m x 1m mat, giving exactly 1 m² of contact
var squareMat = Mat{LengthM: 1, WidthM: 1, Material: TimberMat}

func TestAnalyze_PressureOverOneSquareMetre(t *testing.T) {
	result, err := Analyze(Configuration{
		SupportPoints: []SupportPoint{{LoadKg: 10_000, Support: squareMat}},
		Soil:          Soil{Type: MediumSand},
		SafetyFactor:  2,
	})
	require.NoError(t, err)
	require.Len(t, result.Pressures, 1)

	p := result.Pressures[0]
	assert.InDelta(t, 98.1, p.PressureKPa, 1e-9)
	assert.InDelta(t, 150, p.AllowableKPa, 1e-9)
	assert.InDelta(t, 98.1/150*100, p.UtilizationPct, 1e-9)
	assert.True(t, p.IsSafe)
	assert.True(t, result.IsSafe)
	assert.Equal(t, MediumSand, result.Soil.Type)
}

func TestAnalyze_SafeIffPressureWithinAllowable(t *testing.T) {
	tests := []struct {
		name   string
		soil   Soil
		sf     float64
		loadKg float64
		safe   bool
	}{
		{"well within", CustomSoil(200), 1, 10_000, true},
		{"exactly at allowable", CustomSoil(98.1), 1, 10_000, true},
		{"safety factor tips it", CustomSoil(150), 2, 10_000, false},
		{"peat", Soil{Type: Peat}, 1, 10_000, false},
		{"hard rock", Soil{Type: HardRock}, 3, 100_000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Analyze(Configuration{
				SupportPoints: []SupportPoint{{LoadKg: tt.loadKg, Support: squareMat}},
				Soil:          tt.soil,
				SafetyFactor:  tt.sf,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.safe, result.IsSafe)
			assert.Equal(t, tt.safe, result.Pressures[0].IsSafe)
		})
	}
}

func TestAnalyze_AggregateIsAllPoints(t *testing.T) {
	result, err := Analyze(Configuration{
		SupportPoints: []SupportPoint{
			{LoadKg: 5_000, Support: squareMat},
			{LoadKg: 50_000, Support: squareMat},
		},
		Soil:         Soil{Type: MediumSand},
		SafetyFactor: 1,
	})
	require.NoError(t, err)
	assert.True(t, result.Pressures[0].IsSafe)
	assert.False(t, result.Pressures[1].IsSafe)
	assert.False(t, result.IsSafe)

	critical, ok := result.Critical()
	require.True(t, ok)
	assert.Equal(t, 1, critical.SupportIndex)
}

func TestAnalyze_Errors(t *testing.T) {
	point := SupportPoint{LoadKg: 1_000, Support: squareMat}

	_, err := Analyze(Configuration{Soil: Soil{Type: DenseSand}, SafetyFactor: 2})
	assert.ErrorIs(t, err, ErrNoSupportPoints)

	_, err = Analyze(Configuration{SupportPoints: []SupportPoint{point}, Soil: Soil{Type: DenseSand}, SafetyFactor: 0.9})
	assert.ErrorIs(t, err, ErrInvalidSafetyFactor)

	_, err = Analyze(Configuration{SupportPoints: []SupportPoint{point}, Soil: Soil{Type: DenseSand}, SafetyFactor: math.NaN()})
	assert.ErrorIs(t, err, ErrInvalidSafetyFactor)

	zero := SupportPoint{LoadKg: 1_000, Support: OutriggerPad{DiameterM: 0}}
	_, err = Analyze(Configuration{SupportPoints: []SupportPoint{point, zero}, Soil: Soil{Type: DenseSand}, SafetyFactor: 2})
	assert.ErrorIs(t, err, ErrInvalidContactArea)

	_, err = Analyze(Configuration{SupportPoints: []SupportPoint{{LoadKg: 1_000}}, Soil: Soil{Type: DenseSand}, SafetyFactor: 2})
	assert.True(t, errors.Is(err, ErrInvalidContactArea))
}

func TestContactArea(t *testing.T) {
	pad := OutriggerPad{DiameterM: 0.6, Material: Steel}
	assert.InDelta(t, math.Pi*0.09, pad.ContactAreaM2(), 1e-12)

	tire := Tire{WidthM: 0.5, DiameterM: 1.4}
	assert.InDelta(t, 0.105, tire.ContactAreaM2(), 1e-12)

	mat := Mat{LengthM: 2, WidthM: 1.5, Material: CompositeMat}
	assert.InDelta(t, 3.0, mat.ContactAreaM2(), 1e-12)

	// the mat, not the pad, spreads the load
	combo := MatWithPad{Mat: mat, Pad: pad}
	assert.InDelta(t, 3.0, combo.ContactAreaM2(), 1e-12)
}

func TestDescription(t *testing.T) {
	pad := OutriggerPad{DiameterM: 0.6, Material: Hardwood}
	mat := Mat{LengthM: 2, WidthM: 1.5, Material: SteelPlate}

	assert.Equal(t, "0.6m Hardwood pad", pad.Description())
	assert.Equal(t, "Tire support", Tire{}.Description())
	assert.Equal(t, "2.0m×1.5m Steel Plate mat", mat.Description())
	assert.Equal(t, "2.0m×1.5m Steel Plate mat + 0.6m Hardwood pad", MatWithPad{Mat: mat, Pad: pad}.Description())
}

func TestParseSoil(t *testing.T) {
	s, err := ParseSoil("medium_sand")
	require.NoError(t, err)
	assert.Equal(t, MediumSand, s.Type)
	assert.InDelta(t, 300, s.AllowableKPa(), 1e-9)

	s, err = ParseSoil("Hard Rock")
	require.NoError(t, err)
	assert.Equal(t, HardRock, s.Type)

	s, err = ParseSoil("custom:250")
	require.NoError(t, err)
	assert.Equal(t, Custom, s.Type)
	assert.InDelta(t, 250, s.AllowableKPa(), 1e-9)
	assert.Equal(t, "Custom (250 kPa)", s.String())

	s, err = ParseSoil("120")
	require.NoError(t, err)
	assert.InDelta(t, 120, s.AllowableKPa(), 1e-9)

	for _, bad := range []string{"", "custom", "lava", "custom:-5", "0"} {
		_, err := ParseSoil(bad)
		assert.Error(t, err, bad)
	}
}

func TestSoil_TextRoundTrip(t *testing.T) {
	for _, soil := range []Soil{{Type: StiffClay}, CustomSoil(333.5)} {
		text, err := soil.MarshalText()
		require.NoError(t, err)

		var back Soil
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, soil, back)
	}
}

func TestSoilTypes(t *testing.T) {
	types := SoilTypes()
	require.Len(t, types, 18)
	assert.NotContains(t, types, Custom)

	for _, st := range types {
		soil := Soil{Type: st}
		assert.Positive(t, soil.AllowableKPa(), st.String())
		assert.NotEmpty(t, soil.Description(), st.String())
	}
	assert.InDelta(t, 25, Soil{Type: Peat}.AllowableKPa(), 1e-9)
	assert.InDelta(t, 5746, Soil{Type: HardRock}.AllowableKPa(), 1e-9)
}

func TestFromOutriggers(t *testing.T) {
	sys := crane.NewOutriggerSystem(2, 2, 0)
	sys.PresetMaxExtension()

	points := FromOutriggers(sys, kinematics.V(10, 0, 0), 0, 40_000, PadSupport(Steel))
	require.Len(t, points, 4)

	for _, p := range points {
		assert.InDelta(t, 10_000, p.LoadKg, 1e-9)
		assert.InDelta(t, math.Pi*0.09, p.ContactAreaM2(), 1e-12)
	}
	// front left corner
	assert.InDelta(t, 9, points[0].Position.X, 1e-9)
	assert.InDelta(t, 1, points[0].Position.Y, 1e-9)
}

func TestFromOutriggers_HeadingRotatesFootprint(t *testing.T) {
	sys := crane.NewOutriggerSystem(2, 2, 0)
	sys.PresetMaxExtension()

	// facing east, front right ends up south-east
	points := FromOutriggers(sys, kinematics.Vec3{}, 90, 4_000, PadSupport(Steel))
	require.Len(t, points, 4)
	assert.Equal(t, crane.FrontRight, sys.ContactPoints()[1].Position)
	assert.InDelta(t, 1, points[1].Position.X, 1e-9)
	assert.InDelta(t, -1, points[1].Position.Y, 1e-9)
}

func TestFromOutriggers_OnlyDeployed(t *testing.T) {
	sys := crane.NewOutriggerSystem(2.75, 3, 7.1)
	assert.Nil(t, FromOutriggers(sys, kinematics.Vec3{}, 0, 10_000, PadSupport(Steel)))

	sys.Get(crane.RearLeft).Deployment = crane.SetDeployment(0.5)
	sys.Get(crane.RearRight).Deployment = crane.SetDeployment(0.5)

	mat := Mat{LengthM: 1.2, WidthM: 1.2}
	points := FromOutriggers(sys, kinematics.Vec3{}, 0, 10_000, MatSupport(mat, Composite))
	require.Len(t, points, 2)
	assert.InDelta(t, 5_000, points[0].LoadKg, 1e-9)
	assert.InDelta(t, 1.44, points[0].ContactAreaM2(), 1e-12)
	assert.IsType(t, MatWithPad{}, points[0].Support)
}

func TestOnTires(t *testing.T) {
	points := OnTires(8, Tire{WidthM: 0.5, DiameterM: 1.4}, kinematics.Vec3{}, 80_000)
	require.Len(t, points, 8)
	assert.InDelta(t, 10_000, points[3].LoadKg, 1e-9)
	assert.Nil(t, OnTires(0, Tire{}, kinematics.Vec3{}, 1))
}

func TestRequiredMatArea(t *testing.T) {
	area, err := RequiredMatAreaM2(10_000, CustomSoil(98.1), 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, area, 1e-9)

	_, err = RequiredMatAreaM2(10_000, CustomSoil(100), 0.5)
	assert.ErrorIs(t, err, ErrInvalidSafetyFactor)

	_, err = RequiredMatAreaM2(10_000, CustomSoil(100), math.NaN())
	assert.ErrorIs(t, err, ErrInvalidSafetyFactor)
}

func TestParseMaterials(t *testing.T) {
	pm, err := ParsePadMaterial("hardwood")
	require.NoError(t, err)
	assert.Equal(t, Hardwood, pm)

	mm, err := ParseMatMaterial("steel_plate")
	require.NoError(t, err)
	assert.Equal(t, SteelPlate, mm)

	_, err = ParsePadMaterial("jelly")
	assert.Error(t, err)
}
