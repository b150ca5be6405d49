package ground

import (
	"fmt"
	"strconv"
	"strings"
)

// SoilType is a class of ground with a typical allowable bearing pressure.
// The tabulated capacities are generalized values; real lift plans need
// capacities verified in the field.
type SoilType int

const (
	HardRock SoilType = iota
	MediumRock
	IntermediateRock
	SoftRock
	DenseGravel
	MediumGravel
	LooseGravel
	DenseSand
	MediumSand
	LooseSand
	HardClay
	StiffClay
	MediumClay
	SoftClay
	DenseSilt
	MediumSilt
	LooseSilt
	Peat
	// Custom takes its capacity from Soil.CustomKPa
	Custom
)

type soilInfo struct {
	key         string
	name        string
	kpa         float64
	description string
}

var soils = [...]soilInfo{
	HardRock: {"hard_rock", "Hard Rock", 5746,
		"Massive rocks without laminations or defects, such as granite, trap, and diorite. They are unweathered, difficult to break with a hammer, and cannot be molded by the fingers."},
	MediumRock: {"medium_rock", "Medium Rock", 3830,
		"Slightly lower strength than hard rock, possibly with laminations, such as limestone and sandstone. They are still very strong and difficult to remove."},
	IntermediateRock: {"intermediate_rock", "Intermediate Rock", 1915,
		"Rock mass with possible discontinuities or slight weathering compared to medium rock. Includes residual deposits of shattered and broken bedrock or hard shale."},
	SoftRock: {"soft_rock", "Soft Rock", 766,
		"Rocks may soften on exposure to air or water, can be removed by picking or spading, and fresh samples may be molded with substantial finger pressure. Includes partially weathered or highly jointed condition, such as uncemented shales and some sandstones. Can require pretreatment in some conditions."},
	DenseGravel: {"dense_gravel", "Dense Gravel", 600,
		"Densely compacted gravel. Particles are tightly packed with minimal space between them, making them very stable and strong."},
	MediumGravel: {"medium_gravel", "Medium Gravel", 400,
		"Moderately compacted gravel. Particles have some space between them, providing moderate stability."},
	LooseGravel: {"loose_gravel", "Loose Gravel", 200,
		"Loose gravel, not compacted. Particles have large, open spaces between them, resulting in low stability and strength. Often needs to be pretreated."},
	DenseSand: {"dense_sand", "Dense Sand", 600,
		"Densely packed sand. Highly stable, often characterized by a high number of blows per foot during a Standard Penetration Test (SPT)."},
	MediumSand: {"medium_sand", "Medium Sand", 300,
		"Moderately packed sand. The Standard Penetration Test (SPT) blow count is in the medium range for sands, and often suitable for construction."},
	LooseSand: {"loose_sand", "Loose Sand", 100,
		"Loosely packed sand. The Standard Penetration Test (SPT) blow count is very low, and the sand is prone to excessive settlement and not suitable for heavy loading without pretreatment."},
	HardClay: {"hard_clay", "Hard Clay", 479,
		"Indented with difficulty by thumbnail. Cannot be indented with fingers but can be peeled with knife."},
	StiffClay: {"stiff_clay", "Stiff Clay", 287,
		"Indented about 10mm by thumb, but penetrated only with great effort. Readily indented by thumbnail."},
	MediumClay: {"medium_clay", "Medium Clay", 192,
		"Penetrated over 10mm by thumb with moderate effort. Molded by strong finger pressure."},
	SoftClay: {"soft_clay", "Soft Clay", 100,
		"Easily penetrated several inches by the thumb. Can be molded by light finger pressure."},
	DenseSilt: {"dense_silt", "Dense Silt", 287,
		"Provides strong resistance to load and penetration. Often found in preloaded or naturally very compact conditions. Comparable to medium-dense sand."},
	MediumSilt: {"medium_silt", "Medium Silt", 150,
		"Medium sediment. Offers moderate resistance to penetration and load. Often considered 'firm'."},
	LooseSilt: {"loose_silt", "Loose Silt", 75,
		"Loose sediment. Exhibits high settlement potential under load and can be easily molded or crushed in fingers. Often requires pretreatment before loading."},
	Peat: {"peat", "Peat", 25,
		"Soft soil. Extremely low bearing capacity, high compressibility, low shear strength, and high organic and water content. Not suitable for loading without pretreatment."},
	Custom: {"custom", "Custom", 0, "Custom Bearing Capacity"},
}

// SoilTypes lists every tabulated soil, excluding Custom
func SoilTypes() []SoilType {
	out := make([]SoilType, 0, len(soils)-1)
	for t := HardRock; t < Custom; t++ {
		out = append(out, t)
	}
	return out
}

func (t SoilType) info() soilInfo {
	if t < 0 || int(t) >= len(soils) {
		return soilInfo{key: fmt.Sprintf("soil(%d)", int(t)), name: fmt.Sprintf("SoilType(%d)", int(t))}
	}
	return soils[t]
}

// Key is the snake_case identifier used in config and scenario files
func (t SoilType) Key() string { return t.info().key }

func (t SoilType) String() string { return t.info().name }

// Soil is the ground under the crane
type Soil struct {
	Type SoilType
	// used only when Type is Custom
	CustomKPa float64
}

// CustomSoil returns a soil with a measured allowable capacity
func CustomSoil(kpa float64) Soil {
	return Soil{Type: Custom, CustomKPa: kpa}
}

// AllowableKPa is the allowable bearing pressure before any safety factor
func (s Soil) AllowableKPa() float64 {
	if s.Type == Custom {
		return s.CustomKPa
	}
	return s.Type.info().kpa
}

// Description returns the field identification text of the soil
func (s Soil) Description() string {
	return s.Type.info().description
}

func (s Soil) String() string {
	if s.Type == Custom {
		return fmt.Sprintf("Custom (%.0f kPa)", s.CustomKPa)
	}
	return s.Type.String()
}

// ParseSoil accepts a soil key such as "medium_sand", "custom:250" or a bare
// capacity in kPa
func ParseSoil(s string) (Soil, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if rest, ok := strings.CutPrefix(s, "custom:"); ok {
		s = rest
	}
	if kpa, err := strconv.ParseFloat(s, 64); err == nil {
		if kpa <= 0 {
			return Soil{}, fmt.Errorf("custom soil capacity must be positive, got %g", kpa)
		}
		return CustomSoil(kpa), nil
	}

	key := strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	for i, info := range soils {
		if info.key == key && SoilType(i) != Custom {
			return Soil{Type: SoilType(i)}, nil
		}
	}
	return Soil{}, fmt.Errorf("unknown soil type %q", s)
}

// MarshalText encodes the soil as its key, or custom:<kPa>
func (s Soil) MarshalText() ([]byte, error) {
	if s.Type == Custom {
		return []byte("custom:" + strconv.FormatFloat(s.CustomKPa, 'f', -1, 64)), nil
	}
	return []byte(s.Type.Key()), nil
}

// UnmarshalText decodes anything ParseSoil accepts
func (s *Soil) UnmarshalText(text []byte) error {
	parsed, err := ParseSoil(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
