package crane

import (
	"fmt"

	"github.com/alexiusacademia/gocrane/internal/capacity"
)

// Type classifies the crane carrier
type Type int

const (
	AllTerrain Type = iota
	RoughTerrain
	TruckMounted
	Crawler
	Tower
)

func (t Type) String() string {
	switch t {
	case AllTerrain:
		return "All-Terrain"
	case RoughTerrain:
		return "Rough Terrain"
	case TruckMounted:
		return "Truck Mounted"
	case Crawler:
		return "Crawler"
	case Tower:
		return "Tower"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Range is an inclusive [Min, Max] interval
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the range
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Spec is an immutable catalog entry for one crane model
type Spec struct {
	ID           string
	Manufacturer string
	Model        string
	Year         int // 0 if unknown
	Type         Type

	BaseWeightKg      float64
	TransportWeightKg float64
	LengthM           float64
	WidthM            float64
	HeightM           float64

	// lengths in m, hoist speed in m/min (0 if unknown)
	BoomLengthRange   Range
	BoomSections      int
	BoomPivotHeightM  float64
	MinBoomAngleDeg   float64
	MaxBoomAngleDeg   float64
	HoistLengthRange  Range
	MaxHoistSpeedMMin float64

	MaxCapacityKg float64
	MinRadiusM    float64
	MaxRadiusM    float64
	MaxTipHeightM float64

	OutriggerBaseWidthM    float64
	OutriggerBaseLengthM   float64
	OutriggerMaxExtensionM float64

	CounterweightSlabWeightKg float64
	CounterweightMaxSlabs     int
	CounterweightMomentArmM   float64

	CapacityChart capacity.Chart

	// 0 if unknown
	EnginePowerKW    float64
	MaxSwingSpeedRPM float64
}

// Name returns "Manufacturer Model"
func (s Spec) Name() string {
	return s.Manufacturer + " " + s.Model
}

// NewOutriggerSystem builds a retracted outrigger system sized for this crane
func (s Spec) NewOutriggerSystem() OutriggerSystem {
	return NewOutriggerSystem(s.OutriggerBaseWidthM, s.OutriggerBaseLengthM, s.OutriggerMaxExtensionM)
}

// NewCounterweight builds an empty counterweight stack for this crane
func (s Spec) NewCounterweight() CounterweightConfig {
	return NewCounterweightConfig(s.CounterweightSlabWeightKg, s.CounterweightMaxSlabs, s.CounterweightMomentArmM)
}

// LoadCapacityChart replaces the embedded chart with one read from a
// .csv, .json or manufacturer text file
func (s *Spec) LoadCapacityChart(path string) error {
	chart, err := capacity.LoadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load capacity chart for %s: %w", s.ID, err)
	}
	s.CapacityChart = chart
	return nil
}

// Catalog returns the built-in crane specifications. Each call builds fresh
// values, so callers may modify what they get back.
func Catalog() []Spec {
	return []Spec{
		liebherrLTM1100(),
		liebherrLTM1500(),
		groveGMK5150L(),
		groveGMK6300L(),
		tadanoGR600XL(),
		tadanoGR1000XL(),
		terexRT780(),
		linkBeltHTC8690(),
	}
}

// Lookup finds a catalog entry by id
func Lookup(id string) (Spec, error) {
	for _, s := range Catalog() {
		if s.ID == id {
			return s, nil
		}
	}
	return Spec{}, fmt.Errorf("unknown crane id %q", id)
}

func liebherrLTM1100() Spec {
	return Spec{
		ID:           "liebherr_ltm_1100_5_2",
		Manufacturer: "Liebherr",
		Model:        "LTM 1100-5.2",
		Year:         2020,
		Type:         AllTerrain,

		BaseWeightKg:      48_000,
		TransportWeightKg: 60_000,
		LengthM:           13.6,
		WidthM:            2.75,
		HeightM:           3.85,

		BoomLengthRange:   Range{15, 52},
		BoomSections:      5,
		BoomPivotHeightM:  3.2,
		MinBoomAngleDeg:   0,
		MaxBoomAngleDeg:   85,
		HoistLengthRange:  Range{2, 60},
		MaxHoistSpeedMMin: 110,

		MaxCapacityKg: 100_000,
		MinRadiusM:    3,
		MaxRadiusM:    48,
		MaxTipHeightM: 56,

		OutriggerBaseWidthM:    2.75,
		OutriggerBaseLengthM:   3.0,
		OutriggerMaxExtensionM: 7.1,

		CounterweightSlabWeightKg: 2_500,
		CounterweightMaxSlabs:     16,
		CounterweightMomentArmM:   4.5,

		CapacityChart: capacity.ExampleLiebherrLTM1100(),

		EnginePowerKW:    380,
		MaxSwingSpeedRPM: 1.8,
	}
}

func liebherrLTM1500() Spec {
	return Spec{
		ID:           "liebherr_ltm_1500_8_1",
		Manufacturer: "Liebherr",
		Model:        "LTM 1500-8.1",
		Year:         2019,
		Type:         AllTerrain,

		BaseWeightKg:      108_000,
		TransportWeightKg: 132_000,
		LengthM:           17.8,
		WidthM:            3.0,
		HeightM:           4.0,

		BoomLengthRange:   Range{15.4, 84},
		BoomSections:      8,
		BoomPivotHeightM:  4.2,
		MinBoomAngleDeg:   0,
		MaxBoomAngleDeg:   85,
		HoistLengthRange:  Range{3, 100},
		MaxHoistSpeedMMin: 145,

		MaxCapacityKg: 500_000,
		MinRadiusM:    3.5,
		MaxRadiusM:    78,
		MaxTipHeightM: 91,

		OutriggerBaseWidthM:    3.0,
		OutriggerBaseLengthM:   3.5,
		OutriggerMaxExtensionM: 9.2,

		CounterweightSlabWeightKg: 5_000,
		CounterweightMaxSlabs:     38,
		CounterweightMomentArmM:   6.5,

		CapacityChart: capacity.NewChart(),

		EnginePowerKW:    680,
		MaxSwingSpeedRPM: 1.5,
	}
}

func groveGMK5150L() Spec {
	return Spec{
		ID:           "grove_gmk_5150l",
		Manufacturer: "Grove",
		Model:        "GMK 5150L",
		Year:         2019,
		Type:         AllTerrain,

		BaseWeightKg:      60_000,
		TransportWeightKg: 72_000,
		LengthM:           15.47,
		WidthM:            2.75,
		HeightM:           3.98,

		BoomLengthRange:   Range{15.2, 60},
		BoomSections:      6,
		BoomPivotHeightM:  3.5,
		MinBoomAngleDeg:   0,
		MaxBoomAngleDeg:   85,
		HoistLengthRange:  Range{2, 70},
		MaxHoistSpeedMMin: 135,

		MaxCapacityKg: 150_000,
		MinRadiusM:    3,
		MaxRadiusM:    54,
		MaxTipHeightM: 66,

		OutriggerBaseWidthM:    3.0,
		OutriggerBaseLengthM:   3.5,
		OutriggerMaxExtensionM: 7.5,

		CounterweightSlabWeightKg: 3_000,
		CounterweightMaxSlabs:     20,
		CounterweightMomentArmM:   5.0,

		CapacityChart: capacity.NewChart(),

		EnginePowerKW:    450,
		MaxSwingSpeedRPM: 2.0,
	}
}

func groveGMK6300L() Spec {
	return Spec{
		ID:           "grove_gmk_6300l",
		Manufacturer: "Grove",
		Model:        "GMK 6300L",
		Year:         2021,
		Type:         AllTerrain,

		BaseWeightKg:      84_000,
		TransportWeightKg: 108_000,
		LengthM:           16.7,
		WidthM:            3.0,
		HeightM:           4.0,

		BoomLengthRange:   Range{16, 80},
		BoomSections:      7,
		BoomPivotHeightM:  4.0,
		MinBoomAngleDeg:   0,
		MaxBoomAngleDeg:   85,
		HoistLengthRange:  Range{3, 90},
		MaxHoistSpeedMMin: 150,

		MaxCapacityKg: 300_000,
		MinRadiusM:    3.5,
		MaxRadiusM:    72,
		MaxTipHeightM: 88,

		OutriggerBaseWidthM:    3.0,
		OutriggerBaseLengthM:   3.8,
		OutriggerMaxExtensionM: 8.8,

		CounterweightSlabWeightKg: 4_000,
		CounterweightMaxSlabs:     30,
		CounterweightMomentArmM:   6.0,

		CapacityChart: capacity.NewChart(),

		EnginePowerKW:    580,
		MaxSwingSpeedRPM: 1.6,
	}
}

func tadanoGR600XL() Spec {
	return Spec{
		ID:           "tadano_gr_600xl",
		Manufacturer: "Tadano",
		Model:        "GR-600XL",
		Year:         2021,
		Type:         RoughTerrain,

		BaseWeightKg:      36_000,
		TransportWeightKg: 42_000,
		LengthM:           11.5,
		WidthM:            2.49,
		HeightM:           3.63,

		BoomLengthRange:   Range{10.9, 42.7},
		BoomSections:      4,
		BoomPivotHeightM:  2.8,
		MinBoomAngleDeg:   0,
		MaxBoomAngleDeg:   82,
		HoistLengthRange:  Range{1.5, 50},
		MaxHoistSpeedMMin: 95,

		MaxCapacityKg: 60_000,
		MinRadiusM:    2.5,
		MaxRadiusM:    40,
		MaxTipHeightM: 47,

		OutriggerBaseWidthM:    2.49,
		OutriggerBaseLengthM:   2.8,
		OutriggerMaxExtensionM: 5.9,

		CounterweightSlabWeightKg: 2_000,
		CounterweightMaxSlabs:     10,
		CounterweightMomentArmM:   3.8,

		CapacityChart: capacity.NewChart(),

		EnginePowerKW:    275,
		MaxSwingSpeedRPM: 1.5,
	}
}

func tadanoGR1000XL() Spec {
	return Spec{
		ID:           "tadano_gr_1000xl",
		Manufacturer: "Tadano",
		Model:        "GR-1000XL",
		Year:         2020,
		Type:         RoughTerrain,

		BaseWeightKg:      52_000,
		TransportWeightKg: 64_000,
		LengthM:           13.2,
		WidthM:            2.99,
		HeightM:           3.83,

		BoomLengthRange:   Range{13.7, 50},
		BoomSections:      5,
		BoomPivotHeightM:  3.1,
		MinBoomAngleDeg:   0,
		MaxBoomAngleDeg:   83,
		HoistLengthRange:  Range{2, 65},
		MaxHoistSpeedMMin: 120,

		MaxCapacityKg: 100_000,
		MinRadiusM:    3,
		MaxRadiusM:    46,
		MaxTipHeightM: 56,

		OutriggerBaseWidthM:    2.99,
		OutriggerBaseLengthM:   3.2,
		OutriggerMaxExtensionM: 7.3,

		CounterweightSlabWeightKg: 2_800,
		CounterweightMaxSlabs:     14,
		CounterweightMomentArmM:   4.3,

		CapacityChart: capacity.NewChart(),

		EnginePowerKW:    365,
		MaxSwingSpeedRPM: 1.7,
	}
}

func terexRT780() Spec {
	return Spec{
		ID:           "terex_rt_780",
		Manufacturer: "Terex",
		Model:        "RT 780",
		Year:         2022,
		Type:         RoughTerrain,

		BaseWeightKg:      43_000,
		TransportWeightKg: 52_000,
		LengthM:           12.3,
		WidthM:            2.9,
		HeightM:           3.76,

		BoomLengthRange:   Range{11.9, 47.2},
		BoomSections:      5,
		BoomPivotHeightM:  3.0,
		MinBoomAngleDeg:   0,
		MaxBoomAngleDeg:   82,
		HoistLengthRange:  Range{2, 55},
		MaxHoistSpeedMMin: 106,

		MaxCapacityKg: 75_000,
		MinRadiusM:    2.8,
		MaxRadiusM:    44,
		MaxTipHeightM: 52,

		OutriggerBaseWidthM:    2.9,
		OutriggerBaseLengthM:   3.1,
		OutriggerMaxExtensionM: 6.7,

		CounterweightSlabWeightKg: 2_300,
		CounterweightMaxSlabs:     12,
		CounterweightMomentArmM:   4.0,

		CapacityChart: capacity.NewChart(),

		EnginePowerKW:    335,
		MaxSwingSpeedRPM: 1.6,
	}
}

func linkBeltHTC8690() Spec {
	return Spec{
		ID:           "link_belt_htc_8690",
		Manufacturer: "Link-Belt",
		Model:        "HTC-8690",
		Year:         2021,
		Type:         TruckMounted,

		BaseWeightKg:      48_500,
		TransportWeightKg: 58_000,
		LengthM:           13.1,
		WidthM:            2.59,
		HeightM:           3.81,

		BoomLengthRange:   Range{12.8, 50.3},
		BoomSections:      5,
		BoomPivotHeightM:  3.0,
		MinBoomAngleDeg:   0,
		MaxBoomAngleDeg:   83,
		HoistLengthRange:  Range{2, 60},
		MaxHoistSpeedMMin: 115,

		MaxCapacityKg: 90_000,
		MinRadiusM:    2.8,
		MaxRadiusM:    46,
		MaxTipHeightM: 55,

		OutriggerBaseWidthM:    2.59,
		OutriggerBaseLengthM:   3.0,
		OutriggerMaxExtensionM: 7.0,

		CounterweightSlabWeightKg: 2_700,
		CounterweightMaxSlabs:     13,
		CounterweightMomentArmM:   4.2,

		CapacityChart: capacity.NewChart(),

		EnginePowerKW:    355,
		MaxSwingSpeedRPM: 1.7,
	}
}
