package rigging

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gocrane/internal/kinematics"
	"github.com/samber/lo"
)

// HitchType is how a sling is rigged to the load
type HitchType int

const (
	// Vertical: straight up and down
	Vertical HitchType = iota
	// Choker: wrapped around the load and choked on itself
	Choker
	// Basket: under the load with both eyes on the hook
	Basket
	// Bridle: several legs to a single master link
	Bridle
)

var hitchNames = map[HitchType]string{
	Vertical: "vertical",
	Choker:   "choker",
	Basket:   "basket",
	Bridle:   "bridle",
}

// CapacityFactor is the rated capacity multiplier relative to a vertical hitch
func (h HitchType) CapacityFactor() float64 {
	switch h {
	case Choker:
		return 0.75
	case Basket:
		return 2.0
	default:
		return 1.0
	}
}

func (h HitchType) String() string {
	if name, ok := hitchNames[h]; ok {
		return name
	}
	return fmt.Sprintf("HitchType(%d)", int(h))
}

// ParseHitchType accepts the lowercase hitch name
func ParseHitchType(s string) (HitchType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Vertical, nil
	}
	for h, name := range hitchNames {
		if name == s {
			return h, nil
		}
	}
	return 0, fmt.Errorf("unknown hitch type %q", s)
}

// MarshalText encodes the hitch as its name
func (h HitchType) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText decodes a hitch name; an empty value means vertical
func (h *HitchType) UnmarshalText(text []byte) error {
	parsed, err := ParseHitchType(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// WireRopeGrade is the steel grade of a wire rope sling
type WireRopeGrade string

const (
	ImprovedPlowSteel      WireRopeGrade = "IPS"
	ExtraImprovedPlowSteel WireRopeGrade = "EIPS"
)

// ChainGrade is the alloy chain grade
type ChainGrade string

const (
	Grade80  ChainGrade = "G80"
	Grade100 ChainGrade = "G100"
)

// SyntheticFiber is the fiber of a web or round sling
type SyntheticFiber string

const (
	Nylon     SyntheticFiber = "nylon"
	Polyester SyntheticFiber = "polyester"
	Dyneema   SyntheticFiber = "dyneema"
)

// SlingMaterial is one of WireRope, Chain or Synthetic
type SlingMaterial interface {
	fmt.Stringer
	slingMaterial()
}

// WireRope sling; weight is estimated from DiameterMM
type WireRope struct {
	Grade WireRopeGrade
}

// Chain sling; weight is estimated from DiameterMM
type Chain struct {
	Grade ChainGrade
}

// Synthetic sling; weight is estimated from WidthMM
type Synthetic struct {
	Fiber SyntheticFiber
}

func (WireRope) slingMaterial()  {}
func (Chain) slingMaterial()     {}
func (Synthetic) slingMaterial() {}

func (m WireRope) String() string  { return fmt.Sprintf("wire rope (%s)", m.Grade) }
func (m Chain) String() string     { return fmt.Sprintf("chain (%s)", m.Grade) }
func (m Synthetic) String() string { return fmt.Sprintf("synthetic (%s)", m.Fiber) }

// SlingSpec is the manufacturer data of a sling
type SlingSpec struct {
	ID       string
	Material SlingMaterial

	// wire rope and chain; 0 when not given
	DiameterMM float64
	// synthetic; 0 when not given
	WidthMM float64

	LengthM float64
	// vertical hitch rating (kg)
	RatedCapacityKg float64
	// design factor of the sling itself, typically 5
	SafetyFactor float64
}

// EstimatedWeightKg approximates the sling self weight:
// wire rope 0.5 kg per m per mm of diameter, chain 1.0 kg per m per mm,
// synthetic 0.1 kg per m per cm of width.
func (s SlingSpec) EstimatedWeightKg() float64 {
	switch s.Material.(type) {
	case WireRope:
		return s.LengthM * s.DiameterMM * 0.5
	case Chain:
		return s.LengthM * s.DiameterMM * 1.0
	case Synthetic:
		return s.LengthM * (s.WidthMM / 10) * 0.1
	}
	return 0
}

// Sling connects a point on the load to the hook
type Sling struct {
	Spec  SlingSpec
	Hitch HitchType

	// where the sling attaches to the load
	Attachment kinematics.Vec3
	// where the sling attaches to the hook; several slings may share it
	HookPoint kinematics.Vec3
}

// Hardware is a rigging component other than a sling
type Hardware struct {
	Kind            HardwareKind
	RatedCapacityKg float64
	WeightKg        float64
	Position        kinematics.Vec3
}

// HardwareKind is one of Shackle, Hook, SpreaderBeam, SpreaderFrame,
// LiftingBeam, SnatchBlock or Swivel
type HardwareKind interface {
	fmt.Stringer
	hardwareKind()
}

// Shackle joins a sling eye to a lifting lug, sized by pin diameter
type Shackle struct{ SizeMM float64 }

// Hook is a secondary hook below the crane block, e.g. "eye" or "swivel"
type Hook struct{ TypeName string }

// SpreaderBeam holds two pick points apart in compression
type SpreaderBeam struct{ LengthM float64 }

// SpreaderFrame spreads four pick points over a rectangle
type SpreaderFrame struct{ WidthM, LengthM float64 }

// LiftingBeam carries the load in bending; BeamWeightKg is its own weight
type LiftingBeam struct{ LengthM, BeamWeightKg float64 }

// SnatchBlock redirects a line over a sheave
type SnatchBlock struct{ SheaveDiameterMM float64 }

// Swivel lets the load rotate under the hook
type Swivel struct{}

func (Shackle) hardwareKind()       {}
func (Hook) hardwareKind()          {}
func (SpreaderBeam) hardwareKind()  {}
func (SpreaderFrame) hardwareKind() {}
func (LiftingBeam) hardwareKind()   {}
func (SnatchBlock) hardwareKind()   {}
func (Swivel) hardwareKind()        {}

func (h Shackle) String() string      { return fmt.Sprintf("shackle %.0fmm", h.SizeMM) }
func (h Hook) String() string         { return fmt.Sprintf("hook (%s)", h.TypeName) }
func (h SpreaderBeam) String() string { return fmt.Sprintf("spreader beam %.1fm", h.LengthM) }
func (h SpreaderFrame) String() string {
	return fmt.Sprintf("spreader frame %.1fm x %.1fm", h.WidthM, h.LengthM)
}
func (h LiftingBeam) String() string {
	return fmt.Sprintf("lifting beam %.1fm (%.0fkg)", h.LengthM, h.BeamWeightKg)
}
func (h SnatchBlock) String() string { return fmt.Sprintf("snatch block %.0fmm", h.SheaveDiameterMM) }
func (Swivel) String() string        { return "swivel" }

// PickPoint is a lifting lug or attachment location on the load
type PickPoint struct {
	ID       string
	Position kinematics.Vec3
	Active   bool
}

// Load is the object being lifted. Positions are in the load frame.
type Load struct {
	WeightKg        float64
	CenterOfGravity kinematics.Vec3
	// length (X), width (Y), height (Z)
	Dimensions kinematics.Vec3
	PickPoints []PickPoint
}

// ActivePickPoints returns the pick points in use
func (l Load) ActivePickPoints() []PickPoint {
	return lo.Filter(l.PickPoints, func(p PickPoint, _ int) bool { return p.Active })
}

// Configuration bundles everything needed for one rigging analysis
type Configuration struct {
	Load         Load
	Slings       []Sling
	Hardware     []Hardware
	HookPosition kinematics.Vec3
}

// WeightKg is the total estimated rigging weight: slings plus hardware
func (c Configuration) WeightKg() float64 {
	slings := lo.SumBy(c.Slings, func(s Sling) float64 { return s.Spec.EstimatedWeightKg() })
	hardware := lo.SumBy(c.Hardware, func(h Hardware) float64 { return h.WeightKg })
	return slings + hardware
}
