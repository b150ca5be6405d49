package ground

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/gocrane/internal/crane"
	"github.com/alexiusacademia/gocrane/internal/kinematics"
)

// PadMaterial is the material of an outrigger float
type PadMaterial int

const (
	Steel PadMaterial = iota
	Hardwood
	Composite
)

func (m PadMaterial) String() string {
	switch m {
	case Steel:
		return "Steel"
	case Hardwood:
		return "Hardwood"
	case Composite:
		return "Composite"
	}
	return fmt.Sprintf("PadMaterial(%d)", int(m))
}

// ParsePadMaterial accepts the lowercase material name
func ParsePadMaterial(s string) (PadMaterial, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "steel":
		return Steel, nil
	case "hardwood":
		return Hardwood, nil
	case "composite":
		return Composite, nil
	}
	return 0, fmt.Errorf("unknown pad material %q", s)
}

// MatMaterial is the material of a crane mat
type MatMaterial int

const (
	// hardwood beams, the most common
	TimberMat MatMaterial = iota
	CompositeMat
	// for extreme loads
	SteelPlate
)

func (m MatMaterial) String() string {
	switch m {
	case TimberMat:
		return "Timber"
	case CompositeMat:
		return "Composite"
	case SteelPlate:
		return "Steel Plate"
	}
	return fmt.Sprintf("MatMaterial(%d)", int(m))
}

// ParseMatMaterial accepts "timber", "composite" or "steel_plate"
func ParseMatMaterial(s string) (MatMaterial, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "timber":
		return TimberMat, nil
	case "composite":
		return CompositeMat, nil
	case "steel_plate", "steel":
		return SteelPlate, nil
	}
	return 0, fmt.Errorf("unknown mat material %q", s)
}

// SupportType is one of OutriggerPad, Tire, Mat or MatWithPad
type SupportType interface {
	// ContactAreaM2 is the area spreading the load into the ground
	ContactAreaM2() float64
	Description() string
}

// OutriggerPad is a circular float directly on the ground
type OutriggerPad struct {
	DiameterM float64
	Material  PadMaterial
}

// Tire is a crane standing on its wheels
type Tire struct {
	WidthM    float64
	DiameterM float64
}

// Mat is a crane mat without a separate pad
type Mat struct {
	LengthM  float64
	WidthM   float64
	Material MatMaterial
}

// MatWithPad is a pad standing on a mat; the mat spreads the load
type MatWithPad struct {
	Mat Mat
	Pad OutriggerPad
}

func (p OutriggerPad) ContactAreaM2() float64 {
	r := p.DiameterM / 2
	return math.Pi * r * r
}

// ContactAreaM2 approximates the tire patch as width × 15% of the diameter
func (t Tire) ContactAreaM2() float64 {
	return t.WidthM * t.DiameterM * 0.15
}

func (m Mat) ContactAreaM2() float64 {
	return m.LengthM * m.WidthM
}

func (m MatWithPad) ContactAreaM2() float64 {
	return m.Mat.ContactAreaM2()
}

func (p OutriggerPad) Description() string {
	return fmt.Sprintf("%.1fm %s pad", p.DiameterM, p.Material)
}

func (Tire) Description() string {
	return "Tire support"
}

func (m Mat) Description() string {
	return fmt.Sprintf("%.1fm×%.1fm %s mat", m.LengthM, m.WidthM, m.Material)
}

func (m MatWithPad) Description() string {
	return m.Mat.Description() + " + " + m.Pad.Description()
}

// SupportPoint is one load path into the ground
type SupportPoint struct {
	Position kinematics.Vec3
	LoadKg   float64
	Support  SupportType
}

// ContactAreaM2 delegates to the support type
func (p SupportPoint) ContactAreaM2() float64 {
	if p.Support == nil {
		return 0
	}
	return p.Support.ContactAreaM2()
}

// SupportFactory chooses the ground support for an outrigger contact point
type SupportFactory func(cp crane.ContactPoint) SupportType

// PadSupport puts the outrigger's own pad directly on the ground
func PadSupport(material PadMaterial) SupportFactory {
	return func(cp crane.ContactPoint) SupportType {
		return OutriggerPad{DiameterM: cp.PadDiameterM, Material: material}
	}
}

// MatSupport stands every outrigger pad on a mat of the given size
func MatSupport(mat Mat, padMaterial PadMaterial) SupportFactory {
	return func(cp crane.ContactPoint) SupportType {
		return MatWithPad{Mat: mat, Pad: OutriggerPad{DiameterM: cp.PadDiameterM, Material: padMaterial}}
	}
}

// FromOutriggers builds one support point per deployed outrigger, sharing
// totalLoadKg evenly. Contact points are moved to world coordinates by
// origin and the crane heading. No deployed outrigger yields nil.
func FromOutriggers(sys crane.OutriggerSystem, origin kinematics.Vec3, headingDeg, totalLoadKg float64, support SupportFactory) []SupportPoint {
	contacts := sys.ContactPoints()
	if len(contacts) == 0 {
		return nil
	}

	share := totalLoadKg / float64(len(contacts))
	sin, cos := math.Sincos(kinematics.Rad(headingDeg))

	points := make([]SupportPoint, len(contacts))
	for i, cp := range contacts {
		// heading is clockwise from +Y
		local := cp.Point
		world := kinematics.Vec3{
			X: origin.X + local.X*cos + local.Y*sin,
			Y: origin.Y - local.X*sin + local.Y*cos,
			Z: origin.Z,
		}
		points[i] = SupportPoint{Position: world, LoadKg: share, Support: support(cp)}
	}
	return points
}

// OnTires builds n tire support points at the crane origin sharing
// totalLoadKg evenly
func OnTires(n int, tire Tire, origin kinematics.Vec3, totalLoadKg float64) []SupportPoint {
	if n <= 0 {
		return nil
	}
	points := make([]SupportPoint, n)
	for i := range points {
		points[i] = SupportPoint{Position: origin, LoadKg: totalLoadKg / float64(n), Support: tire}
	}
	return points
}
