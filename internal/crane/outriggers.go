package crane

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/alexiusacademia/gocrane/internal/kinematics"
	"github.com/samber/lo"
)

// Position identifies an outrigger corner
type Position int

const (
	FrontLeft Position = iota
	FrontRight
	RearLeft
	RearRight
)

// Positions lists the four corners in their canonical order
func Positions() [4]Position {
	return [4]Position{FrontLeft, FrontRight, RearLeft, RearRight}
}

func (p Position) String() string {
	switch p {
	case FrontLeft:
		return "Front Left"
	case FrontRight:
		return "Front Right"
	case RearLeft:
		return "Rear Left"
	case RearRight:
		return "Rear Right"
	}
	return fmt.Sprintf("Position(%d)", int(p))
}

// ParsePosition accepts names like "front_left", "FrontLeft" or "Front Left"
func ParsePosition(s string) (Position, error) {
	norm := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(s))
	for _, p := range Positions() {
		if strings.ReplaceAll(strings.ToLower(p.String()), " ", "") == norm {
			return p, nil
		}
	}
	return 0, &ConfigError{Kind: ErrOutriggerPositionInvalid, Reason: s}
}

// signs returns the corner direction in crane-local coordinates (front is +Y)
func (p Position) signs() (x, y float64) {
	switch p {
	case FrontLeft:
		return -1, 1
	case FrontRight:
		return 1, 1
	case RearLeft:
		return -1, -1
	default:
		return 1, -1
	}
}

// DeploymentState is the stage of an outrigger deployment
type DeploymentState int

const (
	// Retracted: beams in, crane travelling
	Retracted DeploymentState = iota
	// Extended: beams out horizontally, jacks not down
	Extended
	// Set: jacks down and carrying the crane
	Set
)

func (s DeploymentState) String() string {
	switch s {
	case Retracted:
		return "Retracted"
	case Extended:
		return "Extended"
	case Set:
		return "Set"
	}
	return fmt.Sprintf("DeploymentState(%d)", int(s))
}

// Deployment is the outrigger state machine value. JackExtensionM is only
// meaningful in the Set state. Any state may be entered from any other.
type Deployment struct {
	State          DeploymentState
	JackExtensionM float64
}

// RetractedDeployment returns the travel state
func RetractedDeployment() Deployment { return Deployment{State: Retracted} }

// ExtendedDeployment returns the beams-out, jacks-up state
func ExtendedDeployment() Deployment { return Deployment{State: Extended} }

// SetDeployment returns the jacked-down state
func SetDeployment(jackExtensionM float64) Deployment {
	return Deployment{State: Set, JackExtensionM: jackExtensionM}
}

func (d Deployment) String() string {
	if d.State == Set {
		return fmt.Sprintf("Set (jack %.2fm)", d.JackExtensionM)
	}
	return d.State.String()
}

// DefaultJackExtensionM is the jack stroke used by the presets
const DefaultJackExtensionM = 0.5

// DefaultPadDiameterM is the standard 600mm float
const DefaultPadDiameterM = 0.6

// Outrigger is the configuration of a single outrigger leg
type Outrigger struct {
	Position   Position
	Deployment Deployment

	// horizontal beam extension from the carrier (m)
	ExtensionM    float64
	MaxExtensionM float64
	MinExtensionM float64

	// 0 means no pad fitted
	PadDiameterM float64
}

// NewOutrigger creates a retracted outrigger with its beam fully out
func NewOutrigger(pos Position, maxExtensionM, minExtensionM float64) Outrigger {
	return Outrigger{
		Position:      pos,
		Deployment:    RetractedDeployment(),
		ExtensionM:    maxExtensionM,
		MaxExtensionM: maxExtensionM,
		MinExtensionM: minExtensionM,
		PadDiameterM:  DefaultPadDiameterM,
	}
}

// ContactPoint returns the pad position in crane-local coordinates at
// ground level. The corner at (±w/2, ±w/2) is pushed out along the diagonal
// by ExtensionM / diagonal. Deployment state is not considered.
func (o Outrigger) ContactPoint(baseWidthM float64) kinematics.Vec3 {
	half := baseWidthM / 2
	xs, ys := o.Position.signs()

	diagonal := math.Hypot(half, half)
	ratio := 0.0
	if diagonal > 1e-9 {
		ratio = o.ExtensionM / diagonal
	}

	return kinematics.Vec3{
		X: xs * half * (1 + ratio),
		Y: ys * half * (1 + ratio),
		Z: 0,
	}
}

// IsDeployed reports whether the outrigger is Set
func (o Outrigger) IsDeployed() bool {
	return o.Deployment.State == Set
}

// ExtensionRatio returns ExtensionM / MaxExtensionM
func (o Outrigger) ExtensionRatio() float64 {
	if o.MaxExtensionM <= 0 {
		return 0
	}
	return o.ExtensionM / o.MaxExtensionM
}

// Validate checks the beam extension against its limits
func (o Outrigger) Validate() error {
	if o.ExtensionM < o.MinExtensionM || o.ExtensionM > o.MaxExtensionM {
		return rangeErr(ErrOutriggerExtensionInvalid, o.ExtensionM, o.MinExtensionM, o.MaxExtensionM)
	}
	return nil
}

// OutriggerSystem holds exactly four outriggers, one per corner
type OutriggerSystem struct {
	Outriggers [4]Outrigger

	BaseWidthM  float64
	BaseLengthM float64

	// when true every outrigger must be Set before lifting
	AllRequired bool
}

// NewOutriggerSystem creates four retracted outriggers.
// Minimum extension is half of the maximum.
func NewOutriggerSystem(baseWidthM, baseLengthM, maxExtensionM float64) OutriggerSystem {
	sys := OutriggerSystem{
		BaseWidthM:  baseWidthM,
		BaseLengthM: baseLengthM,
		AllRequired: true,
	}
	for i, pos := range Positions() {
		sys.Outriggers[i] = NewOutrigger(pos, maxExtensionM, maxExtensionM*0.5)
	}
	return sys
}

// Get returns the outrigger at a corner
func (s *OutriggerSystem) Get(pos Position) *Outrigger {
	for i := range s.Outriggers {
		if s.Outriggers[i].Position == pos {
			return &s.Outriggers[i]
		}
	}
	return nil
}

// AllDeployed reports whether the system can carry the crane: every
// outrigger Set when AllRequired, otherwise at least one.
func (s OutriggerSystem) AllDeployed() bool {
	deployed := func(o Outrigger) bool { return o.IsDeployed() }
	if s.AllRequired {
		return lo.EveryBy(s.Outriggers[:], deployed)
	}
	return lo.SomeBy(s.Outriggers[:], deployed)
}

// AverageExtensionRatio averages ExtensionM / MaxExtensionM over all four legs
func (s OutriggerSystem) AverageExtensionRatio() float64 {
	total := lo.SumBy(s.Outriggers[:], func(o Outrigger) float64 { return o.ExtensionRatio() })
	return total / float64(len(s.Outriggers))
}

// ContactPoint is a deployed outrigger pad position in crane-local coordinates
type ContactPoint struct {
	Position     Position
	Point        kinematics.Vec3
	PadDiameterM float64
}

// ContactPoints returns the pad positions of the deployed outriggers
func (s OutriggerSystem) ContactPoints() []ContactPoint {
	deployed := lo.Filter(s.Outriggers[:], func(o Outrigger, _ int) bool { return o.IsDeployed() })
	return lo.Map(deployed, func(o Outrigger, _ int) ContactPoint {
		return ContactPoint{
			Position:     o.Position,
			Point:        o.ContactPoint(s.BaseWidthM),
			PadDiameterM: o.PadDiameterM,
		}
	})
}

// SupportArea approximates the support footprint as the bounding rectangle
// of the contact points. Only a full set of four deployed outriggers is
// handled; any other count yields 0.
func (s OutriggerSystem) SupportArea() float64 {
	points := s.ContactPoints()
	if len(points) != 4 {
		return 0
	}

	xs := lo.Map(points, func(c ContactPoint, _ int) float64 { return c.Point.X })
	ys := lo.Map(points, func(c ContactPoint, _ int) float64 { return c.Point.Y })
	slices.Sort(xs)
	slices.Sort(ys)

	return (xs[3] - xs[0]) * (ys[3] - ys[0])
}

// Validate checks every outrigger extension, then deployment
func (s OutriggerSystem) Validate() error {
	for _, o := range s.Outriggers {
		if err := o.Validate(); err != nil {
			return err
		}
	}

	if s.AllRequired && !s.AllDeployed() {
		return unsafeErr("not all required outriggers are deployed")
	}
	return nil
}

// PresetMaxExtension sets every beam to 100% and jacks down
func (s *OutriggerSystem) PresetMaxExtension() {
	for i := range s.Outriggers {
		o := &s.Outriggers[i]
		o.ExtensionM = o.MaxExtensionM
		o.Deployment = SetDeployment(DefaultJackExtensionM)
	}
}

// PresetMediumExtension sets every beam to 75% and jacks down
func (s *OutriggerSystem) PresetMediumExtension() {
	for i := range s.Outriggers {
		o := &s.Outriggers[i]
		o.ExtensionM = o.MaxExtensionM * 0.75
		o.Deployment = SetDeployment(DefaultJackExtensionM)
	}
}

// PresetMinExtension sets every beam to its minimum and jacks down
func (s *OutriggerSystem) PresetMinExtension() {
	for i := range s.Outriggers {
		o := &s.Outriggers[i]
		o.ExtensionM = o.MinExtensionM
		o.Deployment = SetDeployment(DefaultJackExtensionM)
	}
}

// PresetOnTires retracts every outrigger; beam extension is left as is
func (s *OutriggerSystem) PresetOnTires() {
	for i := range s.Outriggers {
		s.Outriggers[i].Deployment = RetractedDeployment()
	}
}

// SetExtensionPct positions every beam at pct (0-1) of its maximum. A
// positive pct also jacks the outriggers down; 0 retracts them.
func (s *OutriggerSystem) SetExtensionPct(pct float64) {
	if pct <= 0 {
		s.PresetOnTires()
		return
	}
	for i := range s.Outriggers {
		o := &s.Outriggers[i]
		o.ExtensionM = o.MaxExtensionM * pct
		o.Deployment = SetDeployment(DefaultJackExtensionM)
	}
}
