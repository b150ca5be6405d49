// Package lift reads lift scenario files and runs the complete lift plan:
// crane configuration, capacity, rigging and ground bearing.
package lift

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/gocrane/internal/crane"
	"github.com/alexiusacademia/gocrane/internal/ground"
	"github.com/alexiusacademia/gocrane/internal/kinematics"
	"github.com/alexiusacademia/gocrane/internal/rigging"
	"gopkg.in/yaml.v3"
)

// Scenario is a lift described in a JSON or YAML file
type Scenario struct {
	Name    string       `json:"name" yaml:"name"`
	Crane   CraneSetup   `json:"crane" yaml:"crane"`
	Load    LoadSetup    `json:"load" yaml:"load"`
	Rigging RiggingSetup `json:"rigging" yaml:"rigging"`
	Ground  *GroundSetup `json:"ground,omitempty" yaml:"ground,omitempty"`
	Dynamic DynamicSetup `json:"dynamic" yaml:"dynamic"`
	Swing   *SwingSetup  `json:"swing,omitempty" yaml:"swing,omitempty"`
}

// CraneSetup selects a catalog crane and poses it
type CraneSetup struct {
	ID string `json:"id" yaml:"id"`
	// optional chart file replacing the built-in chart
	Chart string `json:"chart,omitempty" yaml:"chart,omitempty"`

	Position     kinematics.Vec3 `json:"position" yaml:"position"`
	HeadingDeg   float64         `json:"heading_deg" yaml:"heading_deg"`
	BoomLengthM  float64         `json:"boom_length_m" yaml:"boom_length_m"`
	BoomAngleDeg float64         `json:"boom_angle_deg" yaml:"boom_angle_deg"`
	SwingDeg     float64         `json:"swing_deg" yaml:"swing_deg"`
	HoistLengthM float64         `json:"hoist_length_m" yaml:"hoist_length_m"`

	// share of maximum extension (0-1); nil means fully extended and set,
	// 0 means on tires
	OutriggerExtensionPct *float64 `json:"outrigger_extension_pct,omitempty" yaml:"outrigger_extension_pct,omitempty"`
	// nil means every slab installed
	CounterweightSlabs *int `json:"counterweight_slabs,omitempty" yaml:"counterweight_slabs,omitempty"`
}

// LoadSetup is the lifted object in its own frame
type LoadSetup struct {
	WeightKg        float64          `json:"weight_kg" yaml:"weight_kg"`
	CenterOfGravity kinematics.Vec3  `json:"center_of_gravity" yaml:"center_of_gravity"`
	Dimensions      kinematics.Vec3  `json:"dimensions" yaml:"dimensions"`
	PickPoints      []PickPointSetup `json:"pick_points" yaml:"pick_points"`
}

type PickPointSetup struct {
	ID       string          `json:"id" yaml:"id"`
	Position kinematics.Vec3 `json:"position" yaml:"position"`
	// nil means active
	Active *bool `json:"active,omitempty" yaml:"active,omitempty"`
}

// RiggingSetup describes the slings between the load and the hook.
// The hook point is in the load frame; the plan moves the whole rig so
// that it meets the crane hook.
type RiggingSetup struct {
	HookPoint kinematics.Vec3 `json:"hook_point" yaml:"hook_point"`
	Slings    []SlingSetup    `json:"slings" yaml:"slings"`
	Hardware  []HardwareSetup `json:"hardware,omitempty" yaml:"hardware,omitempty"`
}

type SlingSetup struct {
	ID string `json:"id" yaml:"id"`
	// pick point the sling is attached to
	PickPoint string `json:"pick_point" yaml:"pick_point"`

	// wire_rope, chain or synthetic
	Material string `json:"material" yaml:"material"`
	// IPS/EIPS, G80/G100 or nylon/polyester/dyneema
	Grade string `json:"grade,omitempty" yaml:"grade,omitempty"`

	DiameterMM      float64           `json:"diameter_mm,omitempty" yaml:"diameter_mm,omitempty"`
	WidthMM         float64           `json:"width_mm,omitempty" yaml:"width_mm,omitempty"`
	LengthM         float64           `json:"length_m,omitempty" yaml:"length_m,omitempty"`
	RatedCapacityKg float64           `json:"rated_capacity_kg" yaml:"rated_capacity_kg"`
	SafetyFactor    float64           `json:"safety_factor,omitempty" yaml:"safety_factor,omitempty"`
	Hitch           rigging.HitchType `json:"hitch" yaml:"hitch"`
}

type HardwareSetup struct {
	// shackle, hook, spreader_beam, spreader_frame, lifting_beam,
	// snatch_block or swivel
	Kind            string          `json:"kind" yaml:"kind"`
	RatedCapacityKg float64         `json:"rated_capacity_kg" yaml:"rated_capacity_kg"`
	WeightKg        float64         `json:"weight_kg" yaml:"weight_kg"`
	Position        kinematics.Vec3 `json:"position" yaml:"position"`

	SizeMM  float64 `json:"size_mm,omitempty" yaml:"size_mm,omitempty"`
	LengthM float64 `json:"length_m,omitempty" yaml:"length_m,omitempty"`
	WidthM  float64 `json:"width_m,omitempty" yaml:"width_m,omitempty"`
	Type    string  `json:"type,omitempty" yaml:"type,omitempty"`
}

// GroundSetup describes the soil and what the outriggers stand on
type GroundSetup struct {
	Soil         ground.Soil `json:"soil" yaml:"soil"`
	SafetyFactor float64     `json:"safety_factor" yaml:"safety_factor"`

	// pad material when standing directly on pads (default steel)
	PadMaterial string `json:"pad_material,omitempty" yaml:"pad_material,omitempty"`
	// when set, every outrigger pad stands on this mat
	Mat *MatSetup `json:"mat,omitempty" yaml:"mat,omitempty"`
	// used when no outrigger is set
	Tires *TireSetup `json:"tires,omitempty" yaml:"tires,omitempty"`
}

type MatSetup struct {
	LengthM  float64 `json:"length_m" yaml:"length_m"`
	WidthM   float64 `json:"width_m" yaml:"width_m"`
	Material string  `json:"material,omitempty" yaml:"material,omitempty"`
}

type TireSetup struct {
	Count     int     `json:"count" yaml:"count"`
	WidthM    float64 `json:"width_m" yaml:"width_m"`
	DiameterM float64 `json:"diameter_m" yaml:"diameter_m"`
}

// DynamicSetup are the operating conditions applied to sling tensions
type DynamicSetup struct {
	ImpactLoading bool    `json:"impact_loading" yaml:"impact_loading"`
	WindSpeedMS   float64 `json:"wind_speed_ms" yaml:"wind_speed_ms"`
}

// SwingSetup is an optional slew to check against obstacles
type SwingSetup struct {
	FromDeg   float64          `json:"from_deg" yaml:"from_deg"`
	ToDeg     float64          `json:"to_deg" yaml:"to_deg"`
	Steps     int              `json:"steps,omitempty" yaml:"steps,omitempty"`
	Obstacles []kinematics.Box `json:"obstacles,omitempty" yaml:"obstacles,omitempty"`
}

// LoadFile reads a scenario, choosing the decoder by extension
// (.json, .yaml or .yml)
func LoadFile(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to read scenario: %w", err)
	}

	var s Scenario
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		s, err = ParseJSON(data)
	case ".yaml", ".yml":
		s, err = ParseYAML(data)
	default:
		return Scenario{}, fmt.Errorf("unsupported scenario format %q", ext)
	}
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return s, nil
}

// ParseJSON decodes a scenario and validates it
func ParseJSON(data []byte) (Scenario, error) {
	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("invalid JSON: %w", err)
	}
	return s, s.Validate()
}

// ParseYAML decodes a scenario and validates it
func ParseYAML(data []byte) (Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("invalid YAML: %w", err)
	}
	return s, s.Validate()
}

// ErrInvalidScenario is wrapped by every Validate failure
var ErrInvalidScenario = errors.New("invalid scenario")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidScenario, fmt.Sprintf(format, args...))
}

// Validate checks that the scenario is complete and self-consistent.
// Physical limits are left to the crane, rigging and ground checks.
func (s Scenario) Validate() error {
	if s.Crane.ID == "" {
		return invalid("crane id is required")
	}
	if s.Load.WeightKg <= 0 {
		return invalid("load weight must be positive")
	}
	if len(s.Rigging.Slings) == 0 {
		return invalid("at least one sling is required")
	}

	points := make(map[string]bool, len(s.Load.PickPoints))
	for _, p := range s.Load.PickPoints {
		if p.ID == "" {
			return invalid("pick point without id")
		}
		if points[p.ID] {
			return invalid("duplicate pick point %q", p.ID)
		}
		points[p.ID] = true
	}

	slings := make(map[string]bool, len(s.Rigging.Slings))
	for i, sl := range s.Rigging.Slings {
		if sl.ID == "" {
			return invalid("sling %d has no id", i+1)
		}
		if slings[sl.ID] {
			return invalid("duplicate sling %q", sl.ID)
		}
		slings[sl.ID] = true

		if !points[sl.PickPoint] {
			return invalid("sling %q references unknown pick point %q", sl.ID, sl.PickPoint)
		}
		if sl.RatedCapacityKg <= 0 {
			return invalid("sling %q needs a rated capacity", sl.ID)
		}
	}

	if g := s.Ground; g != nil {
		if g.SafetyFactor != 0 && g.SafetyFactor < 1 {
			return invalid("ground safety factor must be at least 1")
		}
		if g.Mat != nil && (g.Mat.LengthM <= 0 || g.Mat.WidthM <= 0) {
			return invalid("mat dimensions must be positive")
		}
	}
	if s.Swing != nil && s.Swing.Steps < 0 {
		return invalid("swing steps must not be negative")
	}
	return nil
}

// CraneConfiguration looks up the crane and applies the pose, outrigger
// extension and counterweight of the scenario
func (s Scenario) CraneConfiguration() (crane.Configuration, error) {
	spec, err := crane.Lookup(s.Crane.ID)
	if err != nil {
		return crane.Configuration{}, err
	}
	if s.Crane.Chart != "" {
		if err := spec.LoadCapacityChart(s.Crane.Chart); err != nil {
			return crane.Configuration{}, err
		}
	}

	cfg := spec.NewConfiguration()
	cfg.Position = s.Crane.Position
	cfg.HeadingDeg = s.Crane.HeadingDeg
	cfg.BoomLengthM = s.Crane.BoomLengthM
	cfg.BoomAngleDeg = s.Crane.BoomAngleDeg
	cfg.SwingAngleDeg = s.Crane.SwingDeg
	cfg.HoistLengthM = s.Crane.HoistLengthM

	if pct := s.Crane.OutriggerExtensionPct; pct != nil {
		cfg.SetOutriggerExtensionPct(*pct)
	} else {
		cfg.Outriggers.PresetMaxExtension()
	}

	if n := s.Crane.CounterweightSlabs; n != nil {
		err = cfg.Counterweight.SetSlabCount(*n)
	} else {
		err = cfg.Counterweight.PresetMax()
	}
	if err != nil {
		return crane.Configuration{}, err
	}
	return cfg, nil
}

// RiggingConfiguration builds the rigging in the load frame, then moves it
// so that the scenario hook point sits on hook
func (s Scenario) RiggingConfiguration(hook kinematics.Vec3) (rigging.Configuration, error) {
	offset := hook.Sub(s.Rigging.HookPoint)

	load := rigging.Load{
		WeightKg:        s.Load.WeightKg,
		CenterOfGravity: s.Load.CenterOfGravity.Add(offset),
		Dimensions:      s.Load.Dimensions,
	}
	byID := make(map[string]rigging.PickPoint, len(s.Load.PickPoints))
	for _, p := range s.Load.PickPoints {
		pp := rigging.PickPoint{
			ID:       p.ID,
			Position: p.Position.Add(offset),
			Active:   p.Active == nil || *p.Active,
		}
		byID[p.ID] = pp
		load.PickPoints = append(load.PickPoints, pp)
	}

	cfg := rigging.Configuration{Load: load, HookPosition: hook}
	for _, sl := range s.Rigging.Slings {
		pp, ok := byID[sl.PickPoint]
		if !ok {
			return rigging.Configuration{}, invalid("sling %q references unknown pick point %q", sl.ID, sl.PickPoint)
		}
		if !pp.Active {
			continue
		}

		material, err := slingMaterial(sl.Material, sl.Grade)
		if err != nil {
			return rigging.Configuration{}, fmt.Errorf("sling %q: %w", sl.ID, err)
		}

		length := sl.LengthM
		if length <= 0 {
			length = hook.Sub(pp.Position).Norm()
		}
		sf := sl.SafetyFactor
		if sf <= 0 {
			sf = rigging.MinSafetyFactor
		}

		cfg.Slings = append(cfg.Slings, rigging.Sling{
			Spec: rigging.SlingSpec{
				ID:              sl.ID,
				Material:        material,
				DiameterMM:      sl.DiameterMM,
				WidthMM:         sl.WidthMM,
				LengthM:         length,
				RatedCapacityKg: sl.RatedCapacityKg,
				SafetyFactor:    sf,
			},
			Hitch:      sl.Hitch,
			Attachment: pp.Position,
			HookPoint:  hook,
		})
	}

	for i, h := range s.Rigging.Hardware {
		kind, err := hardwareKind(h)
		if err != nil {
			return rigging.Configuration{}, fmt.Errorf("hardware %d: %w", i+1, err)
		}
		cfg.Hardware = append(cfg.Hardware, rigging.Hardware{
			Kind:            kind,
			RatedCapacityKg: h.RatedCapacityKg,
			WeightKg:        h.WeightKg,
			Position:        h.Position.Add(offset),
		})
	}
	return cfg, nil
}

func slingMaterial(name, grade string) (rigging.SlingMaterial, error) {
	switch strings.ToLower(strings.ReplaceAll(name, " ", "_")) {
	case "", "wire_rope", "wirerope":
		g := rigging.WireRopeGrade(strings.ToUpper(grade))
		if g == "" {
			g = rigging.ExtraImprovedPlowSteel
		}
		if g != rigging.ImprovedPlowSteel && g != rigging.ExtraImprovedPlowSteel {
			return nil, fmt.Errorf("unknown wire rope grade %q", grade)
		}
		return rigging.WireRope{Grade: g}, nil
	case "chain":
		g := rigging.ChainGrade(strings.ToUpper(grade))
		if g == "" {
			g = rigging.Grade80
		}
		if g != rigging.Grade80 && g != rigging.Grade100 {
			return nil, fmt.Errorf("unknown chain grade %q", grade)
		}
		return rigging.Chain{Grade: g}, nil
	case "synthetic":
		f := rigging.SyntheticFiber(strings.ToLower(grade))
		if f == "" {
			f = rigging.Polyester
		}
		if f != rigging.Nylon && f != rigging.Polyester && f != rigging.Dyneema {
			return nil, fmt.Errorf("unknown synthetic fiber %q", grade)
		}
		return rigging.Synthetic{Fiber: f}, nil
	}
	return nil, fmt.Errorf("unknown sling material %q", name)
}

func hardwareKind(h HardwareSetup) (rigging.HardwareKind, error) {
	switch strings.ToLower(h.Kind) {
	case "shackle":
		return rigging.Shackle{SizeMM: h.SizeMM}, nil
	case "hook":
		return rigging.Hook{TypeName: h.Type}, nil
	case "spreader_beam":
		return rigging.SpreaderBeam{LengthM: h.LengthM}, nil
	case "spreader_frame":
		return rigging.SpreaderFrame{WidthM: h.WidthM, LengthM: h.LengthM}, nil
	case "lifting_beam":
		return rigging.LiftingBeam{LengthM: h.LengthM, BeamWeightKg: h.WeightKg}, nil
	case "snatch_block":
		return rigging.SnatchBlock{SheaveDiameterMM: h.SizeMM}, nil
	case "swivel":
		return rigging.Swivel{}, nil
	}
	return nil, fmt.Errorf("unknown hardware kind %q", h.Kind)
}

// GroundConfiguration spreads the total weight over the set outriggers, or
// over the tires when none is set. It returns false when the scenario has
// no ground section or the crane has nothing to stand on.
func (s Scenario) GroundConfiguration(cfg crane.Configuration, totalKg float64, defaultSafetyFactor float64) (ground.Configuration, bool, error) {
	g := s.Ground
	if g == nil {
		return ground.Configuration{}, false, nil
	}

	sf := g.SafetyFactor
	if sf == 0 {
		sf = defaultSafetyFactor
	}

	padMaterial, err := ground.ParsePadMaterial(g.PadMaterial)
	if err != nil {
		return ground.Configuration{}, false, err
	}
	support := ground.PadSupport(padMaterial)
	if g.Mat != nil {
		matMaterial, err := ground.ParseMatMaterial(g.Mat.Material)
		if err != nil {
			return ground.Configuration{}, false, err
		}
		support = ground.MatSupport(ground.Mat{LengthM: g.Mat.LengthM, WidthM: g.Mat.WidthM, Material: matMaterial}, padMaterial)
	}

	points := ground.FromOutriggers(cfg.Outriggers, cfg.Position, cfg.HeadingDeg, totalKg, support)
	if len(points) == 0 && g.Tires != nil {
		tire := ground.Tire{WidthM: g.Tires.WidthM, DiameterM: g.Tires.DiameterM}
		points = ground.OnTires(g.Tires.Count, tire, cfg.Position, totalKg)
	}
	if len(points) == 0 {
		return ground.Configuration{}, false, nil
	}

	return ground.Configuration{SupportPoints: points, Soil: g.Soil, SafetyFactor: sf}, true, nil
}
