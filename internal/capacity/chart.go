package capacity

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/samber/lo"
)

// Default de-rating factors applied by NewChart
const (
	DefaultOverSideFactor              = 0.85
	DefaultOverRearFactor              = 0.75
	DefaultDynamicFactor               = 0.85
	DefaultOutriggerIntermediateFactor = 0.85
	DefaultOnTiresFactor               = 0.40
)

// Point is a single (radius, capacity) entry on a load chart
type Point struct {
	RadiusM    float64 `json:"radius_m"`
	CapacityKg float64 `json:"capacity_kg"`
}

// LoadChart holds the rated capacities for one boom length.
// Points are kept sorted ascending by radius.
type LoadChart struct {
	BoomLengthM float64 `json:"boom_length_m"`
	Points      []Point `json:"points"`
	Notes       string  `json:"notes,omitempty"`
}

// NewLoadChart creates an empty chart for the given boom length
func NewLoadChart(boomLengthM float64) LoadChart {
	return LoadChart{BoomLengthM: boomLengthM}
}

// AddPoint inserts a capacity point and keeps the points sorted by radius
func (c *LoadChart) AddPoint(radiusM, capacityKg float64) {
	c.Points = append(c.Points, Point{RadiusM: radiusM, CapacityKg: capacityKg})
	c.sortPoints()
}

func (c *LoadChart) sortPoints() {
	slices.SortStableFunc(c.Points, func(a, b Point) int {
		return cmp.Compare(a.RadiusM, b.RadiusM)
	})
}

// CapacityAtRadius returns the rated capacity at the given radius.
//
// Between two points the capacity is linearly interpolated. Outside the
// tabulated range the nearest boundary capacity is returned; the chart is
// never extrapolated. ok is false only when the chart has no points.
func (c LoadChart) CapacityAtRadius(radiusM float64) (float64, bool) {
	if len(c.Points) == 0 {
		return 0, false
	}

	var lower, upper *Point
	for i := range c.Points {
		p := &c.Points[i]
		if p.RadiusM <= radiusM && (lower == nil || p.RadiusM > lower.RadiusM) {
			lower = p
		}
		if p.RadiusM >= radiusM && (upper == nil || p.RadiusM < upper.RadiusM) {
			upper = p
		}
	}

	switch {
	case lower != nil && upper != nil && math.Abs(lower.RadiusM-upper.RadiusM) < 0.01:
		return lower.CapacityKg, true
	case lower != nil && upper != nil:
		t := (radiusM - lower.RadiusM) / (upper.RadiusM - lower.RadiusM)
		return lower.CapacityKg + t*(upper.CapacityKg-lower.CapacityKg), true
	case lower != nil:
		// past the last radius: hold the last rated value
		return lower.CapacityKg, true
	case upper != nil:
		return upper.CapacityKg, true
	}
	return 0, false
}

// MaxRadius returns the largest tabulated radius (0 for an empty chart)
func (c LoadChart) MaxRadius() float64 {
	return lo.Reduce(c.Points, func(acc float64, p Point, _ int) float64 {
		return math.Max(acc, p.RadiusM)
	}, 0)
}

// MinRadius returns the smallest tabulated radius (0 for an empty chart)
func (c LoadChart) MinRadius() float64 {
	if len(c.Points) == 0 {
		return 0
	}
	return c.Points[0].RadiusM
}

// MaxCapacity returns the largest tabulated capacity
func (c LoadChart) MaxCapacity() float64 {
	return lo.Reduce(c.Points, func(acc float64, p Point, _ int) float64 {
		return math.Max(acc, p.CapacityKg)
	}, 0)
}

// Chart is the complete capacity chart system for a crane: one load chart
// per boom length plus the de-rating factors for operating conditions.
type Chart struct {
	// keyed by boom length rounded to 0.1 m, see Key
	Charts map[string]LoadChart `json:"charts"`

	OverSideFactor float64 `json:"over_side_factor"`
	OverRearFactor float64 `json:"over_rear_factor"`
	DynamicFactor  float64 `json:"dynamic_factor"`

	OutriggerIntermediateFactor float64 `json:"outrigger_intermediate_factor"`
	OnTiresFactor               float64 `json:"on_tires_factor"`
}

// NewChart creates an empty chart with the default de-rating factors
func NewChart() Chart {
	return Chart{
		Charts:                      map[string]LoadChart{},
		OverSideFactor:              DefaultOverSideFactor,
		OverRearFactor:              DefaultOverRearFactor,
		DynamicFactor:               DefaultDynamicFactor,
		OutriggerIntermediateFactor: DefaultOutriggerIntermediateFactor,
		OnTiresFactor:               DefaultOnTiresFactor,
	}
}

// Key formats a boom length as a chart key (0.1 m resolution)
func Key(boomLengthM float64) string {
	return fmt.Sprintf("%.1f", boomLengthM)
}

// AddChart stores a load chart, replacing any chart with the same key
func (c *Chart) AddChart(chart LoadChart) {
	if c.Charts == nil {
		c.Charts = map[string]LoadChart{}
	}
	chart.sortPoints()
	c.Charts[Key(chart.BoomLengthM)] = chart
}

// IsEmpty reports whether no load charts are loaded
func (c Chart) IsEmpty() bool {
	return len(c.Charts) == 0
}

// LoadCharts returns the load charts ordered by boom length
func (c Chart) LoadCharts() []LoadChart {
	charts := lo.Values(c.Charts)
	slices.SortFunc(charts, func(a, b LoadChart) int {
		return cmp.Compare(a.BoomLengthM, b.BoomLengthM)
	})
	return charts
}

// BoomLengths returns the tabulated boom lengths in ascending order
func (c Chart) BoomLengths() []float64 {
	return lo.Map(c.LoadCharts(), func(lc LoadChart, _ int) float64 {
		return lc.BoomLengthM
	})
}

// Capacity returns the de-rated capacity for an operating condition.
//
// The load chart is chosen by exact key match, otherwise the chart with the
// closest boom length; charts are not blended on this path (see
// CapacityInterpolated). The chart value is multiplied by the swing factor,
// by OutriggerIntermediateFactor when outriggerExtensionPct < 1.0 (a flat
// factor, not proportional) and by OnTiresFactor when onTires is set.
func (c Chart) Capacity(boomLengthM, radiusM, swingDeg, outriggerExtensionPct float64, onTires bool) (float64, bool) {
	chart, ok := c.ChartForBoomLength(boomLengthM)
	if !ok {
		return 0, false
	}

	capacity, ok := chart.CapacityAtRadius(radiusM)
	if !ok {
		return 0, false
	}

	capacity *= c.SwingFactor(swingDeg)

	if outriggerExtensionPct < 1.0 {
		capacity *= c.OutriggerIntermediateFactor
	}
	if onTires {
		capacity *= c.OnTiresFactor
	}

	return capacity, true
}

// SwingFactor returns the de-rating factor for a swing bearing.
//
//	front [315°, 45°)  1.0
//	side  [45°, 135°)  OverSideFactor
//	rear  [135°, 225°) OverRearFactor
//	side  [225°, 315°) OverSideFactor
func (c Chart) SwingFactor(swingDeg float64) float64 {
	angle := math.Mod(swingDeg, 360)
	if angle < 0 {
		angle += 360
	}

	switch {
	case angle >= 45 && angle < 135:
		return c.OverSideFactor
	case angle >= 135 && angle < 225:
		return c.OverRearFactor
	case angle >= 225 && angle < 315:
		return c.OverSideFactor
	default:
		return 1.0
	}
}

// ChartForBoomLength returns the chart keyed at boomLengthM, or the chart
// whose boom length is closest. Ties go to the shorter boom.
func (c Chart) ChartForBoomLength(boomLengthM float64) (LoadChart, bool) {
	if chart, ok := c.Charts[Key(boomLengthM)]; ok {
		return chart, true
	}

	var closest LoadChart
	found := false
	minDiff := math.MaxFloat64
	for _, chart := range c.LoadCharts() {
		diff := math.Abs(chart.BoomLengthM - boomLengthM)
		if diff < minDiff {
			minDiff = diff
			closest = chart
			found = true
		}
	}
	return closest, found
}

// CapacityInterpolated blends capacity linearly between the two load charts
// that bracket boomLengthM. If only one side exists the closest chart is
// used. No de-rating factors are applied on this path, so callers that need
// operating-condition capacities must use Capacity instead.
func (c Chart) CapacityInterpolated(boomLengthM, radiusM float64) (float64, bool) {
	var lower, upper *LoadChart
	charts := c.LoadCharts()
	for i := range charts {
		lc := &charts[i]
		if lc.BoomLengthM <= boomLengthM && (lower == nil || lc.BoomLengthM > lower.BoomLengthM) {
			lower = lc
		}
		if lc.BoomLengthM >= boomLengthM && (upper == nil || lc.BoomLengthM < upper.BoomLengthM) {
			upper = lc
		}
	}

	switch {
	case lower != nil && upper != nil && math.Abs(lower.BoomLengthM-upper.BoomLengthM) < 0.1:
		return lower.CapacityAtRadius(radiusM)
	case lower != nil && upper != nil:
		lowerCap, ok := lower.CapacityAtRadius(radiusM)
		if !ok {
			return 0, false
		}
		upperCap, ok := upper.CapacityAtRadius(radiusM)
		if !ok {
			return 0, false
		}
		t := (boomLengthM - lower.BoomLengthM) / (upper.BoomLengthM - lower.BoomLengthM)
		return lowerCap + t*(upperCap-lowerCap), true
	case lower != nil:
		return lower.CapacityAtRadius(radiusM)
	case upper != nil:
		return upper.CapacityAtRadius(radiusM)
	}
	return 0, false
}
