package crane

import "fmt"

// Slab is a single counterweight block
type Slab struct {
	ID       string
	WeightKg float64

	// 0 is closest to the superstructure
	StackIndex int
}

// CounterweightConfig is the installed counterweight stack.
//
// AddSlab and SetSlabCount only enforce the slab-count ceiling. The weight
// envelope [MinWeightKg, MaxWeightKg] is checked by Validate, so a stack can
// be built up past an invalid intermediate state.
type CounterweightConfig struct {
	Slabs []Slab

	StandardSlabWeightKg float64
	MaxSlabs             int

	// derived from the slab weight and count at construction
	MinWeightKg float64
	MaxWeightKg float64

	// distance from slew center to counterweight center of mass (m)
	MomentArmM float64
}

// NewCounterweightConfig creates an empty stack. The minimum weight is one
// slab, the maximum is MaxSlabs slabs.
func NewCounterweightConfig(slabWeightKg float64, maxSlabs int, momentArmM float64) CounterweightConfig {
	return CounterweightConfig{
		StandardSlabWeightKg: slabWeightKg,
		MaxSlabs:             maxSlabs,
		MinWeightKg:          slabWeightKg,
		MaxWeightKg:          slabWeightKg * float64(maxSlabs),
		MomentArmM:           momentArmM,
	}
}

// TotalWeightKg sums the installed slabs
func (c CounterweightConfig) TotalWeightKg() float64 {
	total := 0.0
	for _, s := range c.Slabs {
		total += s.WeightKg
	}
	return total
}

// SlabCount returns the number of installed slabs
func (c CounterweightConfig) SlabCount() int {
	return len(c.Slabs)
}

func (c CounterweightConfig) newSlab(index int) Slab {
	return Slab{
		ID:         fmt.Sprintf("slab_%d", index+1),
		WeightKg:   c.StandardSlabWeightKg,
		StackIndex: index,
	}
}

// AddSlab stacks one standard slab on top
func (c *CounterweightConfig) AddSlab() error {
	if len(c.Slabs) >= c.MaxSlabs {
		return unsafeErr("cannot add more than %d counterweight slabs", c.MaxSlabs)
	}
	c.Slabs = append(c.Slabs, c.newSlab(len(c.Slabs)))
	return nil
}

// RemoveSlab takes the top slab off. ok is false for an empty stack.
func (c *CounterweightConfig) RemoveSlab() (Slab, bool) {
	if len(c.Slabs) == 0 {
		return Slab{}, false
	}
	top := c.Slabs[len(c.Slabs)-1]
	c.Slabs = c.Slabs[:len(c.Slabs)-1]
	return top, true
}

// SetSlabCount replaces the stack with n standard slabs
func (c *CounterweightConfig) SetSlabCount(n int) error {
	if n < 0 || n > c.MaxSlabs {
		return rangeErr(ErrCounterweightInvalid, float64(n)*c.StandardSlabWeightKg, c.MinWeightKg, c.MaxWeightKg)
	}

	c.Slabs = make([]Slab, 0, n)
	for i := 0; i < n; i++ {
		c.Slabs = append(c.Slabs, c.newSlab(i))
	}
	return nil
}

// Moment returns the counterweight moment about the slew center (kg·m)
func (c CounterweightConfig) Moment() float64 {
	return c.TotalWeightKg() * c.MomentArmM
}

// Validate checks the weight envelope, then the slab count
func (c CounterweightConfig) Validate() error {
	total := c.TotalWeightKg()
	if total < c.MinWeightKg || total > c.MaxWeightKg {
		return rangeErr(ErrCounterweightInvalid, total, c.MinWeightKg, c.MaxWeightKg)
	}

	if len(c.Slabs) > c.MaxSlabs {
		return unsafeErr("too many counterweight slabs: %d > %d", len(c.Slabs), c.MaxSlabs)
	}
	return nil
}

// PresetMax installs every slab
func (c *CounterweightConfig) PresetMax() error {
	return c.SetSlabCount(c.MaxSlabs)
}

// PresetMedium installs half the slabs
func (c *CounterweightConfig) PresetMedium() error {
	return c.SetSlabCount(c.MaxSlabs / 2)
}

// PresetMin installs a single slab
func (c *CounterweightConfig) PresetMin() error {
	return c.SetSlabCount(1)
}
