package capacity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoPointChart() LoadChart {
	lc := NewLoadChart(30)
	lc.AddPoint(10, 40000)
	lc.AddPoint(3, 100000)
	return lc
}

func TestLoadChart_AddPointKeepsOrder(t *testing.T) {
	lc := twoPointChart()
	lc.AddPoint(5, 80000)

	require.Len(t, lc.Points, 3)
	assert.Equal(t, 3.0, lc.Points[0].RadiusM)
	assert.Equal(t, 5.0, lc.Points[1].RadiusM)
	assert.Equal(t, 10.0, lc.Points[2].RadiusM)
}

func TestLoadChart_CapacityAtRadius(t *testing.T) {
	lc := twoPointChart()

	capacity, ok := lc.CapacityAtRadius(3.0)
	require.True(t, ok)
	assert.Equal(t, 100000.0, capacity)

	capacity, ok = lc.CapacityAtRadius(6.5)
	require.True(t, ok)
	assert.InDelta(t, 70000, capacity, 1)
}

func TestLoadChart_CapacityIsClampedOutsideRange(t *testing.T) {
	lc := twoPointChart()

	beyond, ok := lc.CapacityAtRadius(25)
	require.True(t, ok)
	assert.Equal(t, 40000.0, beyond)

	inside, ok := lc.CapacityAtRadius(1)
	require.True(t, ok)
	assert.Equal(t, 100000.0, inside)
}

func TestLoadChart_EmptyChart(t *testing.T) {
	_, ok := NewLoadChart(30).CapacityAtRadius(5)
	assert.False(t, ok)
}

func TestLoadChart_Extents(t *testing.T) {
	lc := twoPointChart()

	assert.Equal(t, 3.0, lc.MinRadius())
	assert.Equal(t, 10.0, lc.MaxRadius())
	assert.Equal(t, 100000.0, lc.MaxCapacity())
}

func TestChart_SwingFactor(t *testing.T) {
	c := NewChart()

	assert.Equal(t, 1.0, c.SwingFactor(0))
	assert.Equal(t, 1.0, c.SwingFactor(30))
	assert.Equal(t, 0.85, c.SwingFactor(90))
	assert.Equal(t, 0.75, c.SwingFactor(180))
	assert.Equal(t, 0.85, c.SwingFactor(270))

	// band edges and wrap-around
	assert.Equal(t, 0.85, c.SwingFactor(45))
	assert.Equal(t, 0.75, c.SwingFactor(135))
	assert.Equal(t, 1.0, c.SwingFactor(315))
	assert.Equal(t, 1.0, c.SwingFactor(-30))
	assert.Equal(t, 0.85, c.SwingFactor(-90))
	assert.Equal(t, 0.75, c.SwingFactor(540))
}

func TestChart_CapacityAppliesDerating(t *testing.T) {
	c := NewChart()
	c.AddChart(twoPointChart())

	front, ok := c.Capacity(30, 3, 0, 1.0, false)
	require.True(t, ok)
	assert.InDelta(t, 100000, front, 1e-6)

	side, ok := c.Capacity(30, 3, 90, 1.0, false)
	require.True(t, ok)
	assert.InDelta(t, 85000, side, 1e-6)

	// partial extension is a flat factor regardless of how short
	partial, ok := c.Capacity(30, 3, 0, 0.99, false)
	require.True(t, ok)
	assert.InDelta(t, 85000, partial, 1e-6)
	barely, ok := c.Capacity(30, 3, 0, 0.1, false)
	require.True(t, ok)
	assert.InDelta(t, partial, barely, 1e-6)

	tires, ok := c.Capacity(30, 3, 180, 0, true)
	require.True(t, ok)
	assert.InDelta(t, 100000*0.75*0.85*0.40, tires, 1e-6)
}

func TestChart_CapacityUsesClosestChart(t *testing.T) {
	c := ExampleLiebherrLTM1100()

	// 34m snaps to the 30m chart, no blending
	capacity, ok := c.Capacity(34, 10, 0, 1.0, false)
	require.True(t, ok)
	assert.InDelta(t, 40000, capacity, 1e-6)

	capacity, ok = c.Capacity(46, 10, 0, 1.0, false)
	require.True(t, ok)
	assert.InDelta(t, 30000, capacity, 1e-6)
}

func TestChart_CapacityWithoutCharts(t *testing.T) {
	_, ok := NewChart().Capacity(30, 10, 0, 1, false)
	assert.False(t, ok)

	c := NewChart()
	c.AddChart(NewLoadChart(30))
	_, ok = c.Capacity(30, 10, 0, 1, false)
	assert.False(t, ok)
}

func TestChart_CapacityInterpolatedBetweenBooms(t *testing.T) {
	c := NewChart()

	lc30 := NewLoadChart(30)
	lc30.AddPoint(10, 100000)
	lc40 := NewLoadChart(40)
	lc40.AddPoint(10, 80000)
	c.AddChart(lc30)
	c.AddChart(lc40)

	capacity, ok := c.CapacityInterpolated(35, 10)
	require.True(t, ok)
	assert.InDelta(t, 90000, capacity, 1)

	// outside the tabulated booms the closest chart is used
	capacity, ok = c.CapacityInterpolated(25, 10)
	require.True(t, ok)
	assert.InDelta(t, 100000, capacity, 1e-6)
	capacity, ok = c.CapacityInterpolated(45, 10)
	require.True(t, ok)
	assert.InDelta(t, 80000, capacity, 1e-6)

	// the interpolated path never de-rates, even when Capacity would
	side, _ := c.Capacity(30, 10, 90, 1, false)
	raw, _ := c.CapacityInterpolated(30, 10)
	assert.Less(t, side, raw)
}

func TestChart_BoomLengthsSorted(t *testing.T) {
	c := ExampleLiebherrLTM1100()
	assert.Equal(t, []float64{30, 40, 50}, c.BoomLengths())
	assert.False(t, c.IsEmpty())
}

func TestChart_AddChartReplacesSameKey(t *testing.T) {
	c := NewChart()
	a := NewLoadChart(30.04)
	a.AddPoint(5, 1)
	b := NewLoadChart(30.0)
	b.AddPoint(5, 2)

	c.AddChart(a)
	c.AddChart(b)

	require.Len(t, c.Charts, 1)
	assert.Equal(t, 2.0, c.Charts["30.0"].Points[0].CapacityKg)
}
