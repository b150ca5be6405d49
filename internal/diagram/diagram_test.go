package diagram

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/gocrane/internal/capacity"
	"github.com/alexiusacademia/gocrane/internal/kinematics"
	"github.com/rivo/uniseg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"
)

func TestCapacitySeries_StopsOutsideChart(t *testing.T) {
	lc := capacity.NewLoadChart(30)
	lc.AddPoint(3, 100_000)
	lc.AddPoint(10, 40_000)

	series := capacitySeries(lc, []float64{2, 3, 6.5, 10, 12})
	assert.True(t, math.IsNaN(series[0]))
	assert.InDelta(t, 100, series[1], 1e-9)
	assert.InDelta(t, 70, series[2], 1e-3)
	assert.InDelta(t, 40, series[3], 1e-9)
	assert.True(t, math.IsNaN(series[4]))
}

func TestSamples(t *testing.T) {
	assert.Equal(t, []float64{0, 5, 10}, samples(0, 10, 3))
	assert.Equal(t, []float64{4}, samples(4, 4, 10))
}

func TestASCIILoadChart(t *testing.T) {
	chart := capacity.ExampleLiebherrLTM1100()
	lc, ok := chart.ChartForBoomLength(30)
	require.True(t, ok)

	out := ASCIILoadChart(lc, 40, 10)
	assert.Contains(t, out, "Boom 30.0m")
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), 10)

	assert.Contains(t, ASCIILoadChart(capacity.NewLoadChart(30), 40, 10), "no capacity data")
}

func TestASCIICapacityCurves(t *testing.T) {
	out := ASCIICapacityCurves(capacity.ExampleLiebherrLTM1100(), 50, 12)
	assert.Contains(t, out, "booms 30.0m, 40.0m, 50.0m")

	assert.Contains(t, ASCIICapacityCurves(capacity.NewChart(), 50, 12), "no capacity data")
}

func TestDrawSummaryBox_LinesHaveEqualWidth(t *testing.T) {
	box := DrawSummaryBox("CAPACITY", []string{"Radius: 15.0 m", "Capacity: 25.0 t ✓"})

	lines := strings.Split(strings.TrimRight(box, "\n"), "\n")
	require.Len(t, lines, 6)
	width := uniseg.StringWidth(lines[0])
	for _, l := range lines {
		assert.Equal(t, width, uniseg.StringWidth(l), l)
	}
	assert.Contains(t, box, "Capacity: 25.0 t ✓")
}

func TestDrawSummaryBox_WideCharacters(t *testing.T) {
	box := DrawSummaryBox("起重机", []string{"Load: 10 t", "荷载 10 t"})

	lines := strings.Split(strings.TrimRight(box, "\n"), "\n")
	require.Len(t, lines, 6)
	width := uniseg.StringWidth(lines[0])
	for _, l := range lines {
		assert.Equal(t, width, uniseg.StringWidth(l), l)
	}
}

func TestBar(t *testing.T) {
	assert.Equal(t, "["+strings.Repeat("░", 20)+"]", Bar(-5))
	assert.Equal(t, "["+strings.Repeat("█", 10)+strings.Repeat("░", 10)+"]", Bar(50))
	assert.Equal(t, "["+strings.Repeat("█", 20)+"]", Bar(250))
}

func TestExportLoadChart(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "charts", "ltm.svg")
	require.NoError(t, ExportLoadChart(capacity.ExampleLiebherrLTM1100(), "LTM 1100", path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	// unknown extensions get .png appended
	require.NoError(t, ExportLoadChart(capacity.ExampleLiebherrLTM1100(), "LTM 1100", filepath.Join(dir, "ltm")))
	_, err = os.Stat(filepath.Join(dir, "ltm.png"))
	assert.NoError(t, err)

	assert.Error(t, ExportLoadChart(capacity.NewChart(), "empty", filepath.Join(dir, "empty.png")))
}

func TestExportPlanView(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.png")

	view := PlanView{
		Title:       "plan",
		CraneOrigin: kinematics.Vec3{},
		Supports: []kinematics.Vec3{
			{X: -6, Y: 6}, {X: 6, Y: 6}, {X: -6, Y: -6}, {X: 6, Y: -6},
		},
		BoomTip:        kinematics.V(0, 15, 29),
		Hook:           kinematics.V(0, 15, 19),
		SwingPath:      kinematics.SwingPath(kinematics.Vec3{}, 30, 60, 0, 90, 3.2, 10, 10),
		CollisionIndex: 9,
		Obstacles:      []kinematics.Box{{Center: kinematics.V(15, 0, 18), Dimensions: kinematics.V(2, 2, 2)}},
		LoadDims:       kinematics.V(4, 2.5, 1),
	}
	require.NoError(t, ExportPlanView(view, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestConvexOrder(t *testing.T) {
	// front left, front right, rear left, rear right
	in := plotter.XYs{{X: -1, Y: 1}, {X: 1, Y: 1}, {X: -1, Y: -1}, {X: 1, Y: -1}}

	out := convexOrder(in)
	require.Len(t, out, 4)
	// counter-clockwise starting from rear left
	assert.Equal(t, plotter.XY{X: -1, Y: -1}, out[0])
	assert.Equal(t, plotter.XY{X: 1, Y: -1}, out[1])
	assert.Equal(t, plotter.XY{X: 1, Y: 1}, out[2])
	assert.Equal(t, plotter.XY{X: -1, Y: 1}, out[3])

	// the input is left alone
	assert.Equal(t, plotter.XY{X: -1, Y: 1}, in[0])
}
