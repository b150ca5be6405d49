package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/gocrane/internal/capacity"
	"github.com/guptarohit/asciigraph"
	"github.com/rivo/uniseg"
)

// samples returns n evenly spaced radii from lo to hi
func samples(lo, hi float64, n int) []float64 {
	if n < 2 || hi <= lo {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// capacitySeries samples a load chart in tonnes. Radii outside the chart
// are NaN so that the curve stops at its last point instead of clamping.
func capacitySeries(lc capacity.LoadChart, radii []float64) []float64 {
	series := make([]float64, len(radii))
	for i, r := range radii {
		if r < lc.MinRadius()-1e-9 || r > lc.MaxRadius()+1e-9 {
			series[i] = math.NaN()
			continue
		}
		kg, ok := lc.CapacityAtRadius(r)
		if !ok {
			series[i] = math.NaN()
			continue
		}
		series[i] = kg / 1000
	}
	return series
}

// ASCIILoadChart draws capacity (t) against radius for one boom length
func ASCIILoadChart(lc capacity.LoadChart, width, height int) string {
	if len(lc.Points) == 0 {
		return "  (no capacity data)\n"
	}

	radii := samples(lc.MinRadius(), lc.MaxRadius(), width)
	graph := asciigraph.Plot(capacitySeries(lc, radii),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(1),
		asciigraph.Caption(fmt.Sprintf("Boom %.1fm: capacity (t) vs radius %.1f-%.1fm",
			lc.BoomLengthM, lc.MinRadius(), lc.MaxRadius())),
	)
	return graph + "\n"
}

// ASCIICapacityCurves overlays every boom length of a chart on a common
// radius axis, shortest boom first
func ASCIICapacityCurves(chart capacity.Chart, width, height int) string {
	var charts []capacity.LoadChart
	for _, lc := range chart.LoadCharts() {
		if len(lc.Points) > 0 {
			charts = append(charts, lc)
		}
	}
	if len(charts) == 0 {
		return "  (no capacity data)\n"
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, lc := range charts {
		lo = math.Min(lo, lc.MinRadius())
		hi = math.Max(hi, lc.MaxRadius())
	}
	radii := samples(lo, hi, width)

	series := make([][]float64, len(charts))
	legend := make([]string, len(charts))
	for i, lc := range charts {
		series[i] = capacitySeries(lc, radii)
		legend[i] = fmt.Sprintf("%.1fm", lc.BoomLengthM)
	}

	graph := asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(1),
		asciigraph.Caption(fmt.Sprintf("capacity (t) vs radius %.1f-%.1fm; booms %s",
			lo, hi, strings.Join(legend, ", "))),
	)
	return graph + "\n"
}

// DrawSummaryBox frames a title and result lines. Lines are padded to the
// same terminal cell width, so wide characters keep the frame aligned.
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	width := uniseg.StringWidth(title)
	for _, line := range lines {
		width = max(width, uniseg.StringWidth(line))
	}

	pad := func(s string) string {
		return s + strings.Repeat(" ", width-uniseg.StringWidth(s))
	}

	border := strings.Repeat("═", width+4)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// Bar renders a utilization percentage as a 20 cell bar, capped at 100%
func Bar(pct float64) string {
	const cells = 20
	filled := int(math.Round(math.Min(math.Max(pct, 0), 100) / 100 * cells))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", cells-filled) + "]"
}
