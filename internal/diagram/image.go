package diagram

import (
	"cmp"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alexiusacademia/gocrane/internal/capacity"
	"github.com/alexiusacademia/gocrane/internal/kinematics"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	outlineColor  = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	boomColor     = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	hookColor     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	obstacleColor = color.RGBA{R: 128, G: 128, B: 128, A: 150}
	loadColor     = color.RGBA{R: 100, G: 149, B: 237, A: 150}
)

// ExportLoadChart plots capacity (t) against radius (m), one line per boom
// length. The format follows the extension: .png, .svg or .pdf; anything
// else gets .png appended.
func ExportLoadChart(chart capacity.Chart, title, filename string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Radius (m)"
	p.Y.Label.Text = "Capacity (t)"
	p.Add(plotter.NewGrid())

	charts := chart.LoadCharts()
	if len(charts) == 0 {
		return fmt.Errorf("chart has no load charts")
	}

	for i, lc := range charts {
		if len(lc.Points) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(lc.Points))
		for j, pt := range lc.Points {
			pts[j] = plotter.XY{X: pt.RadiusM, Y: pt.CapacityKg / 1000}
		}

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = plotutil.Color(i)
		points.GlyphStyle.Color = plotutil.Color(i)
		points.GlyphStyle.Radius = vg.Points(2.5)
		points.GlyphStyle.Shape = draw.CircleGlyph{}

		p.Add(line, points)
		p.Legend.Add(fmt.Sprintf("%.1f m", lc.BoomLengthM), line)
	}
	p.Legend.Top = true

	return save(p, 8*vg.Inch, 6*vg.Inch, filename)
}

// PlanView is a top-down picture of a lift
type PlanView struct {
	Title string

	CraneOrigin kinematics.Vec3
	// outrigger or tire contact points
	Supports []kinematics.Vec3
	BoomTip  kinematics.Vec3
	Hook     kinematics.Vec3

	SwingPath []kinematics.Vec3
	// index into SwingPath of the first collision, -1 when clear
	CollisionIndex int

	Obstacles []kinematics.Box
	// plan footprint of the load, centered on the hook
	LoadDims kinematics.Vec3
}

// ExportPlanView draws the support footprint, boom, hook, load footprint,
// swing path and obstacles seen from above (X east, Y north).
func ExportPlanView(v PlanView, filename string) error {
	p := plot.New()
	p.Title.Text = v.Title
	p.X.Label.Text = "East (m)"
	p.Y.Label.Text = "North (m)"
	p.Add(plotter.NewGrid())

	for _, obs := range v.Obstacles {
		poly, err := plotter.NewPolygon(rectangle(obs.Center, obs.Dimensions))
		if err != nil {
			return err
		}
		poly.Color = obstacleColor
		poly.LineStyle.Color = color.Black
		p.Add(poly)
	}

	if len(v.Supports) > 0 {
		pts := make(plotter.XYs, len(v.Supports))
		for i, s := range v.Supports {
			pts[i] = plotter.XY{X: s.X, Y: s.Y}
		}
		if len(pts) >= 3 {
			outline, err := plotter.NewPolygon(convexOrder(pts))
			if err != nil {
				return err
			}
			outline.LineStyle.Color = outlineColor
			outline.LineStyle.Width = vg.Points(1.5)
			outline.Color = nil
			p.Add(outline)
		}

		pads, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		pads.GlyphStyle.Color = outlineColor
		pads.GlyphStyle.Radius = vg.Points(4)
		pads.GlyphStyle.Shape = draw.BoxGlyph{}
		p.Add(pads)
		p.Legend.Add("supports", pads)
	}

	if len(v.SwingPath) > 1 {
		path := make(plotter.XYs, len(v.SwingPath))
		for i, h := range v.SwingPath {
			path[i] = plotter.XY{X: h.X, Y: h.Y}
		}
		swing, err := plotter.NewLine(path)
		if err != nil {
			return err
		}
		swing.LineStyle.Width = vg.Points(1)
		swing.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(swing)
		p.Legend.Add("swing path", swing)

		if v.CollisionIndex >= 0 && v.CollisionIndex < len(v.SwingPath) {
			c := v.SwingPath[v.CollisionIndex]
			hit, err := plotter.NewScatter(plotter.XYs{{X: c.X, Y: c.Y}})
			if err != nil {
				return err
			}
			hit.GlyphStyle.Color = hookColor
			hit.GlyphStyle.Radius = vg.Points(6)
			hit.GlyphStyle.Shape = draw.CrossGlyph{}
			p.Add(hit)
			p.Legend.Add("collision", hit)
		}
	}

	if v.LoadDims.X > 0 && v.LoadDims.Y > 0 {
		load, err := plotter.NewPolygon(rectangle(v.Hook, v.LoadDims))
		if err != nil {
			return err
		}
		load.Color = loadColor
		load.LineStyle.Color = outlineColor
		p.Add(load)
	}

	boom, err := plotter.NewLine(plotter.XYs{
		{X: v.CraneOrigin.X, Y: v.CraneOrigin.Y},
		{X: v.BoomTip.X, Y: v.BoomTip.Y},
	})
	if err != nil {
		return err
	}
	boom.LineStyle.Width = vg.Points(3)
	boom.LineStyle.Color = boomColor
	p.Add(boom)
	p.Legend.Add("boom", boom)

	hook, err := plotter.NewScatter(plotter.XYs{{X: v.Hook.X, Y: v.Hook.Y}})
	if err != nil {
		return err
	}
	hook.GlyphStyle.Color = hookColor
	hook.GlyphStyle.Radius = vg.Points(4)
	hook.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(hook)

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: v.Hook.X, Y: v.Hook.Y}, {X: v.CraneOrigin.X, Y: v.CraneOrigin.Y}},
		Labels: []string{fmt.Sprintf("hook z=%.1fm", v.Hook.Z), "crane"},
	})
	if err != nil {
		return err
	}
	p.Add(labels)

	// equal scale on both axes so that the swing arc stays circular
	squareAxes(p)

	return save(p, 8*vg.Inch, 8*vg.Inch, filename)
}

// rectangle returns the plan outline of a box
func rectangle(center, dims kinematics.Vec3) plotter.XYs {
	hx, hy := dims.X/2, dims.Y/2
	return plotter.XYs{
		{X: center.X - hx, Y: center.Y - hy},
		{X: center.X + hx, Y: center.Y - hy},
		{X: center.X + hx, Y: center.Y + hy},
		{X: center.X - hx, Y: center.Y + hy},
	}
}

// convexOrder sorts points counter-clockwise around their centroid
func convexOrder(pts plotter.XYs) plotter.XYs {
	var cx, cy float64
	for _, p := range pts {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(pts))
	cy /= float64(len(pts))

	out := slices.Clone(pts)
	angle := func(p plotter.XY) float64 { return math.Atan2(p.Y-cy, p.X-cx) }
	slices.SortFunc(out, func(a, b plotter.XY) int {
		return cmp.Compare(angle(a), angle(b))
	})
	return out
}

func squareAxes(p *plot.Plot) {
	w := p.X.Max - p.X.Min
	h := p.Y.Max - p.Y.Min
	if w > h {
		mid := (p.Y.Max + p.Y.Min) / 2
		p.Y.Min, p.Y.Max = mid-w/2, mid+w/2
	} else {
		mid := (p.X.Max + p.X.Min) / 2
		p.X.Min, p.X.Max = mid-h/2, mid+h/2
	}
}

// save writes the plot, creating the directory when needed
func save(p *plot.Plot, width, height vg.Length, filename string) error {
	if dir := filepath.Dir(filename); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
