// Package render draws grids as heat-map images with gonum/plot.
package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/lvraster/grid"
)

// XYZ adapts a grid to plotter.GridXYZ. Plot rows run bottom-up, so row r
// of the plot is grid row Height-1-r. NoData cells read as NaN.
type XYZ struct {
	g     *grid.Grid
	stats grid.Stats
}

// NewXYZ wraps g and scans its value range once.
func NewXYZ(g *grid.Grid) *XYZ {
	return &XYZ{g: g, stats: grid.ScanStats(g)}
}

func (a *XYZ) Dims() (c, r int) { return a.g.Width(), a.g.Height() }

func (a *XYZ) Z(c, r int) float64 {
	v := a.g.Value(c, a.g.Height()-1-r)
	if a.g.IsNoData(v) {
		return math.NaN()
	}
	return v
}

func (a *XYZ) X(c int) float64 {
	x, _ := a.g.GridToWorld(c, 0)
	return x
}

func (a *XYZ) Y(r int) float64 {
	_, y := a.g.GridToWorld(0, a.g.Height()-1-r)
	return y
}

// Min and Max bound the palette. An empty or constant grid gets a unit range.
func (a *XYZ) Min() float64 {
	if a.stats.Empty() {
		return 0
	}
	return a.stats.Min
}

func (a *XYZ) Max() float64 {
	if a.stats.Empty() {
		return 1
	}
	if a.stats.Max == a.stats.Min {
		return a.stats.Min + 1
	}
	return a.stats.Max
}

// Options controls the rendered image.
type Options struct {
	Title   string
	Palette palette.Palette // nil selects a 16-step heat palette
	Width   vg.Length
	Height  vg.Length
}

// DefaultOptions returns a 6×6 inch heat-map setup.
func DefaultOptions() Options {
	return Options{Width: 6 * vg.Inch, Height: 6 * vg.Inch}
}

// Gray is a linear black-to-white palette, suited to hillshade.
type Gray int

// Colors implements palette.Palette.
func (n Gray) Colors() []color.Color {
	steps := max(int(n), 2)
	out := make([]color.Color, steps)
	for i := range out {
		y := uint8(math.Round(255 * float64(i) / float64(steps-1)))
		out[i] = color.Gray{Y: y}
	}
	return out
}

// Plot builds a plot of g without writing it.
func Plot(g *grid.Grid, opts Options) (*plot.Plot, error) {
	if g == nil {
		return nil, fmt.Errorf("Plot: nil grid")
	}
	pal := opts.Palette
	if pal == nil {
		pal = palette.Heat(16, 1)
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	h := plotter.NewHeatMap(NewXYZ(g), pal)
	h.NaN = color.Transparent
	p.Add(h)

	ext := g.Extent()
	p.X.Min, p.X.Max = ext.MinX, ext.MaxX
	p.Y.Min, p.Y.Max = ext.MinY, ext.MaxY
	return p, nil
}

// Save renders g to path; the format follows the file extension
// (png, svg, pdf, ...).
func Save(g *grid.Grid, path string, opts Options) error {
	p, err := Plot(g, opts)
	if err != nil {
		return err
	}
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = 6 * vg.Inch
	}
	if h <= 0 {
		h = 6 * vg.Inch
	}
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("Save %s: %w", path, err)
	}
	return nil
}
