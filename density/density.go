package density

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvraster/grid"
	"github.com/katalvlaran/lvraster/interp"
)

// Options configures Points and Lines.
//
// Fields:
//   - Shape, Radius, Circular: the kernel; Radius is in cells.
//   - UseZ: take each feature's magnitude from Z instead of 1. For a line
//     segment the magnitude is the mean Z of its end points.
//   - NoData: the output sentinel. Every cell of a density grid holds data,
//     but the sentinel is still declared and kept clear of the data range.
type Options struct {
	Shape    Shape
	Radius   int
	Circular bool
	UseZ     bool
	NoData   float64
}

// DefaultOptions returns a circular quartic kernel of radius 5 with unit
// magnitudes.
func DefaultOptions() Options {
	return Options{
		Shape:    Quartic,
		Radius:   5,
		Circular: true,
		NoData:   grid.DefaultNoData,
	}
}

// Line is a polyline feature.
type Line struct {
	Vertices []interp.SamplePoint
}

// surface is the grid under construction with its kernel.
type surface struct {
	out  *grid.Grid
	k    *Kernel
	area float64
}

func newSurface(op string, ext grid.Extent, cellSize float64, opts Options) (*surface, error) {
	if math.IsNaN(opts.NoData) {
		return nil, fmt.Errorf("%s: NoData is NaN: %w", op, ErrInvalidParameter)
	}
	k, err := NewKernel(opts.Shape, opts.Radius, opts.Circular)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out, err := grid.New(ext, cellSize, cellSize, grid.WithNoData(opts.NoData))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidParameter, err)
	}
	return &surface{out: out, k: k, area: cellSize * cellSize}, nil
}

// deposit spreads amount over the kernel centred on the cell holding (x,y),
// clipping at the grid edges.
func (s *surface) deposit(x, y, amount float64) {
	col, row := s.out.WorldToGrid(x, y)
	r := s.k.radius
	scale := amount / (s.k.total * s.area)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c, rr := col+dx, row+dy
			if !s.out.InBounds(c, rr) {
				continue
			}
			w := s.k.weights[(dy+r)*s.k.size+dx+r]
			if w == 0 {
				continue
			}
			s.out.Put(c, rr, s.out.Value(c, rr)+w*scale)
		}
	}
}

func (s *surface) finish() (*grid.Grid, grid.Stats) {
	var st grid.Stats
	for _, v := range s.out.Values() {
		st.Add(v)
	}
	s.out.Finalize(st)
	return s.out, st
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Points returns the kernel density of samples on a grid over ext with
// square cells of size cellSize. Samples outside ext still contribute to the
// cells their kernel reaches.
//
// Complexity: O(n·(2r+1)²).
func Points(samples []interp.SamplePoint, ext grid.Extent, cellSize float64, opts Options) (*grid.Grid, grid.Stats, error) {
	s, err := newSurface("Points", ext, cellSize, opts)
	if err != nil {
		return nil, grid.Stats{}, err
	}
	for i, p := range samples {
		mag := 1.0
		if opts.UseZ {
			mag = p.Z
		}
		if !finite(p.X, p.Y, mag) {
			return nil, grid.Stats{}, fmt.Errorf("Points: sample %d (%v, %v, %v): %w", i, p.X, p.Y, p.Z, ErrInvalidParameter)
		}
		s.deposit(p.X, p.Y, mag)
	}
	out, st := s.finish()
	return out, st, nil
}

// Lines returns the kernel density of polylines. Each segment is walked in
// equal steps no longer than half a cell; every step deposits
// stepLength·magnitude at its midpoint, so a segment's total mass is its
// length times its magnitude.
func Lines(lines []Line, ext grid.Extent, cellSize float64, opts Options) (*grid.Grid, grid.Stats, error) {
	s, err := newSurface("Lines", ext, cellSize, opts)
	if err != nil {
		return nil, grid.Stats{}, err
	}
	maxStep := cellSize / 2
	for li, l := range lines {
		for i := 1; i < len(l.Vertices); i++ {
			a, b := l.Vertices[i-1], l.Vertices[i]
			mag := 1.0
			if opts.UseZ {
				mag = (a.Z + b.Z) / 2
			}
			if !finite(a.X, a.Y, b.X, b.Y, mag) {
				return nil, grid.Stats{}, fmt.Errorf("Lines: line %d segment %d: %w", li, i-1, ErrInvalidParameter)
			}
			length := math.Hypot(b.X-a.X, b.Y-a.Y)
			if length == 0 {
				continue
			}
			steps := int(math.Ceil(length / maxStep))
			step := length / float64(steps)
			for k := 0; k < steps; k++ {
				t := (float64(k) + 0.5) / float64(steps)
				s.deposit(a.X+t*(b.X-a.X), a.Y+t*(b.Y-a.Y), step*mag)
			}
		}
	}
	out, st := s.finish()
	return out, st, nil
}

// Mass returns Σ density·cellArea over the valid cells of g: the total
// magnitude a density grid holds.
func Mass(g *grid.Grid) float64 {
	cx, cy := g.CellSize()
	vals := g.Values()
	valid := vals[:0]
	for _, v := range vals {
		if !g.IsNoData(v) {
			valid = append(valid, v)
		}
	}
	return floats.Sum(valid) * cx * cy
}
