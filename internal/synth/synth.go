// Package synth generates deterministic synthetic terrain and samples for
// tests, benchmarks and the CLI demo mode.
package synth

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/lvraster/grid"
	"github.com/katalvlaran/lvraster/interp"
)

// hill is one Gaussian bump of the terrain.
type hill struct {
	x, y   float64
	height float64
	sigma  float64
}

// Generator produces a smooth terrain over an extent: a sum of Gaussian
// hills on a gentle regional tilt. The same seed always yields the same
// terrain, grids and samples.
type Generator struct {
	// Configuration
	Hills  int     // number of Gaussian hills
	Relief float64 // peak height of the tallest hill, z units
	Tilt   float64 // regional gradient, z units per x unit
	Noise  float64 // standard deviation of sample noise

	ext   grid.Extent
	seed  int64
	rng   *rand.Rand
	hills []hill
}

// New returns a generator over ext with 8 hills of up to 100 units relief.
func New(ext grid.Extent, seed int64) *Generator {
	return &Generator{
		Hills:  8,
		Relief: 100,
		Tilt:   0.05,
		ext:    ext,
		seed:   seed,
	}
}

// Extent returns a square extent [0,size]² with an empty CRS tag.
func Extent(size float64) grid.Extent {
	return grid.NewExtent(0, 0, size, size, "")
}

// build lays out the hills on first use so configuration fields can be set
// after New.
func (g *Generator) build() {
	if g.rng != nil {
		return
	}
	g.rng = rand.New(rand.NewSource(g.seed))
	span := math.Max(g.ext.Width(), g.ext.Height())
	g.hills = make([]hill, g.Hills)
	for i := range g.hills {
		g.hills[i] = hill{
			x:      g.ext.MinX + g.rng.Float64()*g.ext.Width(),
			y:      g.ext.MinY + g.rng.Float64()*g.ext.Height(),
			height: g.Relief * (0.3 + 0.7*g.rng.Float64()),
			sigma:  span * (0.05 + 0.15*g.rng.Float64()),
		}
	}
}

// Height returns the noise-free terrain elevation at (x, y).
func (g *Generator) Height(x, y float64) float64 {
	g.build()
	z := g.Tilt * (x - g.ext.MinX)
	for _, h := range g.hills {
		dx, dy := x-h.x, y-h.y
		z += h.height * math.Exp(-(dx*dx+dy*dy)/(2*h.sigma*h.sigma))
	}
	return z
}

// DEM samples Height at every cell centre of a grid over the extent.
func (g *Generator) DEM(cellSize float64, opts ...grid.Option) (*grid.Grid, error) {
	dem, err := grid.New(g.ext, cellSize, cellSize, opts...)
	if err != nil {
		return nil, err
	}
	cur := dem.Cursor()
	for cur.Next() {
		row := make([]float64, dem.Width())
		for c := range row {
			row[c] = g.Height(dem.GridToWorld(c, cur.Row()))
		}
		if err := cur.Write(row); err != nil {
			return nil, err
		}
	}
	return dem, nil
}

// Samples draws n uniformly placed samples of the terrain, with Gaussian
// noise of standard deviation Noise added to z.
func (g *Generator) Samples(n int) []interp.SamplePoint {
	g.build()
	out := make([]interp.SamplePoint, n)
	for i := range out {
		x := g.ext.MinX + g.rng.Float64()*g.ext.Width()
		y := g.ext.MinY + g.rng.Float64()*g.ext.Height()
		z := g.Height(x, y)
		if g.Noise > 0 {
			z += g.rng.NormFloat64() * g.Noise
		}
		out[i] = interp.SamplePoint{X: x, Y: y, Z: z}
	}
	return out
}
