package neighborhood

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvraster/grid"
)

// Sampler reads focal windows from a grid. It only reads the grid, so one
// Sampler per goroutine may share a grid safely.
type Sampler struct {
	g       *grid.Grid
	w, h    int
	zFactor float64
}

// New returns a 3×3, z-factor 1 sampler over g unless options say otherwise.
func New(g *grid.Grid, opts ...Option) (*Sampler, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	s := &Sampler{g: g, w: 3, h: 3, zFactor: 1}
	for _, fn := range opts {
		fn(s)
	}
	if s.w <= 0 || s.h <= 0 || s.w%2 == 0 || s.h%2 == 0 {
		return nil, fmt.Errorf("New: %dx%d: %w", s.w, s.h, ErrBadWindow)
	}
	if !(s.zFactor > 0) || math.IsInf(s.zFactor, 0) {
		return nil, fmt.Errorf("New: z-factor %v: %w", s.zFactor, ErrBadZFactor)
	}
	return s, nil
}

// Size returns the window dimensions.
func (s *Sampler) Size() (w, h int) { return s.w, s.h }

// ZFactor returns the value multiplier.
func (s *Sampler) ZFactor() float64 { return s.zFactor }

// NewMatrix allocates a Matrix sized for this sampler.
func (s *Sampler) NewMatrix() Matrix {
	return Matrix{W: s.w, H: s.h, Values: make([]float64, s.w*s.h)}
}

// Sample returns the window centred on (col,row).
func (s *Sampler) Sample(col, row int) Matrix {
	m := s.NewMatrix()
	s.SampleInto(col, row, &m)
	return m
}

// SampleInto fills m with the window centred on (col,row), reusing its
// buffer when it has the right size.
func (s *Sampler) SampleInto(col, row int, m *Matrix) {
	n := s.w * s.h
	if m.W != s.w || m.H != s.h || len(m.Values) != n {
		m.W, m.H = s.w, s.h
		m.Values = make([]float64, n)
	}
	m.HadNoData, m.CenterNoData = false, false

	hw, hh := s.w/2, s.h/2
	i := 0
	for dy := -hh; dy <= hh; dy++ {
		for dx := -hw; dx <= hw; dx++ {
			c, r := col+dx, row+dy
			v := math.NaN()
			if s.g.InBounds(c, r) {
				v = s.g.Value(c, r)
				if s.g.IsNoData(v) {
					v = math.NaN()
				}
			}
			if math.IsNaN(v) {
				m.HadNoData = true
			}
			m.Values[i] = v
			i++
		}
	}

	center := m.Values[n/2]
	if math.IsNaN(center) {
		m.CenterNoData = true
		return
	}
	for i, v := range m.Values {
		if math.IsNaN(v) {
			v = center
		}
		m.Values[i] = v * s.zFactor
	}
}
