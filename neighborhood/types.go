package neighborhood

import (
	"errors"
	"math"
)

// Sentinel errors for sampler construction.
var (
	// ErrNilGrid indicates New was given a nil grid.
	ErrNilGrid = errors.New("neighborhood: grid is nil")
	// ErrBadWindow indicates a window dimension that is not a positive odd number.
	ErrBadWindow = errors.New("neighborhood: window dimensions must be positive and odd")
	// ErrBadZFactor indicates a z-factor that is ≤ 0, NaN or Inf.
	ErrBadZFactor = errors.New("neighborhood: z-factor must be finite and > 0")
)

// Matrix is a W×H window of values around a focal cell, stored row-major
// with the focal cell at the centre. It is created per query and never
// retained by the sampler.
type Matrix struct {
	W, H         int
	Values       []float64
	HadNoData    bool
	CenterNoData bool
}

// At returns the value at offset (dx,dy) from the centre; dy grows downward.
func (m *Matrix) At(dx, dy int) float64 {
	return m.Values[(dy+m.H/2)*m.W+dx+m.W/2]
}

// Center returns the focal value.
func (m *Matrix) Center() float64 {
	return m.Values[len(m.Values)/2]
}

// Min returns the smallest value in the window.
func (m *Matrix) Min() float64 {
	lo := math.Inf(1)
	for _, v := range m.Values {
		lo = math.Min(lo, v)
	}
	return lo
}

// Max returns the largest value in the window.
func (m *Matrix) Max() float64 {
	hi := math.Inf(-1)
	for _, v := range m.Values {
		hi = math.Max(hi, v)
	}
	return hi
}

// Direction is one of the eight D8 neighbour directions.
type Direction struct {
	DX, DY   int     // offset from the focal cell; DY grows downward
	Code     int     // D8 power-of-two code
	Distance float64 // 1 for orthogonal, √2 for diagonal neighbours
	Name     string
}

// D8 holds the neighbour directions in scan order W, NW, N, NE, E, SE, S, SW.
// Codes follow the standard encoding E=1, SE=2, S=4, SW=8, W=16, NW=32,
// N=64, NE=128.
var D8 = [8]Direction{
	{DX: -1, DY: 0, Code: 16, Distance: 1, Name: "W"},
	{DX: -1, DY: -1, Code: 32, Distance: math.Sqrt2, Name: "NW"},
	{DX: 0, DY: -1, Code: 64, Distance: 1, Name: "N"},
	{DX: 1, DY: -1, Code: 128, Distance: math.Sqrt2, Name: "NE"},
	{DX: 1, DY: 0, Code: 1, Distance: 1, Name: "E"},
	{DX: 1, DY: 1, Code: 2, Distance: math.Sqrt2, Name: "SE"},
	{DX: 0, DY: 1, Code: 4, Distance: 1, Name: "S"},
	{DX: -1, DY: 1, Code: 8, Distance: math.Sqrt2, Name: "SW"},
}

// DirectionByCode returns the direction with the given D8 code.
func DirectionByCode(code int) (Direction, bool) {
	for _, d := range D8 {
		if d.Code == code {
			return d, true
		}
	}
	return Direction{}, false
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithSize sets the window dimensions; both must be positive and odd.
func WithSize(w, h int) Option {
	return func(s *Sampler) { s.w, s.h = w, h }
}

// WithZFactor sets the multiplier applied to every sampled value.
func WithZFactor(z float64) Option {
	return func(s *Sampler) { s.zFactor = z }
}
