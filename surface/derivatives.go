package surface

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvraster/grid"
	"github.com/katalvlaran/lvraster/neighborhood"
)

// gradient returns Horn's dZ/dX and dZ/dY for a 3×3 window.
func gradient(m *neighborhood.Matrix, cellX, cellY float64) (dzdx, dzdy float64) {
	v := m.Values
	a, b, c := v[0], v[1], v[2]
	d, f := v[3], v[5]
	g, h, i := v[6], v[7], v[8]
	dzdx = ((c + 2*f + i) - (a + 2*d + g)) / (8 * cellX)
	dzdy = ((g + 2*h + i) - (a + 2*b + c)) / (8 * cellY)
	return dzdx, dzdy
}

// compassAspect folds the math-convention angle atan2(dzdy, -dzdx) into
// compass degrees, clockwise from north in [0, 360).
func compassAspect(dzdx, dzdy float64) float64 {
	a := math.Atan2(dzdy, -dzdx) * 180 / math.Pi
	switch {
	case a < 0:
		a = 90 - a
	case a > 90:
		a = 360 - a + 90
	default:
		a = 90 - a
	}
	if a >= 360 {
		a -= 360
	}
	return a
}

// Slope returns the steepest-descent gradient of dem using Horn's method,
// in degrees or percent rise. Percent values outside [0,100] are NoData.
//
// Complexity: O(W×H).
func Slope(dem *grid.Grid, opts Options) (*grid.Grid, grid.Stats, error) {
	if err := validate(dem, opts); err != nil {
		return nil, grid.Stats{}, fmt.Errorf("Slope: %w", err)
	}
	cx, cy := dem.CellSize()
	units := opts.Units
	return scan(dem, opts, grid.Float64, opts.ZFactor, func(m *neighborhood.Matrix) float64 {
		dzdx, dzdy := gradient(m, cx, cy)
		rise := math.Sqrt(dzdx*dzdx + dzdy*dzdy)
		if units == Percent {
			p := rise * 100
			if p < 0 || p > 100 {
				return math.NaN()
			}
			return p
		}
		return math.Atan(rise) * 180 / math.Pi
	})
}

// Aspect returns the compass direction of steepest descent in degrees
// (0 = north, clockwise). Flat cells yield FlatAspect.
func Aspect(dem *grid.Grid, opts Options) (*grid.Grid, grid.Stats, error) {
	if err := validate(dem, opts); err != nil {
		return nil, grid.Stats{}, fmt.Errorf("Aspect: %w", err)
	}
	cx, cy := dem.CellSize()
	return scan(dem, opts, grid.Float64, opts.ZFactor, func(m *neighborhood.Matrix) float64 {
		dzdx, dzdy := gradient(m, cx, cy)
		if dzdx == 0 && dzdy == 0 {
			return FlatAspect
		}
		return compassAspect(dzdx, dzdy)
	})
}

// Hillshade returns the illumination of dem under a point source at
// Options.Azimuth / Options.Altitude, in [0, 255]:
//
//	255 · (cos(zenith)·cos(slope) + sin(zenith)·sin(slope)·cos(azimuth - aspect))
//
// where zenith = 90° - altitude and azimuth is converted to math convention.
func Hillshade(dem *grid.Grid, opts Options) (*grid.Grid, grid.Stats, error) {
	if err := validate(dem, opts); err != nil {
		return nil, grid.Stats{}, fmt.Errorf("Hillshade: %w", err)
	}
	cx, cy := dem.CellSize()
	zenith := (90 - opts.Altitude) * math.Pi / 180
	az := 360 - opts.Azimuth + 90
	if az >= 360 {
		az -= 360
	}
	az = az * math.Pi / 180
	cosZ, sinZ := math.Cos(zenith), math.Sin(zenith)

	return scan(dem, opts, grid.Float64, opts.ZFactor, func(m *neighborhood.Matrix) float64 {
		dzdx, dzdy := gradient(m, cx, cy)
		slope := math.Atan(math.Sqrt(dzdx*dzdx + dzdy*dzdy))
		var aspect float64
		switch {
		case dzdx != 0:
			aspect = math.Atan2(dzdy, -dzdx)
			if aspect < 0 {
				aspect += 2 * math.Pi
			}
		case dzdy > 0:
			aspect = math.Pi / 2
		case dzdy < 0:
			aspect = 3 * math.Pi / 2
		}
		hs := 255 * (cosZ*math.Cos(slope) + sinZ*math.Sin(slope)*math.Cos(az-aspect))
		return math.Max(0, math.Min(255, hs))
	})
}

// Curvature returns the total curvature of the quadratic fitted to each
// window, -2(D+E)·100·ZFactor, with
//
//	D = ((d + f)/2 - e) / cellX²
//	E = ((b + h)/2 - e) / cellY²
//
// Positive values are convex (upward) surfaces.
func Curvature(dem *grid.Grid, opts Options) (*grid.Grid, grid.Stats, error) {
	if err := validate(dem, opts); err != nil {
		return nil, grid.Stats{}, fmt.Errorf("Curvature: %w", err)
	}
	cx, cy := dem.CellSize()
	z := opts.ZFactor
	return scan(dem, opts, grid.Float64, 1, func(m *neighborhood.Matrix) float64 {
		v := m.Values
		e := v[4]
		d := ((v[3]+v[5])/2 - e) / (cx * cx)
		ee := ((v[1]+v[7])/2 - e) / (cy * cy)
		return -2 * (d + ee) * 100 * z
	})
}

// Roughness returns max - min over each 3×3 window.
func Roughness(dem *grid.Grid, opts Options) (*grid.Grid, grid.Stats, error) {
	if err := validate(dem, opts); err != nil {
		return nil, grid.Stats{}, fmt.Errorf("Roughness: %w", err)
	}
	return scan(dem, opts, grid.Float64, 1, func(m *neighborhood.Matrix) float64 {
		return m.Max() - m.Min()
	})
}

// TPI returns the topographic position index: the centre value minus the
// mean of its eight neighbours. Ridges are positive, valleys negative.
func TPI(dem *grid.Grid, opts Options) (*grid.Grid, grid.Stats, error) {
	if err := validate(dem, opts); err != nil {
		return nil, grid.Stats{}, fmt.Errorf("TPI: %w", err)
	}
	return scan(dem, opts, grid.Float64, 1, func(m *neighborhood.Matrix) float64 {
		e := m.Center()
		var sum float64
		for i, v := range m.Values {
			if i != 4 {
				sum += v
			}
		}
		return e - sum/8
	})
}

// TRI returns the terrain ruggedness index: the mean absolute difference
// between the centre and each of its eight neighbours.
func TRI(dem *grid.Grid, opts Options) (*grid.Grid, grid.Stats, error) {
	if err := validate(dem, opts); err != nil {
		return nil, grid.Stats{}, fmt.Errorf("TRI: %w", err)
	}
	return scan(dem, opts, grid.Float64, 1, func(m *neighborhood.Matrix) float64 {
		e := m.Center()
		var sum float64
		for i, v := range m.Values {
			if i != 4 {
				sum += math.Abs(e - v)
			}
		}
		return sum / 8
	})
}

// FlowDirection returns the D8 code of each cell's steepest downslope
// neighbour. The drop to a neighbour is (centre - neighbour)/(distance·100)
// with distance 1 or √2 cell units; ties go to the first neighbour in
// W, NW, N, NE, E, SE, S, SW order. Cells with no positive drop get NoFlow.
// The output pixel kind is Int32.
func FlowDirection(dem *grid.Grid, opts Options) (*grid.Grid, grid.Stats, error) {
	if err := validate(dem, opts); err != nil {
		return nil, grid.Stats{}, fmt.Errorf("FlowDirection: %w", err)
	}
	return scan(dem, opts, grid.Int32, 1, func(m *neighborhood.Matrix) float64 {
		e := m.Center()
		best, code := 0.0, NoFlow
		for _, d := range neighborhood.D8 {
			drop := (e - m.At(d.DX, d.DY)) / (d.Distance * 100)
			if drop > best {
				best, code = drop, d.Code
			}
		}
		return float64(code)
	})
}

// Compute runs the operator named by kind.
func Compute(kind Kind, dem *grid.Grid, opts Options) (*grid.Grid, grid.Stats, error) {
	switch kind {
	case KindSlope:
		return Slope(dem, opts)
	case KindAspect:
		return Aspect(dem, opts)
	case KindHillshade:
		return Hillshade(dem, opts)
	case KindCurvature:
		return Curvature(dem, opts)
	case KindRoughness:
		return Roughness(dem, opts)
	case KindTPI:
		return TPI(dem, opts)
	case KindTRI:
		return TRI(dem, opts)
	case KindFlowDirection:
		return FlowDirection(dem, opts)
	case KindFlowAccumulation:
		return FlowAccumulation(dem, opts)
	default:
		return nil, grid.Stats{}, fmt.Errorf("Compute(%v): %w", kind, ErrUnknownDerivative)
	}
}
