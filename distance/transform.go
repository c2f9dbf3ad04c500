package distance

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvraster/grid"
)

// Transform returns the Euclidean distance, in world units, from every cell
// of mask to its nearest target cell. The distance of an offset (rx, ry) in
// cells is hypot(rx·cellX, ry·cellY).
//
// Cells farther than opts.MaxDistance, and every cell of a mask without
// targets, are NoData. The returned Stats cover the valid output cells.
//
// Complexity: O(W×H) time and memory.
func Transform(mask *grid.Grid, opts Options) (*grid.Grid, grid.Stats, error) {
	if err := validate(mask, opts); err != nil {
		return nil, grid.Stats{}, fmt.Errorf("Transform: %w", err)
	}
	cx, cy := mask.CellSize()
	out := mask.NewLike(grid.WithNoData(opts.NoData), grid.WithKind(grid.Float64), grid.WithFill(math.NaN()))

	var st grid.Stats
	sweep(mask, opts.targetFunc(mask), func(row int, cells []cell) {
		for c, p := range cells {
			if p.d2 == unreached {
				continue
			}
			d := math.Hypot(float64(p.rx)*cx, float64(p.ry)*cy)
			if d > opts.MaxDistance {
				continue
			}
			out.Put(c, row, d)
			st.Add(d)
		}
	})
	out.Finalize(st)
	return out, st, nil
}

// Allocate returns, for every cell of mask, the mask value of its nearest
// target cell. The output keeps mask's pixel kind. Cells beyond
// opts.MaxDistance are NoData.
func Allocate(mask *grid.Grid, opts Options) (*grid.Grid, grid.Stats, error) {
	if err := validate(mask, opts); err != nil {
		return nil, grid.Stats{}, fmt.Errorf("Allocate: %w", err)
	}
	cx, cy := mask.CellSize()
	out := mask.NewLike(grid.WithNoData(opts.NoData), grid.WithFill(math.NaN()))

	var st grid.Stats
	sweep(mask, opts.targetFunc(mask), func(row int, cells []cell) {
		for c, p := range cells {
			if p.d2 == unreached {
				continue
			}
			if math.Hypot(float64(p.rx)*cx, float64(p.ry)*cy) > opts.MaxDistance {
				continue
			}
			out.Put(c, row, mask.Value(c+p.rx, row+p.ry))
			st.Add(out.Value(c, row))
		}
	})
	out.Finalize(st)
	return out, st, nil
}

// Point is a world-space feature location.
type Point struct {
	X, Y float64
}

// Rasterize burns points onto an Int32 grid over ext with square cells of
// size cellSize: occupied cells hold 1, the rest 0. Points outside ext are
// ignored.
func Rasterize(points []Point, ext grid.Extent, cellSize float64) (*grid.Grid, error) {
	mask, err := grid.New(ext, cellSize, cellSize, grid.WithKind(grid.Int32))
	if err != nil {
		return nil, fmt.Errorf("Rasterize: %w: %w", ErrInvalidParameter, err)
	}
	for _, p := range points {
		if !mask.ContainsWorld(p.X, p.Y) {
			continue
		}
		c, r := mask.WorldToGrid(p.X, p.Y)
		mask.Put(c, r, 1)
	}
	return mask, nil
}

// FromPoints rasterises points onto a grid over ext with square cells of
// size cellSize and returns the distance from every cell to the nearest
// occupied cell. Points outside ext are ignored. opts.IsTarget is not used.
func FromPoints(points []Point, ext grid.Extent, cellSize float64, opts Options) (*grid.Grid, grid.Stats, error) {
	mask, err := Rasterize(points, ext, cellSize)
	if err != nil {
		return nil, grid.Stats{}, fmt.Errorf("FromPoints: %w", err)
	}
	opts.IsTarget = nil
	out, st, err := Transform(mask, opts)
	if err != nil {
		return nil, grid.Stats{}, fmt.Errorf("FromPoints: %w", err)
	}
	return out, st, nil
}
