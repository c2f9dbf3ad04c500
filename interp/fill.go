package interp

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvraster/grid"
)

// FillOptions configures Fill.
//
// Fields:
//   - BlockSize: edge of the square work blocks, in cells.
//   - Workers: maximum concurrent blocks; values < 1 mean 1.
//   - NoData: sentinel for cells the interpolator has no value for.
//   - Kind: pixel kind of the output grid.
type FillOptions struct {
	BlockSize int
	Workers   int
	NoData    float64
	Kind      grid.PixelKind
}

// DefaultFillOptions returns grid.DefaultBlockSize blocks, one worker per
// CPU, grid.DefaultNoData and Float64 output.
func DefaultFillOptions() FillOptions {
	return FillOptions{
		BlockSize: grid.DefaultBlockSize,
		Workers:   runtime.GOMAXPROCS(0),
		NoData:    grid.DefaultNoData,
		Kind:      grid.Float64,
	}
}

// Fill evaluates ip at the centre of every cell of a new grid over ext with
// cell sizes cellX × cellY.
//
// Stage 1 (Prepare): resolve the grid and its block partition.
// Stage 2 (Execute): run blocks on at most Workers goroutines. A block only
// writes its own cells and keeps its own Stats. No new block starts once
// ctx is cancelled.
// Stage 3 (Finalize): join, merge the block Stats and settle the NoData
// sentinel against the data range.
//
// Cells for which ip reports ok == false, or returns NaN, are NoData.
// Returns ErrInvalidParameter for a nil interpolator or invalid geometry, or
// ctx.Err() when cancelled.
func Fill(ctx context.Context, ip Interpolator, ext grid.Extent, cellX, cellY float64, opts FillOptions) (*grid.Grid, grid.Stats, error) {
	if ip == nil {
		return nil, grid.Stats{}, fmt.Errorf("Fill: nil interpolator: %w", ErrInvalidParameter)
	}
	if math.IsNaN(opts.NoData) {
		return nil, grid.Stats{}, fmt.Errorf("Fill: NoData is NaN: %w", ErrInvalidParameter)
	}
	out, err := grid.New(ext, cellX, cellY,
		grid.WithNoData(opts.NoData), grid.WithKind(opts.Kind), grid.WithFill(math.NaN()))
	if err != nil {
		return nil, grid.Stats{}, fmt.Errorf("Fill: %w: %w", ErrInvalidParameter, err)
	}

	blocks := grid.Blocks(out.Width(), out.Height(), opts.BlockSize)
	stats := make([]grid.Stats, len(blocks))
	workers := max(opts.Workers, 1)
	diagf("fill: %dx%d cells, %d blocks, %d workers", out.Width(), out.Height(), len(blocks), workers)
	start := time.Now()

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, b := range blocks {
		if gctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fillBlock(ip, out.View(b), &stats[i])
			tracef("fill: block %d/%d %+v done", i+1, len(blocks), b)
			return nil
		})
	}
	err = eg.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		opsf("fill: stopped after %v: %v", time.Since(start), err)
		return nil, grid.Stats{}, fmt.Errorf("Fill: %w", err)
	}

	var total grid.Stats
	for _, st := range stats {
		total.Merge(st)
	}
	nd := out.Finalize(total)
	diagf("fill: %d valid cells in %v, range [%g, %g], NoData %g",
		total.Count, time.Since(start), total.Min, total.Max, nd)
	return out, total, nil
}

// fillBlock evaluates ip over every cell of v.
func fillBlock(ip Interpolator, v grid.View, st *grid.Stats) {
	for r := 0; r < v.Height(); r++ {
		for c := 0; c < v.Width(); c++ {
			x, y := v.GridToWorld(c, r)
			z, ok := ip.Interpolate(x, y)
			if !ok || math.IsNaN(z) {
				continue
			}
			st.Add(v.Put(c, r, z))
		}
	}
}
