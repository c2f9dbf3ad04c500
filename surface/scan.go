package surface

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvraster/grid"
	"github.com/katalvlaran/lvraster/neighborhood"
)

// cellFunc computes one output value from a focal window whose centre holds
// data. It returns NaN when the cell has no result.
type cellFunc func(m *neighborhood.Matrix) float64

// validate rejects a nil grid and non-positive scale options.
func validate(dem *grid.Grid, opts Options) error {
	if dem == nil {
		return fmt.Errorf("nil grid: %w", ErrInvalidParameter)
	}
	if !(opts.ZFactor > 0) || math.IsInf(opts.ZFactor, 0) {
		return fmt.Errorf("z-factor %v: %w", opts.ZFactor, ErrInvalidParameter)
	}
	if math.IsNaN(opts.NoData) {
		return fmt.Errorf("NoData is NaN: %w", ErrInvalidParameter)
	}
	return nil
}

// scan runs fn over every cell of dem and assembles the output grid.
// zFactor is the multiplier the sampler applies to window values.
//
// Stage 1 (Prepare): allocate an output of NaN cells and a shared sampler.
// Stage 2 (Execute): one goroutine per row band, each with its own window
// buffer and Stats; bands write disjoint rows.
// Stage 3 (Finalize): merge the band Stats and settle NaN to NoData.
func scan(dem *grid.Grid, opts Options, kind grid.PixelKind, zFactor float64, fn cellFunc) (*grid.Grid, grid.Stats, error) {
	s, err := neighborhood.New(dem, neighborhood.WithZFactor(zFactor))
	if err != nil {
		return nil, grid.Stats{}, err
	}
	out := dem.NewLike(grid.WithNoData(opts.NoData), grid.WithKind(kind), grid.WithFill(math.NaN()))

	workers := max(opts.Workers, 1)
	bands := grid.RowBands(dem.Width(), dem.Height(), workers)
	stats := make([]grid.Stats, len(bands))

	var eg errgroup.Group
	for i, band := range bands {
		eg.Go(func() error {
			m := s.NewMatrix()
			st := &stats[i]
			for r := band.Row; r < band.Row+band.Height; r++ {
				for c := 0; c < band.Width; c++ {
					s.SampleInto(c, r, &m)
					if m.CenterNoData {
						continue
					}
					v := fn(&m)
					if math.IsNaN(v) {
						continue
					}
					out.Put(c, r, v)
					st.Add(out.Value(c, r))
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, grid.Stats{}, err
	}

	var total grid.Stats
	for _, st := range stats {
		total.Merge(st)
	}
	out.Finalize(total)
	return out, total, nil
}
