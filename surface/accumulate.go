package surface

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvraster/grid"
	"github.com/katalvlaran/lvraster/neighborhood"
)

// Accumulate returns, for every cell of a D8 flow-direction grid, the
// number of upstream cells whose flow passes through it. A cell draining
// off the grid or onto NoData ends its path there; NoFlow cells drain
// nowhere. NoData cells stay NoData.
//
// Cells are visited in topological order (Kahn): a cell is processed once
// every cell draining into it has been, then hands its total downstream.
//
// Returns ErrInvalidParameter for a code that is not a D8 direction and
// ErrFlowCycle when the directions loop.
//
// Complexity: O(W×H) time and memory.
func Accumulate(flowdir *grid.Grid, opts Options) (*grid.Grid, grid.Stats, error) {
	if err := validate(flowdir, opts); err != nil {
		return nil, grid.Stats{}, fmt.Errorf("Accumulate: %w", err)
	}
	n := flowdir.Len()
	down := make([]int, n)
	indeg := make([]int, n)
	valid := make([]bool, n)
	queue := make([]int, 0, n)

	total := 0
	for i := range down {
		down[i] = -1
		c, r := flowdir.Coordinate(i)
		v := flowdir.Value(c, r)
		if flowdir.IsNoData(v) {
			continue
		}
		valid[i] = true
		total++
		if v == NoFlow {
			continue
		}
		d, ok := neighborhood.DirectionByCode(int(v))
		if !ok || float64(int(v)) != v {
			return nil, grid.Stats{}, fmt.Errorf("Accumulate: cell (%d,%d) code %v: %w", c, r, v, ErrInvalidParameter)
		}
		nc, nr := c+d.DX, r+d.DY
		if !flowdir.Valid(nc, nr) {
			continue
		}
		j := nr*flowdir.Width() + nc
		down[i] = j
		indeg[j]++
	}
	for i, ok := range valid {
		if ok && indeg[i] == 0 {
			queue = append(queue, i)
		}
	}

	acc := make([]float64, n)
	for head := 0; head < len(queue); head++ {
		u := queue[head]
		j := down[u]
		if j < 0 {
			continue
		}
		acc[j] += acc[u] + 1
		if indeg[j]--; indeg[j] == 0 {
			queue = append(queue, j)
		}
	}
	if len(queue) != total {
		return nil, grid.Stats{}, fmt.Errorf("Accumulate: %d of %d cells unresolved: %w", total-len(queue), total, ErrFlowCycle)
	}

	out := flowdir.NewLike(grid.WithNoData(opts.NoData), grid.WithKind(grid.Float64), grid.WithFill(math.NaN()))
	var st grid.Stats
	for i, ok := range valid {
		if !ok {
			continue
		}
		c, r := flowdir.Coordinate(i)
		out.Put(c, r, acc[i])
		st.Add(acc[i])
	}
	out.Finalize(st)
	return out, st, nil
}

// FlowAccumulation runs FlowDirection over dem and then Accumulate.
func FlowAccumulation(dem *grid.Grid, opts Options) (*grid.Grid, grid.Stats, error) {
	dirs, _, err := FlowDirection(dem, opts)
	if err != nil {
		return nil, grid.Stats{}, fmt.Errorf("FlowAccumulation: %w", err)
	}
	out, st, err := Accumulate(dirs, opts)
	if err != nil {
		return nil, grid.Stats{}, fmt.Errorf("FlowAccumulation: %w", err)
	}
	return out, st, nil
}
