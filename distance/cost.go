package distance

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/lvraster/grid"
	"github.com/katalvlaran/lvraster/neighborhood"
)

// Cost returns the least accumulated cost of travelling from any target
// cell of mask to every other cell across the friction surface cost.
//
// Moving between 8-connected neighbours u and v costs the step length in
// world units times the mean friction (cost[u]+cost[v])/2. NoData cost cells
// are impassable. Target cells start at 0. Cells that cannot be reached, or
// whose accumulated cost exceeds opts.MaxDistance, are NoData.
//
// Returns ErrInvalidParameter when cost is nil or shaped differently from
// mask, and ErrNegativeCost when a valid cost cell is negative.
//
// Complexity: O(N log N) time, O(N) memory, N = W×H.
func Cost(mask, cost *grid.Grid, opts Options) (*grid.Grid, grid.Stats, error) {
	if err := validate(mask, opts); err != nil {
		return nil, grid.Stats{}, fmt.Errorf("Cost: %w", err)
	}
	if cost == nil {
		return nil, grid.Stats{}, fmt.Errorf("Cost: nil cost surface: %w", ErrInvalidParameter)
	}
	if cost.Width() != mask.Width() || cost.Height() != mask.Height() {
		return nil, grid.Stats{}, fmt.Errorf("Cost: cost %dx%d, mask %dx%d: %w",
			cost.Width(), cost.Height(), mask.Width(), mask.Height(), ErrInvalidParameter)
	}
	// Fail fast on negative friction before any work is done.
	for i, v := range cost.Values() {
		if !cost.IsNoData(v) && v < 0 {
			c, r := cost.Coordinate(i)
			return nil, grid.Stats{}, fmt.Errorf("Cost: cell (%d,%d) = %v: %w", c, r, v, ErrNegativeCost)
		}
	}

	cx, cy := mask.CellSize()
	r := &costRunner{
		cost: cost,
		max:  opts.MaxDistance,
		acc:  make([]float64, mask.Len()),
		done: make([]bool, mask.Len()),
	}
	for i := range r.step {
		d := neighborhood.D8[i]
		r.step[i] = math.Hypot(float64(d.DX)*cx, float64(d.DY)*cy)
	}
	r.init(mask, opts.targetFunc(mask))
	r.process()

	out := mask.NewLike(grid.WithNoData(opts.NoData), grid.WithKind(grid.Float64), grid.WithFill(math.NaN()))
	var st grid.Stats
	for i, ok := range r.done {
		if !ok {
			continue
		}
		c, row := mask.Coordinate(i)
		out.Put(c, row, r.acc[i])
		st.Add(r.acc[i])
	}
	out.Finalize(st)
	return out, st, nil
}

// costRunner holds the mutable state of one Cost run.
type costRunner struct {
	cost *grid.Grid
	max  float64
	step [8]float64 // world length of each D8 step
	acc  []float64  // best accumulated cost so far
	done []bool     // acc is final
	pq   cellPQ
}

// init seeds every passable target cell at cost 0.
func (r *costRunner) init(mask *grid.Grid, isTarget func(float64) bool) {
	for i := range r.acc {
		r.acc[i] = math.Inf(1)
	}
	for i, v := range mask.Values() {
		c, row := mask.Coordinate(i)
		if !isTarget(v) || !r.cost.Valid(c, row) {
			continue
		}
		r.acc[i] = 0
		r.pq = append(r.pq, costItem{idx: i})
	}
	heap.Init(&r.pq)
}

// process pops cells in order of accumulated cost and relaxes their
// neighbours. Stale heap entries are skipped; the loop stops once the
// cheapest remaining cell is beyond the cap.
func (r *costRunner) process() {
	for r.pq.Len() > 0 {
		it := heap.Pop(&r.pq).(costItem)
		if r.done[it.idx] {
			continue
		}
		if it.acc > r.max {
			break
		}
		r.done[it.idx] = true
		r.relax(it.idx)
	}
}

func (r *costRunner) relax(u int) {
	c, row := r.cost.Coordinate(u)
	cu := r.cost.Value(c, row)
	for i, d := range neighborhood.D8 {
		nc, nr := c+d.DX, row+d.DY
		if !r.cost.Valid(nc, nr) {
			continue
		}
		v := nr*r.cost.Width() + nc
		if r.done[v] {
			continue
		}
		next := r.acc[u] + r.step[i]*(cu+r.cost.Value(nc, nr))/2
		if next > r.max || next >= r.acc[v] {
			continue
		}
		r.acc[v] = next
		heap.Push(&r.pq, costItem{idx: v, acc: next})
	}
}

// costItem is a cell offset and the accumulated cost it was pushed with.
type costItem struct {
	idx int
	acc float64
}

// cellPQ is a min-heap of costItem ordered by acc, with lazy decrease-key.
type cellPQ []costItem

func (pq cellPQ) Len() int            { return len(pq) }
func (pq cellPQ) Less(i, j int) bool  { return pq[i].acc < pq[j].acc }
func (pq cellPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *cellPQ) Push(x interface{}) { *pq = append(*pq, x.(costItem)) }
func (pq *cellPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]
	return it
}
