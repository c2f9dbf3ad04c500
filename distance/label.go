package distance

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvraster/grid"
	"github.com/katalvlaran/lvraster/neighborhood"
)

// offsets returns the neighbour steps joined under conn.
func (conn Connectivity) offsets() [][2]int {
	var out [][2]int
	for _, d := range neighborhood.D8 {
		if conn == Conn4 && d.DX != 0 && d.DY != 0 {
			continue
		}
		out = append(out, [2]int{d.DX, d.DY})
	}
	return out
}

// Label numbers the connected regions of target cells in mask. Regions are
// labelled 1..n in the row-major order of their first cell; non-target
// cells are NoData. The output pixel kind is Int32.
//
// Returns the label grid and the number of regions n.
//
// Complexity: O(W×H×d) time, O(W×H) memory.
func Label(mask *grid.Grid, conn Connectivity, opts Options) (*grid.Grid, int, error) {
	if err := validate(mask, opts); err != nil {
		return nil, 0, fmt.Errorf("Label: %w", err)
	}
	if conn != Conn4 && conn != Conn8 {
		return nil, 0, fmt.Errorf("Label: connectivity %d: %w", conn, ErrInvalidParameter)
	}
	isTarget := opts.targetFunc(mask)
	out := mask.NewLike(grid.WithNoData(opts.NoData), grid.WithKind(grid.Int32), grid.WithFill(math.NaN()))
	steps := conn.offsets()

	var (
		st    grid.Stats
		n     int
		queue []int
	)
	for r := 0; r < mask.Height(); r++ {
		for c := 0; c < mask.Width(); c++ {
			if !isTarget(mask.Value(c, r)) || !math.IsNaN(out.Value(c, r)) {
				continue
			}
			// breadth-first flood from (c,r)
			n++
			id := float64(n)
			out.Put(c, r, id)
			queue = append(queue[:0], r*mask.Width()+c)
			for qi := 0; qi < len(queue); qi++ {
				uc, ur := mask.Coordinate(queue[qi])
				st.Add(id)
				for _, s := range steps {
					vc, vr := uc+s[0], ur+s[1]
					if !mask.InBounds(vc, vr) || !math.IsNaN(out.Value(vc, vr)) || !isTarget(mask.Value(vc, vr)) {
						continue
					}
					out.Put(vc, vr, id)
					queue = append(queue, vr*mask.Width()+vc)
				}
			}
		}
	}
	out.Finalize(st)
	return out, n, nil
}
