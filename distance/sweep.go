package distance

import (
	"math"

	"github.com/katalvlaran/lvraster/grid"
	"github.com/katalvlaran/lvraster/neighborhood"
)

// unreached marks cells no target has propagated to yet.
const unreached = math.MaxInt64

// cell is the per-cell record of one sweep: the integer offset to the
// nearest known target and its squared length.
type cell struct {
	d2     int64
	rx, ry int
}

// field is the (cols+2)×(rows+2) work buffer; the outer ring stays unreached.
type field struct {
	cols, rows int
	stride     int
	cells      []cell
}

func newField(mask *grid.Grid, isTarget func(float64) bool) (*field, int) {
	f := &field{cols: mask.Width(), rows: mask.Height(), stride: mask.Width() + 2}
	f.cells = make([]cell, f.stride*(f.rows+2))
	for i := range f.cells {
		f.cells[i].d2 = unreached
	}
	targets := 0
	for r := 0; r < f.rows; r++ {
		for c := 0; c < f.cols; c++ {
			if isTarget(mask.Value(c, r)) {
				f.cells[f.index(c, r)].d2 = 0
				targets++
			}
		}
	}
	return f, targets
}

// index maps grid (col,row) into the padded buffer.
func (f *field) index(col, row int) int {
	return (row+1)*f.stride + col + 1
}

// row returns the unpadded cells of one grid row.
func (f *field) row(r int) []cell {
	i := f.index(0, r)
	return f.cells[i : i+f.cols]
}

// relax updates the cell at i from each neighbour in dirs, keeping a
// candidate only when it is strictly closer.
func (f *field) relax(i int, dirs []neighborhood.Direction) {
	p := &f.cells[i]
	if p.d2 == 0 {
		return
	}
	for _, d := range dirs {
		n := f.cells[i+d.DY*f.stride+d.DX]
		if n.d2 == unreached {
			continue
		}
		rx, ry := n.rx+d.DX, n.ry+d.DY
		d2 := int64(rx)*int64(rx) + int64(ry)*int64(ry)
		if d2 < p.d2 {
			p.d2, p.rx, p.ry = d2, rx, ry
		}
	}
}

// sweep runs the forward and backward passes over mask and calls emit with
// each row as soon as the backward pass has finished it, bottom row first.
// It returns the number of target cells.
func sweep(mask *grid.Grid, isTarget func(float64) bool, emit func(row int, cells []cell)) int {
	f, targets := newField(mask, isTarget)
	forward, backward := neighborhood.D8[:4], neighborhood.D8[4:]

	if targets > 0 {
		for r := 0; r < f.rows; r++ {
			for c := 0; c < f.cols; c++ {
				f.relax(f.index(c, r), forward)
			}
		}
	}
	for r := f.rows - 1; r >= 0; r-- {
		if targets > 0 {
			for c := f.cols - 1; c >= 0; c-- {
				f.relax(f.index(c, r), backward)
			}
		}
		emit(r, f.row(r))
	}
	return targets
}
