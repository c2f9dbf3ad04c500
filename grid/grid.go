package grid

import (
	"fmt"
	"math"
	"strings"
)

// Grid is a row-major raster of Width×Height cells covering an Extent.
// Row 0 is the top (MaxY) edge; column 0 the left (MinX) edge.
// The extent is always exactly MinX + Width·cellX by MaxY - Height·cellY.
type Grid struct {
	cols, rows   int
	cellX, cellY float64
	extent       Extent
	noData       float64
	kind         PixelKind
	data         []float64
}

// New resolves a grid from an extent and cell sizes.
//
// Columns = round(width/cellX) and rows = round(height/cellY), each at least
// one. The extent is then re-derived from its upper-left corner so it is
// spanned exactly by whole cells.
//
// Returns ErrBadCellSize or ErrBadExtent on invalid input.
// Complexity: O(W×H) time and memory.
func New(ext Extent, cellX, cellY float64, opts ...Option) (*Grid, error) {
	if err := validateCellSize(cellX, cellY); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	if err := ext.Validate(); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	cols := int(math.Round(ext.Width() / cellX))
	rows := int(math.Round(ext.Height() / cellY))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return build(ext, cols, rows, cellX, cellY, gatherOptions(opts)), nil
}

// NewWithShape builds a grid with an explicit number of columns and rows,
// deriving the cell sizes from the extent.
func NewWithShape(ext Extent, cols, rows int, opts ...Option) (*Grid, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("NewWithShape: %dx%d: %w", cols, rows, ErrBadShape)
	}
	if err := ext.Validate(); err != nil {
		return nil, fmt.Errorf("NewWithShape: %w", err)
	}
	cellX, cellY := ext.Width()/float64(cols), ext.Height()/float64(rows)
	if err := validateCellSize(cellX, cellY); err != nil {
		return nil, fmt.Errorf("NewWithShape: %w", err)
	}
	return build(ext, cols, rows, cellX, cellY, gatherOptions(opts)), nil
}

// FromRows copies a rectangular [][]float64 (values[row][col], row 0 at the
// top) into a new grid over ext. NaN input values are stored as NoData.
func FromRows(values [][]float64, ext Extent, opts ...Option) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	for _, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	g, err := NewWithShape(ext, w, h, opts...)
	if err != nil {
		return nil, fmt.Errorf("FromRows: %w", err)
	}
	for r, row := range values {
		for c, v := range row {
			if math.IsNaN(v) {
				v = g.noData
			}
			g.Put(c, r, v)
		}
	}
	return g, nil
}

func validateCellSize(cellX, cellY float64) error {
	for _, v := range [...]float64{cellX, cellY} {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("cell size %v: %w", v, ErrBadCellSize)
		}
	}
	return nil
}

func build(ext Extent, cols, rows int, cellX, cellY float64, o options) *Grid {
	g := &Grid{
		cols:  cols,
		rows:  rows,
		cellX: cellX,
		cellY: cellY,
		extent: Extent{
			MinX: ext.MinX,
			MaxY: ext.MaxY,
			MaxX: ext.MinX + float64(cols)*cellX,
			MinY: ext.MaxY - float64(rows)*cellY,
			CRS:  ext.CRS,
		},
		noData: o.noData,
		kind:   o.kind,
		data:   make([]float64, cols*rows),
	}
	if o.hasFill {
		v := o.kind.Quantize(o.fill)
		for i := range g.data {
			g.data[i] = v
		}
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.cols }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.rows }

// Len returns Width·Height.
func (g *Grid) Len() int { return len(g.data) }

// CellSize returns the world-space size of one cell along X and Y.
func (g *Grid) CellSize() (x, y float64) { return g.cellX, g.cellY }

// Extent returns the exact world rectangle covered by the grid.
func (g *Grid) Extent() Extent { return g.extent }

// NoData returns the NoData sentinel.
func (g *Grid) NoData() float64 { return g.noData }

// Kind returns the pixel numeric kind.
func (g *Grid) Kind() PixelKind { return g.kind }

// IsNoData reports whether v is the NoData sentinel or NaN.
func (g *Grid) IsNoData(v float64) bool {
	return math.IsNaN(v) || v == g.noData
}

// index maps (col,row) to the row-major offset row·Width + col.
func (g *Grid) index(col, row int) int {
	return row*g.cols + col
}

// Coordinate converts a row-major offset back to (col,row).
func (g *Grid) Coordinate(idx int) (col, row int) {
	return idx % g.cols, idx / g.cols
}

// At returns the value at (col,row) or ErrOutOfRange.
func (g *Grid) At(col, row int) (float64, error) {
	if !g.InBounds(col, row) {
		return 0, fmt.Errorf("Grid.At(%d,%d): %w", col, row, ErrOutOfRange)
	}
	return g.data[g.index(col, row)], nil
}

// Set quantizes v to the grid's kind and stores it at (col,row).
func (g *Grid) Set(col, row int, v float64) error {
	if !g.InBounds(col, row) {
		return fmt.Errorf("Grid.Set(%d,%d): %w", col, row, ErrOutOfRange)
	}
	g.data[g.index(col, row)] = g.kind.Quantize(v)
	return nil
}

// Value is the unchecked form of At for hot loops that already bound-check.
// It panics on an out-of-range address.
func (g *Grid) Value(col, row int) float64 {
	return g.data[g.index(col, row)]
}

// Put is the unchecked form of Set.
func (g *Grid) Put(col, row int, v float64) {
	g.data[g.index(col, row)] = g.kind.Quantize(v)
}

// Valid reports whether (col,row) is inside the grid and holds data.
func (g *Grid) Valid(col, row int) bool {
	return g.InBounds(col, row) && !g.IsNoData(g.data[g.index(col, row)])
}

// NewLike returns an empty grid with g's geometry, CRS, NoData and kind,
// every cell set to NoData. Options override the copied settings.
func (g *Grid) NewLike(opts ...Option) *Grid {
	o := options{noData: g.noData, kind: g.kind}
	for _, fn := range opts {
		fn(&o)
	}
	if !o.hasFill {
		o.fill, o.hasFill = o.noData, true
	}
	return build(g.extent, g.cols, g.rows, g.cellX, g.cellY, o)
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	c := *g
	c.data = make([]float64, len(g.data))
	copy(c.data, g.data)
	return &c
}

// Values returns a copy of the row-major buffer.
func (g *Grid) Values() []float64 {
	out := make([]float64, len(g.data))
	copy(out, g.data)
	return out
}

// String renders the values row by row, NoData as "_".
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.rows; r++ {
		sb.WriteByte('[')
		for c := 0; c < g.cols; c++ {
			if c > 0 {
				sb.WriteString(", ")
			}
			v := g.data[g.index(c, r)]
			if g.IsNoData(v) {
				sb.WriteByte('_')
			} else {
				fmt.Fprintf(&sb, "%g", v)
			}
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
