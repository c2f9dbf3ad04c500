package grid

import "fmt"

// View is an offset+stride window onto a Grid's buffer. Coordinates passed
// to a View are relative to its Rect origin. A View never outlives the
// operation that created it and is the only way workers touch a shared
// output grid, so disjoint Views never alias.
type View struct {
	g    *Grid
	rect Rect
}

// View returns a window over r clipped to the grid bounds.
func (g *Grid) View(r Rect) View {
	c0, r0 := clamp(r.Col, 0, g.cols), clamp(r.Row, 0, g.rows)
	c1, r1 := clamp(r.Col+r.Width, 0, g.cols), clamp(r.Row+r.Height, 0, g.rows)
	if c1 < c0 {
		c1 = c0
	}
	if r1 < r0 {
		r1 = r0
	}
	return View{g: g, rect: Rect{Col: c0, Row: r0, Width: c1 - c0, Height: r1 - r0}}
}

// Rect returns the window in grid coordinates.
func (v View) Rect() Rect { return v.rect }

// Width returns the window width in cells.
func (v View) Width() int { return v.rect.Width }

// Height returns the window height in cells.
func (v View) Height() int { return v.rect.Height }

// Grid returns the grid the view is over.
func (v View) Grid() *Grid { return v.g }

func (v View) offset(col, row int) (int, error) {
	if col < 0 || col >= v.rect.Width || row < 0 || row >= v.rect.Height {
		return 0, fmt.Errorf("View(%d,%d): %w", col, row, ErrOutOfRange)
	}
	return (v.rect.Row+row)*v.g.cols + v.rect.Col + col, nil
}

// At reads the cell at window-relative (col,row).
func (v View) At(col, row int) (float64, error) {
	i, err := v.offset(col, row)
	if err != nil {
		return 0, err
	}
	return v.g.data[i], nil
}

// Set writes the cell at window-relative (col,row), quantized.
func (v View) Set(col, row int, val float64) error {
	i, err := v.offset(col, row)
	if err != nil {
		return err
	}
	v.g.data[i] = v.g.kind.Quantize(val)
	return nil
}

// Put writes the quantized value at window-relative (col,row) without a
// bounds check and returns what was stored. Callers iterate the window's
// own Width and Height.
func (v View) Put(col, row int, val float64) float64 {
	q := v.g.kind.Quantize(val)
	v.g.data[(v.rect.Row+row)*v.g.cols+v.rect.Col+col] = q
	return q
}

// GridToWorld returns the world centre of window-relative (col,row).
func (v View) GridToWorld(col, row int) (x, y float64) {
	return v.g.GridToWorld(v.rect.Col+col, v.rect.Row+row)
}

// RowCursor walks a grid's rows top to bottom.
//
//	cur := g.Cursor()
//	for cur.Next() {
//		vals := cur.Values()
//		...
//	}
type RowCursor struct {
	g   *Grid
	row int
}

// Cursor returns a RowCursor positioned before the first row.
func (g *Grid) Cursor() *RowCursor {
	return &RowCursor{g: g, row: -1}
}

// Next advances to the next row and reports whether one exists.
func (c *RowCursor) Next() bool {
	if c.row+1 >= c.g.rows {
		c.row = c.g.rows
		return false
	}
	c.row++
	return true
}

// Row returns the current row index.
func (c *RowCursor) Row() int { return c.row }

// Values returns the current row backed by the grid buffer.
// Callers must treat it as read-only; use Write to store values.
func (c *RowCursor) Values() []float64 {
	i := c.row * c.g.cols
	return c.g.data[i : i+c.g.cols : i+c.g.cols]
}

// Write quantizes vals into the current row. len(vals) must equal Width.
func (c *RowCursor) Write(vals []float64) error {
	if len(vals) != c.g.cols {
		return fmt.Errorf("RowCursor.Write: %d values for %d columns: %w", len(vals), c.g.cols, ErrBadShape)
	}
	dst := c.Values()
	for i, v := range vals {
		dst[i] = c.g.kind.Quantize(v)
	}
	return nil
}
