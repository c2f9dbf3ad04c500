package grid

import "math"

// InBounds reports whether (col,row) lies within the grid.
// Complexity: O(1).
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// WorldToGrid returns the cell containing (x,y).
//
//	col = floor((x - MinX) / cellX)
//	row = floor((MaxY - y) / cellY)
//
// Points left of or above the extent get negative indices rather than being
// truncated toward zero, so callers can test the result with InBounds.
func (g *Grid) WorldToGrid(x, y float64) (col, row int) {
	col = int(math.Floor((x - g.extent.MinX) / g.cellX))
	row = int(math.Floor((g.extent.MaxY - y) / g.cellY))
	return col, row
}

// GridToWorld returns the world coordinate of the centre of (col,row).
// WorldToGrid(GridToWorld(c, r)) == (c, r) for every cell; the reverse
// composition snaps a point to the centre of its cell.
func (g *Grid) GridToWorld(col, row int) (x, y float64) {
	x = g.extent.MinX + float64(col)*g.cellX + g.cellX/2
	y = g.extent.MaxY - (float64(row)*g.cellY + g.cellY/2)
	return x, y
}

// ContainsWorld reports whether (x,y) falls inside a cell of the grid.
func (g *Grid) ContainsWorld(x, y float64) bool {
	return g.InBounds(g.WorldToGrid(x, y))
}

// WorldBoundsToGridRect converts a world rectangle into the cell rectangle
// it touches, clipped to the grid. Negative origins and over-range extents
// are clipped, never wrapped; a disjoint extent yields an empty Rect.
func (g *Grid) WorldBoundsToGridRect(ext Extent) Rect {
	c0 := int(math.Floor((ext.MinX - g.extent.MinX) / g.cellX))
	c1 := int(math.Ceil((ext.MaxX - g.extent.MinX) / g.cellX))
	r0 := int(math.Floor((g.extent.MaxY - ext.MaxY) / g.cellY))
	r1 := int(math.Ceil((g.extent.MaxY - ext.MinY) / g.cellY))

	c0, c1 = clamp(c0, 0, g.cols), clamp(c1, 0, g.cols)
	r0, r1 = clamp(r0, 0, g.rows), clamp(r1, 0, g.rows)
	if c1 <= c0 || r1 <= r0 {
		return Rect{Col: c0, Row: r0}
	}
	return Rect{Col: c0, Row: r0, Width: c1 - c0, Height: r1 - r0}
}

// Bounds returns the Rect covering the whole grid.
func (g *Grid) Bounds() Rect {
	return Rect{Width: g.cols, Height: g.rows}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
