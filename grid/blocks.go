package grid

// DefaultBlockSize is the edge length of the square blocks Blocks produces
// when size is not positive.
const DefaultBlockSize = 256

// Blocks partitions a cols×rows raster into disjoint rectangles of at most
// size×size cells, in row-major order. The partition depends only on its
// arguments, so parallel drivers can assign blocks deterministically.
//
// Complexity: O(number of blocks).
func Blocks(cols, rows, size int) []Rect {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	if size <= 0 {
		size = DefaultBlockSize
	}
	nx, ny := (cols+size-1)/size, (rows+size-1)/size
	out := make([]Rect, 0, nx*ny)
	for r := 0; r < rows; r += size {
		h := min(size, rows-r)
		for c := 0; c < cols; c += size {
			out = append(out, Rect{Col: c, Row: r, Width: min(size, cols-c), Height: h})
		}
	}
	return out
}

// RowBands partitions rows into at most n contiguous full-width bands of
// near-equal height.
func RowBands(cols, rows, n int) []Rect {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if n > rows {
		n = rows
	}
	out := make([]Rect, 0, n)
	start := 0
	for i := 0; i < n; i++ {
		end := (i + 1) * rows / n
		out = append(out, Rect{Col: 0, Row: start, Width: cols, Height: end - start})
		start = end
	}
	return out
}
