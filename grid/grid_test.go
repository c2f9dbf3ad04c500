package grid_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvraster/grid"
)

//----------------------------------------------------------------------------//
// Construction
//----------------------------------------------------------------------------//

// TestNew_ResolvesShapeAndExtent checks that columns/rows are rounded and the
// extent is re-derived from the upper-left corner.
func TestNew_ResolvesShapeAndExtent(t *testing.T) {
	ext := grid.NewExtent(0, 0, 10, 5, "EPSG:3857")
	g, err := grid.New(ext, 3, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, g.Width(), "round(10/3)")
	assert.Equal(t, 2, g.Height(), "round(5/3)")
	want := grid.Extent{MinX: 0, MinY: -1, MaxX: 9, MaxY: 5, CRS: "EPSG:3857"}
	assert.Equal(t, want, g.Extent())
	assert.Equal(t, grid.DefaultNoData, g.NoData())
}

// TestNew_Errors verifies invalid cell sizes and extents are rejected.
func TestNew_Errors(t *testing.T) {
	good := grid.NewExtent(0, 0, 10, 10, "")
	cases := []struct {
		name         string
		ext          grid.Extent
		cellX, cellY float64
		err          error
	}{
		{"ZeroCell", good, 0, 1, grid.ErrBadCellSize},
		{"NegativeCell", good, 1, -2, grid.ErrBadCellSize},
		{"NaNCell", good, math.NaN(), 1, grid.ErrBadCellSize},
		{"InfCell", good, math.Inf(1), 1, grid.ErrBadCellSize},
		{"InvertedX", grid.NewExtent(5, 0, 1, 10, ""), 1, 1, grid.ErrBadExtent},
		{"NaNBound", grid.NewExtent(0, math.NaN(), 1, 10, ""), 1, 1, grid.ErrBadExtent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.New(tc.ext, tc.cellX, tc.cellY)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

// TestNew_DegenerateExtentGetsOneCell ensures a zero-width extent still
// resolves to a positive shape.
func TestNew_DegenerateExtentGetsOneCell(t *testing.T) {
	g, err := grid.New(grid.NewExtent(2, 2, 2, 2, ""), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Width())
	assert.Equal(t, 1, g.Height())
	assert.Equal(t, 3.0, g.Extent().MaxX)
	assert.Equal(t, 1.0, g.Extent().MinY)
}

// TestFromRows_Errors verifies that FromRows rejects empty or ragged input.
func TestFromRows_Errors(t *testing.T) {
	ext := grid.NewExtent(0, 0, 2, 2, "")
	_, err := grid.FromRows(nil, ext)
	assert.ErrorIs(t, err, grid.ErrEmptyGrid)
	_, err = grid.FromRows([][]float64{{}}, ext)
	assert.ErrorIs(t, err, grid.ErrEmptyGrid)
	_, err = grid.FromRows([][]float64{{1, 2}, {3}}, ext)
	assert.ErrorIs(t, err, grid.ErrNonRectangular)
	_, err = grid.NewWithShape(ext, 0, 2)
	assert.ErrorIs(t, err, grid.ErrBadShape)
}

// TestFromRows_LayoutAndNaN checks row 0 is the top row and NaN becomes NoData.
func TestFromRows_LayoutAndNaN(t *testing.T) {
	g, err := grid.FromRows([][]float64{
		{1, 2, 3},
		{4, math.NaN(), 6},
	}, grid.NewExtent(0, 0, 3, 2, ""), grid.WithNoData(-1))
	require.NoError(t, err)

	v, err := g.At(2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
	assert.Equal(t, -1.0, g.Value(1, 1))
	assert.False(t, g.Valid(1, 1))
	assert.True(t, g.Valid(0, 1))
	assert.Equal(t, "[1, 2, 3]\n[4, _, 6]\n", g.String())
}

// TestAtSet_OutOfRange verifies bounds checking on the checked accessors.
func TestAtSet_OutOfRange(t *testing.T) {
	g, err := grid.New(grid.NewExtent(0, 0, 2, 2, ""), 1, 1)
	require.NoError(t, err)
	_, err = g.At(2, 0)
	assert.ErrorIs(t, err, grid.ErrOutOfRange)
	assert.ErrorIs(t, g.Set(0, -1, 1), grid.ErrOutOfRange)
}

// TestKind_Quantizes verifies values are stored at the declared precision.
func TestKind_Quantizes(t *testing.T) {
	g, err := grid.New(grid.NewExtent(0, 0, 3, 1, ""), 1, 1, grid.WithKind(grid.Int32))
	require.NoError(t, err)
	require.NoError(t, g.Set(0, 0, 2.5))
	require.NoError(t, g.Set(1, 0, -2.5))
	require.NoError(t, g.Set(2, 0, 1e12))
	assert.Equal(t, []float64{3, -3, math.MaxInt32}, g.Values())

	assert.Equal(t, float64(float32(0.1)), grid.Float32.Quantize(0.1))
	assert.True(t, math.IsNaN(grid.Int32.Quantize(math.NaN())))
}

// TestNewLike_CloneIndependence checks NewLike copies geometry and fills with
// NoData, and Clone does not share storage.
func TestNewLike_CloneIndependence(t *testing.T) {
	g, err := grid.New(grid.NewExtent(0, 0, 2, 2, "x"), 1, 1, grid.WithFill(7), grid.WithNoData(-5))
	require.NoError(t, err)

	like := g.NewLike()
	assert.Equal(t, g.Extent(), like.Extent())
	assert.Equal(t, []float64{-5, -5, -5, -5}, like.Values())

	c := g.Clone()
	require.NoError(t, c.Set(0, 0, 1))
	assert.Equal(t, 7.0, g.Value(0, 0), "clone writes must not leak")
}

//----------------------------------------------------------------------------//
// Views and cursors
//----------------------------------------------------------------------------//

// TestView_RelativeAddressing verifies that Views translate window coordinates.
func TestView_RelativeAddressing(t *testing.T) {
	g, err := grid.New(grid.NewExtent(0, 0, 4, 4, ""), 1, 1)
	require.NoError(t, err)
	v := g.View(grid.Rect{Col: 1, Row: 2, Width: 5, Height: 5})
	assert.Equal(t, grid.Rect{Col: 1, Row: 2, Width: 3, Height: 2}, v.Rect(), "clipped")

	require.NoError(t, v.Set(0, 0, 9))
	assert.Equal(t, 9.0, g.Value(1, 2))
	_, err = v.At(3, 0)
	assert.ErrorIs(t, err, grid.ErrOutOfRange)

	x, y := v.GridToWorld(0, 0)
	assert.Equal(t, 1.5, x)
	assert.Equal(t, 1.5, y)
}

// TestView_PutQuantizes checks the unchecked writer translates by the window
// origin and returns the stored, quantized value.
func TestView_PutQuantizes(t *testing.T) {
	g, err := grid.New(grid.NewExtent(0, 0, 4, 4, ""), 1, 1, grid.WithKind(grid.Int32))
	require.NoError(t, err)
	v := g.View(grid.Rect{Col: 2, Row: 1, Width: 2, Height: 3})

	assert.Equal(t, 3.0, v.Put(1, 2, 2.6))
	assert.Equal(t, 3.0, g.Value(3, 3))
	got, err := v.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)
	assert.True(t, math.IsNaN(v.Put(0, 0, math.NaN())))
}

// TestCursor_WalksRows verifies sequential row access and writes.
func TestCursor_WalksRows(t *testing.T) {
	g, err := grid.New(grid.NewExtent(0, 0, 2, 3, ""), 1, 1)
	require.NoError(t, err)
	cur := g.Cursor()
	var rows []int
	for cur.Next() {
		rows = append(rows, cur.Row())
		require.NoError(t, cur.Write([]float64{float64(cur.Row()), float64(cur.Row()) + 0.5}))
	}
	assert.Equal(t, []int{0, 1, 2}, rows)
	assert.False(t, cur.Next())
	if diff := cmp.Diff([]float64{0, 0.5, 1, 1.5, 2, 2.5}, g.Values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	cur = g.Cursor()
	require.True(t, cur.Next())
	assert.ErrorIs(t, cur.Write([]float64{1}), grid.ErrBadShape)
}

//----------------------------------------------------------------------------//
// Stats, NoData resolution, blocks
//----------------------------------------------------------------------------//

// TestStats_AddMerge checks accumulation and order-independent merging.
func TestStats_AddMerge(t *testing.T) {
	var a, b grid.Stats
	for _, v := range []float64{3, -1, math.NaN(), 4} {
		a.Add(v)
	}
	b.Add(10)
	assert.Equal(t, grid.Stats{Min: -1, Max: 4, Sum: 6, Count: 3}, a)

	ab, ba := a, b
	ab.Merge(b)
	ba.Merge(a)
	assert.Equal(t, ab, ba)
	assert.Equal(t, 4.0, ab.Mean())

	var empty grid.Stats
	assert.True(t, empty.Empty())
	assert.True(t, math.IsNaN(empty.Mean()))
}

// TestResolveNoData_Nudges verifies sentinel disambiguation at min and max.
func TestResolveNoData_Nudges(t *testing.T) {
	s := grid.Stats{Min: -9999, Max: 10, Count: 2}
	assert.Equal(t, -10000.0, grid.ResolveNoData(s, -9999))
	s = grid.Stats{Min: 0, Max: 255, Count: 2}
	assert.Equal(t, 256.0, grid.ResolveNoData(s, 255))
	assert.Equal(t, -9999.0, grid.ResolveNoData(s, -9999))
	assert.Equal(t, 5.0, grid.ResolveNoData(grid.Stats{}, 5))
}

// TestFinalize_RewritesNaN checks NaN cells take the resolved sentinel.
func TestFinalize_RewritesNaN(t *testing.T) {
	g, err := grid.FromRows([][]float64{{0, 1}}, grid.NewExtent(0, 0, 2, 1, ""), grid.WithNoData(0))
	require.NoError(t, err)
	require.NoError(t, g.Set(0, 0, math.NaN()))
	nd := g.Finalize(grid.Stats{Min: 0, Max: 1, Count: 2})
	assert.Equal(t, -1.0, nd)
	assert.Equal(t, []float64{-1, 1}, g.Values())
	assert.Equal(t, -1.0, g.NoData())
}

// TestBlocks_CoverExactlyOnce verifies the partition is disjoint and complete.
func TestBlocks_CoverExactlyOnce(t *testing.T) {
	const cols, rows = 37, 23
	for _, size := range []int{1, 5, 16, 64, 0} {
		seen := make([]int, cols*rows)
		for _, b := range grid.Blocks(cols, rows, size) {
			for r := b.Row; r < b.Row+b.Height; r++ {
				for c := b.Col; c < b.Col+b.Width; c++ {
					seen[r*cols+c]++
				}
			}
		}
		for i, n := range seen {
			require.Equalf(t, 1, n, "size=%d cell %d covered %d times", size, i, n)
		}
	}
	assert.Len(t, grid.Blocks(10, 10, 5), 4)
	assert.Nil(t, grid.Blocks(0, 10, 5))
}

// TestRowBands_Partition verifies row bands are contiguous and complete.
func TestRowBands_Partition(t *testing.T) {
	bands := grid.RowBands(4, 10, 3)
	require.Len(t, bands, 3)
	next := 0
	for _, b := range bands {
		assert.Equal(t, next, b.Row)
		assert.Equal(t, 4, b.Width)
		next += b.Height
	}
	assert.Equal(t, 10, next)
	assert.Len(t, grid.RowBands(4, 2, 8), 2)
}
