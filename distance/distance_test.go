package distance_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvraster/distance"
	"github.com/katalvlaran/lvraster/grid"
)

// maskWith builds a cols×rows mask with cell sizes (cx,cy) and value 1 at
// each of the given (col,row) targets.
func maskWith(t *testing.T, cols, rows int, cx, cy float64, targets ...[2]int) *grid.Grid {
	t.Helper()
	ext := grid.NewExtent(0, 0, float64(cols)*cx, float64(rows)*cy, "")
	g, err := grid.NewWithShape(ext, cols, rows)
	require.NoError(t, err)
	for _, p := range targets {
		require.NoError(t, g.Set(p[0], p[1], 1))
	}
	return g
}

// bruteForce returns the smallest world distance from (c,r) to any target.
func bruteForce(c, r int, cx, cy float64, targets [][2]int) float64 {
	best := math.Inf(1)
	for _, p := range targets {
		best = math.Min(best, math.Hypot(float64(p[0]-c)*cx, float64(p[1]-r)*cy))
	}
	return best
}

//----------------------------------------------------------------------------//
// Transform
//----------------------------------------------------------------------------//

// TestTransform_SingleTargetExact checks that with one target every cell
// holds exactly sqrt(dx²+dy²)·cellSize, wherever the target sits.
func TestTransform_SingleTargetExact(t *testing.T) {
	const n, cell = 9, 2.5
	for _, target := range [][2]int{{0, 0}, {4, 4}, {8, 3}, {2, 8}} {
		mask := maskWith(t, n, n, cell, cell, target)
		out, st, err := distance.Transform(mask, distance.DefaultOptions())
		require.NoError(t, err)
		for r := 0; r < n; r++ {
			for c := 0; c < n; c++ {
				dx, dy := float64(c-target[0]), float64(r-target[1])
				want := math.Sqrt(dx*dx+dy*dy) * cell
				require.InDeltaf(t, want, out.Value(c, r), 1e-9, "target %v cell (%d,%d)", target, c, r)
			}
		}
		assert.Equal(t, n*n, st.Count)
		assert.Equal(t, 0.0, st.Min)
	}
}

// TestTransform_NonSquareCells checks offsets are scaled per axis.
func TestTransform_NonSquareCells(t *testing.T) {
	mask := maskWith(t, 5, 4, 1, 2, [2]int{0, 0})
	out, _, err := distance.Transform(mask, distance.DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, math.Hypot(3, 6), out.Value(3, 3), 1e-12)
	assert.InDelta(t, 4.0, out.Value(4, 0), 1e-12)
	assert.InDelta(t, 4.0, out.Value(0, 2), 1e-12)
}

// TestTransform_NoTargets verifies a mask without targets yields an
// all-NoData grid rather than an error.
func TestTransform_NoTargets(t *testing.T) {
	mask := maskWith(t, 6, 4, 1, 1)
	out, st, err := distance.Transform(mask, distance.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, st.Empty())
	for _, v := range out.Values() {
		require.Equal(t, out.NoData(), v)
	}
}

// TestTransform_MaxDistance checks cells beyond the cap become NoData.
func TestTransform_MaxDistance(t *testing.T) {
	mask := maskWith(t, 7, 1, 1, 1, [2]int{0, 0})
	opts := distance.DefaultOptions()
	opts.MaxDistance = 3
	out, st, err := distance.Transform(mask, opts)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 3, -9999, -9999, -9999}, out.Values())
	assert.Equal(t, 4, st.Count)
	assert.Equal(t, 3.0, st.Max)
}

// TestTransform_MultiTargetBounds compares a random mask against brute force.
// The propagated offset always points at a real target, so the result is
// never below the true distance, and it stays within one cell of it.
func TestTransform_MultiTargetBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	const cols, rows = 40, 30
	var targets [][2]int
	for i := 0; i < 25; i++ {
		targets = append(targets, [2]int{rng.IntN(cols), rng.IntN(rows)})
	}
	mask := maskWith(t, cols, rows, 1, 1, targets...)
	out, _, err := distance.Transform(mask, distance.DefaultOptions())
	require.NoError(t, err)

	exact := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			want := bruteForce(c, r, 1, 1, targets)
			got := out.Value(c, r)
			require.GreaterOrEqualf(t, got, want-1e-9, "cell (%d,%d)", c, r)
			require.LessOrEqualf(t, got, want+1, "cell (%d,%d)", c, r)
			if math.Abs(got-want) < 1e-9 {
				exact++
			}
		}
	}
	assert.Greater(t, exact, cols*rows*9/10)
}

// TestTransform_TargetPredicate checks custom targets and that NoData cells
// never count as targets.
func TestTransform_TargetPredicate(t *testing.T) {
	mask, err := grid.FromRows([][]float64{{5, 0, math.NaN(), 0, 2}}, grid.NewExtent(0, 0, 5, 1, ""))
	require.NoError(t, err)

	out, _, err := distance.Transform(mask, distance.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 1, 0}, out.Values())

	opts := distance.DefaultOptions()
	opts.IsTarget = func(v float64) bool { return v > 3 }
	out, _, err = distance.Transform(mask, opts)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, out.Values())

	opts.IsTarget = func(v float64) bool { return v == mask.NoData() }
	out, st, err := distance.Transform(mask, opts)
	require.NoError(t, err)
	assert.True(t, st.Empty())
	assert.Equal(t, out.NoData(), out.Value(2, 0))
}

// TestTransform_InputNotModified checks the mask is read-only.
func TestTransform_InputNotModified(t *testing.T) {
	mask := maskWith(t, 5, 5, 1, 1, [2]int{2, 2})
	before := mask.Values()
	_, _, err := distance.Transform(mask, distance.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, before, mask.Values())
}

//----------------------------------------------------------------------------//
// Allocate, FromPoints
//----------------------------------------------------------------------------//

// TestAllocate_NearestValue checks every cell takes its nearest target's value.
func TestAllocate_NearestValue(t *testing.T) {
	mask, err := grid.FromRows([][]float64{
		{3, 0, 0, 0, 0, 0, 0, 7},
		{0, 0, 0, 0, 0, 0, 0, 0},
	}, grid.NewExtent(0, 0, 8, 2, ""))
	require.NoError(t, err)

	out, st, err := distance.Allocate(mask, distance.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 3, 3, 3, 7, 7, 7, 7, 3, 3, 3, 3, 7, 7, 7, 7}, out.Values())
	assert.Equal(t, 16, st.Count)

	opts := distance.DefaultOptions()
	opts.MaxDistance = 1
	out, _, err = distance.Allocate(mask, opts)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 3, -9999, -9999, -9999, -9999, 7, 7}, out.Values()[:8])
}

// TestFromPoints checks rasterisation and distances to point features.
func TestFromPoints(t *testing.T) {
	ext := grid.NewExtent(0, 0, 5, 5, "")
	pts := []distance.Point{{X: 0.5, Y: 4.5}, {X: 100, Y: 100}}
	out, _, err := distance.FromPoints(pts, ext, 1, distance.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.Value(0, 0))
	assert.InDelta(t, 5.0, out.Value(3, 4), 1e-12)

	out, st, err := distance.FromPoints(nil, ext, 1, distance.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, st.Empty())
	assert.Equal(t, out.NoData(), out.Value(2, 2))

	_, _, err = distance.FromPoints(pts, ext, 0, distance.DefaultOptions())
	assert.ErrorIs(t, err, distance.ErrInvalidParameter)
	assert.ErrorIs(t, err, grid.ErrBadCellSize)
}

//----------------------------------------------------------------------------//
// Label
//----------------------------------------------------------------------------//

// TestLabel_Conn4 labels two orthogonally connected islands in scan order.
//
//	0 1 1 0
//	1 1 0 0
//	0 0 1 1
func TestLabel_Conn4(t *testing.T) {
	mask, err := grid.FromRows([][]float64{
		{0, 1, 1, 0},
		{1, 1, 0, 0},
		{0, 0, 1, 1},
	}, grid.NewExtent(0, 0, 4, 3, ""))
	require.NoError(t, err)

	out, n, err := distance.Label(mask, distance.Conn4, distance.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	nd := out.NoData()
	assert.Equal(t, []float64{
		nd, 1, 1, nd,
		1, 1, nd, nd,
		nd, nd, 2, 2,
	}, out.Values())
	assert.Equal(t, grid.Int32, out.Kind())
}

// TestLabel_Conn8 joins cells touching only at corners.
func TestLabel_Conn8(t *testing.T) {
	mask, err := grid.FromRows([][]float64{
		{1, 0, 0, 0, 1},
		{0, 1, 0, 1, 0},
		{0, 0, 1, 0, 0},
		{0, 1, 0, 1, 0},
		{1, 0, 0, 0, 1},
	}, grid.NewExtent(0, 0, 5, 5, ""))
	require.NoError(t, err)

	_, n, err := distance.Label(mask, distance.Conn8, distance.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, n, err = distance.Label(mask, distance.Conn4, distance.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 9, n)
}

//----------------------------------------------------------------------------//
// Errors
//----------------------------------------------------------------------------//

// TestErrors verifies parameter validation across operations.
func TestErrors(t *testing.T) {
	mask := maskWith(t, 3, 3, 1, 1, [2]int{1, 1})
	_, _, err := distance.Transform(nil, distance.DefaultOptions())
	assert.ErrorIs(t, err, distance.ErrInvalidParameter)

	opts := distance.DefaultOptions()
	opts.MaxDistance = -1
	_, _, err = distance.Allocate(mask, opts)
	assert.ErrorIs(t, err, distance.ErrInvalidParameter)

	opts.MaxDistance = math.NaN()
	_, _, err = distance.Transform(mask, opts)
	assert.ErrorIs(t, err, distance.ErrInvalidParameter)

	_, _, err = distance.Label(mask, distance.Connectivity(5), distance.DefaultOptions())
	assert.ErrorIs(t, err, distance.ErrInvalidParameter)
}
