package neighborhood_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvraster/grid"
	"github.com/katalvlaran/lvraster/neighborhood"
)

func mustGrid(t *testing.T, rows [][]float64) *grid.Grid {
	t.Helper()
	ext := grid.NewExtent(0, 0, float64(len(rows[0])), float64(len(rows)), "")
	g, err := grid.FromRows(rows, ext, grid.WithNoData(-9999))
	require.NoError(t, err)
	return g
}

// TestNew_Errors verifies invalid windows and z-factors are rejected.
func TestNew_Errors(t *testing.T) {
	g := mustGrid(t, [][]float64{{1}})
	_, err := neighborhood.New(nil)
	assert.ErrorIs(t, err, neighborhood.ErrNilGrid)
	_, err = neighborhood.New(g, neighborhood.WithSize(2, 3))
	assert.ErrorIs(t, err, neighborhood.ErrBadWindow)
	_, err = neighborhood.New(g, neighborhood.WithSize(3, -1))
	assert.ErrorIs(t, err, neighborhood.ErrBadWindow)
	_, err = neighborhood.New(g, neighborhood.WithZFactor(0))
	assert.ErrorIs(t, err, neighborhood.ErrBadZFactor)
	_, err = neighborhood.New(g, neighborhood.WithZFactor(math.NaN()))
	assert.ErrorIs(t, err, neighborhood.ErrBadZFactor)
}

// TestSample_Interior reads a full interior window without substitution.
func TestSample_Interior(t *testing.T) {
	g := mustGrid(t, [][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})
	s, err := neighborhood.New(g)
	require.NoError(t, err)

	m := s.Sample(1, 1)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, m.Values)
	assert.False(t, m.HadNoData)
	assert.False(t, m.CenterNoData)
	assert.Equal(t, 3.0, m.At(1, -1), "NE")
	assert.Equal(t, 5.0, m.Center())
	assert.Equal(t, 1.0, m.Min())
	assert.Equal(t, 9.0, m.Max())
}

// TestSample_EdgeInheritsCenter checks out-of-bounds and NoData neighbours
// take the centre value.
func TestSample_EdgeInheritsCenter(t *testing.T) {
	g := mustGrid(t, [][]float64{
		{1, -9999},
		{4, 5},
	})
	s, err := neighborhood.New(g)
	require.NoError(t, err)

	m := s.Sample(0, 0)
	assert.True(t, m.HadNoData)
	assert.False(t, m.CenterNoData)
	assert.Equal(t, []float64{
		1, 1, 1,
		1, 1, 1,
		1, 4, 5,
	}, m.Values)
}

// TestSample_CenterNoData verifies the window is returned raw when the focal
// cell is NoData.
func TestSample_CenterNoData(t *testing.T) {
	g := mustGrid(t, [][]float64{
		{1, 2, 3},
		{4, -9999, 6},
		{7, 8, 9},
	})
	s, err := neighborhood.New(g, neighborhood.WithZFactor(2))
	require.NoError(t, err)

	m := s.Sample(1, 1)
	assert.True(t, m.CenterNoData)
	assert.True(t, math.IsNaN(m.Center()))
	assert.Equal(t, 1.0, m.At(-1, -1), "z-factor not applied to a short-circuited window")
}

// TestSampleInto_ZFactorAndReuse checks scaling and buffer reuse on a 5×3 window.
func TestSampleInto_ZFactorAndReuse(t *testing.T) {
	g := mustGrid(t, [][]float64{
		{1, 2, 3, 4, 5},
		{6, 7, 8, 9, 10},
		{11, 12, 13, 14, 15},
	})
	s, err := neighborhood.New(g, neighborhood.WithSize(5, 3), neighborhood.WithZFactor(0.5))
	require.NoError(t, err)

	m := s.NewMatrix()
	buf := &m.Values[0]
	s.SampleInto(2, 1, &m)
	assert.Same(t, buf, &m.Values[0], "buffer must be reused")
	assert.Equal(t, 4.0, m.Center())
	assert.Equal(t, 0.5, m.At(-2, -1))
	assert.Equal(t, 7.5, m.At(2, 1))

	s.SampleInto(0, 0, &m)
	assert.True(t, m.HadNoData)
	assert.Equal(t, 0.5, m.At(-2, -1), "missing corner inherits centre 1×0.5")
}

// TestD8_CodesAndOrder verifies the scan order and D8 encoding.
func TestD8_CodesAndOrder(t *testing.T) {
	var names []string
	var codes []int
	for _, d := range neighborhood.D8 {
		names = append(names, d.Name)
		codes = append(codes, d.Code)
	}
	assert.Equal(t, []string{"W", "NW", "N", "NE", "E", "SE", "S", "SW"}, names)
	assert.Equal(t, []int{16, 32, 64, 128, 1, 2, 4, 8}, codes)

	d, ok := neighborhood.DirectionByCode(2)
	require.True(t, ok)
	assert.Equal(t, [2]int{1, 1}, [2]int{d.DX, d.DY})
	assert.InDelta(t, math.Sqrt2, d.Distance, 1e-15)
	_, ok = neighborhood.DirectionByCode(3)
	assert.False(t, ok)
}
