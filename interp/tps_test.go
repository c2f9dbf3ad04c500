package interp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvraster/interp"
)

func bumpy(x, y float64) float64 {
	return 20*math.Sin(x/15)*math.Cos(y/25) + 0.05*x*y
}

// TestTPS_Exactness checks the spline passes through every sample.
func TestTPS_Exactness(t *testing.T) {
	samples := scatter(3, 40, 100, bumpy)
	tps, err := interp.NewTPS(samples, interp.TPSOptions{})
	require.NoError(t, err)
	for i, s := range samples {
		v, ok := tps.Interpolate(s.X, s.Y)
		require.True(t, ok)
		require.InDeltaf(t, s.Z, v, 1e-7, "sample %d", i)
	}
}

// TestTPS_ReproducesPlanes checks a planar field is reproduced everywhere,
// not just at the samples.
func TestTPS_ReproducesPlanes(t *testing.T) {
	plane := func(x, y float64) float64 { return 3 - 0.5*x + 2*y }
	samples := scatter(4, 12, 50, plane)
	tps, err := interp.NewTPS(samples, interp.TPSOptions{})
	require.NoError(t, err)
	for _, q := range scatter(5, 30, 80, plane) {
		v, ok := tps.Interpolate(q.X, q.Y)
		require.True(t, ok)
		assert.InDelta(t, q.Z, v, 1e-6)
	}
}

// TestTPS_TranslationInvariant checks far-from-origin coordinates give the
// same surface as the same samples near the origin.
func TestTPS_TranslationInvariant(t *testing.T) {
	near := scatter(6, 25, 100, bumpy)
	far := make([]interp.SamplePoint, len(near))
	const ox, oy = 5e5, 4e6
	for i, s := range near {
		far[i] = interp.SamplePoint{X: s.X + ox, Y: s.Y + oy, Z: s.Z}
	}
	a, err := interp.NewTPS(near, interp.TPSOptions{})
	require.NoError(t, err)
	b, err := interp.NewTPS(far, interp.TPSOptions{})
	require.NoError(t, err)

	for _, q := range scatter(7, 20, 100, bumpy) {
		va, _ := a.Interpolate(q.X, q.Y)
		vb, _ := b.Interpolate(q.X+ox, q.Y+oy)
		assert.InDelta(t, va, vb, 1e-6)
	}
}

// TestTPS_Regularization smooths instead of interpolating.
func TestTPS_Regularization(t *testing.T) {
	samples := scatter(8, 30, 100, bumpy)
	tps, err := interp.NewTPS(samples, interp.TPSOptions{Regularization: 0.5})
	require.NoError(t, err)
	var maxErr float64
	for _, s := range samples {
		v, ok := tps.Interpolate(s.X, s.Y)
		require.True(t, ok)
		require.False(t, math.IsNaN(v))
		maxErr = math.Max(maxErr, math.Abs(v-s.Z))
	}
	assert.Greater(t, maxErr, 1e-6)
}

// TestTPS_Errors covers invalid input and degenerate systems.
func TestTPS_Errors(t *testing.T) {
	_, err := interp.NewTPS(nil, interp.TPSOptions{})
	assert.ErrorIs(t, err, interp.ErrInvalidParameter)

	_, err = interp.NewTPS(scatter(9, 5, 10, bumpy), interp.TPSOptions{Regularization: -1})
	assert.ErrorIs(t, err, interp.ErrInvalidParameter)

	dup := []interp.SamplePoint{{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 2}, {X: 0, Y: 1, Z: 3}, {X: 1, Y: 0, Z: 4}}
	_, err = interp.NewTPS(dup, interp.TPSOptions{})
	assert.ErrorIs(t, err, interp.ErrInterpolation)

	line := []interp.SamplePoint{{X: 0, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 2}, {X: 2, Y: 2, Z: 3}, {X: 3, Y: 3, Z: 5}}
	_, err = interp.NewTPS(line, interp.TPSOptions{})
	assert.ErrorIs(t, err, interp.ErrInterpolation)

	_, err = interp.NewTPS([]interp.SamplePoint{{X: 4, Y: 4, Z: 4}}, interp.TPSOptions{})
	assert.ErrorIs(t, err, interp.ErrInterpolation)
}
