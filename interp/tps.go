package interp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// TPSOptions configures NewTPS.
//
// Regularization adds λ to the kernel diagonal, trading exactness for
// smoothness. 0 gives the exact interpolant.
type TPSOptions struct {
	Regularization float64
}

// maxCondition is the largest LU condition estimate accepted for a solve.
const maxCondition = 1e14

// TPS is a thin-plate spline
//
//	f(p) = Σ aᵢ·U(|p - pᵢ|) + c₀ + c₁·x + c₂·y,   U(r) = r²·ln r
//
// through every sample. Coordinates are centred on the sample mean and
// divided by the larger sample span before the system is built; the
// interpolant is invariant under that similarity.
type TPS struct {
	xs, ys []float64
	a      []float64
	c      [3]float64
	cx, cy float64
	scale  float64
}

// tpsKernel returns r²·ln r for a squared distance r2, with U(0) = 0.
func tpsKernel(r2 float64) float64 {
	if r2 == 0 {
		return 0
	}
	return 0.5 * r2 * math.Log(r2)
}

// NewTPS solves the (n+3)×(n+3) system
//
//	| K + λI  P | |a|   |z|
//	| Pᵀ      0 | |c| = |0|
//
// with Kᵢⱼ = U(|pᵢ - pⱼ|) and rows of P = (1, xᵢ, yᵢ), by LU factorisation.
//
// Returns ErrInvalidParameter for an empty or non-finite sample set or a
// negative λ, and ErrInterpolation when two samples share coordinates or the
// system is singular or ill-conditioned.
//
// Complexity: O(n³) time, O(n²) memory.
func NewTPS(samples []SamplePoint, opts TPSOptions) (*TPS, error) {
	if err := checkSamples(samples); err != nil {
		return nil, fmt.Errorf("NewTPS: %w", err)
	}
	if !(opts.Regularization >= 0) || math.IsInf(opts.Regularization, 0) {
		return nil, fmt.Errorf("NewTPS: regularization %v: %w", opts.Regularization, ErrInvalidParameter)
	}
	n := len(samples)
	t := &TPS{xs: make([]float64, n), ys: make([]float64, n), scale: 1}
	zs := make([]float64, n)
	for i, s := range samples {
		t.xs[i], t.ys[i], zs[i] = s.X, s.Y, s.Z
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if t.xs[i] == t.xs[j] && t.ys[i] == t.ys[j] {
				return nil, fmt.Errorf("NewTPS: samples %d and %d share (%v, %v): %w", i, j, t.xs[i], t.ys[i], ErrInterpolation)
			}
		}
	}

	t.cx, t.cy = floats.Sum(t.xs)/float64(n), floats.Sum(t.ys)/float64(n)
	if span := math.Max(floats.Max(t.xs)-floats.Min(t.xs), floats.Max(t.ys)-floats.Min(t.ys)); span > 0 {
		t.scale = span
	}
	floats.AddConst(-t.cx, t.xs)
	floats.Scale(1/t.scale, t.xs)
	floats.AddConst(-t.cy, t.ys)
	floats.Scale(1/t.scale, t.ys)

	m := n + 3
	l := mat.NewDense(m, m, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx, dy := t.xs[i]-t.xs[j], t.ys[i]-t.ys[j]
			u := tpsKernel(dx*dx + dy*dy)
			l.Set(i, j, u)
			l.Set(j, i, u)
		}
		l.Set(i, i, opts.Regularization)
		l.Set(i, n, 1)
		l.Set(i, n+1, t.xs[i])
		l.Set(i, n+2, t.ys[i])
		l.Set(n, i, 1)
		l.Set(n+1, i, t.xs[i])
		l.Set(n+2, i, t.ys[i])
	}
	v := mat.NewVecDense(m, nil)
	for i, z := range zs {
		v.SetVec(i, z)
	}

	var lu mat.LU
	lu.Factorize(l)
	if c := lu.Cond(); math.IsInf(c, 1) || c > maxCondition {
		opsf("tps: %d samples, condition %.3g rejected", n, c)
		return nil, fmt.Errorf("NewTPS: condition number %.3g: %w", c, ErrInterpolation)
	}
	var sol mat.VecDense
	if err := lu.SolveVecTo(&sol, false, v); err != nil {
		opsf("tps: %d samples: %v", n, err)
		return nil, fmt.Errorf("NewTPS: %v: %w", err, ErrInterpolation)
	}

	t.a = make([]float64, n)
	for i := range t.a {
		t.a[i] = sol.AtVec(i)
	}
	t.c = [3]float64{sol.AtVec(n), sol.AtVec(n + 1), sol.AtVec(n + 2)}
	diagf("tps: %d samples solved, condition %.3g", n, lu.Cond())
	return t, nil
}

// Interpolate implements Interpolator. The spline is defined everywhere, so
// ok is false only for non-finite queries.
func (t *TPS) Interpolate(x, y float64) (float64, bool) {
	if !finite(x) || !finite(y) {
		return math.NaN(), false
	}
	px, py := (x-t.cx)/t.scale, (y-t.cy)/t.scale
	f := t.c[0] + t.c[1]*px + t.c[2]*py
	for i, a := range t.a {
		dx, dy := px-t.xs[i], py-t.ys[i]
		f += a * tpsKernel(dx*dx+dy*dy)
	}
	return f, true
}
