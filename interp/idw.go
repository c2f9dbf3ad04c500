package interp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// RadiusMode selects how IDW picks its neighbours.
type RadiusMode int

const (
	// FixedRadius uses every sample within Radius.
	FixedRadius RadiusMode = iota
	// VariableRadius uses the K nearest samples.
	VariableRadius
)

// CapPolicy decides how K and MaxDistance combine in VariableRadius mode.
type CapPolicy int

const (
	// CountDominates ignores MaxDistance whenever K > 0.
	CountDominates CapPolicy = iota
	// DistanceDominates keeps only those of the K nearest within MaxDistance.
	DistanceDominates
)

// IDWOptions configures NewIDW.
//
// Fields:
//   - Power: distance exponent, > 0. Default 2.
//   - Mode: FixedRadius or VariableRadius. Default VariableRadius.
//   - Radius: FixedRadius search radius, > 0; +Inf means all samples.
//   - MinPoints: FixedRadius: if fewer samples fall inside Radius, the
//     MinPoints nearest are used instead. 0 disables the fallback.
//   - K: VariableRadius neighbour count. Default 12.
//   - MaxDistance: VariableRadius distance cap; 0 means none.
//   - CapPolicy: how K and MaxDistance interact.
type IDWOptions struct {
	Power       float64
	Mode        RadiusMode
	Radius      float64
	MinPoints   int
	K           int
	MaxDistance float64
	CapPolicy   CapPolicy
}

// DefaultIDWOptions returns power 2 over the 12 nearest samples.
func DefaultIDWOptions() IDWOptions {
	return IDWOptions{
		Power:  2,
		Mode:   VariableRadius,
		Radius: math.Inf(1),
		K:      12,
	}
}

func (o IDWOptions) validate() error {
	if !(o.Power > 0) || math.IsInf(o.Power, 0) {
		return fmt.Errorf("power %v: %w", o.Power, ErrInvalidParameter)
	}
	switch o.Mode {
	case FixedRadius:
		if !(o.Radius > 0) {
			return fmt.Errorf("radius %v: %w", o.Radius, ErrInvalidParameter)
		}
		if o.MinPoints < 0 {
			return fmt.Errorf("min points %d: %w", o.MinPoints, ErrInvalidParameter)
		}
	case VariableRadius:
		if o.K < 0 || math.IsNaN(o.MaxDistance) || o.MaxDistance < 0 {
			return fmt.Errorf("k %d, max distance %v: %w", o.K, o.MaxDistance, ErrInvalidParameter)
		}
		if o.K == 0 && o.MaxDistance == 0 {
			return fmt.Errorf("neither k nor max distance set: %w", ErrInvalidParameter)
		}
		if o.CapPolicy != CountDominates && o.CapPolicy != DistanceDominates {
			return fmt.Errorf("cap policy %d: %w", o.CapPolicy, ErrInvalidParameter)
		}
	default:
		return fmt.Errorf("radius mode %d: %w", o.Mode, ErrInvalidParameter)
	}
	return nil
}

// IDW is an inverse-distance-weighted interpolator:
//
//	f(p) = Σ wᵢ·zᵢ / Σ wᵢ,   wᵢ = dᵢ^-power
//
// over the neighbours chosen by IDWOptions. A query that coincides with a
// sample returns that sample's z.
type IDW struct {
	tree *kdtree.Tree
	opts IDWOptions
	n    int
}

// NewIDW indexes samples in a k-d tree.
//
// Returns ErrInvalidParameter for an empty or non-finite sample set or bad
// options. Complexity: O(n log n).
func NewIDW(samples []SamplePoint, opts IDWOptions) (*IDW, error) {
	if err := checkSamples(samples); err != nil {
		return nil, fmt.Errorf("NewIDW: %w", err)
	}
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("NewIDW: %w", err)
	}
	diagf("idw: %d samples, power=%g mode=%d k=%d", len(samples), opts.Power, opts.Mode, opts.K)
	return &IDW{tree: newTree(samples), opts: opts, n: len(samples)}, nil
}

// neighbours returns the samples that take part in the estimate at q.
func (w *IDW) neighbours(q node, buf []hit) []hit {
	o := w.opts
	switch o.Mode {
	case FixedRadius:
		if math.IsInf(o.Radius, 1) {
			return w.nearest(q, w.n, buf)
		}
		dk := kdtree.NewDistKeeper(o.Radius * o.Radius)
		w.tree.NearestSet(dk, q)
		buf = collect(dk.Heap, buf)
		if len(buf) < o.MinPoints {
			return w.nearest(q, o.MinPoints, buf[:0])
		}
		return buf
	default:
		if o.K == 0 {
			dk := kdtree.NewDistKeeper(o.MaxDistance * o.MaxDistance)
			w.tree.NearestSet(dk, q)
			return collect(dk.Heap, buf)
		}
		buf = w.nearest(q, o.K, buf)
		if o.CapPolicy == DistanceDominates && o.MaxDistance > 0 {
			cap2 := o.MaxDistance * o.MaxDistance
			kept := buf[:0]
			for _, h := range buf {
				if h.d2 <= cap2 {
					kept = append(kept, h)
				}
			}
			buf = kept
		}
		return buf
	}
}

func (w *IDW) nearest(q node, k int, buf []hit) []hit {
	nk := kdtree.NewNKeeper(k)
	w.tree.NearestSet(nk, q)
	return collect(nk.Heap, buf)
}

// Interpolate implements Interpolator. It returns (NoNeighbors, false) when
// no sample qualifies.
func (w *IDW) Interpolate(x, y float64) (float64, bool) {
	hits := w.neighbours(node{X: x, Y: y}, nil)
	if len(hits) == 0 {
		return NoNeighbors, false
	}
	// Weights are relative to the nearest hit: the largest is 1, so the
	// denominator never underflows.
	dmin2 := math.Inf(1)
	for _, h := range hits {
		if h.d2 == 0 {
			return h.z, true
		}
		dmin2 = math.Min(dmin2, h.d2)
	}
	var num, den float64
	for _, h := range hits {
		wt := math.Pow(dmin2/h.d2, w.opts.Power/2)
		num += wt * h.z
		den += wt
	}
	return num / den, true
}
