package distance

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvraster/grid"
)

// Options configures Transform, Allocate and FromPoints.
//
// Fields:
//   - MaxDistance: cells farther than this (world units) become NoData.
//     math.Inf(1) keeps every reached cell; 0 keeps only the targets.
//   - IsTarget: reports whether a valid mask value is a target. Nil means
//     any non-zero value. NoData cells are never targets.
//   - NoData: sentinel for unreached and out-of-range cells.
type Options struct {
	MaxDistance float64
	IsTarget    func(v float64) bool
	NoData      float64
}

// DefaultOptions returns an unbounded MaxDistance, non-zero targets and
// NoData = grid.DefaultNoData.
func DefaultOptions() Options {
	return Options{
		MaxDistance: math.Inf(1),
		NoData:      grid.DefaultNoData,
	}
}

// Connectivity selects which neighbours join a region in Label.
type Connectivity int

const (
	// Conn4 joins orthogonal neighbours: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 also joins diagonal neighbours.
	Conn8
)

func validate(mask *grid.Grid, opts Options) error {
	if mask == nil {
		return fmt.Errorf("nil mask: %w", ErrInvalidParameter)
	}
	if math.IsNaN(opts.MaxDistance) || opts.MaxDistance < 0 {
		return fmt.Errorf("max distance %v: %w", opts.MaxDistance, ErrInvalidParameter)
	}
	if math.IsNaN(opts.NoData) {
		return fmt.Errorf("NoData is NaN: %w", ErrInvalidParameter)
	}
	return nil
}

// targetFunc binds the target predicate to mask's NoData sentinel.
func (o Options) targetFunc(mask *grid.Grid) func(v float64) bool {
	is := o.IsTarget
	if is == nil {
		is = func(v float64) bool { return v != 0 }
	}
	return func(v float64) bool {
		return !mask.IsNoData(v) && is(v)
	}
}
