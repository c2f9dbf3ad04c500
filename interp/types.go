package interp

import (
	"fmt"
	"math"
)

// NoNeighbors is returned by IDW.Interpolate when no sample qualifies.
const NoNeighbors = -math.MaxFloat64

// SamplePoint is one scattered observation.
type SamplePoint struct {
	X, Y, Z float64
}

// Interpolator evaluates a surface at a world point. ok is false when the
// point is outside the interpolator's domain; v is then a strategy-specific
// sentinel and must not be used as data.
type Interpolator interface {
	Interpolate(x, y float64) (v float64, ok bool)
}

// CleanSamples returns the samples whose coordinates and z are all finite.
// The input slice is not modified.
func CleanSamples(samples []SamplePoint) []SamplePoint {
	out := make([]SamplePoint, 0, len(samples))
	for _, s := range samples {
		if finite(s.X) && finite(s.Y) && finite(s.Z) {
			out = append(out, s)
		}
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func checkSamples(samples []SamplePoint) error {
	if len(samples) == 0 {
		return fmt.Errorf("no samples: %w", ErrInvalidParameter)
	}
	for i, s := range samples {
		if !finite(s.X) || !finite(s.Y) || !finite(s.Z) {
			return fmt.Errorf("sample %d (%v, %v, %v) is not finite: %w", i, s.X, s.Y, s.Z, ErrInvalidParameter)
		}
	}
	return nil
}
