package surface

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/lvraster/grid"
)

// Sentinel errors.
var (
	// ErrInvalidParameter indicates a nil input or a non-positive scale option.
	ErrInvalidParameter = errors.New("surface: invalid parameter")
	// ErrUnknownDerivative indicates an unsupported Kind or name.
	ErrUnknownDerivative = errors.New("surface: unknown derivative")
	// ErrFlowCycle indicates a flow-direction grid in which water circulates.
	ErrFlowCycle = errors.New("surface: flow directions form a cycle")
)

// FlatAspect is the aspect reported for cells with zero slope.
const FlatAspect = -1.0

// NoFlow is the D8 code for cells without a strictly downslope neighbour.
const NoFlow = 0

// Units selects how Slope reports its result.
type Units int

const (
	// Degrees reports slope as an angle in [0, 90).
	Degrees Units = iota
	// Percent reports slope as rise over run ×100; values above 100 are NoData.
	Percent
)

// Options configures the derivative operators.
//
// Fields:
//   - ZFactor: vertical-to-horizontal unit multiplier, applied to slope,
//     aspect, hillshade and curvature. Must be > 0.
//   - Units: Degrees or Percent for Slope.
//   - Azimuth: sun azimuth for Hillshade, compass degrees (0 = north, clockwise).
//   - Altitude: sun altitude for Hillshade, degrees above the horizon.
//   - Workers: number of concurrent row bands; values < 1 mean 1.
//   - NoData: sentinel written to cells without a result.
type Options struct {
	ZFactor  float64
	Units    Units
	Azimuth  float64
	Altitude float64
	Workers  int
	NoData   float64
}

// DefaultOptions returns ZFactor=1, Degrees, sun at azimuth 315° and
// altitude 45°, one worker and NoData = grid.DefaultNoData.
func DefaultOptions() Options {
	return Options{
		ZFactor:  1,
		Units:    Degrees,
		Azimuth:  315,
		Altitude: 45,
		Workers:  1,
		NoData:   grid.DefaultNoData,
	}
}

// Kind names a derivative operator.
type Kind int

const (
	KindSlope Kind = iota
	KindAspect
	KindHillshade
	KindCurvature
	KindRoughness
	KindTPI
	KindTRI
	KindFlowDirection
	KindFlowAccumulation
)

var kindNames = [...]string{
	KindSlope:            "slope",
	KindAspect:           "aspect",
	KindHillshade:        "hillshade",
	KindCurvature:        "curvature",
	KindRoughness:        "roughness",
	KindTPI:              "tpi",
	KindTRI:              "tri",
	KindFlowDirection:    "flowdir",
	KindFlowAccumulation: "flowacc",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds returns every supported Kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind maps a case-insensitive name ("slope", "flowdir", ...) to a Kind.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "d8", "flow-direction", "flowdirection":
		return KindFlowDirection, nil
	case "flow-accumulation", "flowaccumulation":
		return KindFlowAccumulation, nil
	}
	for i, s := range kindNames {
		if s == n {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("ParseKind(%q): %w", name, ErrUnknownDerivative)
}
