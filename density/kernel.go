package density

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Shape is a radial kernel profile k(u), u being the distance from the
// centre normalised to [0, 1).
type Shape int

const (
	Binary       Shape = iota // 1
	Cosine                    // cos(πu/2)
	Epanechnikov              // 1 - u²
	Quartic                   // (1 - u²)², Silverman's biweight
	Gaussian                  // exp(-(3u)²/2), truncated at the radius
	Triangular                // 1 - u
	Tricube                   // (1 - u³)³
	Triweight                 // (1 - u²)³
)

var shapeNames = [...]string{
	Binary:       "binary",
	Cosine:       "cosine",
	Epanechnikov: "epanechnikov",
	Quartic:      "quartic",
	Gaussian:     "gaussian",
	Triangular:   "triangular",
	Tricube:      "tricube",
	Triweight:    "triweight",
}

// String implements fmt.Stringer.
func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

// Shapes returns every supported Shape.
func Shapes() []Shape {
	out := make([]Shape, len(shapeNames))
	for i := range out {
		out[i] = Shape(i)
	}
	return out
}

// ParseShape maps a case-insensitive name to a Shape. "quadratic" and
// "biweight" are accepted as aliases of Epanechnikov and Quartic.
func ParseShape(name string) (Shape, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "quadratic":
		return Epanechnikov, nil
	case "biweight":
		return Quartic, nil
	}
	for i, s := range shapeNames {
		if s == n {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("ParseShape(%q): %w", name, ErrUnknownKernel)
}

func (s Shape) profile(u float64) float64 {
	switch s {
	case Binary:
		return 1
	case Cosine:
		return math.Cos(math.Pi / 2 * u)
	case Epanechnikov:
		return 1 - u*u
	case Quartic:
		v := 1 - u*u
		return v * v
	case Gaussian:
		return math.Exp(-4.5 * u * u)
	case Triangular:
		return 1 - u
	case Tricube:
		v := 1 - u*u*u
		return v * v * v
	case Triweight:
		v := 1 - u*u
		return v * v * v
	default:
		return 0
	}
}

// Kernel is an immutable (2r+1)×(2r+1) weight matrix centred on its middle
// cell.
type Kernel struct {
	shape     Shape
	radius    int
	circular  bool
	size      int
	weights   []float64
	total     float64
	footprint int
}

// NewKernel builds a kernel of the given shape and radius in cells.
//
// The normalised distance of offset (dx,dy) is u = d/(r+1), where d is the
// Euclidean length for a circular kernel and max(|dx|,|dy|) otherwise, so
// every cell of the footprint has a positive weight. A circular kernel
// zeroes cells with Euclidean length > r.
func NewKernel(shape Shape, radius int, circular bool) (*Kernel, error) {
	if shape < 0 || int(shape) >= len(shapeNames) {
		return nil, fmt.Errorf("NewKernel: %v: %w", shape, ErrUnknownKernel)
	}
	if radius < 0 {
		return nil, fmt.Errorf("NewKernel: radius %d: %w", radius, ErrInvalidParameter)
	}
	size := 2*radius + 1
	k := &Kernel{
		shape:    shape,
		radius:   radius,
		circular: circular,
		size:     size,
		weights:  make([]float64, size*size),
	}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			var d float64
			if circular {
				d = math.Hypot(float64(dx), float64(dy))
				if d > float64(radius) {
					continue
				}
			} else {
				d = float64(max(abs(dx), abs(dy)))
			}
			w := shape.profile(d / float64(radius+1))
			if w <= 0 {
				continue
			}
			k.weights[(dy+radius)*size+dx+radius] = w
			k.footprint++
		}
	}
	k.total = floats.Sum(k.weights)
	return k, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Shape returns the kernel profile.
func (k *Kernel) Shape() Shape { return k.shape }

// Radius returns the radius in cells.
func (k *Kernel) Radius() int { return k.radius }

// Size returns 2·Radius+1.
func (k *Kernel) Size() int { return k.size }

// Circular reports whether corner cells beyond the radius are excluded.
func (k *Kernel) Circular() bool { return k.circular }

// Weight returns the raw weight at offset (dx,dy) from the centre, 0 outside
// the kernel.
func (k *Kernel) Weight(dx, dy int) float64 {
	if abs(dx) > k.radius || abs(dy) > k.radius {
		return 0
	}
	return k.weights[(dy+k.radius)*k.size+dx+k.radius]
}

// Total returns Σw over the kernel.
func (k *Kernel) Total() float64 { return k.total }

// Footprint returns the number of cells with a positive weight.
func (k *Kernel) Footprint() int { return k.footprint }
