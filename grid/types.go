package grid

import (
	"fmt"
	"math"
)

// DefaultNoData is the sentinel used when no WithNoData option is given.
const DefaultNoData = -9999.0

// Extent is a world-space rectangle with an opaque reference-system tag.
// The tag is carried through every operation untouched.
type Extent struct {
	MinX, MinY float64
	MaxX, MaxY float64
	CRS        string
}

// NewExtent returns an Extent with the given bounds and CRS tag.
func NewExtent(minX, minY, maxX, maxY float64, crs string) Extent {
	return Extent{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY, CRS: crs}
}

// Width returns MaxX - MinX.
func (e Extent) Width() float64 { return e.MaxX - e.MinX }

// Height returns MaxY - MinY.
func (e Extent) Height() float64 { return e.MaxY - e.MinY }

// Validate reports ErrBadExtent when a bound is not finite or max < min.
func (e Extent) Validate() error {
	for _, v := range [...]float64{e.MinX, e.MinY, e.MaxX, e.MaxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("Extent.Validate: non-finite bound %v: %w", v, ErrBadExtent)
		}
	}
	if e.MaxX < e.MinX || e.MaxY < e.MinY {
		return fmt.Errorf("Extent.Validate: max < min in %v: %w", e, ErrBadExtent)
	}
	return nil
}

// Contains reports whether (x,y) lies inside e. The min edges are inclusive,
// the max edges exclusive, matching the half-open cells of a Grid.
func (e Extent) Contains(x, y float64) bool {
	return x >= e.MinX && x < e.MaxX && y > e.MinY && y <= e.MaxY
}

// Intersect returns the overlap of e and o and whether it is non-empty.
// The CRS tag of e is kept.
func (e Extent) Intersect(o Extent) (Extent, bool) {
	r := Extent{
		MinX: math.Max(e.MinX, o.MinX),
		MinY: math.Max(e.MinY, o.MinY),
		MaxX: math.Min(e.MaxX, o.MaxX),
		MaxY: math.Min(e.MaxY, o.MaxY),
		CRS:  e.CRS,
	}
	if r.MaxX <= r.MinX || r.MaxY <= r.MinY {
		return Extent{CRS: e.CRS}, false
	}
	return r, true
}

// Expand returns e grown by d on every side.
func (e Extent) Expand(d float64) Extent {
	return Extent{MinX: e.MinX - d, MinY: e.MinY - d, MaxX: e.MaxX + d, MaxY: e.MaxY + d, CRS: e.CRS}
}

// String implements fmt.Stringer.
func (e Extent) String() string {
	if e.CRS == "" {
		return fmt.Sprintf("[%g %g, %g %g]", e.MinX, e.MinY, e.MaxX, e.MaxY)
	}
	return fmt.Sprintf("[%g %g, %g %g %s]", e.MinX, e.MinY, e.MaxX, e.MaxY, e.CRS)
}

// PixelKind declares the numeric type a Grid's values are stored as.
// Values are always held in float64 but quantized on write.
type PixelKind int

const (
	// Float64 keeps values unchanged.
	Float64 PixelKind = iota
	// Float32 rounds values through float32.
	Float32
	// Int32 rounds half away from zero and clamps to the int32 range.
	Int32
)

// String implements fmt.Stringer.
func (k PixelKind) String() string {
	switch k {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	case Int32:
		return "int32"
	default:
		return fmt.Sprintf("PixelKind(%d)", int(k))
	}
}

// Quantize converts v to the precision of k. NaN passes through unchanged
// so it can mark "no value yet" during a scan.
func (k PixelKind) Quantize(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	switch k {
	case Float32:
		return float64(float32(v))
	case Int32:
		r := math.Round(v)
		if r > math.MaxInt32 {
			return math.MaxInt32
		}
		if r < math.MinInt32 {
			return math.MinInt32
		}
		return r
	default:
		return v
	}
}

// Rect is an integer cell rectangle: origin (Col,Row) and size Width×Height.
type Rect struct {
	Col, Row      int
	Width, Height int
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Cells returns Width·Height, or 0 for an empty rectangle.
func (r Rect) Cells() int {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// Option configures a Grid under construction.
type Option func(*options)

type options struct {
	noData  float64
	kind    PixelKind
	fill    float64
	hasFill bool
}

func defaultOptions() options {
	return options{noData: DefaultNoData, kind: Float64}
}

func gatherOptions(opts []Option) options {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithNoData sets the grid's NoData sentinel.
// Panics if nd is NaN: NaN is reserved for in-flight "no value" cells.
func WithNoData(nd float64) Option {
	if math.IsNaN(nd) {
		panic("grid: WithNoData: sentinel must not be NaN")
	}
	return func(o *options) { o.noData = nd }
}

// WithKind sets the pixel numeric kind.
func WithKind(k PixelKind) Option {
	return func(o *options) { o.kind = k }
}

// WithFill sets the initial value of every cell. Without it new grids start
// at zero (New, NewWithShape) or at NoData (NewLike).
func WithFill(v float64) Option {
	return func(o *options) {
		o.fill = v
		o.hasFill = true
	}
}
