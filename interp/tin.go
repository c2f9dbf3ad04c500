package interp

import (
	"fmt"
	"math"

	"github.com/fogleman/delaunay"
)

// baryEps is the barycentric tolerance that lets points on a shared edge
// resolve to either neighbour.
const baryEps = 1e-12

// Triangle is one face of a TIN, counter-clockwise.
type Triangle struct {
	A, B, C SamplePoint
}

// tri indexes three vertices, counter-clockwise.
type tri struct {
	v [3]int
}

// TIN is a Delaunay triangulation of the samples with planar interpolation
// inside each triangle. Duplicate (x, y) samples keep the first z.
type TIN struct {
	pts  []SamplePoint
	tris []tri

	// bucket lookup over the hull bounding box
	minX, minY float64
	bw, bh     float64
	nbx, nby   int
	buckets    [][]int
}

// NewTIN builds the Delaunay triangulation of samples with a sweep-hull
// triangulator, so every point inside the convex hull lies in some face.
//
// Returns ErrInvalidParameter when fewer than three distinct points remain
// or all points are collinear.
//
// Complexity: O(n log n) expected.
func NewTIN(samples []SamplePoint) (*TIN, error) {
	if err := checkSamples(samples); err != nil {
		return nil, fmt.Errorf("NewTIN: %w", err)
	}
	pts := dedupe(samples)
	if len(pts) < 3 {
		return nil, fmt.Errorf("NewTIN: %d distinct points: %w", len(pts), ErrInvalidParameter)
	}
	if collinear(pts) {
		return nil, fmt.Errorf("NewTIN: all %d points collinear: %w", len(pts), ErrInvalidParameter)
	}

	t := &TIN{pts: pts}
	if err := t.triangulate(); err != nil {
		return nil, fmt.Errorf("NewTIN: %v: %w", err, ErrInvalidParameter)
	}
	if len(t.tris) == 0 {
		return nil, fmt.Errorf("NewTIN: no triangles: %w", ErrInvalidParameter)
	}
	t.index()
	diagf("tin: %d points, %d triangles", len(pts), len(t.tris))
	return t, nil
}

func dedupe(samples []SamplePoint) []SamplePoint {
	type key struct{ x, y float64 }
	seen := make(map[key]bool, len(samples))
	out := make([]SamplePoint, 0, len(samples))
	for _, s := range samples {
		k := key{s.X, s.Y}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s)
	}
	return out
}

func bounds(pts []SamplePoint) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return
}

func collinear(pts []SamplePoint) bool {
	minX, minY, maxX, maxY := bounds(pts)
	span := math.Max(maxX-minX, maxY-minY)
	tol := 1e-12 * span * span
	p, q := pts[0], pts[1]
	for _, r := range pts[2:] {
		if math.Abs(orient(p, q, r)) > tol {
			return false
		}
	}
	return true
}

// orient is twice the signed area of pqr; positive when counter-clockwise.
func orient(p, q, r SamplePoint) float64 {
	return (q.X-p.X)*(r.Y-p.Y) - (q.Y-p.Y)*(r.X-p.X)
}

// makeTri orders a, b, c counter-clockwise.
func makeTri(pts []SamplePoint, a, b, c int) tri {
	if orient(pts[a], pts[b], pts[c]) < 0 {
		b, c = c, b
	}
	return tri{v: [3]int{a, b, c}}
}

// triangulate runs the sweep-hull triangulator over the deduplicated points
// and keeps every face with non-zero area.
func (t *TIN) triangulate() error {
	in := make([]delaunay.Point, len(t.pts))
	for i, p := range t.pts {
		in[i] = delaunay.Point{X: p.X, Y: p.Y}
	}
	d, err := delaunay.Triangulate(in)
	if err != nil {
		return err
	}
	ix := d.Triangles
	t.tris = make([]tri, 0, len(ix)/3)
	for i := 0; i+2 < len(ix); i += 3 {
		a, b, c := ix[i], ix[i+1], ix[i+2]
		if orient(t.pts[a], t.pts[b], t.pts[c]) == 0 {
			continue
		}
		t.tris = append(t.tris, makeTri(t.pts, a, b, c))
	}
	return nil
}

// index registers every triangle in the buckets its bounding box overlaps.
func (t *TIN) index() {
	minX, minY, maxX, maxY := bounds(t.pts)
	side := max(1, int(math.Sqrt(float64(len(t.tris)))))
	t.minX, t.minY = minX, minY
	t.nbx, t.nby = side, side
	t.bw, t.bh = (maxX-minX)/float64(side), (maxY-minY)/float64(side)
	if t.bw == 0 {
		t.bw = 1
	}
	if t.bh == 0 {
		t.bh = 1
	}
	t.buckets = make([][]int, side*side)
	for i, tr := range t.tris {
		a, b, c := t.pts[tr.v[0]], t.pts[tr.v[1]], t.pts[tr.v[2]]
		c0, r0 := t.bucket(math.Min(a.X, math.Min(b.X, c.X)), math.Min(a.Y, math.Min(b.Y, c.Y)))
		c1, r1 := t.bucket(math.Max(a.X, math.Max(b.X, c.X)), math.Max(a.Y, math.Max(b.Y, c.Y)))
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				t.buckets[r*t.nbx+c] = append(t.buckets[r*t.nbx+c], i)
			}
		}
	}
}

// bucket returns the clamped bucket column and row of (x, y).
func (t *TIN) bucket(x, y float64) (col, row int) {
	col = int((x - t.minX) / t.bw)
	row = int((y - t.minY) / t.bh)
	return min(max(col, 0), t.nbx-1), min(max(row, 0), t.nby-1)
}

// Interpolate implements Interpolator. Points outside the convex hull give
// (NaN, false).
func (t *TIN) Interpolate(x, y float64) (float64, bool) {
	if !finite(x) || !finite(y) {
		return math.NaN(), false
	}
	maxX := t.minX + t.bw*float64(t.nbx)
	maxY := t.minY + t.bh*float64(t.nby)
	if x < t.minX || y < t.minY || x > maxX || y > maxY {
		return math.NaN(), false
	}
	c, r := t.bucket(x, y)
	for _, i := range t.buckets[r*t.nbx+c] {
		if v, ok := t.planar(t.tris[i], x, y); ok {
			return v, true
		}
	}
	return math.NaN(), false
}

// planar interpolates z at (x, y) from the plane of tr when the point lies
// inside it.
func (t *TIN) planar(tr tri, x, y float64) (float64, bool) {
	a, b, c := t.pts[tr.v[0]], t.pts[tr.v[1]], t.pts[tr.v[2]]
	det := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if det == 0 {
		return 0, false
	}
	l1 := ((b.Y-c.Y)*(x-c.X) + (c.X-b.X)*(y-c.Y)) / det
	l2 := ((c.Y-a.Y)*(x-c.X) + (a.X-c.X)*(y-c.Y)) / det
	l3 := 1 - l1 - l2
	if l1 < -baryEps || l2 < -baryEps || l3 < -baryEps {
		return 0, false
	}
	return l1*a.Z + l2*b.Z + l3*c.Z, true
}

// Triangles returns a copy of the triangulation.
func (t *TIN) Triangles() []Triangle {
	out := make([]Triangle, len(t.tris))
	for i, tr := range t.tris {
		out[i] = Triangle{A: t.pts[tr.v[0]], B: t.pts[tr.v[1]], C: t.pts[tr.v[2]]}
	}
	return out
}
