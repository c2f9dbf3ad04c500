package interp

import (
	"gonum.org/v1/gonum/spatial/kdtree"
)

// node is a sample stored in the k-d tree, searched on X and Y only.
type node SamplePoint

// Compare implements kdtree.Comparable.
func (p node) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(node)
	switch d {
	case 0:
		return p.X - q.X
	case 1:
		return p.Y - q.Y
	default:
		panic("interp: illegal dimension")
	}
}

// Dims implements kdtree.Comparable.
func (p node) Dims() int { return 2 }

// Distance returns the squared planar distance to c.
func (p node) Distance(c kdtree.Comparable) float64 {
	q := c.(node)
	dx, dy := p.X-q.X, p.Y-q.Y
	return dx*dx + dy*dy
}

// nodes satisfies kdtree.Interface.
type nodes []node

func (p nodes) Index(i int) kdtree.Comparable         { return p[i] }
func (p nodes) Len() int                              { return len(p) }
func (p nodes) Slice(start, end int) kdtree.Interface { return p[start:end] }

// Pivot implements kdtree.Interface.
func (p nodes) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(plane{nodes: p, Dim: d}, kdtree.MedianOfRandoms(plane{nodes: p, Dim: d}, 100))
}

// plane implements sort.Interface and kdtree.SortSlicer for one axis.
type plane struct {
	nodes
	kdtree.Dim
}

func (p plane) Less(i, j int) bool {
	switch p.Dim {
	case 0:
		return p.nodes[i].X < p.nodes[j].X
	case 1:
		return p.nodes[i].Y < p.nodes[j].Y
	default:
		panic("interp: illegal dimension")
	}
}

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{nodes: p.nodes[start:end], Dim: p.Dim}
}

func (p plane) Swap(i, j int) {
	p.nodes[i], p.nodes[j] = p.nodes[j], p.nodes[i]
}

// newTree builds a tree over a copy of samples; kdtree.New reorders its input.
func newTree(samples []SamplePoint) *kdtree.Tree {
	pts := make(nodes, len(samples))
	for i, s := range samples {
		pts[i] = node(s)
	}
	return kdtree.New(pts, false)
}

// hit is one neighbour found by a search.
type hit struct {
	z  float64
	d2 float64
}

// collect drains a keeper into hits, skipping the keeper's nil sentinel.
func collect(h kdtree.Heap, dst []hit) []hit {
	for _, cd := range h {
		if cd.Comparable == nil {
			continue
		}
		dst = append(dst, hit{z: cd.Comparable.(node).Z, d2: cd.Dist})
	}
	return dst
}
