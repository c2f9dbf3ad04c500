package grid

import "math"

// Stats accumulates running statistics over valid cell values.
// The zero value is an empty accumulator.
type Stats struct {
	Min, Max float64
	Sum      float64
	Count    int
}

// Add folds v into s. NaN values are ignored.
func (s *Stats) Add(v float64) {
	if math.IsNaN(v) {
		return
	}
	if s.Count == 0 {
		s.Min, s.Max = v, v
	} else {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Sum += v
	s.Count++
}

// Merge folds o into s. Merging is order independent, so per-block
// accumulators from parallel workers can be combined after a join.
func (s *Stats) Merge(o Stats) {
	if o.Count == 0 {
		return
	}
	if s.Count == 0 {
		*s = o
		return
	}
	s.Min = math.Min(s.Min, o.Min)
	s.Max = math.Max(s.Max, o.Max)
	s.Sum += o.Sum
	s.Count += o.Count
}

// Mean returns Sum/Count, or NaN when empty.
func (s Stats) Mean() float64 {
	if s.Count == 0 {
		return math.NaN()
	}
	return s.Sum / float64(s.Count)
}

// Empty reports whether no value has been added.
func (s Stats) Empty() bool { return s.Count == 0 }

// ScanStats returns Stats over every non-NoData cell of g.
// Complexity: O(W×H).
func ScanStats(g *Grid) Stats {
	var s Stats
	for _, v := range g.data {
		if g.IsNoData(v) {
			continue
		}
		s.Add(v)
	}
	return s
}

// ResolveNoData returns a sentinel that cannot be confused with the data
// summarised by s: nd is nudged down by one when it equals s.Min and up by
// one when it equals s.Max.
func ResolveNoData(s Stats, nd float64) float64 {
	if s.Count == 0 {
		return nd
	}
	if nd == s.Min {
		nd--
	}
	if nd == s.Max {
		nd++
	}
	return nd
}

// Finalize settles the NoData sentinel of a freshly computed grid: it
// resolves g's sentinel against s, stores it, and rewrites NaN cells (the
// in-flight "no value" marker) to it. It returns the chosen sentinel.
// Complexity: O(W×H).
func (g *Grid) Finalize(s Stats) float64 {
	nd := ResolveNoData(s, g.noData)
	g.noData = nd
	for i, v := range g.data {
		if math.IsNaN(v) {
			g.data[i] = nd
		}
	}
	return nd
}
