// Package neighborhood extracts small focal windows (3×3 by default) from a
// grid for the terrain operators in package surface.
//
// Rules applied to every window:
//
//   - Cells outside the grid or holding NoData are read as NaN and set
//     Matrix.HadNoData.
//   - If the focal (centre) cell is NoData, the window is returned as read
//     with Matrix.CenterNoData set; callers must check it first.
//   - Otherwise every NaN is replaced by the centre value ("missing
//     neighbours inherit the centre") and all values are multiplied by the
//     sampler's z-factor.
//
// D8 lists the eight neighbour directions in the W, NW, N, NE, E, SE, S, SW
// scan order used for flow-direction tie breaking, with their standard D8
// power-of-two codes.
//
// Complexity: Sample is O(w×h); SampleInto reuses the caller's buffer and
// does not allocate.
package neighborhood
