// Package interp turns scattered (x, y, z) samples into continuous surfaces
// and rasterises them.
//
// What:
//
//   - IDW: inverse-distance weighting over a fixed radius or the K nearest
//     samples, backed by a k-d tree.
//   - TPS: the exact thin-plate spline through every sample, from one dense
//     (n+3)×(n+3) LU solve.
//   - TIN: a Delaunay triangulation with planar interpolation inside each
//     triangle.
//   - Fill: a block-parallel driver that evaluates any Interpolator at every
//     cell centre of a new grid.
//
// Every strategy does its set-up work (tree build, solve, triangulation) in
// its constructor and is immutable afterwards, so a single value may be
// shared by any number of goroutines.
//
// OutOfDomain is not an error. Interpolate reports it with ok == false:
// IDW returns NoNeighbors when no sample qualifies, TIN returns NaN outside
// the convex hull. Fill writes NoData for such cells and carries on.
//
// Complexity:
//
//   - NewIDW: O(n log n). Interpolate: O(log n + k) expected.
//   - NewTPS: O(n³) time, O(n²) memory. Interpolate: O(n).
//   - NewTIN: O(n²) worst case. Interpolate: O(1) expected via buckets.
//   - Fill:   O(W×H) calls to Interpolate across Workers goroutines.
//
// Errors:
//
//   - ErrInvalidParameter: empty sample sets, bad option values, fewer than
//     three non-collinear TIN points.
//   - ErrInterpolation: a singular or ill-conditioned TPS system, including
//     duplicate sample coordinates.
//
// Diagnostics go to three optional log streams, see SetLogWriters.
package interp
