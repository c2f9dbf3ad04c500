// Package distance computes proximity grids from a target mask: the
// Euclidean distance from every cell to its nearest target cell, the value
// of that nearest target (allocation), and connected target regions.
//
// The distance is exact for a single target. With several targets it never
// falls below the true distance and stays within one cell size of it.
//
// What:
//
//   - Transform: distance to the nearest target, in world units.
//   - Allocate:  the mask value of the nearest target.
//   - FromPoints: rasterise point features as targets, then Transform.
//   - Label:     number the 4- or 8-connected regions of target cells.
//   - Cost:      least accumulated travel cost across a friction surface.
//
// How:
//
// Every cell carries the integer offset (rx, ry) to its current nearest
// target and the squared length rx²+ry² of that offset. A padded work buffer
// with an unreached border is swept twice:
//
//  1. forward (top-to-bottom, left-to-right) relaxing from W, NW, N, NE;
//  2. backward (bottom-to-top, right-to-left) relaxing from E, SE, S, SW,
//     replacing only strictly smaller candidates.
//
// A candidate through neighbour n is n's offset plus the step from the cell
// to n, so squared distances stay integer exact. Rows are final as soon as
// the backward sweep leaves them and are written out immediately.
//
// The offset a cell inherits always names a real target, which gives the
// lower bound. An 8-neighbour sweep can settle on a target that is not the
// closest when two targets compete near a cell, which gives the upper bound.
//
// Both sweeps depend on cells finished earlier in the same sweep, so the
// transform is strictly sequential.
//
// Cost is Dijkstra's algorithm over the 8-connected cell graph, seeded with
// every target at once and using a lazy decrease-key min-heap.
//
// Complexity:
//
//   - Transform, Allocate: O(W×H) time, O(W×H) memory.
//   - Cost:                O(N log N) time, O(N) memory, N = W×H.
//   - Label:               O(W×H×d) time (d = 4 or 8), O(W×H) memory.
//
// Errors:
//
//   - ErrInvalidParameter: nil mask, negative or NaN MaxDistance, NaN
//     NoData, or a non-positive cell size; a cost surface that is nil or
//     shaped differently from the mask.
//   - ErrNegativeCost: a friction surface with a negative valid cell.
package distance
