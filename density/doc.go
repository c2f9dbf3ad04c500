// Package density builds kernel-density surfaces from points and lines.
//
// A Kernel is a (2r+1)×(2r+1) weight matrix, circular or square, with one of
// several radial profiles. Each feature spreads its magnitude over the cells
// the kernel covers:
//
//	density += w(dx,dy) · magnitude / (Σw · cellArea)
//
// Dividing by the kernel's total weight makes the surface a magnitude per
// unit area whatever the shape or radius, so for features away from the
// grid edges Σ density·cellArea equals Σ magnitude. Contributions that fall
// outside the grid are clipped and lost.
//
// Complexity: O(features × (2r+1)²) for Points; Lines add one deposit per
// half-cell step along each segment.
//
// Errors:
//
//   - ErrInvalidParameter: negative radius, non-positive cell size,
//     non-finite feature coordinates or magnitudes.
//   - ErrUnknownKernel: an unsupported Shape or name.
package density
