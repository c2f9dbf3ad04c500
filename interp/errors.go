package interp

import "errors"

// Sentinel errors for interpolator construction and raster fill.
var (
	// ErrInvalidParameter indicates an empty sample set, a bad option value
	// or degenerate TIN geometry.
	ErrInvalidParameter = errors.New("interp: invalid parameter")
	// ErrInterpolation indicates the TPS system could not be solved reliably.
	ErrInterpolation = errors.New("interp: interpolation failed")
)
