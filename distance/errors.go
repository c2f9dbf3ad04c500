package distance

import "errors"

var (
	// ErrInvalidParameter indicates a nil mask or an invalid option value.
	ErrInvalidParameter = errors.New("distance: invalid parameter")
)

// ErrNegativeCost indicates a friction surface with a negative valid cell.
var ErrNegativeCost = errors.New("distance: negative cost")
