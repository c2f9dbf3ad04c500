package density

import "errors"

var (
	// ErrInvalidParameter indicates a bad radius, cell size or feature.
	ErrInvalidParameter = errors.New("density: invalid parameter")
	// ErrUnknownKernel indicates an unsupported kernel shape.
	ErrUnknownKernel = errors.New("density: unknown kernel shape")
)
