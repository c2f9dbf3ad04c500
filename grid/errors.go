package grid

import "errors"

// Sentinel errors for grid construction and access.
var (
	// ErrBadCellSize indicates a cell size that is ≤ 0, NaN or Inf.
	ErrBadCellSize = errors.New("grid: cell size must be finite and > 0")
	// ErrBadExtent indicates max < min on an axis or a non-finite bound.
	ErrBadExtent = errors.New("grid: invalid extent")
	// ErrBadShape indicates non-positive column or row counts.
	ErrBadShape = errors.New("grid: columns and rows must be > 0")
	// ErrOutOfRange indicates a cell address outside the grid.
	ErrOutOfRange = errors.New("grid: cell index out of range")
	// ErrEmptyGrid indicates FromRows input with no rows or no columns.
	ErrEmptyGrid = errors.New("grid: input must have at least one row and one column")
	// ErrNonRectangular indicates FromRows input rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")
)
