// Package grid is the raster foundation of lvraster: an owned, row-major
// buffer of cell values tied to a world-space extent, plus the transform
// between cell addresses and world coordinates.
//
// What:
//
//   - Grid stores Width×Height values in one contiguous []float64, row 0 at
//     the top of the extent, quantized to a declared PixelKind.
//   - New resolves columns and rows from an extent and cell size, then
//     re-derives the extent so that columns·cellSize spans it exactly.
//   - WorldToGrid / GridToWorld map between world coordinates and cells;
//     GridToWorld always returns the cell centre.
//   - View and RowCursor give windowed and sequential access without
//     handing out the Grid itself.
//   - Stats is an explicit min/max/count/sum accumulator that every
//     operation in lvraster returns next to its output grid.
//
// Why:
//
//   - Every derived-grid algorithm (interpolation, distance, surface
//     derivatives, density) needs the same geometry and NoData rules.
//
// Complexity:
//
//   - New, NewLike, Clone: O(W×H) time and memory.
//   - At, Set, WorldToGrid, GridToWorld: O(1).
//   - ScanStats, Finalize: O(W×H).
//
// Errors:
//
//   - ErrBadCellSize: cell size is non-positive or not finite.
//   - ErrBadExtent: extent has max < min or a non-finite bound.
//   - ErrBadShape: explicit column/row counts are non-positive.
//   - ErrOutOfRange: (col,row) lies outside the grid.
//   - ErrEmptyGrid, ErrNonRectangular: FromRows input problems.
package grid
