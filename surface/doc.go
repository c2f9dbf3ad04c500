// Package surface derives terrain grids from an elevation grid: slope,
// aspect, hillshade, curvature, roughness, topographic position (TPI),
// terrain ruggedness (TRI), D8 flow direction and flow accumulation.
//
// Every operator is a pure function of one 3×3 neighbourhood (see package
// neighborhood), scanned row-major over the whole input:
//
//	 a b c      NW N NE
//	 d e f  =   W  e  E
//	 g h i      SW S SE
//
//	dZ/dX = ((c + 2f + i) - (a + 2d + g)) / (8·cellX)     (Horn)
//	dZ/dY = ((g + 2h + i) - (a + 2b + c)) / (8·cellY)
//
// A NoData focal cell always yields NoData; missing neighbours inherit the
// focal value. The input grid is never modified; each call returns a new
// grid and the Stats of its valid cells.
//
// Options.Workers > 1 splits the scan into row bands that run concurrently.
// Bands only read the input and only write their own rows of the output.
//
// Accumulate is the exception: it walks a flow-direction grid in
// topological order, so it is sequential and not a window operator.
//
// Complexity: O(W×H) time, O(W×H) memory for the output.
package surface
