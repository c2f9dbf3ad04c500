// Package lvraster is an in-memory engine for raster grid analysis: derive
// terrain surfaces, interpolate scattered samples onto a grid, measure
// distance to features and estimate feature density.
//
// What is lvraster?
//
//	A pure-Go toolkit built on gonum that brings together:
//		• Grids: extents, cell geometry, pixel kinds, NoData and tiling
//		• Neighbourhoods: 3×3 (or any odd) focal windows with edge handling
//		• Surface derivatives: slope, aspect, hillshade, curvature, TPI, TRI,
//		  roughness and D8 flow direction
//		• Distance: Euclidean distance, allocation and region labelling
//		• Interpolation: IDW, thin-plate spline and TIN, filled block-parallel
//		• Density: kernel density of points and polylines
//
// Every operation returns a new grid plus its grid.Stats and never mutates
// its input. NaN marks "no value" while a grid is under construction; when
// it is finished each NaN becomes the NoData sentinel, nudged clear of the
// data range.
//
// Packages:
//
//	grid/         Grid, Extent, PixelKind, Stats, Views, Blocks
//	neighborhood/ focal window sampling and the D8 direction table
//	surface/      terrain derivatives (Horn gradient, Zevenbergen-Thorne curvature)
//	distance/     two-pass vector distance transform, allocation, labels
//	interp/       IDW (k-d tree), TPS (LU solve), TIN (Delaunay), Fill
//	density/      kernel shapes and point/line density
//	cmd/lvraster  a CLI running the whole pipeline over synthetic terrain
//
// Quick ASCII example, slope of a 3×3 window (Horn):
//
//	  50  45  50
//	  30  30  30      dz/dx = ((c+2f+i) − (a+2d+g)) / 8·cellX
//	   8  10  10      dz/dy = ((g+2h+i) − (a+2b+c)) / 8·cellY
//
//	go get github.com/katalvlaran/lvraster
package lvraster
