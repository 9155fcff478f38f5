// Package morph implements the structuring-element-based operators that
// drive the evolution: dilation, erosion, and curvature, all expressed as
// one generic "apply a structuring-element family over the narrow band,
// honoring an optional per-cell mask" routine.
//
// The descriptor tables below are normative constants reproduced
// byte-exact from the morphsnakes reference implementation's
// Operator<2>/Operator<3> structs: each row lists the neighborhood indices
// (into the fixed 3^D row-major ordering of package grid) that make up one
// structuring element of the family.
package morph

import "fmt"

// Descriptor is a structuring-element family: each row is a set of
// neighbor indices (see grid.NeighborOffsets) that must be jointly
// "active" — see Apply — for the family to fire on a cell.
//
// Descriptor rows are shared read-only constants; callers must not mutate
// them.
type Descriptor [][]int

// Curvature2D enumerates the four diameters of the 3x3 neighborhood
// through the center (index 4), excluding the center itself.
var Curvature2D = Descriptor{
	{0, 8},
	{1, 7},
	{2, 6},
	{3, 5},
}

// DilateErode2D enumerates all 8 non-center neighbors of the 3x3
// neighborhood as a single structuring element.
var DilateErode2D = Descriptor{
	{0, 1, 2, 3, 5, 6, 7, 8},
}

// Curvature3D enumerates the nine diameters of the 3x3x3 neighborhood
// through the center (index 13), excluding the center.
var Curvature3D = Descriptor{
	{6, 7, 8, 12, 14, 18, 19, 20},
	{9, 10, 11, 12, 14, 15, 16, 17},
	{0, 1, 2, 12, 14, 24, 25, 26},
	{0, 4, 8, 9, 17, 18, 22, 26},
	{3, 4, 5, 12, 14, 21, 22, 23},
	{2, 4, 6, 11, 15, 20, 22, 24},
	{2, 5, 8, 10, 16, 18, 21, 24},
	{1, 4, 7, 10, 16, 19, 22, 25},
	{0, 3, 6, 10, 16, 20, 23, 26},
}

// DilateErode3D enumerates all 26 non-center neighbors of the 3x3x3
// neighborhood as a single structuring element.
var DilateErode3D = Descriptor{
	{0, 1, 2, 3, 4, 5, 6, 7, 8,
		9, 10, 11, 12, 14, 15, 16, 17,
		18, 19, 20, 21, 22, 23, 24, 25, 26},
}

// CurvatureFor returns the curvature descriptor for dimensionality d (2 or
// 3).
func CurvatureFor(d int) Descriptor {
	switch d {
	case 2:
		return Curvature2D
	case 3:
		return Curvature3D
	default:
		panic(fmt.Sprintf("morph: unsupported dimensionality %d", d))
	}
}

// DilateErodeFor returns the dilate/erode descriptor for dimensionality d
// (2 or 3).
func DilateErodeFor(d int) Descriptor {
	switch d {
	case 2:
		return DilateErode2D
	case 3:
		return DilateErode3D
	default:
		panic(fmt.Sprintf("morph: unsupported dimensionality %d", d))
	}
}
