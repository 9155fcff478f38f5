// Package imageview provides a non-owning N-D view over a flat buffer:
// random access by flat offset or coordinate, a lazy iterator over every
// grid position, and a neighborhood view centred on any position. It is
// the "image view" external collaborator spec.md §2 item 2 describes —
// the core (packages narrowband, morph, attachment, snakes) depends only
// on this minimal surface and never owns the backing storage.
//
// Strides are element strides, not byte strides: spec.md's design notes
// (§9) call this out explicitly as the right substitution for languages
// without raw pointer arithmetic, as long as it is applied consistently —
// which this package and everything built on it does.
package imageview

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/pmneila/morphsnakes/internal/grid"
)

// Numeric is the element-type constraint for an Image: integer types (the
// binary embedding is []uint8) or floating-point types (intensity and
// gradient images).
type Numeric interface {
	constraints.Integer | constraints.Float
}

// Image is a non-owning view over a caller-owned flat buffer laid out with
// the given shape and element stride.
type Image[T Numeric] struct {
	Data   []T
	Shape  []int
	Stride []int

	offsets *grid.NeighborOffsets
}

// New wraps data as a contiguous row-major image of the given shape. data
// must have exactly product(shape) elements.
func New[T Numeric](data []T, shape []int) *Image[T] {
	grid.ValidateDim(len(shape))
	stride := grid.RowMajorStride(shape)
	return NewWithStride(data, shape, stride)
}

// NewWithStride wraps data as an image with an explicit (possibly
// non-contiguous) element stride. The only requirement on stride is that
// offset(coord) = Σ stride[i]·coord[i] reach the intended element.
func NewWithStride[T Numeric](data []T, shape, stride []int) *Image[T] {
	grid.ValidateDim(len(shape))
	if len(shape) != len(stride) {
		panic(fmt.Sprintf("imageview: shape %v and stride %v have different dimensionality", shape, stride))
	}
	n := 1
	for _, s := range shape {
		n *= s
	}
	if len(data) < n {
		panic(fmt.Sprintf("imageview: data has %d elements, need at least %d for shape %v", len(data), n, shape))
	}
	return &Image[T]{
		Data:    data,
		Shape:   shape,
		Stride:  stride,
		offsets: grid.NewNeighborOffsets(stride),
	}
}

// Dim returns the dimensionality D of the image.
func (img *Image[T]) Dim() int { return len(img.Shape) }

// At returns the element at a flat offset.
func (img *Image[T]) At(offset int) T { return img.Data[offset] }

// AtCoord returns the element at a coordinate, recomputing its offset from
// the stride.
func (img *Image[T]) AtCoord(coord []int) T {
	return img.Data[grid.Offset(coord, img.Stride)]
}

// AtPosition returns the element at a Position's cached offset.
func (img *Image[T]) AtPosition(p grid.Position) T { return img.Data[p.Offset] }

// Set writes an element at a flat offset.
func (img *Image[T]) Set(offset int, v T) { img.Data[offset] = v }

// SetCoord writes an element at a coordinate.
func (img *Image[T]) SetCoord(coord []int, v T) {
	img.Data[grid.Offset(coord, img.Stride)] = v
}

// SetPosition writes an element at a Position's cached offset.
func (img *Image[T]) SetPosition(p grid.Position, v T) { img.Data[p.Offset] = v }

// Neighborhood returns a view of the 3^D neighbors of center. center must
// not be on the outer boundary of the image.
func (img *Image[T]) Neighborhood(center grid.Position) grid.Neighborhood {
	return img.offsets.At(center)
}

// Positions returns a lazy iterator over every position of the grid, in
// row-major order.
func (img *Image[T]) Positions() *grid.Iterator {
	return grid.NewIterator(img.Shape, img.Stride)
}

// InteriorPositions returns a lazy iterator over every interior position
// (excluding the outer grid boundary), in row-major order.
func (img *Image[T]) InteriorPositions() *grid.InteriorIterator {
	return grid.NewInteriorIterator(img.Shape, img.Stride)
}

// PositionAt builds a Position for coord on this image's grid.
func (img *Image[T]) PositionAt(coord []int) grid.Position {
	return grid.NewPosition(coord, img.Stride)
}

// IsBoundary reports whether a position lies on the outer boundary of this
// image's grid.
func (img *Image[T]) IsBoundary(p grid.Position) bool {
	return grid.IsBoundary(p.Coord, img.Shape)
}
