package grid

// NeighborOffsets precomputes the 3^D table of (coordinate delta, linear
// offset delta) pairs for a grid of the given stride, in row-major order
// over {-1,0,+1}^D. The center entry (all-zero delta) sits at index 4 for
// D=2 and 13 for D=3 — the indices the structuring-element descriptors in
// package morph reference.
//
// The table is computed once per grid (stride is fixed for the lifetime of
// an evolution) and shared by every position's Neighborhood view.
type NeighborOffsets struct {
	Dim          int
	CoordDeltas  [][]int
	LinearDeltas []int
}

// NewNeighborOffsets builds the 3^D neighbor table for the given stride.
// len(stride) determines D.
func NewNeighborOffsets(stride []int) *NeighborOffsets {
	d := len(stride)
	n := pow3(d)

	deltas := make([][]int, n)
	linear := make([]int, n)

	cur := make([]int, d)
	for i := range cur {
		cur[i] = -1
	}

	for i := 0; i < n; i++ {
		delta := make([]int, d)
		copy(delta, cur)
		deltas[i] = delta

		lin := 0
		for j, dd := range delta {
			lin += dd * stride[j]
		}
		linear[i] = lin

		// Odometer increment, last axis fastest: this is what makes the
		// ordering row-major and the center land at index (3^D-1)/2.
		for j := d - 1; j >= 0; j-- {
			cur[j]++
			if cur[j] <= 1 {
				break
			}
			cur[j] = -1
		}
	}

	return &NeighborOffsets{Dim: d, CoordDeltas: deltas, LinearDeltas: linear}
}

func pow3(d int) int {
	n := 1
	for i := 0; i < d; i++ {
		n *= 3
	}
	return n
}

// CenterIndex returns the index of the zero-delta ("self") entry: 4 for
// D=2, 13 for D=3.
func (o *NeighborOffsets) CenterIndex() int {
	return (len(o.LinearDeltas) - 1) / 2
}

// Neighborhood is a view of the 3^D neighbors of a fixed center position.
// GetNeighbor performs no bounds check: callers must guarantee center is
// not on the grid's outer boundary (invariant I1 in the narrow band).
type Neighborhood struct {
	Center  Position
	offsets *NeighborOffsets
}

// At returns the Neighborhood of center under this offset table.
func (o *NeighborOffsets) At(center Position) Neighborhood {
	return Neighborhood{Center: center, offsets: o}
}

// Len returns 3^D, the number of entries (including the center).
func (n Neighborhood) Len() int {
	return len(n.offsets.LinearDeltas)
}

// GetNeighbor returns the neighbor at the given fixed row-major index.
func (n Neighborhood) GetNeighbor(index int) Position {
	delta := n.offsets.CoordDeltas[index]
	coord := make([]int, len(delta))
	for i, dd := range delta {
		coord[i] = n.Center.Coord[i] + dd
	}
	return Position{Coord: coord, Offset: n.Center.Offset + n.offsets.LinearDeltas[index]}
}

// All materializes every neighbor (including the center) in fixed order.
func (n Neighborhood) All() []Position {
	ps := make([]Position, n.Len())
	for i := range ps {
		ps[i] = n.GetNeighbor(i)
	}
	return ps
}
