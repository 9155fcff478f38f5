package narrowband

import (
	"testing"

	"github.com/pmneila/morphsnakes/internal/grid"
	"github.com/pmneila/morphsnakes/pkg/imageview"
)

func newEmbedding(shape []int) *imageview.Image[uint8] {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return imageview.New(make([]uint8, n), shape)
}

// TestSingleInteriorOne covers spec scenario 1: a 10x10 grid with a single
// interior one at (4,5).
func TestSingleInteriorOne(t *testing.T) {
	shape := []int{10, 10}
	emb := newEmbedding(shape)
	emb.SetCoord([]int{4, 5}, 1)

	nb := New(emb)

	// The band should contain (4,5) and its 8 neighbors.
	if got := nb.Len(); got != 9 {
		t.Fatalf("expected 9 cells in initial band, got %d", got)
	}
	center := emb.PositionAt([]int{4, 5})
	if !nb.Contains(center) {
		t.Fatal("expected (4,5) to be in the band")
	}
}

// TestAllZerosIsNoOp covers spec scenario 2: an all-zero grid has an empty
// band, and Cleanup leaves it empty.
func TestAllZerosIsNoOp(t *testing.T) {
	shape := []int{10, 10}
	emb := newEmbedding(shape)

	nb := New(emb)
	if got := nb.Len(); got != 0 {
		t.Fatalf("expected empty band for all-zero grid, got %d cells", got)
	}

	nb.Update()
	nb.Cleanup()
	if got := nb.Len(); got != 0 {
		t.Fatalf("expected empty band after update+cleanup, got %d cells", got)
	}
}

// TestUpdateFlipsAndClearsToggle exercises P2: every toggle is false
// immediately after Update.
func TestUpdateFlipsAndClearsToggle(t *testing.T) {
	shape := []int{10, 10}
	emb := newEmbedding(shape)
	emb.SetCoord([]int{5, 5}, 1)

	nb := New(emb)
	center := emb.PositionAt([]int{5, 5})
	nb.ToggleCell(center)
	nb.Update()

	if got := emb.AtPosition(center); got != 0 {
		t.Fatalf("expected center to flip to 0, got %d", got)
	}
	for offset, e := range nb.cells {
		if e.cell.Toggle {
			t.Fatalf("cell at offset %d still toggled after Update", offset)
		}
	}
}

// TestUpdateReseedsNeighbors checks that flipping a cell re-seeds its
// non-boundary neighbors into the band.
func TestUpdateReseedsNeighbors(t *testing.T) {
	shape := []int{10, 10}
	emb := newEmbedding(shape)

	nb := New(emb)
	p := emb.PositionAt([]int{5, 5})
	nb.ToggleCell(p)
	nb.Update()

	nbh := emb.Neighborhood(p)
	for i := 0; i < nbh.Len(); i++ {
		n := nbh.GetNeighbor(i)
		if emb.IsBoundary(n) {
			continue
		}
		if !nb.Contains(n) {
			t.Fatalf("expected neighbor %v to be re-seeded into band", n.Coord)
		}
	}
}

// TestCleanupPrunesInteriorCells covers P1: after Update+Cleanup, the band
// equals exactly the positions with a differing neighbor.
func TestCleanupPrunesInteriorCells(t *testing.T) {
	shape := []int{10, 10}
	emb := newEmbedding(shape)
	emb.SetCoord([]int{5, 5}, 1)

	nb := New(emb)
	p := emb.PositionAt([]int{5, 5})
	// Grow the region: flip neighbor 0 of (5,5), i.e. (4,4), to 1, which
	// re-seeds (4,4)'s neighbors into the band before Cleanup runs.
	nbh := emb.Neighborhood(p)
	n := nbh.GetNeighbor(0)
	nb.ToggleCell(n)
	nb.Update()
	nb.Cleanup()

	it := emb.InteriorPositions()
	for it.Next() {
		q := it.Position()
		expected := onBoundaryOfRegionForTest(emb, q)
		if got := nb.Contains(q); got != expected {
			t.Fatalf("position %v: band membership %v, want %v", q.Coord, got, expected)
		}
	}
}

func onBoundaryOfRegionForTest(emb *imageview.Image[uint8], p grid.Position) bool {
	val := emb.AtPosition(p)
	nbh := emb.Neighborhood(p)
	for i := 0; i < nbh.Len(); i++ {
		if emb.AtPosition(nbh.GetNeighbor(i)) != val {
			return true
		}
	}
	return false
}

func TestToggleCellInsertsFreshCellWhenAbsent(t *testing.T) {
	shape := []int{10, 10}
	emb := newEmbedding(shape)
	nb := New(emb)

	p := emb.PositionAt([]int{3, 3})
	if nb.Contains(p) {
		t.Fatal("expected (3,3) to be absent initially")
	}
	nb.ToggleCell(p)
	if !nb.Contains(p) {
		t.Fatal("expected ToggleCell to insert a fresh cell")
	}
	nb.Update()
	if got := emb.AtPosition(p); got != 1 {
		t.Fatalf("expected the freshly-toggled cell to flip, got %d", got)
	}
}
