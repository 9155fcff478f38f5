// Package narrowband implements the sparse boundary-cell data structure at
// the heart of the evolution engine: the set of grid positions near the
// current 0/1 boundary of an embedding, together with the deferred-toggle
// protocol ("stage flips, then commit them atomically and re-seed
// neighbors") that lets the morphological operators in package morph treat
// every decision as independent of commit order.
//
// This is a direct port of the C++ NarrowBand/ACWENarrowBand classes in the
// morphsnakes reference implementation: a hash map keyed by flat offset is
// exactly what that implementation uses, and offset is sufficient as a key
// because two positions on the same grid are equal iff their offsets are.
package narrowband

import (
	"fmt"

	"github.com/pmneila/morphsnakes/internal/grid"
	"github.com/pmneila/morphsnakes/pkg/imageview"
)

// Cell is a narrow-band entry. Toggle marks the cell for flipping at the
// next call to Update.
type Cell struct {
	Toggle bool
}

// Band is the surface package morph's operators need from a narrow band:
// stage a toggle, read the embedding, and commit. Both NarrowBand and
// ACWENarrowBand satisfy it. Operators must take a Band rather than a
// concrete *NarrowBand — ACWENarrowBand overrides Update to also maintain
// its running region statistics, and a parameter typed *NarrowBand would
// statically bind to the embedded NarrowBand.Update instead, silently
// desyncing those statistics on every flip an operator stages.
type Band interface {
	Positions() []grid.Position
	ToggleCell(p grid.Position)
	Update()
	EmbeddingImage() *imageview.Image[uint8]
}

// entry couples a Cell with the Position it belongs to; the map is keyed
// by flat offset, but update/cleanup need the full coordinate to walk a
// cell's neighborhood.
type entry struct {
	pos  grid.Position
	cell Cell
}

// NarrowBand is the sparse set of boundary cells of a binary embedding.
// Invariants (see spec §3):
//
//   - every tracked position is interior to the grid (I1);
//   - immediately after Cleanup, with no staged toggles, a position is
//     tracked iff it has at least one neighbor with a different embedding
//     value (I2) — between operator calls the set may be a superset of the
//     true boundary;
//   - every cell's Toggle is false immediately after Update (I3).
type NarrowBand struct {
	Embedding *imageview.Image[uint8]
	cells     map[int]*entry
}

// New constructs a NarrowBand by scanning every interior position of
// embedding and tracking those with at least one differing neighbor.
func New(embedding *imageview.Image[uint8]) *NarrowBand {
	nb := &NarrowBand{
		Embedding: embedding,
		cells:     make(map[int]*entry),
	}
	nb.scan()
	return nb
}

func (nb *NarrowBand) scan() {
	it := nb.Embedding.InteriorPositions()
	for it.Next() {
		p := it.Position()
		if nb.onBoundaryOfRegion(p) {
			nb.cells[p.Offset] = &entry{pos: p}
		}
	}
}

func (nb *NarrowBand) onBoundaryOfRegion(p grid.Position) bool {
	val := nb.Embedding.AtPosition(p)
	nbh := nb.Embedding.Neighborhood(p)
	for i := 0; i < nbh.Len(); i++ {
		n := nbh.GetNeighbor(i)
		if nb.Embedding.AtPosition(n) != val {
			return true
		}
	}
	return false
}

// ToggleCell stages position p for flipping at the next Update. p must be
// an interior grid position; callers (the operators in package morph and
// the attachment drivers) are responsible for this.
func (nb *NarrowBand) ToggleCell(p grid.Position) {
	e, ok := nb.cells[p.Offset]
	if !ok {
		e = &entry{pos: p}
		nb.cells[p.Offset] = e
	}
	e.cell.Toggle = true
}

// Update commits every staged toggle: flips the embedding, clears the
// toggle, and re-seeds every non-boundary neighbor of a flipped cell into
// the band (inserting a fresh, untoggled Cell if not already present).
func (nb *NarrowBand) Update() {
	toFlip := nb.staged()

	reseed := make(map[int]grid.Position)
	for _, pos := range toFlip {
		nb.flip(pos)
		nb.cells[pos.Offset].cell.Toggle = false
		nb.collectReseed(pos, reseed)
	}
	nb.mergeReseed(reseed)
}

func (nb *NarrowBand) staged() []grid.Position {
	var toFlip []grid.Position
	for _, e := range nb.cells {
		if e.cell.Toggle {
			toFlip = append(toFlip, e.pos)
		}
	}
	return toFlip
}

func (nb *NarrowBand) flip(p grid.Position) {
	v := nb.Embedding.AtPosition(p)
	nb.Embedding.SetPosition(p, 1-v)
}

func (nb *NarrowBand) collectReseed(pos grid.Position, reseed map[int]grid.Position) {
	nbh := nb.Embedding.Neighborhood(pos)
	for i := 0; i < nbh.Len(); i++ {
		n := nbh.GetNeighbor(i)
		if nb.Embedding.IsBoundary(n) {
			continue
		}
		reseed[n.Offset] = n
	}
}

func (nb *NarrowBand) mergeReseed(reseed map[int]grid.Position) {
	for offset, pos := range reseed {
		if _, ok := nb.cells[offset]; !ok {
			nb.cells[offset] = &entry{pos: pos}
		}
	}
}

// Cleanup removes every tracked position whose embedding value equals all
// of its neighbors' values, reinstating invariant I2 tightly.
func (nb *NarrowBand) Cleanup() {
	for offset, e := range nb.cells {
		if !nb.onBoundaryOfRegion(e.pos) {
			delete(nb.cells, offset)
		}
	}
}

// EmbeddingImage returns the band's underlying embedding. It exists
// alongside the exported Embedding field so that Band can require it as a
// method: ACWENarrowBand inherits it unmodified, while Update is
// overridden, so a caller holding a Band interface value reaches whichever
// concrete Update applies — the same dispatch the C++ reference gets from
// a virtual narrowBand.update().
func (nb *NarrowBand) EmbeddingImage() *imageview.Image[uint8] { return nb.Embedding }

// Len returns the number of positions currently tracked.
func (nb *NarrowBand) Len() int { return len(nb.cells) }

// Contains reports whether p is currently tracked.
func (nb *NarrowBand) Contains(p grid.Position) bool {
	_, ok := nb.cells[p.Offset]
	return ok
}

// Positions returns a snapshot of every position currently tracked. The
// morphological operators take a single pass over this snapshot, staging
// toggles against the pre-commit embedding before ever calling Update —
// concurrent mutation of the live map during that pass is not supported.
func (nb *NarrowBand) Positions() []grid.Position {
	ps := make([]grid.Position, 0, len(nb.cells))
	for _, e := range nb.cells {
		ps = append(ps, e.pos)
	}
	return ps
}

func shapesEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func validateShapes(embedding, image []int) {
	if !shapesEqual(embedding, image) {
		panic(fmt.Sprintf("narrowband: embedding shape %v and image shape %v disagree", embedding, image))
	}
}
