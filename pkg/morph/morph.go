package morph

import (
	"sync"

	"github.com/pmneila/morphsnakes/internal/grid"
	"github.com/pmneila/morphsnakes/pkg/imageview"
	"github.com/pmneila/morphsnakes/pkg/narrowband"
)

// Mask gates which cells an operator is allowed to touch; a nil Mask is
// equivalent to AlwaysTrue.
type Mask func(grid.Position) bool

// AlwaysTrue is the default Mask: every cell is eligible.
func AlwaysTrue(grid.Position) bool { return true }

// Options controls how Apply distributes its read-only decision phase.
// Workers <= 1, or a band snapshot of fewer than 2*Workers cells, runs the
// decision phase on the calling goroutine; otherwise the snapshot is
// partitioned into at most Workers contiguous chunks and each chunk's
// toggle decisions are computed concurrently, mirroring the
// core-partitioned worker-pool pattern the teacher uses to parallelize
// independent per-subvolume work. The commit phase (narrowband.Update) is
// always run on the calling goroutine — the engine never races on it.
type Options struct {
	Workers int
}

// Apply implements the morphological SI/IS composition described in
// spec.md §4.4. For every cell p currently in band:
//
//  1. Skip if mask(p) is false.
//  2. Skip if embedding[p] already equals polarity (no change possible).
//  3. A structuring-element row is "active" iff at least one of its
//     neighbor indices has embedding value == polarity.
//  4. If every row of descriptor is active, stage p for toggling.
//
// Every decision reads the embedding exclusively as it stood before this
// call — toggles are only staged, never applied, until the single trailing
// call to band.Update(). This is what makes the composition independent of
// decision order.
//
// band is typed as the narrowband.Band interface, not a concrete
// *narrowband.NarrowBand, so that calling it against an
// *narrowband.ACWENarrowBand dispatches to ACWENarrowBand.Update — the
// override that keeps the running region statistics in sync — rather than
// the embedded NarrowBand.Update a concrete parameter would statically bind
// to.
func Apply(descriptor Descriptor, polarity uint8, band narrowband.Band, mask Mask, opts Options) {
	if mask == nil {
		mask = AlwaysTrue
	}

	positions := band.Positions()
	toToggle := decide(descriptor, polarity, band.EmbeddingImage(), positions, mask, opts.Workers)

	for _, p := range toToggle {
		band.ToggleCell(p)
	}
	band.Update()
}

func decide(descriptor Descriptor, polarity uint8, embedding *imageview.Image[uint8], positions []grid.Position, mask Mask, workers int) []grid.Position {
	if workers <= 1 || len(positions) < 2*workers {
		return decideRange(descriptor, polarity, embedding, positions, mask)
	}

	chunks := partition(positions, workers)
	results := make([][]grid.Position, len(chunks))

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk []grid.Position) {
			defer wg.Done()
			results[i] = decideRange(descriptor, polarity, embedding, chunk, mask)
		}(i, chunk)
	}
	wg.Wait()

	var all []grid.Position
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}

func decideRange(descriptor Descriptor, polarity uint8, embedding *imageview.Image[uint8], positions []grid.Position, mask Mask) []grid.Position {
	var toToggle []grid.Position
	for _, p := range positions {
		if !mask(p) {
			continue
		}
		if embedding.AtPosition(p) == polarity {
			continue
		}
		if elementsAllActive(descriptor, polarity, embedding, p) {
			toToggle = append(toToggle, p)
		}
	}
	return toToggle
}

func elementsAllActive(descriptor Descriptor, polarity uint8, embedding *imageview.Image[uint8], p grid.Position) bool {
	nbh := embedding.Neighborhood(p)
	for _, elem := range descriptor {
		if !rowActive(elem, polarity, embedding, nbh) {
			return false
		}
	}
	return true
}

func rowActive(indices []int, polarity uint8, embedding *imageview.Image[uint8], nbh grid.Neighborhood) bool {
	for _, idx := range indices {
		n := nbh.GetNeighbor(idx)
		if embedding.AtPosition(n) == polarity {
			return true
		}
	}
	return false
}

// partition splits positions into at most workers contiguous chunks of
// roughly equal size, matching the "divide work among cores" idiom used
// throughout the teacher's parallel processing code.
func partition(positions []grid.Position, workers int) [][]grid.Position {
	n := len(positions)
	chunkSize := (n + workers - 1) / workers

	var chunks [][]grid.Position
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		chunks = append(chunks, positions[start:end])
	}
	return chunks
}

// Dilate grows the region (polarity=1). One call never decreases the
// region's total area.
func Dilate(band narrowband.Band, opts Options) {
	DilateMasked(band, AlwaysTrue, opts)
}

// DilateMasked is Dilate restricted to cells for which mask returns true.
func DilateMasked(band narrowband.Band, mask Mask, opts Options) {
	Apply(DilateErodeFor(band.EmbeddingImage().Dim()), 1, band, mask, opts)
}

// Erode shrinks the region (polarity=0).
func Erode(band narrowband.Band, opts Options) {
	ErodeMasked(band, AlwaysTrue, opts)
}

// ErodeMasked is Erode restricted to cells for which mask returns true.
func ErodeMasked(band narrowband.Band, mask Mask, opts Options) {
	Apply(DilateErodeFor(band.EmbeddingImage().Dim()), 0, band, mask, opts)
}

// Curv performs one SIoIS (polarity=false/0) or ISoSI (polarity=true/1)
// composition step of the curvature structuring-element family. Callers
// alternate polarity between successive calls to approximate symmetric
// mean-curvature motion (spec.md §4.5).
func Curv(polarity uint8, band narrowband.Band, opts Options) {
	Apply(CurvatureFor(band.EmbeddingImage().Dim()), polarity, band, AlwaysTrue, opts)
}
