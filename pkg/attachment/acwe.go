package attachment

import (
	"github.com/pmneila/morphsnakes/internal/grid"
	"github.com/pmneila/morphsnakes/pkg/imageview"
	"github.com/pmneila/morphsnakes/pkg/narrowband"
)

// ACWE applies the Chan-Vese region-competition criterion. Cells where the
// embedding has zero local gradient are skipped — they have no normal
// direction to evaluate the criterion along. This asymmetry with Update,
// which re-seeds neighbors of every flipped cell regardless of gradient,
// is intentional and preserved from the reference implementation (see
// spec.md §9's Open Question).
func ACWE(band *narrowband.ACWENarrowBand, lambda1, lambda2 float64) {
	embedding := band.Embedding
	image := band.Image

	avgIn := band.AverageInside()
	avgOut := band.AverageOutside()

	for _, p := range band.Positions() {
		if hasZeroGradient(embedding, p) {
			continue
		}

		val := embedding.AtPosition(p)
		imgVal := image.AtPosition(p)
		diffIn := imgVal - avgIn
		diffOut := imgVal - avgOut
		criterion := lambda1*diffIn*diffIn - lambda2*diffOut*diffOut

		if (val == 0 && criterion < 0) || (val == 1 && criterion > 0) {
			band.ToggleCell(p)
		}
	}
	band.Update()
}

func hasZeroGradient(embedding *imageview.Image[uint8], p grid.Position) bool {
	for _, s := range embedding.Stride {
		uNext := embedding.At(p.Offset + s)
		uPrev := embedding.At(p.Offset - s)
		if uNext != uPrev {
			return false
		}
	}
	return true
}
