// Package attachment implements the two image-attachment drivers that
// steer narrow-band evolution: GAC (Geodesic Active Contours, gradient-dot
// -product criterion) and ACWE (Active Contours Without Edges, Chan-Vese
// region-energy criterion). Both stage toggles against the pre-commit
// embedding and then call Update exactly once, per spec.md §4.6/§4.7.
package attachment

import (
	"github.com/pmneila/morphsnakes/internal/grid"
	"github.com/pmneila/morphsnakes/pkg/imageview"
	"github.com/pmneila/morphsnakes/pkg/narrowband"
)

// GAC applies the geodesic active contour criterion: for each cell p, the
// central-difference dot product of the embedding's gradient with the
// edge indicator's gradient grads tells whether the boundary is riding
// uphill or downhill on the indicator. grads[i] must share the embedding's
// shape and give the edge indicator's gradient along axis i.
func GAC(band *narrowband.NarrowBand, grads []*imageview.Image[float64]) {
	embedding := band.Embedding

	for _, p := range band.Positions() {
		dot := dotProduct(embedding, grads, p)
		val := embedding.AtPosition(p)
		if shouldToggleAttachment(val, dot) {
			band.ToggleCell(p)
		}
	}
	band.Update()
}

func dotProduct(embedding *imageview.Image[uint8], grads []*imageview.Image[float64], p grid.Position) float64 {
	dot := 0.0
	for i, g := range grads {
		s := embedding.Stride[i]
		uNext := embedding.At(p.Offset + s)
		uPrev := embedding.At(p.Offset - s)
		gradU := float64(int(uNext) - int(uPrev))
		dot += g.AtPosition(p) * gradU
	}
	return dot
}

func shouldToggleAttachment(val uint8, dot float64) bool {
	return (val == 1 && dot < 0) || (val == 0 && dot > 0)
}
