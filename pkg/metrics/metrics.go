// Package metrics reports how a narrow-band evolution's final boundary
// compares to a previous one or to a reference segmentation: area, overlap,
// and the intensity-correlation style quality report the teacher's
// reconstruction pipeline produced for its volumes.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/pmneila/morphsnakes/pkg/imageview"
)

// Area counts the number of interior (value 1) cells of a binary embedding.
func Area(emb *imageview.Image[uint8]) int {
	area := 0
	for _, v := range emb.Data {
		if v != 0 {
			area++
		}
	}
	return area
}

// SymmetricDifference counts the cells where a and b disagree. a and b must
// share the same shape.
func SymmetricDifference(a, b *imageview.Image[uint8]) int {
	diff := 0
	for i := range a.Data {
		if a.Data[i] != b.Data[i] {
			diff++
		}
	}
	return diff
}

// DiceCoefficient returns the Dice similarity coefficient 2|A∩B|/(|A|+|B|)
// between two binary embeddings, the standard overlap measure between a
// segmentation and a reference mask. Two empty masks are defined as
// perfectly similar.
func DiceCoefficient(a, b *imageview.Image[uint8]) float64 {
	intersection, sizeA, sizeB := 0, 0, 0
	for i := range a.Data {
		if a.Data[i] != 0 {
			sizeA++
		}
		if b.Data[i] != 0 {
			sizeB++
		}
		if a.Data[i] != 0 && b.Data[i] != 0 {
			intersection++
		}
	}
	if sizeA+sizeB == 0 {
		return 1
	}
	return 2 * float64(intersection) / float64(sizeA+sizeB)
}

// RMSE computes the root mean square error between two same-length
// intensity fields.
func RMSE(a, b []float64) float64 {
	n := len(a)
	if n != len(b) || n == 0 {
		return 0
	}
	mse := 0.0
	for i := 0; i < n; i++ {
		diff := a[i] - b[i]
		mse += diff * diff
	}
	mse /= float64(n)
	return math.Sqrt(mse)
}

// Correlation reports the Pearson correlation between two same-length
// intensity fields, using Gonum's stat package.
func Correlation(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	return stat.Correlation(a, b, nil)
}

// Report summarizes how one evolution's boundary differs from another's,
// analogous to the teacher's ValidationMetrics block.
type Report struct {
	Area               int
	PreviousArea       int
	AreaChange         int
	CellsChanged       int
	IntensityRMSE      float64
	IntensityCorrelation float64
}

// Compare builds a Report comparing the current embedding/image pair
// against a previous one. Both pairs must share shape.
func Compare(prev, curr *imageview.Image[uint8], prevImage, currImage *imageview.Image[float64]) Report {
	return Report{
		Area:                 Area(curr),
		PreviousArea:         Area(prev),
		AreaChange:           Area(curr) - Area(prev),
		CellsChanged:         SymmetricDifference(prev, curr),
		IntensityRMSE:        RMSE(prevImage.Data, currImage.Data),
		IntensityCorrelation: Correlation(prevImage.Data, currImage.Data),
	}
}
