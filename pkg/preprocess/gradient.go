package preprocess

import (
	"math"

	"github.com/pmneila/morphsnakes/pkg/imageview"
)

// Gradient returns the central-difference gradient of img along every
// axis, one image per axis, using the same stride-indexed central
// difference convention as package attachment's GAC driver.
func Gradient(img *imageview.Image[float64]) []*imageview.Image[float64] {
	shape := img.Shape
	grads := make([]*imageview.Image[float64], img.Dim())
	for axis := range grads {
		data := make([]float64, len(img.Data))
		out := imageview.New(data, shape)
		grads[axis] = out

		stride := img.Stride[axis]
		n := shape[axis]
		it := img.Positions()
		for it.Next() {
			p := it.Position()
			c := p.Coord[axis]
			var d float64
			switch {
			case c == 0:
				d = img.At(p.Offset+stride) - img.At(p.Offset)
			case c == n-1:
				d = img.At(p.Offset) - img.At(p.Offset-stride)
			default:
				d = (img.At(p.Offset+stride) - img.At(p.Offset-stride)) / 2
			}
			out.SetPosition(p, d)
		}
	}
	return grads
}

// Magnitude returns the pointwise Euclidean norm of a set of per-axis
// gradient images, all sharing the same shape.
func Magnitude(grads []*imageview.Image[float64]) *imageview.Image[float64] {
	shape := grads[0].Shape
	data := make([]float64, len(grads[0].Data))
	out := imageview.New(data, shape)
	for i := range data {
		sum := 0.0
		for _, g := range grads {
			v := g.Data[i]
			sum += v * v
		}
		data[i] = math.Sqrt(sum)
	}
	return out
}
