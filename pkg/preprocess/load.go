package preprocess

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/pmneila/morphsnakes/pkg/imageview"
)

// ToGrayscale resamples src onto a shape-shaped grid (shape is
// [height, width] in row-major image convention) and converts it to a
// float64 intensity field in [0, 255]. Resampling uses a Catmull-Rom
// kernel, matching the teacher's preference for quality resampling over
// nearest-neighbor when rebuilding a working grid from arbitrary input.
func ToGrayscale(src image.Image, shape []int) *imageview.Image[float64] {
	if len(shape) != 2 {
		panic("preprocess: ToGrayscale only supports 2D working grids")
	}
	height, width := shape[0], shape[1]

	dst := image.NewGray(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	data := make([]float64, height*width)
	for y := 0; y < height; y++ {
		row := dst.PixOffset(0, y)
		for x := 0; x < width; x++ {
			data[y*width+x] = float64(dst.Pix[row+x])
		}
	}
	return imageview.New(data, shape)
}
