package narrowband

import (
	"github.com/pmneila/morphsnakes/internal/grid"
	"github.com/pmneila/morphsnakes/pkg/imageview"
)

// ACWENarrowBand extends NarrowBand with the running interior/exterior
// intensity statistics the Chan-Vese (ACWE) image-attachment driver needs:
// CountIn/CountOut and SumIn/SumOut over the reference image, initialised
// once from a full interior scan and updated incrementally on every flip.
//
// Go has no virtual dispatch, so Update is not overridden polymorphically —
// it is reimplemented here with the extra updateAverages hook, the same
// way the C++ reference implementation duplicates NarrowBand::update
// inside ACWENarrowBand::update rather than factoring out a shared step.
type ACWENarrowBand struct {
	*NarrowBand
	Image *imageview.Image[float64]

	CountIn, CountOut int
	SumIn, SumOut     float64
}

// NewACWE constructs an ACWENarrowBand from an embedding and its
// reference image. embedding and image must share a shape.
func NewACWE(embedding *imageview.Image[uint8], image *imageview.Image[float64]) *ACWENarrowBand {
	validateShapes(embedding.Shape, image.Shape)

	a := &ACWENarrowBand{
		NarrowBand: New(embedding),
		Image:      image,
	}
	a.initAverages()
	return a
}

func (a *ACWENarrowBand) initAverages() {
	a.CountIn, a.CountOut = 0, 0
	a.SumIn, a.SumOut = 0, 0

	it := a.Embedding.InteriorPositions()
	for it.Next() {
		p := it.Position()
		imgVal := a.Image.AtPosition(p)
		if a.Embedding.AtPosition(p) == 0 {
			a.CountOut++
			a.SumOut += imgVal
		} else {
			a.CountIn++
			a.SumIn += imgVal
		}
	}
}

func (a *ACWENarrowBand) updateAverages(p grid.Position, newValue uint8) {
	imgVal := a.Image.AtPosition(p)
	if newValue == 0 {
		a.CountIn--
		a.CountOut++
		a.SumIn -= imgVal
		a.SumOut += imgVal
	} else {
		a.CountOut--
		a.CountIn++
		a.SumOut -= imgVal
		a.SumIn += imgVal
	}
}

// AverageInside returns sum_in/count_in. Undefined (division by zero) if
// the embedding has no interior cells — a caller precondition.
func (a *ACWENarrowBand) AverageInside() float64 {
	return a.SumIn / float64(a.CountIn)
}

// AverageOutside returns sum_out/count_out. Undefined if the embedding has
// no exterior cells — a caller precondition.
func (a *ACWENarrowBand) AverageOutside() float64 {
	return a.SumOut / float64(a.CountOut)
}

// Update commits staged toggles exactly like NarrowBand.Update, additionally
// updating the running averages between each flip and the clearing of its
// toggle.
func (a *ACWENarrowBand) Update() {
	toFlip := a.staged()

	reseed := make(map[int]grid.Position)
	for _, pos := range toFlip {
		v := a.Embedding.AtPosition(pos)
		newVal := 1 - v
		a.Embedding.SetPosition(pos, newVal)
		a.updateAverages(pos, newVal)

		a.cells[pos.Offset].cell.Toggle = false
		a.collectReseed(pos, reseed)
	}
	a.mergeReseed(reseed)
}
