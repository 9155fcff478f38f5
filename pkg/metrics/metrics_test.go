package metrics

import (
	"math"
	"testing"

	"github.com/pmneila/morphsnakes/pkg/imageview"
)

func binaryDisk(shape []int, center []int, radius float64) *imageview.Image[uint8] {
	n := 1
	for _, s := range shape {
		n *= s
	}
	img := imageview.New(make([]uint8, n), shape)
	it := img.Positions()
	for it.Next() {
		p := it.Position()
		d := 0.0
		for i, c := range p.Coord {
			dd := float64(c - center[i])
			d += dd * dd
		}
		if math.Sqrt(d) <= radius {
			img.SetPosition(p, 1)
		}
	}
	return img
}

func TestAreaCountsOnes(t *testing.T) {
	shape := []int{20, 20}
	disk := binaryDisk(shape, []int{10, 10}, 5)
	area := Area(disk)
	if area == 0 {
		t.Fatal("expected a nonzero area for a radius-5 disk")
	}
}

func TestDiceCoefficientIdenticalMasksIsOne(t *testing.T) {
	shape := []int{20, 20}
	disk := binaryDisk(shape, []int{10, 10}, 5)
	if got := DiceCoefficient(disk, disk); math.Abs(got-1) > 1e-12 {
		t.Fatalf("expected Dice=1 for identical masks, got %v", got)
	}
}

func TestDiceCoefficientEmptyMasksIsOne(t *testing.T) {
	shape := []int{10, 10}
	empty1 := imageview.New(make([]uint8, 100), shape)
	empty2 := imageview.New(make([]uint8, 100), shape)
	if got := DiceCoefficient(empty1, empty2); got != 1 {
		t.Fatalf("expected Dice=1 for two empty masks, got %v", got)
	}
}

func TestDiceCoefficientDisjointMasksIsZero(t *testing.T) {
	shape := []int{20, 20}
	a := binaryDisk(shape, []int{5, 5}, 2)
	b := binaryDisk(shape, []int{15, 15}, 2)
	if got := DiceCoefficient(a, b); got != 0 {
		t.Fatalf("expected Dice=0 for disjoint masks, got %v", got)
	}
}

func TestSymmetricDifferenceZeroForIdenticalMasks(t *testing.T) {
	shape := []int{10, 10}
	disk := binaryDisk(shape, []int{5, 5}, 3)
	if got := SymmetricDifference(disk, disk); got != 0 {
		t.Fatalf("expected zero symmetric difference against itself, got %v", got)
	}
}

func TestRMSEZeroForIdenticalData(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}
	if got := RMSE(data, data); got != 0 {
		t.Fatalf("expected zero RMSE for identical data, got %v", got)
	}
}

func TestCorrelationPerfectForIdenticalData(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	if got := Correlation(data, data); math.Abs(got-1) > 1e-9 {
		t.Fatalf("expected correlation 1 for identical data, got %v", got)
	}
}

func TestCompareReportsAreaChange(t *testing.T) {
	shape := []int{20, 20}
	prev := binaryDisk(shape, []int{10, 10}, 5)
	curr := binaryDisk(shape, []int{10, 10}, 8)
	prevImg := imageview.New(make([]float64, 400), shape)
	currImg := imageview.New(make([]float64, 400), shape)

	report := Compare(prev, curr, prevImg, currImg)
	if report.AreaChange <= 0 {
		t.Fatalf("expected a positive area change when the disk grows, got %v", report.AreaChange)
	}
	if report.CellsChanged == 0 {
		t.Fatal("expected a nonzero number of changed cells")
	}
}
