package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/pmneila/morphsnakes/pkg/config"
	"github.com/pmneila/morphsnakes/pkg/imageview"
	"github.com/pmneila/morphsnakes/pkg/metrics"
	"github.com/pmneila/morphsnakes/pkg/preprocess"
	"github.com/pmneila/morphsnakes/pkg/snakes"
)

func main() {
	inputPath := flag.String("input", "", "Input image to segment")
	outputPath := flag.String("output", "boundary.png", "Output mask filename")
	configPath := flag.String("config", "", "Path to a YAML config file (default: built-in defaults)")
	method := flag.String("method", "acwe", "Evolution method: \"gac\" or \"acwe\"")
	width := flag.Int("width", 256, "Working grid width")
	height := flag.Int("height", 256, "Working grid height")
	numWorkers := flag.Int("workers", runtime.NumCPU(), "Number of goroutines for the operator decision phase (default: all available)")
	verbose := flag.Bool("verbose", false, "Print progress every 10 steps")
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	fmt.Println("================================")
	fmt.Println("MORPHOLOGICAL NARROW-BAND SNAKE EVOLUTION")
	fmt.Println("================================")

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	cfg.Processing.NumWorkers = *numWorkers

	src, err := decodeImage(*inputPath)
	if err != nil {
		log.Fatalf("Failed to decode input image: %v", err)
	}

	shape := []int{*height, *width}
	fmt.Printf("Resampling input onto a %dx%d working grid...\n", *height, *width)
	gray := preprocess.ToGrayscale(src, shape)

	center := []int{*height / 2, *width / 2}
	embedding := preprocess.DiskMask(shape, center, cfg.Processing.InitRadius)
	initialArea := metrics.Area(embedding)
	fmt.Printf("Initial embedding area: %d cells\n", initialArea)

	startTime := time.Now()

	switch *method {
	case "gac":
		fmt.Println("Running Morphological Geodesic Active Contours...")
		g, grads := preprocess.EdgeIndicator(gray, cfg.Processing.Sigma, cfg.Processing.Alpha)
		opts := snakes.GACOptions{
			Smoothing: cfg.GAC.Smoothing,
			Threshold: cfg.GAC.Threshold,
			Balloon:   cfg.GAC.Balloon,
			Workers:   cfg.Processing.NumWorkers,
		}
		m := snakes.NewMorphGAC(embedding, g, grads, opts)
		if *verbose {
			m.SetProgressCallback(progressPrinter())
		}
		m.Run(cfg.GAC.Iterations)
	case "acwe":
		fmt.Println("Running Morphological Active Contours Without Edges...")
		line := preprocess.LineIndicator(gray, cfg.Processing.Sigma)
		opts := snakes.ACWEOptions{
			Smoothing: cfg.ACWE.Smoothing,
			Lambda1:   cfg.ACWE.Lambda1,
			Lambda2:   cfg.ACWE.Lambda2,
			Workers:   cfg.Processing.NumWorkers,
		}
		m := snakes.NewMorphACWE(embedding, line, opts)
		if *verbose {
			m.SetProgressCallback(progressPrinter())
		}
		m.Run(cfg.ACWE.Iterations)
	default:
		log.Fatalf("Unknown method %q: expected \"gac\" or \"acwe\"", *method)
	}

	elapsed := time.Since(startTime)

	finalArea := metrics.Area(embedding)
	fmt.Printf("\nEvolution completed in %.2f seconds\n", elapsed.Seconds())
	fmt.Printf("Final boundary area: %d cells (initial: %d, change: %+d)\n", finalArea, initialArea, finalArea-initialArea)
	fmt.Printf("Used %d workers for the operator decision phase\n", cfg.Processing.NumWorkers)

	if err := writeMask(*outputPath, embedding); err != nil {
		log.Fatalf("Failed to write output mask: %v", err)
	}
	fmt.Printf("Boundary mask written to: %s\n", *outputPath)
}

func progressPrinter() snakes.ProgressCallback {
	return func(completed, total int, message string) {
		if message != "" {
			fmt.Println(message)
			return
		}
		if completed%10 == 0 || completed == total {
			fmt.Printf("  step %d/%d\n", completed, total)
		}
	}
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

func writeMask(path string, embedding *imageview.Image[uint8]) error {
	shape := embedding.Shape
	height, width := shape[0], shape[1]

	out := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := embedding.AtCoord([]int{y, x})
			c := uint8(0)
			if v != 0 {
				c = 255
			}
			out.SetGray(x, y, color.Gray{Y: c})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, out)
}
