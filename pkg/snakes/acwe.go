package snakes

import (
	"github.com/pmneila/morphsnakes/pkg/attachment"
	"github.com/pmneila/morphsnakes/pkg/imageview"
	"github.com/pmneila/morphsnakes/pkg/morph"
	"github.com/pmneila/morphsnakes/pkg/narrowband"
)

// ACWEOptions configures a MorphACWE evolution.
type ACWEOptions struct {
	// Smoothing is the number of curvature passes run per step.
	Smoothing int
	// Lambda1, Lambda2 weigh the interior and exterior region terms of
	// the Chan-Vese energy functional.
	Lambda1, Lambda2 float64
	// Workers controls the morphological operators' optional parallel
	// decision phase (0 or 1 = sequential).
	Workers int
}

// DefaultACWEOptions returns the spec's documented defaults: one
// curvature pass, lambda1 = lambda2 = 1.0.
func DefaultACWEOptions() ACWEOptions {
	return ACWEOptions{Smoothing: 1, Lambda1: 1.0, Lambda2: 1.0}
}

// MorphACWE is the Morphological Active Contours Without Edges (Chan-Vese)
// controller.
type MorphACWE struct {
	band *narrowband.ACWENarrowBand
	opts ACWEOptions

	curvPolarity uint8
	progress     ProgressCallback
}

// SetProgressCallback installs a callback invoked after every Step during
// Run. Pass nil to disable progress reporting.
func (m *MorphACWE) SetProgressCallback(cb ProgressCallback) {
	m.progress = cb
}

// NewMorphACWE constructs a MorphACWE over embedding, driven by the
// reference intensity image. The initial embedding must have both
// interior and exterior cells (AverageInside/AverageOutside divide by the
// respective count).
func NewMorphACWE(embedding *imageview.Image[uint8], image *imageview.Image[float64], opts ACWEOptions) *MorphACWE {
	return &MorphACWE{
		band: narrowband.NewACWE(embedding, image),
		opts: opts,
	}
}

// Band exposes the underlying ACWE narrow band.
func (m *MorphACWE) Band() *narrowband.ACWENarrowBand { return m.band }

// Step performs one image-attachment → smoothing → cleanup iteration.
func (m *MorphACWE) Step() {
	attachment.ACWE(m.band, m.opts.Lambda1, m.opts.Lambda2)

	morphOpts := morph.Options{Workers: m.opts.Workers}
	for i := 0; i < m.opts.Smoothing; i++ {
		morph.Curv(m.curvPolarity, m.band, morphOpts)
		m.curvPolarity = 1 - m.curvPolarity
	}

	m.band.Cleanup()
}

// Run calls Step n times, reporting progress after each step if a callback
// is installed.
func (m *MorphACWE) Run(n int) {
	for i := 0; i < n; i++ {
		m.Step()
		if m.progress != nil {
			m.progress(i+1, n, "")
		}
	}
}
