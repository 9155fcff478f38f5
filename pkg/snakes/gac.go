// Package snakes provides the two evolution controllers — MorphGAC and
// MorphACWE — that compose the narrow band, the morphological operators,
// and the image-attachment drivers into the per-step pipeline spec.md §4.8
// describes: balloon (GAC only) → image attachment → smoothing curvature
// iterations (alternating polarity) → cleanup. Polarity state persists
// across steps, owned by the controller, so alternation is deterministic
// over an entire evolution rather than reset each step.
package snakes

import (
	"github.com/pmneila/morphsnakes/internal/grid"
	"github.com/pmneila/morphsnakes/pkg/attachment"
	"github.com/pmneila/morphsnakes/pkg/imageview"
	"github.com/pmneila/morphsnakes/pkg/morph"
	"github.com/pmneila/morphsnakes/pkg/narrowband"
)

// GACOptions configures a MorphGAC evolution.
type GACOptions struct {
	// Smoothing is the number of curvature passes run per step.
	Smoothing int
	// Threshold (θ) gates which cells the balloon stage is allowed to
	// touch.
	Threshold float64
	// Balloon (ν) is the balloon pressure; positive dilates, negative
	// erodes, zero disables the balloon stage.
	Balloon float64
	// Workers controls the morphological operators' optional parallel
	// decision phase (0 or 1 = sequential).
	Workers int
}

// DefaultGACOptions returns the spec's documented defaults: one curvature
// pass, zero threshold, zero (disabled) balloon.
func DefaultGACOptions() GACOptions {
	return GACOptions{Smoothing: 1}
}

// ProgressCallback reports progress during a multi-step Run. completed and
// total are step counts; message, when non-empty, is a milestone to
// display rather than a plain progress update.
type ProgressCallback func(completed, total int, message string)

// MorphGAC is the Morphological Geodesic Active Contours controller.
type MorphGAC struct {
	band  *narrowband.NarrowBand
	image *imageview.Image[float64] // g(I), the stopping criterion
	grads []*imageview.Image[float64]
	opts  GACOptions

	curvPolarity uint8
	progress     ProgressCallback
}

// SetProgressCallback installs a callback invoked after every Step during
// Run. Pass nil to disable progress reporting.
func (m *MorphGAC) SetProgressCallback(cb ProgressCallback) {
	m.progress = cb
}

// NewMorphGAC constructs a MorphGAC over embedding. image is the edge
// indicator g(I) (see package preprocess), and grads its gradient along
// each grid axis.
func NewMorphGAC(embedding *imageview.Image[uint8], image *imageview.Image[float64], grads []*imageview.Image[float64], opts GACOptions) *MorphGAC {
	return &MorphGAC{
		band:  narrowband.New(embedding),
		image: image,
		grads: grads,
		opts:  opts,
	}
}

// Band exposes the underlying narrow band, e.g. for inspection in tests or
// diagnostics.
func (m *MorphGAC) Band() *narrowband.NarrowBand { return m.band }

// Step performs one balloon → attachment → smoothing → cleanup iteration.
func (m *MorphGAC) Step() {
	morphOpts := morph.Options{Workers: m.opts.Workers}

	switch {
	case m.opts.Balloon > 0:
		mask := m.balloonMask(m.opts.Threshold / m.opts.Balloon)
		morph.DilateMasked(m.band, mask, morphOpts)
	case m.opts.Balloon < 0:
		mask := m.balloonMask(-m.opts.Threshold / m.opts.Balloon)
		morph.ErodeMasked(m.band, mask, morphOpts)
	}

	attachment.GAC(m.band, m.grads)

	for i := 0; i < m.opts.Smoothing; i++ {
		morph.Curv(m.curvPolarity, m.band, morphOpts)
		m.curvPolarity = 1 - m.curvPolarity
	}

	m.band.Cleanup()
}

// balloonMask implements spec.md §4.8's `image[pos.coord] > threshold`
// gate (threshold is already divided by balloon by the caller).
func (m *MorphGAC) balloonMask(threshold float64) morph.Mask {
	image := m.image
	return func(p grid.Position) bool {
		return image.AtPosition(p) > threshold
	}
}

// Run calls Step n times, reporting progress after each step if a callback
// is installed.
func (m *MorphGAC) Run(n int) {
	for i := 0; i < n; i++ {
		m.Step()
		if m.progress != nil {
			m.progress(i+1, n, "")
		}
	}
}
