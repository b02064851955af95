package analysis

import (
	"fmt"
	"image"

	"github.com/rs/zerolog"

	"github.com/ironsheep/image-moments/internal/detection"
	"github.com/ironsheep/image-moments/internal/imaging"
	"github.com/ironsheep/image-moments/internal/moments"
)

// Threshold methods.
const (
	MethodFixed = "fixed"
	MethodOtsu  = "otsu"
)

// Options configures one pipeline run.
type Options struct {
	// Threshold is the fixed binarization level. Intensities above it are
	// foreground. Ignored when Method is MethodOtsu.
	Threshold uint8

	// MaxValue is the value foreground pixels carry in the raw binary image.
	// Zero selects DefaultMaxValue.
	MaxValue uint8

	// Method is MethodFixed or MethodOtsu. Empty means MethodFixed.
	Method string

	// Connectivity is 4 or 8.
	Connectivity detection.Connectivity

	// Labeler computes connected components. Nil selects the flood-fill labeler.
	Labeler detection.Labeler
}

// DefaultOptions returns a fixed threshold of 127, max value 255 and
// 8-connectivity.
func DefaultOptions() Options {
	return Options{
		Threshold:    imaging.DefaultThreshold,
		MaxValue:     imaging.DefaultMaxValue,
		Method:       MethodFixed,
		Connectivity: detection.Eight,
		Labeler:      detection.FloodFillLabeler{},
	}
}

// Result holds every intermediate and final value of a run.
type Result struct {
	// Threshold is the level actually used for binarization.
	Threshold uint8

	// Binary is the thresholded mask before region selection.
	Binary *imaging.Mask

	// Selection is the dominant region.
	Selection *detection.Selection

	// Moments and Shape describe the selected region.
	Moments moments.Bundle
	Shape   moments.Descriptor
}

// Analyzer runs binarize -> select -> moments -> descriptor on one image.
//
// An Analyzer carries no state between runs; Run may be called repeatedly.
type Analyzer struct {
	opts Options
	log  zerolog.Logger
}

// New creates an Analyzer. Zero-valued fields of opts fall back to the
// DefaultOptions values, except Threshold, where 0 is a valid level.
func New(opts Options, log zerolog.Logger) *Analyzer {
	if opts.MaxValue == 0 {
		opts.MaxValue = imaging.DefaultMaxValue
	}
	if opts.Method == "" {
		opts.Method = MethodFixed
	}
	if opts.Connectivity == 0 {
		opts.Connectivity = detection.Eight
	}
	if opts.Labeler == nil {
		opts.Labeler = detection.FloodFillLabeler{}
	}
	return &Analyzer{opts: opts, log: log}
}

// Run analyses img. Errors from any stage stop the pipeline and are returned
// wrapped with the stage name; errors.Is(err, moments.ErrEmptyRegion) reports
// that no object was found.
func (a *Analyzer) Run(img *image.Gray) (*Result, error) {
	b := img.Bounds()
	a.log.Debug().Int("rows", b.Dy()).Int("cols", b.Dx()).Str("method", a.opts.Method).Msg("starting analysis")

	level := a.opts.Threshold
	switch a.opts.Method {
	case MethodFixed:
	case MethodOtsu:
		level = imaging.OtsuThreshold(imaging.Histogram(img))
		a.log.Debug().Uint8("threshold", level).Msg("otsu threshold computed")
	default:
		return nil, fmt.Errorf("unknown threshold method %q", a.opts.Method)
	}

	binary := imaging.Binarize(img, level, a.opts.MaxValue)
	a.log.Debug().Int("foreground", binary.Area()).Uint8("threshold", level).Msg("binarized")

	selector := &detection.Selector{
		Labeler:      a.opts.Labeler,
		Connectivity: a.opts.Connectivity,
	}
	sel, err := selector.Select(binary)
	if err != nil {
		return nil, fmt.Errorf("region selection: %w", err)
	}
	a.log.Debug().
		Int("components", sel.Components).
		Int("label", sel.Label).
		Int("area", sel.Area).
		Msg("largest region selected")

	bundle, err := moments.Compute(sel.Mask)
	if err != nil {
		a.log.Warn().Int("components", sel.Components).Msg("no object found to analyze")
		return nil, fmt.Errorf("moment engine: %w", err)
	}

	shape := moments.Describe(bundle)
	a.log.Info().
		Int("area", bundle.Area).
		Float64("centroid_x", bundle.CentroidX).
		Float64("centroid_y", bundle.CentroidY).
		Float64("orientation_deg", shape.OrientationDegrees()).
		Float64("roundedness", shape.Roundedness).
		Msg("analysis complete")

	return &Result{
		Threshold: level,
		Binary:    binary,
		Selection: sel,
		Moments:   bundle,
		Shape:     shape,
	}, nil
}
