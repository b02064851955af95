package analysis

import (
	"bytes"
	"errors"
	"image"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-moments/internal/detection"
	"github.com/ironsheep/image-moments/internal/moments"
)

// grayWithRects returns a rows x cols image of value bg with each rectangle
// {r0, r1, c0, c1} (inclusive) filled with fg.
func grayWithRects(rows, cols int, bg, fg uint8, rects ...[4]int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, cols, rows))
	for i := range img.Pix {
		img.Pix[i] = bg
	}
	for _, r := range rects {
		for i := r[0]; i <= r[1]; i++ {
			for j := r[2]; j <= r[3]; j++ {
				img.Pix[i*img.Stride+j] = fg
			}
		}
	}
	return img
}

func TestAnalyzer_Run(t *testing.T) {
	// A tall 4x2 bar plus a smaller blob that must be discarded.
	img := grayWithRects(10, 10, 0, 255,
		[4]int{3, 6, 2, 3},
		[4]int{0, 0, 8, 9},
	)

	res, err := New(DefaultOptions(), zerolog.Nop()).Run(img)
	require.NoError(t, err)

	assert.Equal(t, uint8(127), res.Threshold)
	assert.Equal(t, 10, res.Binary.Area())
	assert.Equal(t, 2, res.Selection.Components)
	assert.Equal(t, 8, res.Moments.Area)
	assert.InDelta(t, 2.5, res.Moments.CentroidX, 1e-12)
	assert.InDelta(t, 4.5, res.Moments.CentroidY, 1e-12)
	assert.InDelta(t, math.Pi/2, res.Shape.Orientation, 1e-9)
	assert.InDelta(t, 0.2, res.Shape.Roundedness, 1e-9)
}

func TestAnalyzer_ZeroMaxValueUsesDefault(t *testing.T) {
	img := grayWithRects(10, 10, 0, 255, [4]int{3, 6, 2, 3})

	res, err := New(Options{Threshold: 127}, zerolog.Nop()).Run(img)
	require.NoError(t, err)
	assert.Equal(t, 8, res.Moments.Area)
	assert.Equal(t, 8, res.Binary.Area())
}

func TestAnalyzer_ThresholdIsStrict(t *testing.T) {
	img := grayWithRects(5, 5, 0, 127, [4]int{1, 3, 1, 3})

	_, err := New(DefaultOptions(), zerolog.Nop()).Run(img)
	require.Error(t, err)
	assert.True(t, errors.Is(err, moments.ErrEmptyRegion))

	opts := DefaultOptions()
	opts.Threshold = 126
	res, err := New(opts, zerolog.Nop()).Run(img)
	require.NoError(t, err)
	assert.Equal(t, 9, res.Moments.Area)
}

func TestAnalyzer_EmptyImage(t *testing.T) {
	img := grayWithRects(6, 6, 0, 0)

	res, err := New(DefaultOptions(), zerolog.Nop()).Run(img)
	assert.Nil(t, res)
	require.Error(t, err)
	assert.True(t, errors.Is(err, moments.ErrEmptyRegion))
	assert.Contains(t, err.Error(), "moment engine")
}

func TestAnalyzer_Otsu(t *testing.T) {
	// Object at 200 on a background of 60; a fixed level of 210 finds nothing.
	img := grayWithRects(20, 20, 60, 200, [4]int{5, 14, 8, 11})

	opts := DefaultOptions()
	opts.Threshold = 210
	opts.Method = MethodOtsu

	res, err := New(opts, zerolog.Nop()).Run(img)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Threshold, uint8(60))
	assert.Less(t, res.Threshold, uint8(200))
	assert.Equal(t, 40, res.Moments.Area)
}

func TestAnalyzer_UnknownMethod(t *testing.T) {
	opts := DefaultOptions()
	opts.Method = "adaptive"

	_, err := New(opts, zerolog.Nop()).Run(grayWithRects(2, 2, 0, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "adaptive")
}

func TestAnalyzer_Connectivity(t *testing.T) {
	// Two 2x2 blocks touching at one corner.
	img := grayWithRects(6, 6, 0, 255,
		[4]int{0, 1, 0, 1},
		[4]int{2, 3, 2, 3},
	)

	res, err := New(Options{Threshold: 127, MaxValue: 255}, zerolog.Nop()).Run(img)
	require.NoError(t, err)
	assert.Equal(t, 8, res.Moments.Area, "zero options default to 8-connectivity")

	res, err = New(Options{Threshold: 127, MaxValue: 255, Connectivity: detection.Four}, zerolog.Nop()).Run(img)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Moments.Area)
	assert.Equal(t, 2, res.Selection.Components)
	assert.InDelta(t, 0.5, res.Moments.CentroidX, 1e-12)
}

func TestAnalyzer_InvalidConnectivity(t *testing.T) {
	img := grayWithRects(3, 3, 0, 255, [4]int{1, 1, 1, 1})

	_, err := New(Options{Threshold: 127, MaxValue: 255, Connectivity: 6}, zerolog.Nop()).Run(img)
	require.Error(t, err)
	assert.True(t, errors.Is(err, detection.ErrInvalidConnectivity))
	assert.Contains(t, err.Error(), "region selection")
}

func TestAnalyzer_Logging(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	img := grayWithRects(8, 8, 0, 255, [4]int{2, 5, 2, 5})

	_, err := New(DefaultOptions(), log).Run(img)
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.Contains(out, "analysis complete"), out)
	assert.True(t, strings.Contains(out, `"area":16`), out)
}

func TestAnalyzer_RepeatedRuns(t *testing.T) {
	a := New(DefaultOptions(), zerolog.Nop())
	img := grayWithRects(12, 12, 0, 255, [4]int{2, 9, 4, 6})

	first, err := a.Run(img)
	require.NoError(t, err)
	second, err := a.Run(img)
	require.NoError(t, err)
	assert.Equal(t, first.Moments, second.Moments)
	assert.Equal(t, first.Shape, second.Shape)
}
