package report

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-moments/internal/moments"
)

func barSummary() Summary {
	b := moments.Bundle{Area: 8, CentroidX: 2.5, CentroidY: 4.5, A: 2, B: 0, C: 10}
	return NewSummary(127, 1, b, moments.Describe(b))
}

func TestSummary_Lines(t *testing.T) {
	want := []string{
		"Area: 8 pixels",
		"Centroid (x, y): (2.50, 4.50)",
		"Orientation: 90.00 degrees",
		"Roundedness: 0.20",
	}
	assert.Equal(t, want, barSummary().Lines())
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, barSummary()))

	assert.Equal(t,
		"Area: 8 pixels\nCentroid (x, y): (2.50, 4.50)\nOrientation: 90.00 degrees\nRoundedness: 0.20\n",
		buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, barSummary()))

	var got Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 8, got.Area)
	assert.Equal(t, Centroid{X: 2.5, Y: 4.5}, got.Centroid)
	assert.InDelta(t, math.Pi/2, got.OrientationRadians, 1e-9)
	assert.InDelta(t, 0.2, got.Roundedness, 1e-9)
	assert.Equal(t, 127, got.Threshold)
	assert.Equal(t, 10.0, got.Moments.C)
}
