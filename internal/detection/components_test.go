package detection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-moments/internal/imaging"
)

// maskFromRows builds a mask from strings where '#' is foreground.
func maskFromRows(rows ...string) *imaging.Mask {
	m := imaging.NewMask(len(rows), len(rows[0]))
	for i, r := range rows {
		for j, ch := range r {
			if ch == '#' {
				m.Set(i, j, 1)
			}
		}
	}
	return m
}

func TestFloodFillLabeler_Connectivity(t *testing.T) {
	diagonal := maskFromRows(
		"#..",
		".#.",
		"..#",
	)

	tests := []struct {
		name      string
		conn      Connectivity
		wantCount int
	}{
		{"eight joins diagonals", Eight, 1},
		{"four splits diagonals", Four, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels, err := FloodFillLabeler{}.Label(diagonal, tt.conn)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, labels.Count())
			assert.Equal(t, 6, labels.Areas[0], "background count")
		})
	}
}

func TestFloodFillLabeler_RowMajorOrder(t *testing.T) {
	m := maskFromRows(
		"....##",
		"##..##",
		"##....",
		"....#.",
	)

	labels, err := FloodFillLabeler{}.Label(m, Eight)
	require.NoError(t, err)
	require.Equal(t, 3, labels.Count())

	// The top-right block is met first, then the left block, then the dot.
	assert.Equal(t, 1, labels.At(0, 4))
	assert.Equal(t, 2, labels.At(1, 0))
	assert.Equal(t, 3, labels.At(3, 4))
	assert.Equal(t, 0, labels.At(0, 0))

	assert.Equal(t, []int{15, 4, 4, 1}, labels.Areas)
	assert.Equal(t, Bounds{X1: 4, Y1: 0, X2: 6, Y2: 2}, labels.Bounds[1])
	assert.Equal(t, Bounds{X1: 0, Y1: 1, X2: 2, Y2: 3}, labels.Bounds[2])
	assert.Equal(t, Bounds{X1: 4, Y1: 3, X2: 5, Y2: 4}, labels.Bounds[3])
}

func TestFloodFillLabeler_UShape(t *testing.T) {
	// The right arm starts a new scan row before it joins the left arm, but
	// it must still end up in the same component.
	m := maskFromRows(
		"#...#",
		"#...#",
		"#####",
	)

	labels, err := FloodFillLabeler{}.Label(m, Four)
	require.NoError(t, err)
	assert.Equal(t, 1, labels.Count())
	assert.Equal(t, 9, labels.Areas[1])
}

func TestFloodFillLabeler_Empty(t *testing.T) {
	labels, err := FloodFillLabeler{}.Label(imaging.NewMask(3, 4), Eight)
	require.NoError(t, err)
	assert.Equal(t, 0, labels.Count())
	assert.Equal(t, 12, labels.Areas[0])
}

func TestFloodFillLabeler_InvalidConnectivity(t *testing.T) {
	for _, conn := range []Connectivity{0, 6, -4} {
		_, err := FloodFillLabeler{}.Label(maskFromRows("#"), conn)
		assert.True(t, errors.Is(err, ErrInvalidConnectivity), "connectivity %d", conn)
	}
}

func TestFloodFillLabeler_LargeComponent(t *testing.T) {
	m := imaging.NewMask(300, 300)
	for i := range m.Pix {
		m.Pix[i] = 1
	}

	labels, err := FloodFillLabeler{}.Label(m, Eight)
	require.NoError(t, err)
	assert.Equal(t, 1, labels.Count())
	assert.Equal(t, 90000, labels.Areas[1])
	assert.Equal(t, Bounds{X1: 0, Y1: 0, X2: 300, Y2: 300}, labels.Bounds[1])
}
