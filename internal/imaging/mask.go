package imaging

import (
	"image"
	"image/color"
)

// Default binarization parameters.
const (
	DefaultThreshold uint8 = 127
	DefaultMaxValue  uint8 = 255
)

// Mask is a binary image stored row-major. Every value in Pix is exactly 0
// or 1. Row index i is the vertical (y) axis and column index j is the
// horizontal (x) axis.
type Mask struct {
	Rows int
	Cols int
	Pix  []uint8
}

// NewMask returns an all-zero mask of the given size.
func NewMask(rows, cols int) *Mask {
	return &Mask{
		Rows: rows,
		Cols: cols,
		Pix:  make([]uint8, rows*cols),
	}
}

// At returns the value at row i, column j. Out-of-range reads return 0.
func (m *Mask) At(i, j int) uint8 {
	if i < 0 || i >= m.Rows || j < 0 || j >= m.Cols {
		return 0
	}
	return m.Pix[i*m.Cols+j]
}

// Set marks row i, column j as foreground (any non-zero v) or background.
func (m *Mask) Set(i, j int, v uint8) {
	if v != 0 {
		v = 1
	}
	m.Pix[i*m.Cols+j] = v
}

// Area returns the number of foreground pixels.
func (m *Mask) Area() int {
	area := 0
	for _, v := range m.Pix {
		area += int(v)
	}
	return area
}

// Clone returns a deep copy of the mask.
func (m *Mask) Clone() *Mask {
	pix := make([]uint8, len(m.Pix))
	copy(pix, m.Pix)
	return &Mask{Rows: m.Rows, Cols: m.Cols, Pix: pix}
}

// Gray renders the mask as a grayscale image with foreground pixels set to
// on and background pixels set to 0.
func (m *Mask) Gray(on uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Cols, m.Rows))
	for idx, v := range m.Pix {
		if v != 0 {
			img.Pix[(idx/m.Cols)*img.Stride+idx%m.Cols] = on
		}
	}
	return img
}

// MaskFromGray converts a grayscale image into a mask where every non-zero
// pixel is foreground. The image origin is moved to (0,0).
func MaskFromGray(img *image.Gray) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dy(), b.Dx())
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			if img.GrayAt(b.Min.X+j, b.Min.Y+i).Y != 0 {
				m.Pix[i*m.Cols+j] = 1
			}
		}
	}
	return m
}

// Threshold applies a global binary threshold and returns the raw binary
// image: pixels brighter than level become maxValue, all others become 0.
// The returned image always has its origin at (0,0).
func Threshold(img *image.Gray, level, maxValue uint8) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if img.GrayAt(b.Min.X+x, b.Min.Y+y).Y > level {
				out.SetGray(x, y, color.Gray{Y: maxValue})
			}
		}
	}
	return out
}

// Binarize converts an intensity image to a 0/1 mask using a fixed global
// threshold: mask[i,j] = 1 when intensity[i,j] > level.
//
// maxValue is the value the raw binary image carries for foreground pixels
// before it is reduced to 0/1. A maxValue of 0 therefore yields an empty mask.
func Binarize(img *image.Gray, level, maxValue uint8) *Mask {
	return MaskFromGray(Threshold(img, level, maxValue))
}
