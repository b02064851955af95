package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// createGrayImage creates a solid grayscale test image
func createGrayImage(width, height int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

// maskFromRows builds a mask from strings where '#' is foreground.
func maskFromRows(rows ...string) *Mask {
	m := NewMask(len(rows), len(rows[0]))
	for i, r := range rows {
		for j, ch := range r {
			if ch == '#' {
				m.Set(i, j, 1)
			}
		}
	}
	return m
}

func TestBinarize_StrictThreshold(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 1))
	for x, v := range []uint8{0, 127, 128, 255} {
		img.SetGray(x, 0, color.Gray{Y: v})
	}

	got := Binarize(img, DefaultThreshold, DefaultMaxValue)
	want := maskFromRows("..##")

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Binarize mismatch (-want +got):\n%s", diff)
	}
}

func TestBinarize(t *testing.T) {
	tests := []struct {
		name     string
		value    uint8
		level    uint8
		maxValue uint8
		wantArea int
	}{
		{"all above", 200, 127, 255, 12},
		{"all below", 100, 127, 255, 0},
		{"equal to level", 127, 127, 255, 0},
		{"zero level keeps non-zero", 1, 0, 255, 12},
		{"max level drops everything", 255, 255, 255, 0},
		{"zero max value", 200, 127, 0, 0},
		{"small max value", 200, 127, 1, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createGrayImage(4, 3, tt.value)
			m := Binarize(img, tt.level, tt.maxValue)
			if m.Rows != 3 || m.Cols != 4 {
				t.Fatalf("size: got %dx%d, want 3x4", m.Rows, m.Cols)
			}
			if got := m.Area(); got != tt.wantArea {
				t.Errorf("Area: got %d, want %d", got, tt.wantArea)
			}
			for _, v := range m.Pix {
				if v > 1 {
					t.Fatalf("mask value %d is not 0 or 1", v)
				}
			}
		})
	}
}

func TestThreshold_RawValues(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.SetGray(0, 0, color.Gray{Y: 10})
	img.SetGray(1, 0, color.Gray{Y: 250})

	raw := Threshold(img, 127, 200)
	if got := raw.GrayAt(0, 0).Y; got != 0 {
		t.Errorf("background: got %d, want 0", got)
	}
	if got := raw.GrayAt(1, 0).Y; got != 200 {
		t.Errorf("foreground: got %d, want 200", got)
	}
}

func TestBinarize_OffsetBounds(t *testing.T) {
	img := image.NewGray(image.Rect(10, 20, 13, 22))
	img.SetGray(12, 21, color.Gray{Y: 255})

	m := Binarize(img, 127, 255)
	if m.Rows != 2 || m.Cols != 3 {
		t.Fatalf("size: got %dx%d, want 2x3", m.Rows, m.Cols)
	}
	if m.At(1, 2) != 1 || m.Area() != 1 {
		t.Errorf("expected single foreground pixel at (1,2), got area %d", m.Area())
	}
}

func TestBinarize_DoesNotModifyInput(t *testing.T) {
	img := createGrayImage(3, 3, 200)
	before := append([]uint8(nil), img.Pix...)

	_ = Binarize(img, 127, 255)

	if diff := cmp.Diff(before, img.Pix); diff != "" {
		t.Errorf("input image modified (-before +after):\n%s", diff)
	}
}

func TestMask_AtOutOfRange(t *testing.T) {
	m := maskFromRows("##", "##")
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if got := m.At(p[0], p[1]); got != 0 {
			t.Errorf("At(%d,%d): got %d, want 0", p[0], p[1], got)
		}
	}
}

func TestMask_SetNormalizes(t *testing.T) {
	m := NewMask(1, 1)
	m.Set(0, 0, 255)
	if m.Pix[0] != 1 {
		t.Errorf("Set(255) stored %d, want 1", m.Pix[0])
	}
}

func TestMask_CloneIsIndependent(t *testing.T) {
	m := maskFromRows("#.")
	c := m.Clone()
	c.Set(0, 1, 1)

	if m.Area() != 1 {
		t.Errorf("original area changed to %d", m.Area())
	}
	if c.Area() != 2 {
		t.Errorf("clone area: got %d, want 2", c.Area())
	}
}

func TestMask_GrayRoundTrip(t *testing.T) {
	m := maskFromRows(
		"#..#",
		".##.",
	)
	g := m.Gray(255)
	if g.GrayAt(0, 0).Y != 255 || g.GrayAt(1, 0).Y != 0 {
		t.Errorf("unexpected rendered values")
	}
	if diff := cmp.Diff(m, MaskFromGray(g)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
