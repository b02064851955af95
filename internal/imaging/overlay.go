package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// DefaultAxisLengthFactor scales the drawn orientation axis relative to the
// larger image dimension.
const DefaultAxisLengthFactor = 0.8

// Annotation describes what Annotate draws on top of a mask.
type Annotation struct {
	// CentroidX and CentroidY locate the marker, in column/row units.
	CentroidX float64
	CentroidY float64

	// Orientation is the axis angle in radians, measured from the +X (column)
	// axis towards +Y (down the rows).
	Orientation float64

	// AxisLength is the half length of the axis in pixels. Zero selects
	// DefaultAxisLengthFactor * max(rows, cols).
	AxisLength float64

	// MarkerRadius is the radius of the filled centroid marker. Zero selects 2.
	MarkerRadius int

	// AxisColor and MarkerColor default to opaque red when nil.
	AxisColor   color.Color
	MarkerColor color.Color
}

// Annotate renders the mask white on black and draws the orientation axis
// through the centroid followed by the centroid marker. The mask itself is
// not modified.
func Annotate(m *Mask, a Annotation) *image.RGBA {
	bounds := image.Rect(0, 0, m.Cols, m.Rows)
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, m.Gray(255), image.Point{}, draw.Src)

	red := color.RGBA{255, 0, 0, 255}
	if a.AxisColor == nil {
		a.AxisColor = red
	}
	if a.MarkerColor == nil {
		a.MarkerColor = red
	}
	if a.AxisLength == 0 {
		a.AxisLength = DefaultAxisLengthFactor * float64(max(m.Rows, m.Cols))
	}
	if a.MarkerRadius == 0 {
		a.MarkerRadius = 2
	}

	dx := a.AxisLength * math.Cos(a.Orientation)
	dy := a.AxisLength * math.Sin(a.Orientation)
	drawLine(result, a.CentroidX-dx, a.CentroidY-dy, a.CentroidX+dx, a.CentroidY+dy, a.AxisColor)
	drawDisk(result, a.CentroidX, a.CentroidY, a.MarkerRadius, a.MarkerColor)

	return result
}

// drawLine walks from (x1,y1) to (x2,y2) in half-pixel steps and colors every
// pixel it passes through. Points outside the image are skipped.
func drawLine(img *image.RGBA, x1, y1, x2, y2 float64, c color.Color) {
	bounds := img.Bounds()
	length := math.Hypot(x2-x1, y2-y1)
	steps := int(math.Ceil(length*2)) + 1
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		px := int(math.Round(x1 + t*(x2-x1)))
		py := int(math.Round(y1 + t*(y2-y1)))
		if image.Pt(px, py).In(bounds) {
			img.Set(px, py, c)
		}
	}
}

// drawDisk fills all pixels within radius of (cx, cy).
func drawDisk(img *image.RGBA, cx, cy float64, radius int, c color.Color) {
	bounds := img.Bounds()
	x0, y0 := int(math.Round(cx)), int(math.Round(cy))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			if p := image.Pt(x0+dx, y0+dy); p.In(bounds) {
				img.Set(p.X, p.Y, c)
			}
		}
	}
}
