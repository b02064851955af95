package report

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/ironsheep/image-moments/internal/imaging"
	"github.com/ironsheep/image-moments/internal/moments"
)

// Style controls figure size and annotation colors.
type Style struct {
	Width  vg.Length
	Height vg.Length

	MarkerColor color.Color
	AxisColor   color.Color

	// AxisLengthFactor scales the half length of the drawn axis relative to
	// max(rows, cols).
	AxisLengthFactor float64
}

// DefaultStyle returns a 15x5 inch figure with red annotations.
func DefaultStyle() Style {
	red := color.RGBA{R: 255, A: 255}
	return Style{
		Width:            15 * vg.Inch,
		Height:           5 * vg.Inch,
		MarkerColor:      red,
		AxisColor:        red,
		AxisLengthFactor: imaging.DefaultAxisLengthFactor,
	}
}

// RenderFigure draws the three-panel report as PNG: the original image, the
// selected mask annotated with its centroid and orientation axis, and the
// object properties as text.
//
// Plot coordinates put column j at x = j and row i at y = -i, so the images
// keep their on-screen orientation while the annotations use the same
// (x, y) = (column, row) values as the moments.
func RenderFigure(w io.Writer, original image.Image, mask *imaging.Mask, b moments.Bundle, d moments.Descriptor, style Style) error {
	rows, cols := float64(mask.Rows), float64(mask.Cols)

	pOrig := imagePlot("Original Image", original, rows, cols)

	pMask := imagePlot("Orientation and Centroid", mask.Gray(255), rows, cols)

	length := style.AxisLengthFactor * math.Max(rows, cols)
	dx, dy := length*math.Cos(d.Orientation), length*math.Sin(d.Orientation)
	axis, err := plotter.NewLine(plotter.XYs{
		{X: b.CentroidX + dx, Y: -(b.CentroidY + dy)},
		{X: b.CentroidX - dx, Y: -(b.CentroidY - dy)},
	})
	if err != nil {
		return fmt.Errorf("failed to build axis line: %w", err)
	}
	axis.LineStyle.Color = style.AxisColor
	axis.LineStyle.Width = vg.Points(2)

	marker, err := plotter.NewScatter(plotter.XYs{{X: b.CentroidX, Y: -b.CentroidY}})
	if err != nil {
		return fmt.Errorf("failed to build centroid marker: %w", err)
	}
	marker.GlyphStyle.Color = style.MarkerColor
	marker.GlyphStyle.Radius = vg.Points(5)
	marker.GlyphStyle.Shape = draw.CircleGlyph{}

	pMask.Add(axis, marker)
	// Keep the view on the image; the axis line is clipped to it.
	pMask.X.Min, pMask.X.Max = -0.5, cols-0.5
	pMask.Y.Min, pMask.Y.Max = -(rows - 0.5), 0.5

	summary := NewSummary(0, 0, b, d)
	pText, err := textPlot("Object Properties", summary.Lines())
	if err != nil {
		return err
	}

	return renderRow(w, style.Width, style.Height, pOrig, pMask, pText)
}

// SaveFigure renders the figure into a PNG file at path.
func SaveFigure(path string, original image.Image, mask *imaging.Mask, b moments.Bundle, d moments.Descriptor, style Style) error {
	return writeFile(path, func(w io.Writer) error {
		return RenderFigure(w, original, mask, b, d, style)
	})
}

// imagePlot returns a plot showing img with pixel centers at (j, -i).
func imagePlot(title string, img image.Image, rows, cols float64) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.HideAxes()
	p.Add(plotter.NewImage(img, -0.5, -(rows - 0.5), cols-0.5, 0.5))
	return p
}

// textPlot returns an axis-less plot with one label per line, top aligned.
func textPlot(title string, lines []string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.HideAxes()

	xys := make(plotter.XYs, len(lines))
	for i := range lines {
		xys[i] = plotter.XY{X: 0.05, Y: 0.75 - 0.12*float64(i)}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: lines})
	if err != nil {
		return nil, fmt.Errorf("failed to build text panel: %w", err)
	}
	p.Add(labels)
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	return p, nil
}

// renderRow lays plots out side by side and encodes the canvas as PNG.
func renderRow(w io.Writer, width, height vg.Length, plots ...*plot.Plot) error {
	canvas := vgimg.New(width, height)
	dc := draw.New(canvas)

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(plots),
		PadX:      vg.Millimeter * 5,
		PadTop:    vg.Millimeter * 3,
		PadBottom: vg.Millimeter * 3,
		PadLeft:   vg.Millimeter * 3,
		PadRight:  vg.Millimeter * 3,
	}
	canvases := plot.Align([][]*plot.Plot{plots}, tiles, dc)
	for j, p := range plots {
		p.Draw(canvases[0][j])
	}

	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode figure: %w", err)
	}
	return nil
}

// writeFile creates path (and its directory) and hands it to render.
func writeFile(path string, render func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
