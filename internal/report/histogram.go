package report

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// RenderHistogram draws the grayscale image next to its intensity histogram
// on a logarithmic count axis, with the Otsu threshold marked as a dashed
// vertical line.
//
// Counts are plotted as log10(1 + n) so empty bins stay on the axis.
func RenderHistogram(w io.Writer, gray *image.Gray, hist [256]int, otsu uint8) error {
	b := gray.Bounds()
	pImg := imagePlot("Grayscale Image", gray, float64(b.Dy()), float64(b.Dx()))

	p := plot.New()
	p.Title.Text = "Logarithmic Intensity Histogram"
	p.X.Label.Text = "Pixel Intensity (0=Black, 255=White)"
	p.Y.Label.Text = "log10(1 + pixel count)"

	steps := make(plotter.XYs, 0, 2*len(hist))
	top := 0.0
	for v, n := range hist {
		y := math.Log10(1 + float64(n))
		top = math.Max(top, y)
		steps = append(steps, plotter.XY{X: float64(v), Y: y}, plotter.XY{X: float64(v + 1), Y: y})
	}
	bars, err := plotter.NewLine(steps)
	if err != nil {
		return fmt.Errorf("failed to build histogram: %w", err)
	}
	bars.LineStyle.Color = color.Gray{Y: 96}
	bars.LineStyle.Width = vg.Points(1)

	level := float64(otsu)
	marker, err := plotter.NewLine(plotter.XYs{{X: level, Y: 0}, {X: level, Y: math.Max(top, 1)}})
	if err != nil {
		return fmt.Errorf("failed to build threshold marker: %w", err)
	}
	marker.LineStyle.Color = color.RGBA{G: 160, A: 255}
	marker.LineStyle.Width = vg.Points(2)
	marker.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}

	p.Add(bars, marker)
	p.Legend.Add(fmt.Sprintf("Otsu's Threshold = %d", otsu), marker)
	p.Legend.Top = true
	p.X.Min, p.X.Max = 0, 256

	return renderRow(w, 12*vg.Inch, 5*vg.Inch, pImg, p)
}

// SaveHistogram renders the histogram figure into a PNG file at path.
func SaveHistogram(path string, gray *image.Gray, hist [256]int, otsu uint8) error {
	return writeFile(path, func(w io.Writer) error {
		return RenderHistogram(w, gray, hist, otsu)
	})
}
