package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderHistogramHTML writes an interactive bar chart of the histogram as a
// standalone HTML page. Bars hold log10(1 + count) like the PNG figure and
// the bin at the Otsu threshold is highlighted.
func RenderHistogramHTML(w io.Writer, hist [256]int, otsu uint8) error {
	x := make([]string, len(hist))
	y := make([]opts.BarData, len(hist))
	for v, n := range hist {
		x[v] = strconv.Itoa(v)
		y[v] = opts.BarData{
			Name:  fmt.Sprintf("%d pixels", n),
			Value: math.Log10(1 + float64(n)),
		}
	}
	y[otsu].ItemStyle = &opts.ItemStyle{Color: "#00a000"}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Intensity Histogram", Width: "1100px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Logarithmic Intensity Histogram", Subtitle: fmt.Sprintf("Otsu's Threshold = %d", otsu)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Pixel Intensity", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "log10(1 + count)", NameLocation: "middle", NameGap: 30}),
	)
	bar.SetXAxis(x).AddSeries("histogram", y)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render histogram page: %w", err)
	}
	return nil
}

// SaveHistogramHTML writes the interactive histogram page to path.
func SaveHistogramHTML(path string, hist [256]int, otsu uint8) error {
	return writeFile(path, func(w io.Writer) error {
		return RenderHistogramHTML(w, hist, otsu)
	})
}
