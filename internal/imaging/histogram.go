package imaging

import (
	"image"

	"gonum.org/v1/gonum/stat"
)

// Histogram counts how many pixels of img take each of the 256 intensity
// values.
func Histogram(img *image.Gray) [256]int {
	var hist [256]int
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y) : img.PixOffset(b.Min.X, y)+b.Dx()]
		for _, v := range row {
			hist[v]++
		}
	}
	return hist
}

// OtsuThreshold returns the global threshold that maximises the
// between-class variance of a 256-bin intensity histogram.
//
// Class 0 holds intensities <= t and class 1 intensities > t, so the returned
// level is meant to be used with Binarize. When several levels reach the same
// variance the lowest one wins. An empty or single-valued histogram yields 0.
//
// # Algorithm
//
// For each candidate t the class weights w0, w1 and means mu0, mu1 are
// derived incrementally from the cumulative sums, and the score is
//
//	sigma_b(t) = w0 * w1 * (mu0 - mu1)^2
func OtsuThreshold(hist [256]int) uint8 {
	levels := make([]float64, len(hist))
	weights := make([]float64, len(hist))
	total := 0.0
	for i, n := range hist {
		levels[i] = float64(i)
		weights[i] = float64(n)
		total += float64(n)
	}
	if total == 0 {
		return 0
	}

	mean := stat.Mean(levels, weights)

	const eps = 1.1920929e-07 // float32 epsilon
	var (
		best     uint8
		maxSigma float64
		q0, mu0  float64
	)
	for t := 0; t < len(hist); t++ {
		p := weights[t] / total
		if p > 0 {
			mu0 = (mu0*q0 + float64(t)*p) / (q0 + p)
		}
		q0 += p
		q1 := 1 - q0

		if q0 < eps || q1 < eps {
			continue
		}

		mu1 := (mean - q0*mu0) / q1
		sigma := q0 * q1 * (mu0 - mu1) * (mu0 - mu1)
		if sigma > maxSigma {
			maxSigma = sigma
			best = uint8(t)
		}
	}
	return best
}
