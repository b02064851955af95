// Package report turns analysis results into something a person can read:
// a text or JSON summary, and PNG figures rendered with gonum/plot.
//
// The figure mirrors a classic notebook layout: original image, the selected
// mask with its centroid and orientation axis, and a text panel with the
// object properties. The histogram figure shows the intensity distribution
// and the Otsu threshold on a log scale.
package report
