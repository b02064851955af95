package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ironsheep/image-moments/internal/moments"
)

// Centroid is a point in (x, y) = (column, row) order.
type Centroid struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Summary is the printable result of one analysis.
type Summary struct {
	Area               int            `json:"area"`
	Centroid           Centroid       `json:"centroid"`
	OrientationRadians float64        `json:"orientation_radians"`
	OrientationDegrees float64        `json:"orientation_degrees"`
	Roundedness        float64        `json:"roundedness"`
	Eccentricity       float64        `json:"eccentricity"`
	Threshold          int            `json:"threshold"`
	Components         int            `json:"components"`
	Moments            moments.Bundle `json:"moments"`
}

// NewSummary collects the reportable values of an analysis.
func NewSummary(threshold uint8, components int, b moments.Bundle, d moments.Descriptor) Summary {
	return Summary{
		Area:               b.Area,
		Centroid:           Centroid{X: b.CentroidX, Y: b.CentroidY},
		OrientationRadians: d.Orientation,
		OrientationDegrees: d.OrientationDegrees(),
		Roundedness:        d.Roundedness,
		Eccentricity:       d.Eccentricity,
		Threshold:          int(threshold),
		Components:         components,
		Moments:            b,
	}
}

// Lines returns the human-readable report, one property per line.
func (s Summary) Lines() []string {
	return []string{
		fmt.Sprintf("Area: %d pixels", s.Area),
		fmt.Sprintf("Centroid (x, y): (%.2f, %.2f)", s.Centroid.X, s.Centroid.Y),
		fmt.Sprintf("Orientation: %.2f degrees", s.OrientationDegrees),
		fmt.Sprintf("Roundedness: %.2f", s.Roundedness),
	}
}

// WriteText writes the human-readable report.
func WriteText(w io.Writer, s Summary) error {
	_, err := io.WriteString(w, strings.Join(s.Lines(), "\n")+"\n")
	return err
}

// WriteJSON writes the summary as indented JSON.
func WriteJSON(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return nil
}
