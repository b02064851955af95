package moments

import "math"

// Descriptor summarises the shape of a region from its second moments.
type Descriptor struct {
	// Orientation is the angle in radians of the axis of minimum second
	// moment (the long axis of an elongated region), measured from the +X
	// (column) axis towards +Y (down the rows). It lies in [-pi/2, pi/2].
	Orientation float64 `json:"orientation_radians"`

	// Roundedness is EMin/EMax in [0, 1]: 1 for an isotropic region, near 0
	// for a line.
	Roundedness float64 `json:"roundedness"`

	// EMin and EMax are the second moments about the two principal axes.
	EMin float64 `json:"e_min"`
	EMax float64 `json:"e_max"`

	// Eccentricity is sqrt(1 - Roundedness).
	Eccentricity float64 `json:"eccentricity"`
}

// OrientationDegrees returns Orientation in degrees.
func (d Descriptor) OrientationDegrees() float64 {
	return d.Orientation * 180 / math.Pi
}

// AxisMoment returns the second moment of the region about the line through
// its centroid at angle theta:
//
//	E(theta) = A*sin^2(theta) - B*sin(theta)*cos(theta) + C*cos^2(theta)
func AxisMoment(b Bundle, theta float64) float64 {
	s, c := math.Sincos(theta)
	return b.A*s*s - b.B*s*c + b.C*c*c
}

// Describe derives orientation and roundedness from a moment bundle.
//
// The principal angle is theta1 = atan2(B, A-C)/2; the two-argument arctangent
// resolves the quadrant so theta1 always minimises AxisMoment. theta2 is
// theta1 + pi/2. Roundedness is the ratio of the smaller to the larger of
// the two axis moments. A region with no spread at all (EMax == 0, e.g. a
// single pixel) is defined to have Roundedness 1.
func Describe(b Bundle) Descriptor {
	theta1 := math.Atan2(b.B, b.A-b.C) / 2
	theta2 := theta1 + math.Pi/2

	e1 := AxisMoment(b, theta1)
	e2 := AxisMoment(b, theta2)
	eMin := math.Min(e1, e2)
	eMax := math.Max(e1, e2)

	roundedness := 1.0
	if eMax != 0 {
		roundedness = eMin / eMax
	}
	// A one-pixel-wide region can leave eMin a rounding error below zero.
	roundedness = math.Max(0, math.Min(1, roundedness))

	return Descriptor{
		Orientation:  theta1,
		Roundedness:  roundedness,
		EMin:         eMin,
		EMax:         eMax,
		Eccentricity: math.Sqrt(1 - roundedness),
	}
}
