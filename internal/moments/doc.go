// Package moments computes pixel-moment statistics of a binary region and
// the shape descriptors derived from them.
//
// Compute reduces a mask to a Bundle: area, centroid and the central second
// moments A, B and C. Describe turns a Bundle into a Descriptor holding the
// principal orientation and the roundedness ratio.
//
// # Conventions
//
// x is the column index and y the row index, so angles are measured from the
// image's +X axis towards +Y, which points down. An orientation of 0 is a
// horizontal long axis; a positive orientation tilts the long axis down to
// the right.
//
// Orientation always names the axis of minimum second moment. It is never
// swapped for the orthogonal axis, even for near-round regions where the two
// moments are almost equal.
package moments
