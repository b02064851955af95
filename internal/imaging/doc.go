// Package imaging provides the raster side of the moment analysis: loading
// images, reducing them to 8-bit intensities, binarizing them into masks, and
// exporting annotated results.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based with the origin at the
// top-left corner:
//   - Row index i (Y) increases downward
//   - Column index j (X) increases rightward
//   - Mask.At(i, j) reads row i, column j; point-style values such as a
//     centroid are reported as (x, y) = (j, i)
//
// Images returned by this package always have their origin at (0,0), even when
// the input image's bounds did not.
//
// # Binarization
//
// Binarize applies a fixed global threshold: an intensity strictly greater
// than the level is foreground. The default level is 127, matching the common
// THRESH_BINARY convention. OtsuThreshold can derive a level from the image's
// histogram instead.
//
// # Masks
//
// A Mask holds exactly 0 or 1 per pixel. Masks are values passed between
// pipeline stages; no function in this package modifies a mask it was given.
//
// # Error Handling
//
// Functions return errors for file I/O problems:
//   - File open or decode errors during image loading
//   - Directory creation or encoding errors during PNG export
//
// Pure raster operations (Threshold, Binarize, Histogram, Annotate) cannot
// fail; mismatched dimensions are a caller error.
package imaging
