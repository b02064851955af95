// Package detection finds connected regions in binary masks and isolates the
// dominant one.
//
// # Labeling
//
// Connected-component labeling is behind the Labeler interface so that the
// algorithm can be swapped. FloodFillLabeler is the default: an iterative,
// stack-based flood fill started from every unlabeled foreground pixel in
// row-major order.
//
// Two foreground pixels are connected when they are neighbours under the
// chosen Connectivity:
//   - Four: the pixels share an edge
//   - Eight: the pixels share an edge or a corner (default)
//
// Labels are numbered 1..K in the order a row-major scan first meets each
// component. Label 0 is the background.
//
// # Region Selection
//
// Selector keeps only the component with the largest pixel count. When two
// components have the same area the lower label wins, i.e. the component whose
// first pixel comes earlier in the row-major scan. A mask without foreground
// produces an all-zero mask rather than an error, unless the Selector is set
// to reject empty input.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward (column index)
//   - Y increases downward (row index)
//   - Bounding boxes use inclusive top-left and exclusive bottom-right
package detection
