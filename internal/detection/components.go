package detection

import (
	"errors"
	"fmt"

	"github.com/ironsheep/image-moments/internal/imaging"
)

// ErrInvalidConnectivity is returned when a connectivity other than 4 or 8
// is requested.
var ErrInvalidConnectivity = errors.New("connectivity must be 4 or 8")

// Connectivity selects which neighbours join two foreground pixels into the
// same component.
type Connectivity int

const (
	// Four joins pixels that share an edge.
	Four Connectivity = 4

	// Eight joins pixels that share an edge or a corner.
	Eight Connectivity = 8
)

// Valid reports whether c is 4 or 8.
func (c Connectivity) Valid() bool {
	return c == Four || c == Eight
}

// offsets returns the neighbour displacements (di, dj) for c.
func (c Connectivity) offsets() []Point {
	if c == Four {
		return []Point{{X: 0, Y: -1}, {X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	}
	pts := make([]Point, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			pts = append(pts, Point{X: dx, Y: dy})
		}
	}
	return pts
}

// Labels is the output of connected-component labeling.
//
// Label 0 is the background. Labels 1..Count() are assigned in the order a
// row-major scan first meets each component, so a lower label always belongs
// to a component whose first pixel comes earlier in that scan.
type Labels struct {
	// Rows and Cols match the labeled mask.
	Rows int
	Cols int

	// IDs holds the label of each pixel, row-major.
	IDs []int

	// Areas[k] is the pixel count of label k. Areas[0] counts background pixels.
	Areas []int

	// Bounds[k] is the bounding box of label k. Bounds[0] is the zero value.
	Bounds []Bounds
}

// Count returns the number of foreground components.
func (l *Labels) Count() int {
	return len(l.Areas) - 1
}

// At returns the label at row i, column j.
func (l *Labels) At(i, j int) int {
	return l.IDs[i*l.Cols+j]
}

// Labeler computes connected components of a binary mask.
//
// Implementations must return labels numbered in row-major first-encounter
// order as documented on Labels, and must not modify the mask.
type Labeler interface {
	Label(mask *imaging.Mask, conn Connectivity) (*Labels, error)
}

// FloodFillLabeler labels components with an iterative stack-based flood
// fill started from each unlabeled foreground pixel in row-major order.
//
// The stack avoids recursion depth problems on large components. Work is
// O(rows*cols*neighbours) and memory is one int per pixel plus the stack.
type FloodFillLabeler struct{}

// Label implements Labeler.
func (FloodFillLabeler) Label(mask *imaging.Mask, conn Connectivity) (*Labels, error) {
	if !conn.Valid() {
		return nil, fmt.Errorf("failed to label mask: %w (got %d)", ErrInvalidConnectivity, conn)
	}

	rows, cols := mask.Rows, mask.Cols
	labels := &Labels{
		Rows:   rows,
		Cols:   cols,
		IDs:    make([]int, rows*cols),
		Areas:  []int{0},
		Bounds: []Bounds{{}},
	}
	neighbours := conn.offsets()

	stack := make([]Point, 0, 64)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			idx := y*cols + x
			if mask.Pix[idx] == 0 {
				labels.Areas[0]++
				continue
			}
			if labels.IDs[idx] != 0 {
				continue
			}

			id := len(labels.Areas)
			area := 0
			box := Bounds{X1: x, Y1: y, X2: x + 1, Y2: y + 1}

			labels.IDs[idx] = id
			stack = append(stack[:0], Point{X: x, Y: y})
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				area++
				box.extend(p)

				for _, d := range neighbours {
					nx, ny := p.X+d.X, p.Y+d.Y
					if nx < 0 || nx >= cols || ny < 0 || ny >= rows {
						continue
					}
					n := ny*cols + nx
					if mask.Pix[n] == 0 || labels.IDs[n] != 0 {
						continue
					}
					labels.IDs[n] = id
					stack = append(stack, Point{X: nx, Y: ny})
				}
			}

			labels.Areas = append(labels.Areas, area)
			labels.Bounds = append(labels.Bounds, box)
		}
	}

	return labels, nil
}
