package detection

import (
	"errors"
	"fmt"

	"github.com/ironsheep/image-moments/internal/imaging"
)

// ErrEmptyInput is returned by a strict Selector when the mask has no
// foreground pixels at all.
var ErrEmptyInput = errors.New("mask has no foreground pixels")

// Selection is the result of keeping only the dominant region of a mask.
type Selection struct {
	// Mask contains only the selected component. It is all zero when no
	// component was found.
	Mask *imaging.Mask `json:"-"`

	// Label is the selected component's label, or 0 when nothing was found.
	Label int `json:"label"`

	// Area is the pixel count of the selected component.
	Area int `json:"area"`

	// Bounds is the bounding box of the selected component.
	Bounds Bounds `json:"bounds"`

	// Components is the number of components the labeler found.
	Components int `json:"components"`
}

// Empty reports whether no component was selected.
func (s *Selection) Empty() bool {
	return s.Label == 0
}

// Selector keeps the largest connected component of a mask.
type Selector struct {
	// Labeler computes the components. Nil selects FloodFillLabeler.
	Labeler Labeler

	// Connectivity is 4 or 8. Zero selects 8.
	Connectivity Connectivity

	// RejectEmpty makes Select return ErrEmptyInput for a mask without
	// foreground instead of an empty Selection.
	RejectEmpty bool
}

// NewSelector returns a Selector using flood-fill labeling and
// 8-connectivity.
func NewSelector() *Selector {
	return &Selector{
		Labeler:      FloodFillLabeler{},
		Connectivity: Eight,
	}
}

// Select labels the mask and returns a new mask holding only the component
// with the largest pixel count. Equal areas resolve to the lowest label,
// which is the component met first in a row-major scan.
//
// The input mask is not modified. When the mask has no foreground the result
// is an all-zero mask with Label 0, or ErrEmptyInput if RejectEmpty is set.
func (s *Selector) Select(mask *imaging.Mask) (*Selection, error) {
	labeler := s.Labeler
	if labeler == nil {
		labeler = FloodFillLabeler{}
	}
	conn := s.Connectivity
	if conn == 0 {
		conn = Eight
	}

	labels, err := labeler.Label(mask, conn)
	if err != nil {
		return nil, err
	}

	sel := &Selection{
		Mask:       imaging.NewMask(mask.Rows, mask.Cols),
		Components: labels.Count(),
	}
	if sel.Components == 0 {
		if s.RejectEmpty {
			return nil, fmt.Errorf("failed to select region: %w", ErrEmptyInput)
		}
		return sel, nil
	}

	best := 1
	for k := 2; k <= labels.Count(); k++ {
		if labels.Areas[k] > labels.Areas[best] {
			best = k
		}
	}

	for idx, id := range labels.IDs {
		if id == best {
			sel.Mask.Pix[idx] = 1
		}
	}
	sel.Label = best
	sel.Area = sel.Mask.Area()
	sel.Bounds = labels.Bounds[best]

	return sel, nil
}

// SelectLargestRegion keeps only the largest connected component of mask
// using flood-fill labeling. An empty mask yields an all-zero mask.
func SelectLargestRegion(mask *imaging.Mask, conn Connectivity) (*imaging.Mask, error) {
	s := NewSelector()
	s.Connectivity = conn
	sel, err := s.Select(mask)
	if err != nil {
		return nil, err
	}
	return sel.Mask, nil
}
