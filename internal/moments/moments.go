package moments

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ironsheep/image-moments/internal/imaging"
)

// ErrEmptyRegion is returned when moments are requested for a mask without
// foreground pixels. No centroid, orientation or roundedness exists for it.
var ErrEmptyRegion = errors.New("region has zero area")

// Bundle holds the area, centroid and central second moments of a region.
//
// A, B and C are the entries of the second-moment tensor about the centroid:
//
//	A = sum (x - cx)^2
//	B = 2 * sum (x - cx)(y - cy)
//	C = sum (y - cy)^2
//
// with x the column index and y the row index of each foreground pixel.
type Bundle struct {
	Area      int     `json:"area"`
	CentroidX float64 `json:"centroid_x"`
	CentroidY float64 `json:"centroid_y"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	C         float64 `json:"c"`
}

// Compute returns the moment bundle of mask.
//
// All raw sums are accumulated as exact integers over the whole grid before
// being converted, so the result does not depend on traversal order. The
// central moments are then derived from the raw moments about the origin:
//
//	A = sum x^2 - area*cx^2
//	C = sum y^2 - area*cy^2
//	B = 2*sum xy - 2*area*cx*cy
//
// Compute returns ErrEmptyRegion when the mask has no foreground pixels.
func Compute(mask *imaging.Mask) (Bundle, error) {
	var area, sumX, sumY, sumXX, sumYY, sumXY int64

	for i := 0; i < mask.Rows; i++ {
		row := mask.Pix[i*mask.Cols : (i+1)*mask.Cols]
		y := int64(i)
		for j, v := range row {
			if v == 0 {
				continue
			}
			x := int64(j)
			area++
			sumX += x
			sumY += y
			sumXX += x * x
			sumYY += y * y
			sumXY += x * y
		}
	}

	if area == 0 {
		return Bundle{}, fmt.Errorf("failed to compute moments: %w", ErrEmptyRegion)
	}

	n := float64(area)
	cx := float64(sumX) / n
	cy := float64(sumY) / n

	aRaw := float64(sumXX)
	cRaw := float64(sumYY)
	bRaw := 2 * float64(sumXY)

	return Bundle{
		Area:      int(area),
		CentroidX: cx,
		CentroidY: cy,
		A:         aRaw - n*cx*cx,
		B:         bRaw - 2*n*cx*cy,
		C:         cRaw - n*cy*cy,
	}, nil
}

// Tensor returns the symmetric second-moment tensor [[A, B/2], [B/2, C]].
func (b Bundle) Tensor() *mat.SymDense {
	return mat.NewSymDense(2, []float64{
		b.A, b.B / 2,
		b.B / 2, b.C,
	})
}

// PrincipalMoments returns the eigenvalues of the second-moment tensor in
// ascending order. They are the moments of inertia about the principal axes,
// i.e. the minimum and maximum of AxisMoment over all angles.
func (b Bundle) PrincipalMoments() (lo, hi float64, err error) {
	var eig mat.EigenSym
	if ok := eig.Factorize(b.Tensor(), false); !ok {
		return 0, 0, fmt.Errorf("failed to factorize moment tensor")
	}
	vals := eig.Values(nil)
	return vals[0], vals[1], nil
}
