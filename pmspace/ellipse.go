package pmspace

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/viant/sqlite-cone/sky"
)

// DefaultSegments is the number of boundary points drawn for an ellipse.
const DefaultSegments = 80

// Ellipse is an axis-aligned ellipse in proper-motion space.
type Ellipse struct {
	CenterRA  float64 `json:"center_pmra"`
	CenterDec float64 `json:"center_pmdec"`
	A         float64 `json:"a"` // semi-axis along pmra
	B         float64 `json:"b"` // semi-axis along pmdec
}

// NewEllipse inscribes an ellipse in the pmra x pmdec constraint box.
func NewEllipse(pmRA, pmDec sky.Range) Ellipse {
	return Ellipse{
		CenterRA:  pmRA.Mid(),
		CenterDec: pmDec.Mid(),
		A:         pmRA.HalfWidth(),
		B:         pmDec.HalfWidth(),
	}
}

// Boundary returns segments points on the ellipse, starting on the +pmra
// semi-axis and running counter-clockwise.
func (e Ellipse) Boundary(segments int) (xs, ys []float64) {
	if segments <= 0 {
		segments = DefaultSegments
	}
	xs = make([]float64, segments)
	ys = make([]float64, segments)
	delta := 2 * math.Pi / float64(segments)
	for i := 0; i < segments; i++ {
		theta := float64(i) * delta
		xs[i] = e.A*math.Cos(theta) + e.CenterRA
		ys[i] = e.B*math.Sin(theta) + e.CenterDec
	}
	return xs, ys
}

// Contains reports whether (pmra, pmdec) lies on or inside the ellipse.
// Degenerate ellipses contain nothing.
func (e Ellipse) Contains(pmra, pmdec float64) bool {
	if !(e.A > 0) || !(e.B > 0) {
		return false
	}
	return floats.Norm([]float64{(pmra - e.CenterRA) / e.A, (pmdec - e.CenterDec) / e.B}, 2) <= 1
}

// Partition splits stars into ellipse members and field stars.
func Partition(stars []sky.Star, e Ellipse) (members, field []sky.Star) {
	for _, s := range stars {
		if e.Contains(s.PMRA, s.PMDec) {
			members = append(members, s)
		} else {
			field = append(field, s)
		}
	}
	return members, field
}

// Members counts the stars inside the ellipse.
func Members(stars []sky.Star, e Ellipse) int {
	n := 0
	for _, s := range stars {
		if e.Contains(s.PMRA, s.PMDec) {
			n++
		}
	}
	return n
}
