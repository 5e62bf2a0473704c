package pmspace

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Histogram holds marginal counts of both proper-motion axes over a shared
// set of symmetric bins.
type Histogram struct {
	Dividers []float64 `json:"dividers"`
	X        []float64 `json:"pmra_counts"`
	Y        []float64 `json:"pmdec_counts"`
}

// NewHistogram bins x and y with width binWidth over [-lim, lim], where lim
// is the smallest multiple of binWidth strictly above every |value|.
func NewHistogram(x, y []float64, binWidth float64) (Histogram, error) {
	if !(binWidth > 0) {
		return Histogram{}, fmt.Errorf("pmspace: bin width %g must be positive", binWidth)
	}
	xs, ys := finiteSorted(x), finiteSorted(y)
	if len(xs) == 0 && len(ys) == 0 {
		return Histogram{}, ErrEmpty
	}
	maxAbs := math.Max(maxNorm(xs), maxNorm(ys))
	lim := float64(int(maxAbs/binWidth)+1) * binWidth
	if lim <= maxAbs {
		lim += binWidth
	}
	bins := int(math.Round(2 * lim / binWidth))
	dividers := floats.Span(make([]float64, bins+1), -lim, lim)
	return Histogram{
		Dividers: dividers,
		X:        stat.Histogram(nil, dividers, xs, nil),
		Y:        stat.Histogram(nil, dividers, ys, nil),
	}, nil
}

func maxNorm(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Norm(v, math.Inf(1))
}
