package pmspace

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/viant/sqlite-cone/sky"
)

// DefaultRejection is the fraction trimmed from each end of an axis.
const DefaultRejection = 0.01

// ErrEmpty is returned when no finite values are available.
var ErrEmpty = errors.New("pmspace: no finite values")

// Window returns the values at sorted positions int(n*rf) and int(n*(1-rf)),
// the bounds a chart axis is clipped to. NaN values are ignored.
func Window(values []float64, rf float64) (lo, hi float64, err error) {
	if rf < 0 || rf >= 0.5 {
		return 0, 0, fmt.Errorf("pmspace: rejection factor %g outside [0, 0.5)", rf)
	}
	sorted := finiteSorted(values)
	n := len(sorted)
	if n == 0 {
		return 0, 0, ErrEmpty
	}
	return sorted[clampIndex(int(float64(n)*rf), n)], sorted[clampIndex(int(float64(n)*(1-rf)), n)], nil
}

// PercentileWindow returns the pct-th and (100-pct)-th percentiles of values.
// Percentiles interpolate linearly between closest ranks at (n-1)*p.
func PercentileWindow(values []float64, pct float64) (lo, hi float64, err error) {
	if pct < 0 || pct >= 50 {
		return 0, 0, fmt.Errorf("pmspace: percentile %g outside [0, 50)", pct)
	}
	sorted := finiteSorted(values)
	if len(sorted) == 0 {
		return 0, 0, ErrEmpty
	}
	return percentile(sorted, pct/100), percentile(sorted, 1-pct/100), nil
}

// percentile interpolates sorted at rank (n-1)*p. gonum's stat.Quantile
// estimators rank at n*p and do not reproduce this rule.
func percentile(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	i := int(math.Floor(h))
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-float64(i))*(sorted[i+1]-sorted[i])
}

// Scatter is a proper-motion point cloud clipped to its outlier windows.
type Scatter struct {
	X, Y       []float64
	XMin, XMax float64
	YMin, YMax float64
}

// NewScatter windows pmra and pmdec independently and keeps the stars lying
// strictly inside both windows.
func NewScatter(stars []sky.Star, rf float64) (Scatter, error) {
	xs := make([]float64, len(stars))
	ys := make([]float64, len(stars))
	for i, s := range stars {
		xs[i], ys[i] = s.PMRA, s.PMDec
	}
	var (
		sc  Scatter
		err error
	)
	if sc.XMin, sc.XMax, err = Window(xs, rf); err != nil {
		return Scatter{}, err
	}
	if sc.YMin, sc.YMax, err = Window(ys, rf); err != nil {
		return Scatter{}, err
	}
	for _, s := range stars {
		if sc.XMin < s.PMRA && s.PMRA < sc.XMax && sc.YMin < s.PMDec && s.PMDec < sc.YMax {
			sc.X = append(sc.X, s.PMRA)
			sc.Y = append(sc.Y, s.PMDec)
		}
	}
	return sc, nil
}

func finiteSorted(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}

func clampIndex(i, n int) int {
	if i >= n {
		return n - 1
	}
	return i
}
