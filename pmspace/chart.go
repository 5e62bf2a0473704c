package pmspace

import (
	"github.com/viant/sqlite-cone/sky"
)

// DefaultBinWidth is the histogram bin width in mas/yr.
const DefaultBinWidth = 0.1

// DefaultPercentile is the percentile trimmed from each end of the
// proper-motion axis limits.
const DefaultPercentile = 1.0

// Points is a polyline in proper-motion space.
type Points struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// Limits bounds one chart axis.
type Limits struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Chart is everything a proper-motion view of one sample needs.
type Chart struct {
	Members  int     `json:"members"`
	Field    int     `json:"field"`
	PMRA     Limits  `json:"pmra_limits"`
	PMDec    Limits  `json:"pmdec_limits"`
	Scatter  Points  `json:"scatter"`
	Boundary Points  `json:"boundary"`
	Ellipse  Ellipse `json:"ellipse"`
	Histogram
}

// NewChart windows the sample, splits it against the constraint ellipse and
// bins the windowed proper motions.
func NewChart(stars []sky.Star, e Ellipse) (Chart, error) {
	pmra := make([]float64, len(stars))
	pmdec := make([]float64, len(stars))
	for i, s := range stars {
		pmra[i], pmdec[i] = s.PMRA, s.PMDec
	}
	var (
		c   Chart
		err error
	)
	if c.PMRA.Min, c.PMRA.Max, err = PercentileWindow(pmra, DefaultPercentile); err != nil {
		return Chart{}, err
	}
	if c.PMDec.Min, c.PMDec.Max, err = PercentileWindow(pmdec, DefaultPercentile); err != nil {
		return Chart{}, err
	}
	sc, err := NewScatter(stars, DefaultRejection)
	if err != nil {
		return Chart{}, err
	}
	c.Scatter = Points{X: sc.X, Y: sc.Y}
	if c.Histogram, err = NewHistogram(sc.X, sc.Y, DefaultBinWidth); err != nil {
		return Chart{}, err
	}
	members, field := Partition(stars, e)
	c.Members, c.Field = len(members), len(field)
	c.Ellipse = e
	c.Boundary.X, c.Boundary.Y = e.Boundary(DefaultSegments)
	return c, nil
}
