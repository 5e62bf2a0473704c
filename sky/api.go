package sky

import "math"

const (
	// MaxRA is the exclusive upper bound of right ascension in degrees.
	MaxRA = 360.0
	// MinDec and MaxDec bound declination in degrees. MaxDec is exclusive.
	MinDec = -90.0
	MaxDec = 90.0
	// MaxRadius is the exclusive upper bound of a query radius in degrees.
	MaxRadius = 90.0
)

// Coordinate is an equatorial position in degrees.
type Coordinate struct {
	RA  float64
	Dec float64
}

// Validate checks that RA lies in [0, 360) and Dec in [-90, 90).
func (c Coordinate) Validate() error {
	if !finite(c.RA) || !finite(c.Dec) {
		return &QueryError{Op: "validate", Center: c, Kind: ErrMalformedInput, Err: errNotFinite}
	}
	if c.RA < 0 || c.RA >= MaxRA {
		return &QueryError{Op: "validate", Center: c, Kind: ErrInvalidArgument, Err: errRARange}
	}
	if c.Dec < MinDec || c.Dec >= MaxDec {
		return &QueryError{Op: "validate", Center: c, Kind: ErrInvalidArgument, Err: errDecRange}
	}
	return nil
}

// Query is a single cone lookup: a center and an angular radius in degrees.
type Query struct {
	Center Coordinate
	Radius float64
}

// Validate checks the center and that the radius lies in (0, 90).
func (q Query) Validate() error {
	if err := q.Center.Validate(); err != nil {
		return err
	}
	if !finite(q.Radius) {
		return &QueryError{Op: "validate", Center: q.Center, Radius: q.Radius, Kind: ErrMalformedInput, Err: errNotFinite}
	}
	if q.Radius <= 0 || q.Radius >= MaxRadius {
		return &QueryError{Op: "validate", Center: q.Center, Radius: q.Radius, Kind: ErrInvalidArgument, Err: errRadiusRange}
	}
	return nil
}

// Star is one catalog row. Distance holds the catalog's parallax-derived
// distance column.
type Star struct {
	SourceID int64
	RA       float64
	Dec      float64
	Distance float64
	PMRA     float64
	PMDec    float64
}

// Position returns the star's coordinate.
func (s Star) Position() Coordinate { return Coordinate{RA: s.RA, Dec: s.Dec} }

// Range is a closed constraint interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Mid returns the interval midpoint.
func (r Range) Mid() float64 { return (r.Min + r.Max) / 2 }

// HalfWidth returns half of the interval width.
func (r Range) HalfWidth() float64 { return (r.Max - r.Min) / 2 }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
