package region

import (
	"math"

	"github.com/viant/sqlite-cone/sky"
)

// Build derives the bounding predicate of the cone centered on center with
// the given radius in degrees. Invalid inputs fail with sky.ErrInvalidArgument
// or sky.ErrMalformedInput; nothing is clamped.
func Build(center sky.Coordinate, radius float64) (Predicate, error) {
	q := sky.Query{Center: center, Radius: radius}
	if err := q.Validate(); err != nil {
		return Predicate{}, sky.WithQuery(err, "build", q)
	}
	decMin, decMax := center.Dec-radius, center.Dec+radius
	// Poles are checked before the seam: every meridian reaches a covered pole.
	if decMin < sky.MinDec {
		return Predicate{Kind: KindSouthCap, DecMax: decMax}, nil
	}
	if decMax > sky.MaxDec {
		return Predicate{Kind: KindNorthCap, DecMin: decMin}, nil
	}

	dra := raHalfWidth(center.Dec, radius)
	raMin, raMax := center.RA-dra, center.RA+dra
	switch {
	case raMax-raMin >= sky.MaxRA:
		return Predicate{Kind: KindBand, DecMin: decMin, DecMax: decMax}, nil
	case raMin < 0:
		return Predicate{Kind: KindWrap, RAMin: raMin + sky.MaxRA, RAMax: raMax, DecMin: decMin, DecMax: decMax}, nil
	case raMax > sky.MaxRA:
		return Predicate{Kind: KindWrap, RAMin: raMin, RAMax: raMax - sky.MaxRA, DecMin: decMin, DecMax: decMax}, nil
	default:
		return Predicate{Kind: KindBox, RAMin: raMin, RAMax: raMax, DecMin: decMin, DecMax: decMax}, nil
	}
}

// raHalfWidth returns asin(sin(radius)/cos(dec)) in degrees. The ratio only
// reaches 1 when the cap touches a pole; it is clamped so rounding there
// cannot yield NaN.
func raHalfWidth(dec, radius float64) float64 {
	ratio := math.Sin(sky.Radians(radius)) / math.Cos(sky.Radians(dec))
	if ratio > 1 {
		ratio = 1
	}
	return sky.Degrees(math.Asin(ratio))
}
