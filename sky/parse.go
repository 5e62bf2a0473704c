package sky

import (
	"strconv"
	"strings"
)

// ParseCoordinate parses decimal-degree strings into a validated Coordinate.
// Non-numeric input fails with ErrMalformedInput; values outside the domain
// fail with ErrInvalidArgument.
func ParseCoordinate(ra, dec string) (Coordinate, error) {
	r, err := parseFloat(ra)
	if err != nil {
		return Coordinate{}, &QueryError{Op: "parse", Kind: ErrMalformedInput, Err: err}
	}
	d, err := parseFloat(dec)
	if err != nil {
		return Coordinate{}, &QueryError{Op: "parse", Center: Coordinate{RA: r}, Kind: ErrMalformedInput, Err: err}
	}
	c := Coordinate{RA: r, Dec: d}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

// ParseRadius parses a radius in degrees and checks it lies in (0, 90).
func ParseRadius(s string) (float64, error) {
	r, err := parseFloat(s)
	if err != nil {
		return 0, &QueryError{Op: "parse", Kind: ErrMalformedInput, Err: err}
	}
	if !finite(r) {
		return 0, &QueryError{Op: "parse", Radius: r, Kind: ErrMalformedInput, Err: errNotFinite}
	}
	if r <= 0 || r >= MaxRadius {
		return 0, &QueryError{Op: "parse", Radius: r, Kind: ErrInvalidArgument, Err: errRadiusRange}
	}
	return r, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
