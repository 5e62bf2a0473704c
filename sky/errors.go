package sky

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a center or radius lies outside its
	// valid domain.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMalformedInput is returned for non-numeric or non-finite coordinate
	// and radius values.
	ErrMalformedInput = errors.New("malformed input")

	// ErrCatalogUnavailable is returned when the catalog store cannot be
	// reached or a query against it fails.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrRadiusExhausted is returned when adaptive sampling hits its radius or
	// iteration ceiling before reaching the requested count.
	ErrRadiusExhausted = errors.New("radius exhausted")
)

var (
	errNotFinite   = errors.New("value is not a finite number")
	errRARange     = errors.New("expected RA in the range [0, 360)")
	errDecRange    = errors.New("expected Dec in the range [-90, 90)")
	errRadiusRange = errors.New("expected radius in the range (0, 90)")
)

// QueryError describes a failed cone operation together with the center and
// radius that triggered it.
//
// Kind is one of the package sentinels and matches with errors.Is; the
// underlying cause (if any) is reachable through errors.Unwrap as well.
type QueryError struct {
	Op     string
	Center Coordinate
	Radius float64
	Kind   error
	Err    error
}

func (e *QueryError) Error() string {
	msg := fmt.Sprintf("%s ra=%g dec=%g", e.Op, e.Center.RA, e.Center.Dec)
	if e.Radius != 0 {
		msg += fmt.Sprintf(" radius=%g", e.Radius)
	}
	if e.Kind != nil {
		msg += ": " + e.Kind.Error()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *QueryError) Unwrap() []error {
	var out []error
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// WithQuery returns a copy of err bound to q when err is a *QueryError that
// lacks a radius; other errors are returned unchanged.
func WithQuery(err error, op string, q Query) error {
	var qe *QueryError
	if !errors.As(err, &qe) {
		return err
	}
	cp := *qe
	cp.Op = op
	cp.Center = q.Center
	cp.Radius = q.Radius
	return &cp
}
