package region

import (
	"fmt"
	"strings"
)

// Kind identifies the shape of a Predicate.
type Kind int

const (
	// KindBox is a single RA interval plus a Dec band.
	KindBox Kind = iota
	// KindWrap is two RA intervals joined at the RA seam plus a Dec band:
	// ra >= RAMin OR ra <= RAMax.
	KindWrap
	// KindBand is a Dec band over the whole RA range.
	KindBand
	// KindSouthCap is dec <= DecMax over the whole RA range.
	KindSouthCap
	// KindNorthCap is dec >= DecMin over the whole RA range.
	KindNorthCap
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindWrap:
		return "wrap"
	case KindBand:
		return "band"
	case KindSouthCap:
		return "south-cap"
	case KindNorthCap:
		return "north-cap"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Predicate is a rectangular RA/Dec constraint. Fields not used by Kind are
// zero.
type Predicate struct {
	Kind   Kind
	RAMin  float64
	RAMax  float64
	DecMin float64
	DecMax float64
}

// HasRAConstraint reports whether the predicate restricts RA at all.
func (p Predicate) HasRAConstraint() bool {
	return p.Kind == KindBox || p.Kind == KindWrap
}

// Contains evaluates the predicate for a single position, with the same
// semantics as the SQL produced by Where.
func (p Predicate) Contains(ra, dec float64) bool {
	switch p.Kind {
	case KindSouthCap:
		return dec <= p.DecMax
	case KindNorthCap:
		return dec >= p.DecMin
	}
	if dec < p.DecMin || dec > p.DecMax {
		return false
	}
	switch p.Kind {
	case KindBox:
		return ra >= p.RAMin && ra <= p.RAMax
	case KindWrap:
		return ra >= p.RAMin || ra <= p.RAMax
	default:
		return true
	}
}

// Where renders the predicate as a SQL boolean expression with positional
// placeholders over the given RA and Dec column expressions.
//
// Column expressions are interpolated; callers must pass trusted identifiers.
func (p Predicate) Where(raCol, decCol string) (string, []any) {
	switch p.Kind {
	case KindSouthCap:
		return decCol + " <= ?", []any{p.DecMax}
	case KindNorthCap:
		return decCol + " >= ?", []any{p.DecMin}
	}
	band := decCol + " >= ? AND " + decCol + " <= ?"
	switch p.Kind {
	case KindBox:
		return raCol + " >= ? AND " + raCol + " <= ? AND " + band,
			[]any{p.RAMin, p.RAMax, p.DecMin, p.DecMax}
	case KindWrap:
		return "(" + raCol + " >= ? OR " + raCol + " <= ?) AND " + band,
			[]any{p.RAMin, p.RAMax, p.DecMin, p.DecMax}
	default:
		return band, []any{p.DecMin, p.DecMax}
	}
}

func (p Predicate) String() string {
	var b strings.Builder
	b.WriteString(p.Kind.String())
	switch p.Kind {
	case KindSouthCap:
		fmt.Fprintf(&b, "(dec<=%g)", p.DecMax)
	case KindNorthCap:
		fmt.Fprintf(&b, "(dec>=%g)", p.DecMin)
	case KindBand:
		fmt.Fprintf(&b, "(%g<=dec<=%g)", p.DecMin, p.DecMax)
	case KindBox:
		fmt.Fprintf(&b, "(%g<=ra<=%g, %g<=dec<=%g)", p.RAMin, p.RAMax, p.DecMin, p.DecMax)
	case KindWrap:
		fmt.Fprintf(&b, "(ra>=%g|ra<=%g, %g<=dec<=%g)", p.RAMin, p.RAMax, p.DecMin, p.DecMax)
	}
	return b.String()
}
