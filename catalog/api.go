package catalog

import (
	"context"

	"github.com/viant/sqlite-cone/region"
	"github.com/viant/sqlite-cone/sky"
)

// Catalog answers cone lookups. The bounding predicate narrows candidates;
// the returned stars all lie within q.Radius of q.Center.
type Catalog interface {
	Lookup(ctx context.Context, pred region.Predicate, q sky.Query) ([]sky.Star, error)
}

// FilterMode selects where the exact haversine filter is evaluated.
type FilterMode string

const (
	// FilterInProcess fetches rows with the bounding predicate only and
	// applies the haversine test in Go.
	FilterInProcess FilterMode = "process"

	// FilterInSQL evaluates the haversine test inside SQLite using the
	// functions registered by engine.RegisterSphereFunctions.
	FilterInSQL FilterMode = "sql"
)

// ParseFilterMode maps a configuration string to a FilterMode.
func ParseFilterMode(s string) (FilterMode, bool) {
	switch FilterMode(s) {
	case "", FilterInProcess:
		return FilterInProcess, true
	case FilterInSQL:
		return FilterInSQL, true
	}
	return "", false
}
