package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/viant/sqlite-cone/engine"
	"github.com/viant/sqlite-cone/metrics"
	"github.com/viant/sqlite-cone/region"
	"github.com/viant/sqlite-cone/sky"
)

const starColumns = `source_id, ra, "dec", r, pmra, pmdec`

// Store is a read-only Catalog over a SQLite star table. Each lookup holds a
// dedicated connection from the pool and releases it before returning, on
// success or failure.
type Store struct {
	db       *sql.DB
	table    string
	filter   FilterMode
	recorder metrics.Recorder
}

// Option configures a Store.
type Option func(*Store)

// WithTable sets the star table name (default DefaultTable).
func WithTable(name string) Option { return func(s *Store) { s.table = name } }

// WithFilter selects where the exact filter runs (default FilterInProcess).
func WithFilter(mode FilterMode) Option { return func(s *Store) { s.filter = mode } }

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option { return func(s *Store) { s.recorder = r } }

// NewStore creates a Store over db. With FilterInSQL the sphere functions are
// registered with the driver; open db after registration (or call
// engine.RegisterSphereFunctions first) so pooled connections see them.
func NewStore(db *sql.DB, opts ...Option) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("catalog: db is nil")
	}
	s := &Store{db: db, table: DefaultTable, filter: FilterInProcess}
	for _, opt := range opts {
		opt(s)
	}
	if err := checkIdentifier(s.table); err != nil {
		return nil, err
	}
	switch s.filter {
	case FilterInProcess:
	case FilterInSQL:
		if err := engine.RegisterSphereFunctions(db); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("catalog: unsupported filter mode %q", s.filter)
	}
	s.recorder = metrics.OrNoop(s.recorder)
	return s, nil
}

// Search builds the bounding predicate for q and performs the lookup.
func (s *Store) Search(ctx context.Context, q sky.Query) ([]sky.Star, error) {
	pred, err := region.Build(q.Center, q.Radius)
	if err != nil {
		return nil, err
	}
	return s.Lookup(ctx, pred, q)
}

// Lookup returns the stars admitted by pred whose angular separation from
// q.Center is at most q.Radius, in catalog order.
func (s *Store) Lookup(ctx context.Context, pred region.Predicate, q sky.Query) ([]sky.Star, error) {
	if err := q.Validate(); err != nil {
		return nil, sky.WithQuery(err, "lookup", q)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	started := time.Now()
	stars, stats, err := s.lookup(ctx, pred, q)
	s.recorder.RecordLookup(time.Since(started), stats, err)
	if err != nil {
		return nil, &sky.QueryError{Op: "lookup", Center: q.Center, Radius: q.Radius, Kind: sky.ErrCatalogUnavailable, Err: err}
	}
	return stars, nil
}

func (s *Store) lookup(ctx context.Context, pred region.Predicate, q sky.Query) ([]sky.Star, metrics.LookupStats, error) {
	stats := metrics.LookupStats{Candidates: -1}
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, stats, err
	}
	defer conn.Close()

	where, args := pred.Where("ra", `"dec"`)
	var query string
	switch s.filter {
	case FilterInSQL:
		// asin(...) is half the separation, so it is compared to radius/2.
		query = `SELECT ` + starColumns + ` FROM (SELECT * FROM ` + s.table + ` WHERE ` + where + `)
WHERE asin(sqrt(pow(sin(radians("dec" - ?)/2), 2) + pow(sin(radians(ra - ?)/2), 2)*cos(radians("dec"))*?)) <= ?`
		args = append(args, q.Center.Dec, q.Center.RA, math.Cos(sky.Radians(q.Center.Dec)), sky.Radians(q.Radius)/2)
	default:
		query = `SELECT ` + starColumns + ` FROM ` + s.table + ` WHERE ` + where
	}

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, stats, err
	}
	defer rows.Close()

	var out []sky.Star
	candidates := 0
	for rows.Next() {
		star, err := scanStar(rows)
		if err != nil {
			return nil, stats, err
		}
		candidates++
		if s.filter == FilterInProcess && !q.Within(star.Position()) {
			continue
		}
		out = append(out, star)
	}
	if err := rows.Err(); err != nil {
		return nil, stats, err
	}
	if s.filter == FilterInProcess {
		stats.Candidates = candidates
	}
	stats.Matched = len(out)
	return out, stats, nil
}

func scanStar(rows *sql.Rows) (sky.Star, error) {
	var (
		star           sky.Star
		r, pmra, pmdec sql.NullFloat64
	)
	if err := rows.Scan(&star.SourceID, &star.RA, &star.Dec, &r, &pmra, &pmdec); err != nil {
		return sky.Star{}, err
	}
	star.Distance = nullable(r)
	star.PMRA = nullable(pmra)
	star.PMDec = nullable(pmdec)
	return star, nil
}

// nullable maps SQL NULL to NaN.
func nullable(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

// Ensure Store satisfies the Catalog interface.
var _ Catalog = (*Store)(nil)
