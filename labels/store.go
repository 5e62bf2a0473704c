package labels

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	_ "github.com/go-sql-driver/mysql" // register "mysql" driver
	_ "github.com/jackc/pgx/v5/stdlib" // register "pgx" driver
	_ "github.com/lib/pq"              // register "postgres" driver

	"github.com/viant/sqlite-cone/engine"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

func checkIdentifier(name string) error {
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("labels: invalid table name %q", name)
	}
	return nil
}

// Drivers lists the database/sql driver names a Store accepts.
var Drivers = []string{engine.DriverName, "pgx", "postgres", "mysql"}

// SupportedDriver reports whether name is one of Drivers.
func SupportedDriver(name string) bool {
	for _, d := range Drivers {
		if d == name {
			return true
		}
	}
	return false
}

// quoteIdent quotes a column name for driver. MySQL treats double quotes as
// string delimiters unless ANSI_QUOTES is set.
func quoteIdent(driver, name string) string {
	if driver == "mysql" {
		return "`" + name + "`"
	}
	return `"` + name + `"`
}

// Store reads and writes submissions.
type Store struct {
	db     *sql.DB
	driver string
	table  string
}

// Open opens the observation store described by cfg.
func Open(cfg Config) (*Store, error) {
	if !SupportedDriver(cfg.Driver) {
		return nil, fmt.Errorf("labels: unsupported driver %q", cfg.Driver)
	}
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("labels: open %s: %w", cfg.Driver, err)
	}
	s, err := NewStore(db, cfg.Driver, cfg.Table)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewStore wraps an open database. driver selects the placeholder and
// identifier quoting style.
func NewStore(db *sql.DB, driver, table string) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("labels: db is nil")
	}
	if table == "" {
		table = DefaultTable
	}
	if err := checkIdentifier(table); err != nil {
		return nil, err
	}
	return &Store{db: db, driver: driver, table: table}, nil
}

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Observations returns every submission row.
func (s *Store) Observations(ctx context.Context) ([]Observation, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	rows, err := s.db.QueryContext(ctx, s.selectQuery())
	if err != nil {
		return nil, fmt.Errorf("labels: query %s: %w", s.table, err)
	}
	defer rows.Close()

	var out []Observation
	for rows.Next() {
		var o Observation
		if err := rows.Scan(&o.ClusterID, &o.RA, &o.Dec, &o.Score, &o.Constraints); err != nil {
			return nil, fmt.Errorf("labels: scan %s: %w", s.table, err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("labels: read %s: %w", s.table, err)
	}
	return out, nil
}

// AddObservations inserts submissions in a single transaction.
func (s *Store) AddObservations(ctx context.Context, obs []Observation) error {
	if len(obs) == 0 {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, s.insertQuery())
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, o := range obs {
		if _, err := stmt.ExecContext(ctx, o.ClusterID, o.RA, o.Dec, o.Score, o.Constraints); err != nil {
			return fmt.Errorf("labels: insert cluster %d: %w", o.ClusterID, err)
		}
	}
	return tx.Commit()
}

func (s *Store) columns() string {
	return "cluster_id, ra, " + quoteIdent(s.driver, "dec") + ", score, constraints"
}

func (s *Store) selectQuery() string {
	return "SELECT " + s.columns() + " FROM " + s.table
}

func (s *Store) insertQuery() string {
	return "INSERT INTO " + s.table + "(" + s.columns() + ") VALUES(" + s.placeholders(5) + ")"
}

// placeholders returns n positional parameters in the driver's style.
func (s *Store) placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		switch s.driver {
		case "pgx", "postgres":
			parts[i] = "$" + strconv.Itoa(i+1)
		default:
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ", ")
}
