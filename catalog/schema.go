package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
)

// DefaultTable is the star table queried when no table is configured.
const DefaultTable = "clusters"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// SchemaDDL returns the statements creating a star table with indexes on ra
// and dec, so bounding predicates can be answered from the indexes.
func SchemaDDL(table string) []string {
	base := indexPrefix(table)
	return []string{
		`CREATE TABLE IF NOT EXISTS ` + table + ` (
    source_id INTEGER PRIMARY KEY,
    ra        REAL NOT NULL,
    "dec"     REAL NOT NULL,
    r         REAL,
    pmra      REAL,
    pmdec     REAL
);`,
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_ra ON %s(ra);`, base, bareName(table)),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_dec ON %s("dec");`, base, bareName(table)),
	}
}

// EnsureSchema creates the star table and its indexes if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB, table string) error {
	if table == "" {
		table = DefaultTable
	}
	if err := checkIdentifier(table); err != nil {
		return err
	}
	for _, stmt := range SchemaDDL(table) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("catalog: ensure schema: %w", err)
		}
	}
	return nil
}

func checkIdentifier(name string) error {
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("catalog: invalid table name %q", name)
	}
	return nil
}

// indexPrefix keeps the schema qualifier on the index name (SQLite places an
// index in the schema named on the index, not on the table).
func indexPrefix(table string) string {
	if schema, name, ok := strings.Cut(table, "."); ok {
		return schema + ".idx_" + name
	}
	return "idx_" + table
}

func bareName(table string) string {
	if _, name, ok := strings.Cut(table, "."); ok {
		return name
	}
	return table
}
