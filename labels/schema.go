package labels

import (
	"context"
	"database/sql"
	"fmt"
)

// DefaultTable is the submission table read when none is configured.
const DefaultTable = "astronomicon_submission"

// TableDDL returns the DDL of a submission table for driver. Column types are
// accepted by SQLite, PostgreSQL and MySQL; only identifier quoting differs.
func TableDDL(driver, table string) string {
	return `CREATE TABLE IF NOT EXISTS ` + table + ` (
    cluster_id  BIGINT NOT NULL,
    ra          DOUBLE PRECISION NOT NULL,
    ` + quoteIdent(driver, "dec") + `       DOUBLE PRECISION NOT NULL,
    score       DOUBLE PRECISION NOT NULL,
    constraints TEXT NOT NULL
)`
}

// EnsureSchema creates the submission table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB, driver, table string) error {
	if table == "" {
		table = DefaultTable
	}
	if err := checkIdentifier(table); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, TableDDL(driver, table)); err != nil {
		return fmt.Errorf("labels: ensure schema: %w", err)
	}
	return nil
}
