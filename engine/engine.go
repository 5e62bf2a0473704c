package engine

import (
	"database/sql"
	"strings"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// DriverName is the database/sql driver name registered by modernc.org/sqlite.
const DriverName = "sqlite"

// Open opens a SQLite database using the modernc.org/sqlite driver.
//
// For file-based databases, pass a path like "./catalog.sqlite". For
// in-memory databases, pass ":memory:". Note that every pooled connection to
// ":memory:" sees its own empty database.
func Open(dsn string) (*sql.DB, error) { return sql.Open(DriverName, dsn) }

// OpenReadOnly opens an existing catalog file in read-only mode.
func OpenReadOnly(path string) (*sql.DB, error) {
	dsn := path
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return sql.Open(DriverName, dsn+sep+"mode=ro")
}
