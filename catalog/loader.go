package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/viant/sqlite-cone/sky"
)

// AddStars inserts or replaces stars in the given table inside a single
// transaction. Coordinates are validated before anything is written; NaN
// distance or proper motion values are stored as NULL.
func AddStars(ctx context.Context, db *sql.DB, table string, stars []sky.Star) (int, error) {
	if db == nil {
		return 0, fmt.Errorf("catalog: db is nil")
	}
	if len(stars) == 0 {
		return 0, nil
	}
	if table == "" {
		table = DefaultTable
	}
	if err := checkIdentifier(table); err != nil {
		return 0, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	for _, st := range stars {
		if err := st.Position().Validate(); err != nil {
			return 0, fmt.Errorf("catalog: star %d: %w", st.SourceID, err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO `+table+`(`+starColumns+`) VALUES(?, ?, ?, ?, ?, ?)
ON CONFLICT(source_id) DO UPDATE SET
  ra = excluded.ra,
  "dec" = excluded."dec",
  r = excluded.r,
  pmra = excluded.pmra,
  pmdec = excluded.pmdec`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, st := range stars {
		if _, err := stmt.ExecContext(ctx, st.SourceID, st.RA, st.Dec, nullOf(st.Distance), nullOf(st.PMRA), nullOf(st.PMDec)); err != nil {
			return 0, fmt.Errorf("catalog: insert star %d: %w", st.SourceID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(stars), nil
}

func nullOf(v float64) sql.NullFloat64 {
	if math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
