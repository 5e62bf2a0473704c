package labels

import "github.com/viant/sqlite-cone/sky"

// Observation mirrors a single row of the submission table.
type Observation struct {
	ClusterID int64
	RA        float64
	Dec       float64
	Score     float64
	// Constraints is the raw JSON constraint document.
	Constraints string
}

// Constraints are the decoded constraint ranges of a submission.
type Constraints struct {
	Distance sky.Range `json:"distance"`
	PMRA     sky.Range `json:"pm_ra"`
	PMDec    sky.Range `json:"pm_dec"`
}

// Cluster is a deduplicated cluster descriptor.
type Cluster struct {
	ClusterID int64
	Center    sky.Coordinate
	Score     float64
	Constraints
}

// Config captures the settings needed to read submissions from an
// observation store.
type Config struct {
	// Driver is the database/sql driver name: "sqlite", "pgx" or "postgres".
	Driver string

	// DSN is the driver-specific data source name.
	DSN string

	// Table is the submission table name (default DefaultTable).
	Table string
}
