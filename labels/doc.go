// Package labels imports cluster labels from an observation (submission)
// store. Each submission carries a cluster id, a center, a score and JSON
// constraints on distance and proper motion; the import keeps the
// highest-scoring submission per cluster and yields the cluster centers used
// as sampling inputs. The store can be SQLite, PostgreSQL or MySQL.
package labels
