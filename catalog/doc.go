// Package catalog implements the read path over a SQLite star catalog:
//   - Schema helpers to create the positional star table and its indexes
//   - Store: bounding-predicate lookup followed by an exact haversine filter
//   - AddStars: transactional bulk load used to build catalogs and fixtures
package catalog
