// Package sky defines the celestial data model shared by this module:
//   - Coordinate, Query and Star value types
//   - validation of RA/Dec and radius domains
//   - haversine angular separation
//   - the error kinds surfaced by cone searches
package sky
