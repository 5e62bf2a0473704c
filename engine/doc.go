// Package engine provides helpers for working with the modernc.org/sqlite
// driver in this module: opening catalog databases and registering the
// spherical-trigonometry scalar functions (asin, sqrt, sin, cos, radians,
// pow) used by SQL-side haversine filtering.
package engine
