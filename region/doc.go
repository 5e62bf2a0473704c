// Package region derives indexable RA/Dec bounding predicates for circular
// cone queries. A predicate is always a superset of the true spherical cap:
// it covers the whole RA range when the cap contains a pole and splits into
// two RA intervals when the cap crosses the RA=0/360 seam.
//
// See http://janmatuschek.de/LatitudeLongitudeBoundingCoordinates for the
// bounding-coordinates technique.
package region
