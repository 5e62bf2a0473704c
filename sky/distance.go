package sky

import "math"

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// Haversine returns the half-angle term asin(sqrt(hav)) between two
// coordinates, in radians. The full separation is twice this value; comparing
// Haversine against radius/2 is equivalent to comparing the separation against
// radius.
func Haversine(a, b Coordinate) float64 {
	dDec := Radians(b.Dec - a.Dec)
	dRA := Radians(b.RA - a.RA)
	sDec := math.Sin(dDec / 2)
	sRA := math.Sin(dRA / 2)
	h := sDec*sDec + sRA*sRA*math.Cos(Radians(a.Dec))*math.Cos(Radians(b.Dec))
	if h > 1 {
		h = 1
	}
	return math.Asin(math.Sqrt(h))
}

// AngularSeparation returns the great-circle distance between two
// coordinates in radians.
func AngularSeparation(a, b Coordinate) float64 { return 2 * Haversine(a, b) }

// Within reports whether p lies inside the cone of q (separation <= radius).
func (q Query) Within(p Coordinate) bool {
	return Haversine(q.Center, p) <= Radians(q.Radius)/2
}
