// Package catalogtest builds synthetic SQLite star catalogs for tests.
package catalogtest

import (
	"context"
	"database/sql"
	"math"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/viant/sqlite-cone/catalog"
	"github.com/viant/sqlite-cone/engine"
	"github.com/viant/sqlite-cone/sky"
)

// Open creates a file-backed catalog in t.TempDir() holding stars and returns
// its handle. Sphere functions are registered before the database is opened
// so every pooled connection can evaluate SQL-side filters.
func Open(t testing.TB, stars []sky.Star) *sql.DB {
	t.Helper()
	return Write(t, filepath.Join(t.TempDir(), "catalog.sqlite"), stars)
}

// Write creates the catalog table at path, inserts stars and returns the open
// handle, closed on test cleanup.
func Write(t testing.TB, path string, stars []sky.Star) *sql.DB {
	t.Helper()
	if err := engine.RegisterSphereFunctions(nil); err != nil {
		t.Fatalf("RegisterSphereFunctions failed: %v", err)
	}
	db, err := engine.Open(path)
	if err != nil {
		t.Fatalf("engine.Open failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	if err := catalog.EnsureSchema(ctx, db, catalog.DefaultTable); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	if _, err := catalog.AddStars(ctx, db, catalog.DefaultTable, stars); err != nil {
		t.Fatalf("AddStars failed: %v", err)
	}
	return db
}

// Cap returns n stars distributed uniformly by area over the spherical cap of
// the given radius (degrees) around center. The expected number of stars
// within r <= radius of center is n*(1-cos r)/(1-cos radius). Source ids start
// at firstID.
func Cap(center sky.Coordinate, radius float64, n int, seed, firstID int64) []sky.Star {
	rng := rand.New(rand.NewSource(seed))
	cosR := math.Cos(sky.Radians(radius))
	out := make([]sky.Star, 0, n)
	for i := 0; i < n; i++ {
		cosD := 1 - rng.Float64()*(1-cosR)
		dist := sky.Degrees(math.Acos(cosD))
		p := Destination(center, dist, rng.Float64()*360)
		out = append(out, sky.Star{
			SourceID: firstID + int64(i),
			RA:       p.RA,
			Dec:      p.Dec,
			Distance: 100 + rng.Float64()*900,
			PMRA:     rng.NormFloat64() * 3,
			PMDec:    rng.NormFloat64() * 3,
		})
	}
	return out
}

// Destination returns the point at angular distance dist (degrees) from c
// along bearing (degrees east of north), with RA normalized to [0, 360).
func Destination(c sky.Coordinate, dist, bearing float64) sky.Coordinate {
	lat1, lon1 := sky.Radians(c.Dec), sky.Radians(c.RA)
	d, th := sky.Radians(dist), sky.Radians(bearing)
	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(th))
	lon2 := lon1 + math.Atan2(math.Sin(th)*math.Sin(d)*math.Cos(lat1), math.Cos(d)-math.Sin(lat1)*math.Sin(lat2))
	ra := math.Mod(sky.Degrees(lon2), 360)
	if ra < 0 {
		ra += 360
	}
	if ra >= 360 {
		ra = 0
	}
	dec := sky.Degrees(lat2)
	if dec >= 90 {
		dec = math.Nextafter(90, 0)
	}
	return sky.Coordinate{RA: ra, Dec: dec}
}

// Count returns how many stars lie within q, computed by brute force.
func Count(stars []sky.Star, q sky.Query) int {
	n := 0
	for _, s := range stars {
		if q.Within(s.Position()) {
			n++
		}
	}
	return n
}
