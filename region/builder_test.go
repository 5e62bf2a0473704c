package region

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/sqlite-cone/sky"
)

func TestBuild_NorthPoleCap(t *testing.T) {
	p, err := Build(sky.Coordinate{RA: 10.0, Dec: 89.5}, 1.0)
	require.NoError(t, err)
	assert.Equal(t, KindNorthCap, p.Kind)
	assert.InDelta(t, 88.5, p.DecMin, 1e-12)
	assert.False(t, p.HasRAConstraint())

	where, args := p.Where("ra", "dec")
	assert.Equal(t, "dec >= ?", where)
	require.Len(t, args, 1)
	assert.InDelta(t, 88.5, args[0].(float64), 1e-12)
}

func TestBuild_SouthPoleCap(t *testing.T) {
	p, err := Build(sky.Coordinate{RA: 200, Dec: -89.5}, 1.0)
	require.NoError(t, err)
	assert.Equal(t, KindSouthCap, p.Kind)
	assert.InDelta(t, -88.5, p.DecMax, 1e-12)

	where, args := p.Where("ra", "dec")
	assert.Equal(t, "dec <= ?", where)
	assert.Len(t, args, 1)
	assert.True(t, p.Contains(17, -89.9))
	assert.False(t, p.Contains(200, -88))
}

func TestBuild_PoleCapsHaveNoRAConstraint(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		radius := 0.01 + rng.Float64()*89.98
		ra := rng.Float64() * 360
		// South: dec - radius < -90.
		dec := -90 + rng.Float64()*radius*0.999
		p, err := Build(sky.Coordinate{RA: ra, Dec: dec}, radius)
		require.NoError(t, err)
		if dec-radius < -90 {
			assert.Equal(t, KindSouthCap, p.Kind)
			assert.Equal(t, dec+radius, p.DecMax)
		}
		// North: dec + radius > 90.
		dec = 90 - rng.Float64()*radius*0.999
		if dec >= 90 {
			continue
		}
		p, err = Build(sky.Coordinate{RA: ra, Dec: dec}, radius)
		require.NoError(t, err)
		if dec+radius > 90 {
			assert.Equal(t, KindNorthCap, p.Kind)
			assert.Equal(t, dec-radius, p.DecMin)
		}
	}
}

func TestBuild_Box(t *testing.T) {
	p, err := Build(sky.Coordinate{RA: 180, Dec: 30}, 1)
	require.NoError(t, err)
	assert.Equal(t, KindBox, p.Kind)
	dra := sky.Degrees(math.Asin(math.Sin(sky.Radians(1)) / math.Cos(sky.Radians(30))))
	assert.InDelta(t, 180-dra, p.RAMin, 1e-12)
	assert.InDelta(t, 180+dra, p.RAMax, 1e-12)
	assert.InDelta(t, 29, p.DecMin, 1e-12)
	assert.InDelta(t, 31, p.DecMax, 1e-12)

	where, args := p.Where("ra", "dec")
	assert.Equal(t, "ra >= ? AND ra <= ? AND dec >= ? AND dec <= ?", where)
	assert.Len(t, args, 4)
}

func TestBuild_BoxAwayFromSeamHasNoDisjunction(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 500; i++ {
		radius := 0.01 + rng.Float64()*5
		dec := -60 + rng.Float64()*120
		dra := raHalfWidth(dec, radius)
		ra := dra + rng.Float64()*(360-2*dra)
		if ra >= 360 {
			continue
		}
		p, err := Build(sky.Coordinate{RA: ra, Dec: dec}, radius)
		require.NoError(t, err)
		assert.Equal(t, KindBox, p.Kind, "ra=%v dec=%v radius=%v", ra, dec, radius)
	}
}

func TestBuild_WrapAtZero(t *testing.T) {
	p, err := Build(sky.Coordinate{RA: 0.5, Dec: 0.0}, 2.0)
	require.NoError(t, err)
	assert.Equal(t, KindWrap, p.Kind)
	assert.InDelta(t, 358.5, p.RAMin, 1e-9)
	assert.InDelta(t, 2.5, p.RAMax, 1e-9)
	assert.InDelta(t, -2.0, p.DecMin, 1e-12)
	assert.InDelta(t, 2.0, p.DecMax, 1e-12)

	where, _ := p.Where("ra", "dec")
	assert.Equal(t, "(ra >= ? OR ra <= ?) AND dec >= ? AND dec <= ?", where)
}

func TestBuild_WrapAt360(t *testing.T) {
	p, err := Build(sky.Coordinate{RA: 359.5, Dec: 0.0}, 2.0)
	require.NoError(t, err)
	assert.Equal(t, KindWrap, p.Kind)
	assert.InDelta(t, 357.5, p.RAMin, 1e-9)
	assert.InDelta(t, 1.5, p.RAMax, 1e-9)
}

func TestBuild_WrapContainsAcrossSeam(t *testing.T) {
	p, err := Build(sky.Coordinate{RA: 1, Dec: 10}, 3)
	require.NoError(t, err)
	require.Equal(t, KindWrap, p.Kind)
	assert.True(t, p.Contains(359, 10))
	assert.True(t, p.Contains(2, 10))
	assert.False(t, p.Contains(180, 10))
	assert.False(t, p.Contains(359, 14))
}

func TestBuild_InvalidInputs(t *testing.T) {
	cases := []struct {
		name   string
		center sky.Coordinate
		radius float64
		kind   error
	}{
		{"zero radius", sky.Coordinate{RA: 1, Dec: 1}, 0, sky.ErrInvalidArgument},
		{"radius 90", sky.Coordinate{RA: 1, Dec: 1}, 90, sky.ErrInvalidArgument},
		{"ra 360", sky.Coordinate{RA: 360, Dec: 1}, 1, sky.ErrInvalidArgument},
		{"dec 90", sky.Coordinate{RA: 1, Dec: 90}, 1, sky.ErrInvalidArgument},
		{"nan dec", sky.Coordinate{RA: 1, Dec: math.NaN()}, 1, sky.ErrMalformedInput},
		{"nan radius", sky.Coordinate{RA: 1, Dec: 1}, math.NaN(), sky.ErrMalformedInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Build(tc.center, tc.radius)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.kind)
			assert.Contains(t, err.Error(), "build")
		})
	}
}

// TestBuild_IsSupersetOfCap walks points just inside the cap boundary and
// checks the predicate admits every one of them.
func TestBuild_IsSupersetOfCap(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 300; i++ {
		center := sky.Coordinate{RA: rng.Float64() * 360, Dec: -89.9 + rng.Float64()*179.8}
		radius := 0.01 + rng.Float64()*30
		p, err := Build(center, radius)
		require.NoError(t, err)
		for b := 0; b < 36; b++ {
			pt := destination(center, radius*0.999, float64(b)*10)
			require.True(t, p.Contains(pt.RA, pt.Dec),
				"center=%+v radius=%v bearing=%d point=%+v predicate=%s", center, radius, b*10, pt, p)
		}
	}
}

func TestPredicateString(t *testing.T) {
	p := Predicate{Kind: KindWrap, RAMin: 358.5, RAMax: 2.5, DecMin: -2, DecMax: 2}
	assert.Equal(t, "wrap(ra>=358.5|ra<=2.5, -2<=dec<=2)", p.String())
	assert.Equal(t, "band(-1<=dec<=1)", Predicate{Kind: KindBand, DecMin: -1, DecMax: 1}.String())
}

// destination returns the point at angular distance dist (degrees) from c
// along the given bearing (degrees east of north).
func destination(c sky.Coordinate, dist, bearing float64) sky.Coordinate {
	lat1, lon1 := sky.Radians(c.Dec), sky.Radians(c.RA)
	d, th := sky.Radians(dist), sky.Radians(bearing)
	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(th))
	lon2 := lon1 + math.Atan2(math.Sin(th)*math.Sin(d)*math.Cos(lat1), math.Cos(d)-math.Sin(lat1)*math.Sin(lat2))
	ra := math.Mod(sky.Degrees(lon2), 360)
	if ra < 0 {
		ra += 360
	}
	return sky.Coordinate{RA: ra, Dec: sky.Degrees(lat2)}
}
