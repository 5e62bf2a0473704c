package sky

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryValidate(t *testing.T) {
	cases := []struct {
		name string
		q    Query
		kind error
	}{
		{"valid", Query{Center: Coordinate{RA: 0, Dec: -90}, Radius: 0.01}, nil},
		{"ra upper bound excluded", Query{Center: Coordinate{RA: 360, Dec: 0}, Radius: 1}, ErrInvalidArgument},
		{"negative ra", Query{Center: Coordinate{RA: -0.1, Dec: 0}, Radius: 1}, ErrInvalidArgument},
		{"dec upper bound excluded", Query{Center: Coordinate{RA: 1, Dec: 90}, Radius: 1}, ErrInvalidArgument},
		{"dec below pole", Query{Center: Coordinate{RA: 1, Dec: -90.5}, Radius: 1}, ErrInvalidArgument},
		{"zero radius", Query{Center: Coordinate{RA: 1, Dec: 0}, Radius: 0}, ErrInvalidArgument},
		{"radius 90", Query{Center: Coordinate{RA: 1, Dec: 0}, Radius: 90}, ErrInvalidArgument},
		{"nan ra", Query{Center: Coordinate{RA: math.NaN(), Dec: 0}, Radius: 1}, ErrMalformedInput},
		{"inf radius", Query{Center: Coordinate{RA: 1, Dec: 0}, Radius: math.Inf(1)}, ErrMalformedInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.q.Validate()
			if tc.kind == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.kind)
		})
	}
}

func TestQueryErrorCarriesQuery(t *testing.T) {
	q := Query{Center: Coordinate{RA: 12, Dec: 34}, Radius: 95}
	err := q.Validate()
	require.Error(t, err)

	var qe *QueryError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, q.Center, qe.Center)
	assert.Equal(t, 95.0, qe.Radius)
	assert.Contains(t, err.Error(), "radius=95")

	bound := WithQuery(err, "lookup", Query{Center: Coordinate{RA: 1, Dec: 2}, Radius: 3})
	require.True(t, errors.As(bound, &qe))
	assert.Equal(t, "lookup", qe.Op)
	assert.Equal(t, 3.0, qe.Radius)
	assert.ErrorIs(t, bound, ErrInvalidArgument)
}

func TestRange(t *testing.T) {
	r := Range{Min: -2, Max: 6}
	assert.Equal(t, 2.0, r.Mid())
	assert.Equal(t, 4.0, r.HalfWidth())
}
