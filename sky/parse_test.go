package sky

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinate(t *testing.T) {
	c, err := ParseCoordinate(" 83.82 ", "-5.39")
	require.NoError(t, err)
	assert.Equal(t, Coordinate{RA: 83.82, Dec: -5.39}, c)

	_, err = ParseCoordinate("eighty", "0")
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = ParseCoordinate("10", "")
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = ParseCoordinate("NaN", "0")
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = ParseCoordinate("400", "0")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseRadius(t *testing.T) {
	r, err := ParseRadius("0.25")
	require.NoError(t, err)
	assert.Equal(t, 0.25, r)

	_, err = ParseRadius("wide")
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = ParseRadius("-1")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ParseRadius("+Inf")
	assert.ErrorIs(t, err, ErrMalformedInput)
}
