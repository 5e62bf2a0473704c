package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/sqlite-cone/sky"
)

const orionDoc = `{"distance":{"min":380,"max":420},"pm_ra":{"min":0.5,"max":2.5},"pm_dec":{"min":-1.5,"max":0.5}}`

func TestDecodeConstraints(t *testing.T) {
	c, err := DecodeConstraints(orionDoc)
	require.NoError(t, err)
	assert.Equal(t, sky.Range{Min: 380, Max: 420}, c.Distance)
	assert.Equal(t, sky.Range{Min: 0.5, Max: 2.5}, c.PMRA)
	assert.Equal(t, sky.Range{Min: -1.5, Max: 0.5}, c.PMDec)

	doc, err := EncodeConstraints(c)
	require.NoError(t, err)
	again, err := DecodeConstraints(doc)
	require.NoError(t, err)
	assert.Equal(t, c, again)
}

func TestDecodeConstraints_Malformed(t *testing.T) {
	for _, doc := range []string{
		`not json`,
		`{"distance":{"min":1,"max":2},"pm_ra":{"min":1,"max":2}}`,
		`{"pm_ra":{"min":1,"max":2},"pm_dec":{"min":1,"max":2}}`,
		`{"distance":{"min":"near","max":2},"pm_ra":{"min":1,"max":2},"pm_dec":{"min":1,"max":2}}`,
	} {
		_, err := DecodeConstraints(doc)
		assert.ErrorIs(t, err, sky.ErrMalformedInput, doc)
	}
}

func TestDecode_NamesFailingCluster(t *testing.T) {
	_, err := Decode([]Observation{
		{ClusterID: 1, RA: 10, Dec: 10, Score: 1, Constraints: orionDoc},
		{ClusterID: 42, RA: 10, Dec: 10, Score: 1, Constraints: `{}`},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sky.ErrMalformedInput)
	assert.Contains(t, err.Error(), "cluster 42")
}

func TestDeduplicate(t *testing.T) {
	in := []Cluster{
		{ClusterID: 3, Score: 2.0, Center: sky.Coordinate{RA: 3}},
		{ClusterID: 1, Score: 5.0, Center: sky.Coordinate{RA: 1}},
		{ClusterID: 3, Score: 9.5, Center: sky.Coordinate{RA: 33}},
		{ClusterID: 2, Score: 4.0, Center: sky.Coordinate{RA: 2}},
		{ClusterID: 1, Score: 5.0, Center: sky.Coordinate{RA: 11}},
		{ClusterID: 3, Score: 0.0, Center: sky.Coordinate{RA: 333}},
	}
	got := Deduplicate(in)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{got[0].ClusterID, got[1].ClusterID, got[2].ClusterID})
	assert.Equal(t, 1.0, got[0].Center.RA, "first row wins on equal score")
	assert.Equal(t, 33.0, got[2].Center.RA)
	assert.Equal(t, 9.5, got[2].Score)

	assert.Equal(t, 3.0, in[0].Center.RA, "input must not be reordered")
	assert.Empty(t, Deduplicate(nil))
}
