package labels

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/viant/sqlite-cone/sky"
)

type rawConstraints struct {
	Distance *sky.Range `json:"distance"`
	PMRA     *sky.Range `json:"pm_ra"`
	PMDec    *sky.Range `json:"pm_dec"`
}

// DecodeConstraints parses a constraint document. All three ranges are
// required.
func DecodeConstraints(doc string) (Constraints, error) {
	var raw rawConstraints
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		return Constraints{}, fmt.Errorf("%w: constraints: %v", sky.ErrMalformedInput, err)
	}
	switch {
	case raw.Distance == nil:
		return Constraints{}, fmt.Errorf("%w: constraints: missing distance", sky.ErrMalformedInput)
	case raw.PMRA == nil:
		return Constraints{}, fmt.Errorf("%w: constraints: missing pm_ra", sky.ErrMalformedInput)
	case raw.PMDec == nil:
		return Constraints{}, fmt.Errorf("%w: constraints: missing pm_dec", sky.ErrMalformedInput)
	}
	return Constraints{Distance: *raw.Distance, PMRA: *raw.PMRA, PMDec: *raw.PMDec}, nil
}

// EncodeConstraints renders c as a constraint document.
func EncodeConstraints(c Constraints) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode converts observations into cluster descriptors.
func Decode(obs []Observation) ([]Cluster, error) {
	out := make([]Cluster, 0, len(obs))
	for _, o := range obs {
		c, err := DecodeConstraints(o.Constraints)
		if err != nil {
			return nil, fmt.Errorf("labels: cluster %d: %w", o.ClusterID, err)
		}
		out = append(out, Cluster{
			ClusterID:   o.ClusterID,
			Center:      sky.Coordinate{RA: o.RA, Dec: o.Dec},
			Score:       o.Score,
			Constraints: c,
		})
	}
	return out, nil
}

// Deduplicate keeps the highest-scoring descriptor per cluster id, ordered by
// cluster id. On equal scores the earliest descriptor wins.
func Deduplicate(clusters []Cluster) []Cluster {
	sorted := append([]Cluster(nil), clusters...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ClusterID != sorted[j].ClusterID {
			return sorted[i].ClusterID < sorted[j].ClusterID
		}
		return sorted[i].Score > sorted[j].Score
	})
	out := sorted[:0]
	for _, c := range sorted {
		if len(out) == 0 || out[len(out)-1].ClusterID != c.ClusterID {
			out = append(out, c)
		}
	}
	return out
}

// Import reads all submissions, decodes their constraints and returns one
// descriptor per cluster.
func (s *Store) Import(ctx context.Context) ([]Cluster, error) {
	obs, err := s.Observations(ctx)
	if err != nil {
		return nil, err
	}
	clusters, err := Decode(obs)
	if err != nil {
		return nil, err
	}
	return Deduplicate(clusters), nil
}
