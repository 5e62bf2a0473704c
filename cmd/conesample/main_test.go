package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/sqlite-cone/catalog/catalogtest"
	"github.com/viant/sqlite-cone/labels"
	"github.com/viant/sqlite-cone/pmspace"
	"github.com/viant/sqlite-cone/sky"
)

var fieldCenter = sky.Coordinate{RA: 180, Dec: 0}

type fixture struct {
	dir        string
	stars      []sky.Star
	configPath string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{dir: dir, stars: catalogtest.Cap(fieldCenter, 0.5, 3000, 11, 1)}
	catalogPath := filepath.Join(dir, "catalog.sqlite")
	catalogtest.Write(t, catalogPath, f.stars)

	labelsPath := filepath.Join(dir, "labels.sqlite")
	store, err := labels.Open(labels.Config{Driver: "sqlite", DSN: labelsPath})
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, labels.EnsureSchema(ctx, store.DB(), "sqlite", ""))
	constraints := `{"distance":{"min":100,"max":1000},"pm_ra":{"min":-3,"max":3},"pm_dec":{"min":-3,"max":3}}`
	require.NoError(t, store.AddObservations(ctx, []labels.Observation{
		{ClusterID: 1, RA: fieldCenter.RA, Dec: fieldCenter.Dec, Score: 5, Constraints: constraints},
		{ClusterID: 1, RA: 181, Dec: 1, Score: 2, Constraints: constraints},
		{ClusterID: 2, RA: 10, Dec: 10, Score: 1, Constraints: constraints},
	}))
	require.NoError(t, store.Close())

	f.configPath = filepath.Join(dir, "cone.yaml")
	cfg := fmt.Sprintf(`catalog:
  dsn: %s
labels:
  driver: sqlite
  dsn: %s
sampler:
  minCount: 500
  startRadius: 0.05
  step: 0.05
  maxIterations: 6
workers: 2
log:
  level: error
`, catalogPath, labelsPath)
	require.NoError(t, os.WriteFile(f.configPath, []byte(cfg), 0o644))
	return f
}

// expectedCount replays the growth schedule by brute force.
func (f *fixture) expectedCount(center sky.Coordinate, minCount int, start, step float64) int {
	want := 0
	for i := 0; ; i++ {
		n := catalogtest.Count(f.stars, sky.Query{Center: center, Radius: start + float64(i)*step})
		if i > 0 && n > minCount {
			return want
		}
		want = n
		if n >= minCount {
			return want
		}
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSampleCommand(t *testing.T) {
	f := newFixture(t)
	metricsFile := filepath.Join(f.dir, "cone.prom")
	out, err := execute(t, "sample", "--config", f.configPath, "--metrics-file", metricsFile,
		"--ra", "180", "--dec", "0")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, csvHeader, records[0])
	got := len(records) - 1
	assert.Equal(t, f.expectedCount(fieldCenter, 500, 0.05, 0.05), got)
	assert.LessOrEqual(t, got, 500)
	assert.Positive(t, got)

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "cone_samples_total")
	assert.Contains(t, string(prom), "cone_lookups_total")
}

func TestSampleCommandFlagOverrides(t *testing.T) {
	f := newFixture(t)
	out, err := execute(t, "sample", "--config", f.configPath,
		"--ra", "180", "--dec", "0", "--min-count", "100", "--start-radius", "0.02", "--step", "0.02")
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, f.expectedCount(fieldCenter, 100, 0.02, 0.02), len(records)-1)
}

func TestSampleCommandRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	_, err := execute(t, "sample", "--config", f.configPath, "--ra", "abc", "--dec", "0")
	assert.ErrorIs(t, err, sky.ErrMalformedInput)

	_, err = execute(t, "sample", "--config", f.configPath, "--ra", "10", "--dec", "95")
	assert.ErrorIs(t, err, sky.ErrInvalidArgument)

	_, err = execute(t, "sample", "--config", f.configPath, "--ra", "10")
	assert.Error(t, err)
}

func TestGenerateCommand(t *testing.T) {
	f := newFixture(t)
	outDir := filepath.Join(f.dir, "samples")
	pmDir := filepath.Join(f.dir, "charts")
	_, err := execute(t, "generate", "--config", f.configPath, "--out", outDir, "--pm-out", pmDir)
	// Cluster 2 lies outside the synthetic field and exhausts its iterations.
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 clusters")

	data, err := os.ReadFile(filepath.Join(outDir, "cluster_1.csv"))
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, f.expectedCount(fieldCenter, 500, 0.05, 0.05), len(records)-1)

	_, err = os.Stat(filepath.Join(outDir, "cluster_2.csv"))
	assert.True(t, os.IsNotExist(err))

	data, err = os.ReadFile(filepath.Join(pmDir, "cluster_1_pm.json"))
	require.NoError(t, err)
	var chart clusterChart
	require.NoError(t, json.Unmarshal(data, &chart))
	assert.Equal(t, int64(1), chart.ClusterID)
	assert.Equal(t, len(records)-1, chart.Members+chart.Field)
	assert.Positive(t, chart.Members)
	assert.Len(t, chart.Boundary.X, pmspace.DefaultSegments)
	assert.NotEmpty(t, chart.Dividers)
	assert.Equal(t, pmspace.NewEllipse(sky.Range{Min: -3, Max: 3}, sky.Range{Min: -3, Max: 3}), chart.Ellipse)

	_, err = os.Stat(filepath.Join(pmDir, "cluster_2_pm.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestSampleFlagDomains(t *testing.T) {
	cmd := newSampleCmd(&rootOptions{})
	assert.Contains(t, cmd.Flags().Lookup("ra").Usage, "[0, 360)")
	assert.Contains(t, cmd.Flags().Lookup("dec").Usage, "[-90, 90)")
}

func TestGenerateRequiresCatalog(t *testing.T) {
	f := newFixture(t)
	cfg := filepath.Join(f.dir, "nocatalog.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("labels:\n  driver: sqlite\n  dsn: "+filepath.Join(f.dir, "labels.sqlite")+"\n"), 0o644))
	_, err := execute(t, "generate", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog dsn")
}
