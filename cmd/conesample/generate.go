package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/viant/sqlite-cone/labels"
	"github.com/viant/sqlite-cone/pmspace"
	"github.com/viant/sqlite-cone/sampler"
	"github.com/viant/sqlite-cone/sky"
)

type generateOptions struct {
	out   string
	pmOut string
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Sample every labelled cluster center",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(root)
			if err != nil {
				return err
			}
			err = runGenerate(cmd.Context(), a, opts)
			if ferr := a.flushMetrics(); err == nil {
				err = ferr
			}
			return err
		},
	}
	cmd.Flags().StringVar(&opts.out, "out", "", "directory receiving one CSV per cluster")
	cmd.Flags().StringVar(&opts.pmOut, "pm-out", "", "directory receiving one proper-motion chart JSON per cluster")
	return cmd
}

func runGenerate(ctx context.Context, a *app, opts *generateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	started := time.Now()
	store, err := labels.Open(a.cfg.LabelsConfig())
	if err != nil {
		return err
	}
	defer store.Close()
	clusters, err := store.Import(ctx)
	if err != nil {
		return err
	}
	for _, dir := range []string{opts.out, opts.pmOut} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	smp, closeCatalog, err := a.openSampler()
	if err != nil {
		return err
	}
	defer closeCatalog()

	failed, err := sampleClusters(ctx, a, smp, clusters, opts)
	a.logger.Info("generate finished",
		"clusters", len(clusters),
		"failed", failed,
		"elapsed", time.Since(started))
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d clusters could not be sampled", failed, len(clusters))
	}
	return nil
}

// sampleClusters samples each cluster on a bounded worker pool. Clusters that
// cannot reach the target are logged and counted; catalog failures and
// cancellation stop the pool.
func sampleClusters(ctx context.Context, a *app, smp *sampler.Sampler, clusters []labels.Cluster, opts *generateOptions) (int, error) {
	var failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Workers)
	s := a.cfg.Sampler
	for _, c := range clusters {
		g.Go(func() error {
			log := a.logger.With("cluster_id", c.ClusterID)
			res, err := smp.Sample(gctx, c.Center, s.MinCount, s.StartRadius, s.Step)
			if err != nil {
				if errors.Is(err, sky.ErrCatalogUnavailable) || gctx.Err() != nil {
					return fmt.Errorf("cluster %d: %w", c.ClusterID, err)
				}
				failed.Add(1)
				log.Warn("cluster skipped", "err", err)
				return nil
			}
			ellipse := pmspace.NewEllipse(c.PMRA, c.PMDec)
			log.Info("cluster sampled",
				"ra", c.Center.RA,
				"dec", c.Center.Dec,
				"radius", res.Radius,
				"stars", len(res.Stars),
				"pm_members", pmspace.Members(res.Stars, ellipse))
			if opts.out != "" {
				path := filepath.Join(opts.out, fmt.Sprintf("cluster_%d.csv", c.ClusterID))
				if err := writeClusterFile(path, res.Stars); err != nil {
					return err
				}
			}
			if opts.pmOut == "" {
				return nil
			}
			chart, err := pmspace.NewChart(res.Stars, ellipse)
			if errors.Is(err, pmspace.ErrEmpty) {
				log.Warn("no proper motions to chart")
				return nil
			}
			if err != nil {
				return fmt.Errorf("cluster %d: %w", c.ClusterID, err)
			}
			return writeChartFile(filepath.Join(opts.pmOut, fmt.Sprintf("cluster_%d_pm.json", c.ClusterID)), c, chart)
		})
	}
	err := g.Wait()
	return int(failed.Load()), err
}

func writeClusterFile(path string, stars []sky.Star) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := writeStars(f, stars); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// clusterChart is the JSON document written per cluster by --pm-out.
type clusterChart struct {
	ClusterID int64   `json:"cluster_id"`
	RA        float64 `json:"ra"`
	Dec       float64 `json:"dec"`
	pmspace.Chart
}

func writeChartFile(path string, c labels.Cluster, chart pmspace.Chart) error {
	data, err := json.MarshalIndent(clusterChart{ClusterID: c.ClusterID, RA: c.Center.RA, Dec: c.Center.Dec, Chart: chart}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
