package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/viant/sqlite-cone/catalog"
	"github.com/viant/sqlite-cone/config"
	"github.com/viant/sqlite-cone/engine"
	"github.com/viant/sqlite-cone/logging"
	"github.com/viant/sqlite-cone/metrics"
	"github.com/viant/sqlite-cone/sampler"
)

// app carries the per-invocation runtime: configuration, logger and metrics.
type app struct {
	cfg      *config.Config
	logger   *logging.Logger
	registry *prometheus.Registry
	recorder metrics.Recorder
	runID    string
}

func newApp(opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.metricsFile != "" {
		cfg.MetricsFile = opts.metricsFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	registry := prometheus.NewRegistry()
	return &app{
		cfg:      cfg,
		logger:   logging.New(os.Stderr, cfg.Log.Format, level).With("run", runID),
		registry: registry,
		recorder: metrics.NewPrometheus(registry),
		runID:    runID,
	}, nil
}

// openSampler opens the catalog read-only and builds a sampler over it. The
// returned closer releases the catalog handle.
func (a *app) openSampler() (*sampler.Sampler, func() error, error) {
	if a.cfg.Catalog.DSN == "" {
		return nil, nil, fmt.Errorf("catalog dsn is not configured (catalog.dsn or CONE_CATALOG_DSN)")
	}
	// Functions must be registered before the first catalog connection opens.
	if err := engine.RegisterSphereFunctions(nil); err != nil {
		return nil, nil, err
	}
	db, err := engine.OpenReadOnly(a.cfg.Catalog.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open catalog: %w", err)
	}
	store, err := catalog.NewStore(db,
		catalog.WithTable(a.cfg.Catalog.Table),
		catalog.WithFilter(a.cfg.FilterMode()),
		catalog.WithRecorder(a.recorder))
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	smp, err := sampler.New(store,
		sampler.WithMaxRadius(a.cfg.Sampler.MaxRadius),
		sampler.WithMaxIterations(a.cfg.Sampler.MaxIterations),
		sampler.WithLogger(a.logger),
		sampler.WithRecorder(a.recorder))
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return smp, db.Close, nil
}

// flushMetrics writes the registry to the configured textfile, if any.
func (a *app) flushMetrics() error {
	if a.cfg.MetricsFile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.cfg.MetricsFile, a.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
