// Package config loads conesample settings from an optional YAML file and
// CONE_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/viant/sqlite-cone/catalog"
	"github.com/viant/sqlite-cone/labels"
	"github.com/viant/sqlite-cone/logging"
)

// Defaults used when neither the file nor the environment set a value.
const (
	DefaultMinCount    = 5000
	DefaultStartRadius = 0.01
	DefaultStep        = 0.01
	DefaultWorkers     = 1
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultLabelDriver = "sqlite"
)

// Catalog locates the star catalog.
type Catalog struct {
	DSN    string `yaml:"dsn"`
	Table  string `yaml:"table"`
	Filter string `yaml:"filter"`
}

// Labels locates the cluster label submissions.
type Labels struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Table  string `yaml:"table"`
}

// Sampler holds the adaptive sampling thresholds.
type Sampler struct {
	MinCount      int     `yaml:"minCount"`
	StartRadius   float64 `yaml:"startRadius"`
	Step          float64 `yaml:"step"`
	MaxRadius     float64 `yaml:"maxRadius"`
	MaxIterations int     `yaml:"maxIterations"`
}

// Log configures the structured logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the full conesample configuration.
type Config struct {
	Catalog     Catalog `yaml:"catalog"`
	Labels      Labels  `yaml:"labels"`
	Sampler     Sampler `yaml:"sampler"`
	Workers     int     `yaml:"workers"`
	Log         Log     `yaml:"log"`
	MetricsFile string  `yaml:"metricsFile"`
}

// Load reads path (when non-empty), applies environment overrides and fills
// defaults. The result is validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LabelsConfig returns the label store connection settings.
func (c *Config) LabelsConfig() labels.Config {
	return labels.Config{Driver: c.Labels.Driver, DSN: c.Labels.DSN, Table: c.Labels.Table}
}

// FilterMode returns the parsed catalog filter mode.
func (c *Config) FilterMode() catalog.FilterMode {
	mode, _ := catalog.ParseFilterMode(c.Catalog.Filter)
	return mode
}

func (c *Config) applyDefaults() {
	if c.Catalog.Table == "" {
		c.Catalog.Table = catalog.DefaultTable
	}
	if c.Catalog.Filter == "" {
		c.Catalog.Filter = string(catalog.FilterInProcess)
	}
	if c.Labels.Driver == "" {
		c.Labels.Driver = DefaultLabelDriver
	}
	if c.Labels.Table == "" {
		c.Labels.Table = labels.DefaultTable
	}
	if c.Sampler.MinCount == 0 {
		c.Sampler.MinCount = DefaultMinCount
	}
	if c.Sampler.StartRadius == 0 {
		c.Sampler.StartRadius = DefaultStartRadius
	}
	if c.Sampler.Step == 0 {
		c.Sampler.Step = DefaultStep
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if _, ok := catalog.ParseFilterMode(c.Catalog.Filter); !ok {
		errs = append(errs, fmt.Errorf("catalog.filter %q: want %q or %q", c.Catalog.Filter, catalog.FilterInProcess, catalog.FilterInSQL))
	}
	if !labels.SupportedDriver(c.Labels.Driver) {
		errs = append(errs, fmt.Errorf("labels.driver %q: want one of %s", c.Labels.Driver, strings.Join(labels.Drivers, ", ")))
	}
	if c.Sampler.MinCount < 1 {
		errs = append(errs, fmt.Errorf("sampler.minCount %d: must be at least 1", c.Sampler.MinCount))
	}
	if !(c.Sampler.StartRadius > 0) {
		errs = append(errs, fmt.Errorf("sampler.startRadius %g: must be positive", c.Sampler.StartRadius))
	}
	if !(c.Sampler.Step > 0) {
		errs = append(errs, fmt.Errorf("sampler.step %g: must be positive", c.Sampler.Step))
	}
	if c.Sampler.MaxRadius < 0 || c.Sampler.MaxRadius > 90 {
		errs = append(errs, fmt.Errorf("sampler.maxRadius %g: must be within [0, 90]", c.Sampler.MaxRadius))
	}
	if c.Sampler.MaxIterations < 0 {
		errs = append(errs, fmt.Errorf("sampler.maxIterations %d: must not be negative", c.Sampler.MaxIterations))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers %d: must be at least 1", c.Workers))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q: want text or json", c.Log.Format))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// applyEnv overrides fields from CONE_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"CONE_CATALOG_DSN":    &c.Catalog.DSN,
		"CONE_CATALOG_TABLE":  &c.Catalog.Table,
		"CONE_CATALOG_FILTER": &c.Catalog.Filter,
		"CONE_LABELS_DRIVER":  &c.Labels.Driver,
		"CONE_LABELS_DSN":     &c.Labels.DSN,
		"CONE_LABELS_TABLE":   &c.Labels.Table,
		"CONE_LOG_LEVEL":      &c.Log.Level,
		"CONE_LOG_FORMAT":     &c.Log.Format,
		"CONE_METRICS_FILE":   &c.MetricsFile,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	ints := map[string]*int{
		"CONE_MIN_COUNT":      &c.Sampler.MinCount,
		"CONE_MAX_ITERATIONS": &c.Sampler.MaxIterations,
		"CONE_WORKERS":        &c.Workers,
	}
	for key, dst := range ints {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", key, v, err)
		}
		*dst = n
	}
	floats := map[string]*float64{
		"CONE_START_RADIUS": &c.Sampler.StartRadius,
		"CONE_STEP":         &c.Sampler.Step,
		"CONE_MAX_RADIUS":   &c.Sampler.MaxRadius,
	}
	for key, dst := range floats {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", key, v, err)
		}
		*dst = f
	}
	return nil
}
