package sampler

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/sqlite-cone/logging"
	"github.com/viant/sqlite-cone/metrics"
	"github.com/viant/sqlite-cone/region"
	"github.com/viant/sqlite-cone/sky"
)

// Catalog is the lookup surface the sampler needs.
type Catalog interface {
	Lookup(ctx context.Context, pred region.Predicate, q sky.Query) ([]sky.Star, error)
}

// Result is the outcome of a sampling run.
type Result struct {
	Center sky.Coordinate
	// Radius is the radius whose lookup produced Stars.
	Radius float64
	Stars  []sky.Star
	// Iterations counts lookups issued, including a discarded overshoot.
	Iterations int
	State      State
	// OvershootRadius is the discarded radius when State is StateOvershot.
	OvershootRadius float64
}

// Sampler runs adaptive cone searches against a Catalog.
type Sampler struct {
	catalog       Catalog
	maxRadius     float64
	maxIterations int
	logger        *logging.Logger
	recorder      metrics.Recorder
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithMaxRadius caps the radius (degrees). Zero means any radius below 90.
func WithMaxRadius(r float64) Option { return func(s *Sampler) { s.maxRadius = r } }

// WithMaxIterations caps the number of lookups per run. Zero means unlimited.
func WithMaxIterations(n int) Option { return func(s *Sampler) { s.maxIterations = n } }

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option { return func(s *Sampler) { s.logger = l } }

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option { return func(s *Sampler) { s.recorder = r } }

// New creates a Sampler over c.
func New(c Catalog, opts ...Option) (*Sampler, error) {
	if c == nil {
		return nil, fmt.Errorf("sampler: catalog is nil")
	}
	s := &Sampler{catalog: c}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxRadius < 0 || s.maxIterations < 0 {
		return nil, fmt.Errorf("sampler: negative ceiling (max radius %g, max iterations %d)", s.maxRadius, s.maxIterations)
	}
	s.logger = logging.OrNoop(s.logger)
	s.recorder = metrics.OrNoop(s.recorder)
	return s, nil
}

// Sample looks up the cone of startRadius around center and keeps growing it
// by step while fewer than minCount stars are found. The first grown radius
// whose count exceeds minCount is discarded and the previous result returned.
//
// Catalog failures abort the run. Hitting the configured radius or iteration
// ceiling fails with sky.ErrRadiusExhausted.
func (s *Sampler) Sample(ctx context.Context, center sky.Coordinate, minCount int, startRadius, step float64) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if minCount < 1 {
		return nil, &sky.QueryError{Op: "sample", Center: center, Radius: startRadius, Kind: sky.ErrInvalidArgument,
			Err: fmt.Errorf("min count %d must be positive", minCount)}
	}
	if !(step > 0) {
		return nil, &sky.QueryError{Op: "sample", Center: center, Radius: startRadius, Kind: sky.ErrInvalidArgument,
			Err: fmt.Errorf("step %g must be positive", step)}
	}
	log := s.logger.WithCenter(center.RA, center.Dec)
	started := time.Now()
	res, err := s.run(ctx, log, center, minCount, startRadius, step)
	iterations, radius, stars, state := 0, startRadius, 0, "failed"
	if res != nil {
		iterations, radius, stars = res.Iterations, res.Radius, len(res.Stars)
	}
	if err == nil {
		state = res.State.String()
	}
	elapsed := time.Since(started)
	s.recorder.RecordSample(state, iterations, elapsed)
	log.LogSample(ctx, radius, stars, iterations, state, elapsed, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Sampler) run(ctx context.Context, log *logging.Logger, center sky.Coordinate, minCount int, startRadius, step float64) (*Result, error) {
	res := &Result{Center: center, State: StateGrowing}
	for i := 0; !res.State.Terminal(); i++ {
		// Radius is derived from the step index so repeated additions do not drift.
		radius := startRadius + float64(i)*step
		if err := s.checkCeiling(center, radius, res, minCount); err != nil {
			return res, err
		}
		if err := ctx.Err(); err != nil {
			return res, &sky.QueryError{Op: "sample", Center: center, Radius: radius, Err: err}
		}
		stars, err := s.lookup(ctx, center, radius)
		res.Iterations++
		if err != nil {
			return res, err
		}
		state, commit := transition(i == 0, len(stars), minCount)
		if commit {
			res.Radius = radius
			res.Stars = stars
		} else {
			res.OvershootRadius = radius
		}
		res.State = state
		log.LogAttempt(ctx, radius, len(stars), state.String())
	}
	return res, nil
}

func (s *Sampler) lookup(ctx context.Context, center sky.Coordinate, radius float64) ([]sky.Star, error) {
	pred, err := region.Build(center, radius)
	if err != nil {
		return nil, err
	}
	return s.catalog.Lookup(ctx, pred, sky.Query{Center: center, Radius: radius})
}

// checkCeiling fails with ErrRadiusExhausted once growth would pass the
// configured ceilings or the valid radius domain. The start radius itself is
// left to region.Build so invalid input still reports ErrInvalidArgument.
func (s *Sampler) checkCeiling(center sky.Coordinate, radius float64, res *Result, minCount int) error {
	if res.Iterations == 0 {
		if s.maxRadius > 0 && radius > s.maxRadius {
			return s.exhausted(center, radius, res, minCount)
		}
		return nil
	}
	switch {
	case s.maxIterations > 0 && res.Iterations >= s.maxIterations,
		radius >= sky.MaxRadius,
		s.maxRadius > 0 && radius > s.maxRadius:
		return s.exhausted(center, radius, res, minCount)
	}
	return nil
}

func (s *Sampler) exhausted(center sky.Coordinate, radius float64, res *Result, minCount int) error {
	return &sky.QueryError{
		Op:     "sample",
		Center: center,
		Radius: radius,
		Kind:   sky.ErrRadiusExhausted,
		Err:    fmt.Errorf("%d of %d stars after %d lookups", len(res.Stars), minCount, res.Iterations),
	}
}
