package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus holds all Prometheus metrics for cone searches.
type Prometheus struct {
	Lookups          *prometheus.CounterVec
	LookupDuration   prometheus.Histogram
	CandidateRows    prometheus.Counter
	MatchedRows      prometheus.Counter
	Samples          *prometheus.CounterVec
	SampleIterations prometheus.Histogram
	SampleDuration   prometheus.Histogram
}

// NewPrometheus creates the metrics and registers them with reg. A nil reg
// uses the default registerer.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Prometheus{
		Lookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cone_lookups_total",
			Help: "Total number of catalog cone lookups by outcome",
		}, []string{"outcome"}),
		LookupDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "cone_lookup_duration_seconds",
			Help:    "Latency of catalog cone lookups",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		}),
		CandidateRows: f.NewCounter(prometheus.CounterOpts{
			Name: "cone_candidate_rows_total",
			Help: "Rows admitted by bounding predicates before exact filtering",
		}),
		MatchedRows: f.NewCounter(prometheus.CounterOpts{
			Name: "cone_matched_rows_total",
			Help: "Rows returned after exact angular filtering",
		}),
		Samples: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cone_samples_total",
			Help: "Adaptive sampling runs by terminal state",
		}, []string{"state"}),
		SampleIterations: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "cone_sample_iterations",
			Help:    "Number of lookups issued per sampling run",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		SampleDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "cone_sample_duration_seconds",
			Help:    "Wall time of adaptive sampling runs",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
		}),
	}
}

// RecordLookup implements Recorder.
func (p *Prometheus) RecordLookup(d time.Duration, stats LookupStats, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	p.Lookups.WithLabelValues(outcome).Inc()
	p.LookupDuration.Observe(d.Seconds())
	if err != nil {
		return
	}
	if stats.Candidates >= 0 {
		p.CandidateRows.Add(float64(stats.Candidates))
	}
	p.MatchedRows.Add(float64(stats.Matched))
}

// RecordSample implements Recorder.
func (p *Prometheus) RecordSample(state string, iterations int, d time.Duration) {
	p.Samples.WithLabelValues(state).Inc()
	p.SampleIterations.Observe(float64(iterations))
	p.SampleDuration.Observe(d.Seconds())
}

var _ Recorder = (*Prometheus)(nil)
