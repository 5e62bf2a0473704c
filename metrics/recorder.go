package metrics

import "time"

// LookupStats summarizes one catalog lookup. Candidates is the number of rows
// admitted by the bounding predicate, or -1 when the store filtered them
// without reporting it.
type LookupStats struct {
	Candidates int
	Matched    int
}

// Recorder receives operational events. Implement it to integrate with a
// monitoring system.
type Recorder interface {
	// RecordLookup is called after each catalog lookup; err is nil on success.
	RecordLookup(duration time.Duration, stats LookupStats, err error)

	// RecordSample is called once per sampling run with its terminal state
	// (or "failed") and the number of lookups it issued.
	RecordSample(state string, iterations int, duration time.Duration)
}

// Noop discards all events.
type Noop struct{}

func (Noop) RecordLookup(time.Duration, LookupStats, error) {}
func (Noop) RecordSample(string, int, time.Duration)        {}

// OrNoop returns r, or Noop when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return Noop{}
	}
	return r
}
