// Package pmspace prepares sampled stars for proper-motion charts: outlier
// windows per axis, the elliptical constraint boundary of a cluster label,
// membership against that boundary, and marginal histograms. It is a pure
// function of its inputs and shares no state with the query engine.
package pmspace
