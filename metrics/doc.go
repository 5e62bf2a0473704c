// Package metrics defines the operational metrics hooks used by the catalog
// store and the adaptive sampler, with a no-op default and a Prometheus
// implementation.
package metrics
