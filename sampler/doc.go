// Package sampler grows a cone around a center until the catalog returns at
// least a minimum number of stars.
//
// The radius starts at a given value and grows by a fixed step. When a larger
// radius would return more stars than requested, that attempt is discarded and
// the previous, under-threshold result is returned: the sample is always the
// largest radius tried whose count did not exceed the target.
package sampler
