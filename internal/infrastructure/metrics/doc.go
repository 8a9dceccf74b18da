// Package metrics exposes lightweight expvar counters for the execution
// engine: runs, failures, executed operators, and normalized inputs per
// input kind. Counters are process-wide and safe for concurrent use.
package metrics
