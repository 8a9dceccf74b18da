package metrics

import (
	"expvar"
)

// Normalizer metrics (counters) using an expvar map keyed by input kind.
var (
	inputsNormalized = expvar.NewMap("opflow_inputs_normalized_total")
)

// Engine metrics.
var (
	runsTotal         = new(expvar.Int)
	runFailuresTotal  = new(expvar.Int)
	operatorsExecuted = new(expvar.Int)
	tracesRecorded    = new(expvar.Int)
)

func init() {
	expvar.Publish("opflow_runs_total", runsTotal)
	expvar.Publish("opflow_run_failures_total", runFailuresTotal)
	expvar.Publish("opflow_operators_executed_total", operatorsExecuted)
	expvar.Publish("opflow_traces_recorded_total", tracesRecorded)
}

// Normalizer helpers
func IncInputsNormalized(kind string) { inputsNormalized.Add(kind, 1) }

// Engine helpers
func IncRuns()                     { runsTotal.Add(1) }
func IncRunFailures()              { runFailuresTotal.Add(1) }
func AddOperatorsExecuted(n int64) { operatorsExecuted.Add(n) }
func IncTracesRecorded()           { tracesRecorded.Add(1) }
