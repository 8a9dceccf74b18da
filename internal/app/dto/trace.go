package dto

import "time"

// TensorSummary is the shape-level description of one bound tensor,
// recorded instead of the data itself to keep traces small.
type TensorSummary struct {
	Name   string `json:"name" msgpack:"name"`
	DType  string `json:"dtype" msgpack:"dtype"`
	Shape  []int  `json:"shape" msgpack:"shape"`
	Device string `json:"device" msgpack:"device"`
}

// TraceStep records one operator invocation inside a run.
type TraceStep struct {
	Node     string          `json:"node" msgpack:"node"`
	Inputs   []TensorSummary `json:"inputs" msgpack:"inputs"`
	Outputs  []TensorSummary `json:"outputs" msgpack:"outputs"`
	Duration time.Duration   `json:"duration" msgpack:"duration"`
}

// RunTrace is the full record of one execution call.
type RunTrace struct {
	RunID     string      `json:"run_id" msgpack:"run_id"`
	Steps     []TraceStep `json:"steps" msgpack:"steps"`
	StartTime time.Time   `json:"start_time" msgpack:"start_time"`
	EndTime   time.Time   `json:"end_time" msgpack:"end_time"`
	Error     string      `json:"error,omitempty" msgpack:"error,omitempty"`
}
