package opflow

import (
	"context"

	"github.com/opflow/opflow/internal/app/dto"
	"github.com/opflow/opflow/internal/app/services"
	"github.com/opflow/opflow/internal/app/usecases"
	"github.com/opflow/opflow/internal/config"
	coreframe "github.com/opflow/opflow/internal/core/frame"
	"github.com/opflow/opflow/internal/core/operator"
	coretensor "github.com/opflow/opflow/internal/core/tensor"
	"github.com/opflow/opflow/internal/core/topology"
)

// Re-export core types for convenience so callers never import internal
// packages directly.
type (
	Tensor        = coretensor.Tensor
	DType         = coretensor.DType
	Device        = coretensor.Device
	Variable      = topology.Variable
	Node          = topology.Node
	Topology      = topology.Topology
	Transform     = operator.Transform
	TransformFunc = operator.TransformFunc
	TransformMap  = operator.Map
	Frame         = coreframe.Frame
	Columns       = coreframe.Columns
	RunTrace      = dto.RunTrace
)

// NewColumns creates an empty in-memory frame.
func NewColumns() *Columns { return coreframe.NewColumns() }

// Program is a compiled pipeline ready for repeated execution. It is
// immutable after Compile and safe for concurrent Run calls.
type Program struct {
	inner  *usecases.Program
	traces *services.TraceService
}

// Compile resolves the caller-declared input and output names against the
// topology, binds every node to its transform, and freezes the result.
// The extra map may carry "max_string_length", "device", "record_traces"
// and "trace_capacity"; unknown keys are ignored.
func Compile(
	topo *Topology,
	transforms TransformMap,
	inputNames, outputNames []string,
	extra map[string]any,
) (*Program, error) {
	cfg, err := config.FromMap(extra)
	if err != nil {
		return nil, err
	}

	var opts []usecases.Option
	var traces *services.TraceService
	if cfg.RecordTraces {
		traces = services.NewTraceService(cfg.TraceCapacity, nil)
		opts = append(opts, usecases.WithTracer(traces))
	}

	inner, err := usecases.NewProgram(topo, transforms, inputNames, outputNames, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Program{inner: inner, traces: traces}, nil
}

// Run executes the pipeline. It accepts either one positional value per
// resolved input, or a single Frame whose column count matches. With one
// declared output the bound tensor is returned directly; with several,
// an ordered []*Tensor.
func (p *Program) Run(ctx context.Context, inputs ...any) (any, error) {
	outputs, err := p.inner.Run(ctx, inputs...)
	if err != nil {
		return nil, err
	}
	if len(outputs) == 1 {
		return outputs[0], nil
	}
	return outputs, nil
}

// RunAll is like Run but always returns the ordered output slice,
// regardless of how many outputs are declared.
func (p *Program) RunAll(ctx context.Context, inputs ...any) ([]*Tensor, error) {
	return p.inner.Run(ctx, inputs...)
}

// InputNames returns the resolved canonical input names, in caller order.
func (p *Program) InputNames() []string { return p.inner.InputNames() }

// OutputNames returns the resolved canonical output names, in caller order.
func (p *Program) OutputNames() []string { return p.inner.OutputNames() }

// Trace returns the recorded trace for a run ID. Traces must have been
// enabled with "record_traces" at compile time.
func (p *Program) Trace(runID string) (*RunTrace, error) {
	if p.traces == nil {
		return nil, ErrTracesDisabled
	}
	return p.traces.Load(runID)
}

// TraceIDs returns the retained run IDs, oldest first.
func (p *Program) TraceIDs() []string {
	if p.traces == nil {
		return nil
	}
	return p.traces.RunIDs()
}
