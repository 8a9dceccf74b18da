package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/opflow/opflow/internal/app/dto"
	"github.com/opflow/opflow/internal/config"
	"github.com/opflow/opflow/internal/core/operator"
	"github.com/opflow/opflow/internal/core/tensor"
	"github.com/opflow/opflow/internal/core/topology"
	"github.com/opflow/opflow/internal/infrastructure/ctxlog"
	"github.com/opflow/opflow/internal/infrastructure/metrics"
)

// boundOperator is one node of the compiled sequence with its variable
// names resolved to canonical form and its transform looked up once.
type boundOperator struct {
	name      string
	inputs    []string
	outputs   []string
	transform operator.Transform
}

// Program is a compiled, immutable executor for one operator topology.
// It owns the operator transforms for its lifetime and may be shared
// read-only across concurrent Run calls; the only per-call mutable state
// is the symbol table, which every call allocates privately.
type Program struct {
	inputNames  []string
	outputNames []string
	operators   []boundOperator
	cfg         *config.Runtime
	device      tensor.Device
	norm        *normalizer
	tracer      TraceRecorder
}

// Option customizes program construction.
type Option func(*Program)

// WithTracer attaches a recorder that receives one RunTrace per call.
func WithTracer(t TraceRecorder) Option {
	return func(p *Program) { p.tracer = t }
}

// NewProgram compiles a validated topology against its transform map and
// the caller-declared external input and output names. Name resolution
// runs here, once; Run never resolves names again.
func NewProgram(
	topo *topology.Topology,
	transforms operator.Map,
	inputNames, outputNames []string,
	cfg *config.Runtime,
	opts ...Option,
) (*Program, error) {
	if err := topo.Validate(); err != nil {
		return nil, fmt.Errorf("invalid topology: %w", err)
	}
	if cfg == nil {
		var err error
		if cfg, err = config.FromMap(nil); err != nil {
			return nil, err
		}
	}
	device, err := cfg.ParsedDevice()
	if err != nil {
		return nil, fmt.Errorf("invalid device configuration: %w", err)
	}

	resolvedIn, err := resolveInputNames(topo.Nodes, inputNames)
	if err != nil {
		return nil, err
	}
	resolvedOut, err := resolveOutputNames(topo.Nodes, outputNames)
	if err != nil {
		return nil, err
	}

	ops := make([]boundOperator, len(topo.Nodes))
	for i, node := range topo.Nodes {
		tr, err := transforms.Lookup(node.FullName)
		if err != nil {
			return nil, err
		}
		ops[i] = boundOperator{
			name:      node.FullName,
			inputs:    node.InputNames(),
			outputs:   node.OutputNames(),
			transform: tr,
		}
	}

	p := &Program{
		inputNames:  resolvedIn,
		outputNames: resolvedOut,
		operators:   ops,
		cfg:         cfg,
		device:      device,
	}
	p.norm = newNormalizer(cfg, device, resolvedIn)
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// InputNames returns the resolved canonical input names, in caller order.
func (p *Program) InputNames() []string {
	return append([]string(nil), p.inputNames...)
}

// OutputNames returns the resolved canonical output names, in caller order.
func (p *Program) OutputNames() []string {
	return append([]string(nil), p.outputNames...)
}

// Config returns the resolved runtime configuration.
func (p *Program) Config() *config.Runtime { return p.cfg }

// Device returns the configured placement device.
func (p *Program) Device() tensor.Device { return p.device }

// Run normalizes the caller inputs, executes every operator exactly once
// in stored order over a fresh symbol table, and returns the bound values
// of the resolved output names in order. Training-mode tracking is
// disabled for the whole call and restored on every exit path.
func (p *Program) Run(ctx context.Context, args ...any) ([]*tensor.Tensor, error) {
	guard := operator.BeginInference()
	defer guard.Release()

	metrics.IncRuns()
	start := time.Now()

	var trace *dto.RunTrace
	if p.tracer != nil {
		trace = &dto.RunTrace{RunID: uuid.NewString(), StartTime: start}
	}

	outputs, err := p.run(ctx, args, trace)
	if err != nil {
		metrics.IncRunFailures()
	}

	if trace != nil {
		trace.EndTime = time.Now()
		if err != nil {
			trace.Error = err.Error()
		}
		if rerr := p.tracer.Record(ctx, trace); rerr != nil {
			ctxlog.FromContext(ctx).Warn("recording run trace", "run_id", trace.RunID, "error", rerr)
		}
	}
	return outputs, err
}

func (p *Program) run(ctx context.Context, args []any, trace *dto.RunTrace) ([]*tensor.Tensor, error) {
	log := ctxlog.FromContext(ctx)

	inputs, err := p.norm.normalizeAll(args)
	if err != nil {
		return nil, err
	}

	// The symbol table lives exactly as long as this call and never
	// escapes it.
	vars := make(map[string]*tensor.Tensor, len(inputs)+len(p.operators))
	for i, name := range p.inputNames {
		vars[name] = inputs[i]
	}

	for _, op := range p.operators {
		ins := make([]*tensor.Tensor, len(op.inputs))
		for i, name := range op.inputs {
			t, ok := vars[name]
			if !ok {
				return nil, &dto.UnboundVariableError{Name: name, Node: op.name}
			}
			ins[i] = t
		}

		stepStart := time.Now()
		outs, err := op.transform.Apply(ctx, ins...)
		if err != nil {
			return nil, fmt.Errorf("operator %q: %w", op.name, err)
		}
		if len(outs) != len(op.outputs) {
			return nil, fmt.Errorf("operator %q returned %d outputs, declares %d: %w",
				op.name, len(outs), len(op.outputs), dto.ErrTransformArity)
		}
		for i, name := range op.outputs {
			vars[name] = outs[i]
		}
		metrics.AddOperatorsExecuted(1)

		if trace != nil {
			trace.Steps = append(trace.Steps, traceStep(op, ins, outs, time.Since(stepStart)))
		}
	}

	outputs := make([]*tensor.Tensor, len(p.outputNames))
	for i, name := range p.outputNames {
		t, ok := vars[name]
		if !ok {
			return nil, &dto.UnboundVariableError{Name: name}
		}
		outputs[i] = t
	}

	log.Debug("pipeline run complete",
		"operators", len(p.operators), "outputs", len(outputs))
	return outputs, nil
}

func traceStep(op boundOperator, ins, outs []*tensor.Tensor, d time.Duration) dto.TraceStep {
	step := dto.TraceStep{Node: op.name, Duration: d}
	for i, t := range ins {
		step.Inputs = append(step.Inputs, summarize(op.inputs[i], t))
	}
	for i, t := range outs {
		step.Outputs = append(step.Outputs, summarize(op.outputs[i], t))
	}
	return step
}

func summarize(name string, t *tensor.Tensor) dto.TensorSummary {
	return dto.TensorSummary{
		Name:   name,
		DType:  t.DType().String(),
		Shape:  t.Shape(),
		Device: t.Device().String(),
	}
}
