package opflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coretensor "github.com/opflow/opflow/internal/core/tensor"
	"github.com/opflow/opflow/pkg/prebuilt"
)

func scalePipeline(t *testing.T, extra map[string]any) *Program {
	t.Helper()
	topo := &Topology{Nodes: []*Node{{
		FullName: "scale.0",
		Inputs:   []*Variable{{RawName: "x", FullName: "variable.x.0"}},
		Outputs:  []*Variable{{RawName: "y", FullName: "variable.y.0"}},
	}}}
	p, err := Compile(topo, TransformMap{"scale.0": prebuilt.Scale(2)},
		[]string{"x"}, []string{"y"}, extra)
	require.NoError(t, err)
	return p
}

func TestProgramSingleOutputCollapses(t *testing.T) {
	p := scalePipeline(t, nil)

	out, err := p.Run(context.Background(), []float64{1, 2})
	require.NoError(t, err)

	single, ok := out.(*Tensor)
	require.True(t, ok, "one declared output returns the tensor directly")
	assert.True(t, single.Equal(coretensor.FromFloat32s([]float32{2, 4})))
}

func TestProgramMultiOutputTuple(t *testing.T) {
	topo := &Topology{Nodes: []*Node{{
		FullName: "fanout.0",
		Inputs:   []*Variable{{RawName: "x", FullName: "variable.x.0"}},
		Outputs: []*Variable{
			{RawName: "a", FullName: "variable.a.0"},
			{RawName: "b", FullName: "variable.b.0"},
		},
	}}}
	p, err := Compile(topo, TransformMap{"fanout.0": prebuilt.Fanout()},
		[]string{"x"}, []string{"a", "b"}, nil)
	require.NoError(t, err)

	out, err := p.Run(context.Background(), []float32{1})
	require.NoError(t, err)

	tuple, ok := out.([]*Tensor)
	require.True(t, ok)
	assert.Len(t, tuple, 2)
}

func TestProgramFrameInput(t *testing.T) {
	topo := &Topology{Nodes: []*Node{{
		FullName: "add.0",
		Inputs: []*Variable{
			{RawName: "a", FullName: "variable.a.0"},
			{RawName: "b", FullName: "variable.b.0"},
		},
		Outputs: []*Variable{{RawName: "sum", FullName: "variable.sum.0"}},
	}}}
	p, err := Compile(topo, TransformMap{"add.0": prebuilt.Add()},
		[]string{"a", "b"}, []string{"sum"}, nil)
	require.NoError(t, err)

	f := NewColumns().
		Add("a", []float64{1, 2}).
		Add("b", []float64{10, 20})

	out, err := p.Run(context.Background(), f)
	require.NoError(t, err)

	sum := out.(*Tensor)
	want, err := coretensor.FromFloat32s([]float32{11, 22}).Reshape(2, 1)
	require.NoError(t, err)
	assert.True(t, sum.Equal(want))
}

func TestProgramTraces(t *testing.T) {
	t.Run("disabled by default", func(t *testing.T) {
		p := scalePipeline(t, nil)
		_, err := p.Run(context.Background(), []float32{1})
		require.NoError(t, err)

		assert.Empty(t, p.TraceIDs())
		_, err = p.Trace("any")
		assert.ErrorIs(t, err, ErrTracesDisabled)
	})

	t.Run("records when enabled", func(t *testing.T) {
		p := scalePipeline(t, map[string]any{"record_traces": true, "trace_capacity": 4})
		_, err := p.Run(context.Background(), []float32{1, 2})
		require.NoError(t, err)

		ids := p.TraceIDs()
		require.Len(t, ids, 1)

		trace, err := p.Trace(ids[0])
		require.NoError(t, err)
		require.Len(t, trace.Steps, 1)
		assert.Equal(t, "scale.0", trace.Steps[0].Node)
		assert.Equal(t, "variable.y.0", trace.Steps[0].Outputs[0].Name)
		assert.Empty(t, trace.Error)
	})

	t.Run("failed runs are recorded too", func(t *testing.T) {
		p := scalePipeline(t, map[string]any{"record_traces": true})
		_, err := p.Run(context.Background())
		require.ErrorIs(t, err, ErrArityMismatch)

		ids := p.TraceIDs()
		require.Len(t, ids, 1)
		trace, err := p.Trace(ids[0])
		require.NoError(t, err)
		assert.NotEmpty(t, trace.Error)
	})
}

func TestCompileErrors(t *testing.T) {
	topo := &Topology{Nodes: []*Node{{
		FullName: "scale.0",
		Inputs:   []*Variable{{RawName: "x", FullName: "variable.x.0"}},
		Outputs:  []*Variable{{RawName: "y", FullName: "variable.y.0"}},
	}}}
	transforms := TransformMap{"scale.0": prebuilt.Scale(2)}

	t.Run("bad extra config", func(t *testing.T) {
		_, err := Compile(topo, transforms, []string{"x"}, []string{"y"},
			map[string]any{"device": "abacus"})
		assert.Error(t, err)
	})

	t.Run("partial resolution", func(t *testing.T) {
		_, err := Compile(topo, transforms, []string{"x", "ghost"}, []string{"y"}, nil)
		assert.ErrorIs(t, err, ErrUnresolvedName)
	})
}
