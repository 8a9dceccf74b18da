package usecases

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opflow/opflow/internal/app/dto"
	"github.com/opflow/opflow/internal/core/operator"
	"github.com/opflow/opflow/internal/core/tensor"
	"github.com/opflow/opflow/internal/core/topology"
)

func identity() operator.Transform {
	return operator.TransformFunc(func(_ context.Context, inputs ...*tensor.Tensor) ([]*tensor.Tensor, error) {
		return []*tensor.Tensor{inputs[0]}, nil
	})
}

func scale(factor float32) operator.Transform {
	return operator.TransformFunc(func(_ context.Context, inputs ...*tensor.Tensor) ([]*tensor.Tensor, error) {
		data, err := inputs[0].Float32s()
		if err != nil {
			return nil, err
		}
		out := make([]float32, len(data))
		for i, v := range data {
			out[i] = v * factor
		}
		scaled, err := tensor.New(tensor.Float32, inputs[0].Shape(), out)
		if err != nil {
			return nil, err
		}
		return []*tensor.Tensor{scaled}, nil
	})
}

// identityTopology is the "y = f(x)" single-operator graph used
// throughout, with builder-style renamed variables.
func identityTopology() (*topology.Topology, operator.Map) {
	topo := &topology.Topology{Nodes: []*topology.Node{{
		FullName: "identity.0",
		Inputs:   []*topology.Variable{{RawName: "x", FullName: "variable.x.0"}},
		Outputs:  []*topology.Variable{{RawName: "y", FullName: "variable.y.0"}},
	}}}
	return topo, operator.Map{"identity.0": identity()}
}

func TestProgramIdentityScenario(t *testing.T) {
	topo, transforms := identityTopology()
	p, err := NewProgram(topo, transforms, []string{"x"}, []string{"y"}, nil)
	require.NoError(t, err)

	out, err := p.Run(context.Background(), []float64{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, tensor.Float32, out[0].DType())
	assert.True(t, out[0].Equal(tensor.FromFloat32s([]float32{1, 2, 3})))
}

func TestProgramIdempotence(t *testing.T) {
	topo := &topology.Topology{Nodes: []*topology.Node{{
		FullName: "scale.0",
		Inputs:   []*topology.Variable{{RawName: "x", FullName: "variable.x.0"}},
		Outputs:  []*topology.Variable{{RawName: "y", FullName: "variable.y.0"}},
	}}}
	transforms := operator.Map{"scale.0": scale(2)}

	p, err := NewProgram(topo, transforms, []string{"x"}, []string{"y"}, nil)
	require.NoError(t, err)

	first, err := p.Run(context.Background(), []float64{1, 2, 3})
	require.NoError(t, err)
	second, err := p.Run(context.Background(), []float64{1, 2, 3})
	require.NoError(t, err)
	assert.True(t, first[0].Equal(second[0]))
}

func TestProgramMultiOutputOrdering(t *testing.T) {
	// One node produces o1 and o2; the caller declares them as [o2, o1].
	// The returned order must follow the declaration, not the node.
	duplicate := operator.TransformFunc(func(_ context.Context, inputs ...*tensor.Tensor) ([]*tensor.Tensor, error) {
		doubled, err := scale(2).Apply(context.Background(), inputs[0])
		if err != nil {
			return nil, err
		}
		return []*tensor.Tensor{inputs[0], doubled[0]}, nil
	})

	topo := &topology.Topology{Nodes: []*topology.Node{{
		FullName: "fanout.0",
		Inputs:   []*topology.Variable{{RawName: "x", FullName: "variable.x.0"}},
		Outputs: []*topology.Variable{
			{RawName: "o1", FullName: "variable.o1.0"},
			{RawName: "o2", FullName: "variable.o2.0"},
		},
	}}}
	p, err := NewProgram(topo, operator.Map{"fanout.0": duplicate},
		[]string{"x"}, []string{"o2", "o1"}, nil)
	require.NoError(t, err)

	out, err := p.Run(context.Background(), []float32{1, 2})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, out[0].Equal(tensor.FromFloat32s([]float32{2, 4})), "element 0 is o2")
	assert.True(t, out[1].Equal(tensor.FromFloat32s([]float32{1, 2})), "element 1 is o1")
}

func TestProgramChainsOperators(t *testing.T) {
	// x -> scale2 -> scale3 -> y, wired through an internal variable.
	topo := &topology.Topology{Nodes: []*topology.Node{
		{
			FullName: "scale2.0",
			Inputs:   []*topology.Variable{{RawName: "x", FullName: "variable.x.0"}},
			Outputs:  []*topology.Variable{{RawName: "mid", FullName: "variable.mid.0"}},
		},
		{
			FullName: "scale3.0",
			Inputs:   []*topology.Variable{{RawName: "mid", FullName: "variable.mid.0"}},
			Outputs:  []*topology.Variable{{RawName: "y", FullName: "variable.y.0"}},
		},
	}}
	transforms := operator.Map{"scale2.0": scale(2), "scale3.0": scale(3)}

	p, err := NewProgram(topo, transforms, []string{"x"}, []string{"y"}, nil)
	require.NoError(t, err)

	out, err := p.Run(context.Background(), []float32{1, 2})
	require.NoError(t, err)
	assert.True(t, out[0].Equal(tensor.FromFloat32s([]float32{6, 12})))
}

func TestProgramConstructionErrors(t *testing.T) {
	topo, transforms := identityTopology()

	t.Run("invalid topology", func(t *testing.T) {
		_, err := NewProgram(&topology.Topology{}, transforms, nil, nil, nil)
		assert.ErrorIs(t, err, topology.ErrEmptyTopology)
	})

	t.Run("missing transform", func(t *testing.T) {
		_, err := NewProgram(topo, operator.Map{}, []string{"x"}, []string{"y"}, nil)
		assert.ErrorIs(t, err, operator.ErrTransformNotFound)
	})

	t.Run("partial name resolution", func(t *testing.T) {
		_, err := NewProgram(topo, transforms, []string{"x", "ghost"}, []string{"y"}, nil)
		assert.ErrorIs(t, err, dto.ErrUnresolvedName)
	})
}

func TestProgramRunErrors(t *testing.T) {
	topo, transforms := identityTopology()
	p, err := NewProgram(topo, transforms, []string{"x"}, []string{"y"}, nil)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("arity mismatch never truncates", func(t *testing.T) {
		_, err := p.Run(ctx, []float32{1}, []float32{2})
		assert.ErrorIs(t, err, dto.ErrArityMismatch)

		_, err = p.Run(ctx)
		assert.ErrorIs(t, err, dto.ErrArityMismatch)
	})

	t.Run("operator failure aborts the call", func(t *testing.T) {
		boom := errors.New("boom")
		failing := operator.TransformFunc(func(_ context.Context, _ ...*tensor.Tensor) ([]*tensor.Tensor, error) {
			return nil, boom
		})
		fp, err := NewProgram(topo, operator.Map{"identity.0": failing},
			[]string{"x"}, []string{"y"}, nil)
		require.NoError(t, err)

		_, err = fp.Run(ctx, []float32{1})
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "identity.0")
		assert.True(t, operator.TrainingEnabled(), "inference guard released on error path")
	})

	t.Run("transform arity mismatch", func(t *testing.T) {
		empty := operator.TransformFunc(func(_ context.Context, _ ...*tensor.Tensor) ([]*tensor.Tensor, error) {
			return nil, nil
		})
		ep, err := NewProgram(topo, operator.Map{"identity.0": empty},
			[]string{"x"}, []string{"y"}, nil)
		require.NoError(t, err)

		_, err = ep.Run(ctx, []float32{1})
		assert.ErrorIs(t, err, dto.ErrTransformArity)
	})

	t.Run("unbound operator input", func(t *testing.T) {
		// The node reads a variable nothing binds: a malformed graph.
		broken := &topology.Topology{Nodes: []*topology.Node{{
			FullName: "identity.0",
			Inputs:   []*topology.Variable{{RawName: "ghost", FullName: "variable.ghost.0"}},
			Outputs:  []*topology.Variable{{RawName: "y", FullName: "variable.y.0"}},
		}}}
		bp, err := NewProgram(broken, transforms, []string{"x"}, []string{"y"}, nil)
		require.NoError(t, err)

		_, err = bp.Run(ctx, []float32{1})
		require.Error(t, err)
		assert.ErrorIs(t, err, dto.ErrUnboundVariable)

		var unbound *dto.UnboundVariableError
		require.ErrorAs(t, err, &unbound)
		assert.Equal(t, "variable.ghost.0", unbound.Name)
		assert.Equal(t, "identity.0", unbound.Node)
	})

	t.Run("resolved output never produced", func(t *testing.T) {
		// Output resolution falls back to the declared name, which no
		// operator binds.
		_, err := p.Run(ctx, tensor.FromFloat32s([]float32{1}))
		require.NoError(t, err, "sanity: the well-formed graph still runs")

		orphan, err := NewProgram(topo, transforms, []string{"x"}, []string{"nothing"}, nil)
		require.NoError(t, err)
		_, err = orphan.Run(ctx, []float32{1})
		assert.ErrorIs(t, err, dto.ErrUnboundVariable)
	})
}

func TestProgramConcurrentRuns(t *testing.T) {
	topo := &topology.Topology{Nodes: []*topology.Node{{
		FullName: "scale.0",
		Inputs:   []*topology.Variable{{RawName: "x", FullName: "variable.x.0"}},
		Outputs:  []*topology.Variable{{RawName: "y", FullName: "variable.y.0"}},
	}}}
	p, err := NewProgram(topo, operator.Map{"scale.0": scale(2)},
		[]string{"x"}, []string{"y"}, nil)
	require.NoError(t, err)

	want := tensor.FromFloat32s([]float32{2, 4, 6})
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := p.Run(context.Background(), []float32{1, 2, 3})
			assert.NoError(t, err)
			assert.True(t, out[0].Equal(want))
		}()
	}
	wg.Wait()
}

func TestProgramResolvedNames(t *testing.T) {
	topo, transforms := identityTopology()
	p, err := NewProgram(topo, transforms, []string{"x"}, []string{"y"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"variable.x.0"}, p.InputNames())
	assert.Equal(t, []string{"variable.y.0"}, p.OutputNames())
}
