package prebuilt

import (
	"context"
	"fmt"

	"github.com/opflow/opflow/internal/core/operator"
	"github.com/opflow/opflow/internal/core/tensor"
)

// Identity returns its single input unchanged.
func Identity() operator.Transform {
	return operator.TransformFunc(func(_ context.Context, inputs ...*tensor.Tensor) ([]*tensor.Tensor, error) {
		if len(inputs) != 1 {
			return nil, fmt.Errorf("identity expects 1 input, got %d", len(inputs))
		}
		return []*tensor.Tensor{inputs[0]}, nil
	})
}

// Scale multiplies every element of its single-precision input.
func Scale(factor float32) operator.Transform {
	return elementwise(func(v float32) float32 { return v * factor })
}

// Offset adds a constant to every element of its single-precision input.
func Offset(delta float32) operator.Transform {
	return elementwise(func(v float32) float32 { return v + delta })
}

// Add sums two single-precision inputs of identical shape.
func Add() operator.Transform {
	return operator.TransformFunc(func(_ context.Context, inputs ...*tensor.Tensor) ([]*tensor.Tensor, error) {
		if len(inputs) != 2 {
			return nil, fmt.Errorf("add expects 2 inputs, got %d", len(inputs))
		}
		a, err := inputs[0].Float32s()
		if err != nil {
			return nil, err
		}
		b, err := inputs[1].Float32s()
		if err != nil {
			return nil, err
		}
		if len(a) != len(b) {
			return nil, fmt.Errorf("add inputs differ in length: %w", tensor.ErrShapeMismatch)
		}
		sum := make([]float32, len(a))
		for i := range a {
			sum[i] = a[i] + b[i]
		}
		out, err := tensor.New(tensor.Float32, inputs[0].Shape(), sum)
		if err != nil {
			return nil, err
		}
		return []*tensor.Tensor{out}, nil
	})
}

// Fanout returns its input twice, as two declared outputs.
func Fanout() operator.Transform {
	return operator.TransformFunc(func(_ context.Context, inputs ...*tensor.Tensor) ([]*tensor.Tensor, error) {
		if len(inputs) != 1 {
			return nil, fmt.Errorf("fanout expects 1 input, got %d", len(inputs))
		}
		return []*tensor.Tensor{inputs[0], inputs[0].Clone()}, nil
	})
}

func elementwise(f func(float32) float32) operator.Transform {
	return operator.TransformFunc(func(_ context.Context, inputs ...*tensor.Tensor) ([]*tensor.Tensor, error) {
		if len(inputs) != 1 {
			return nil, fmt.Errorf("elementwise transform expects 1 input, got %d", len(inputs))
		}
		data, err := inputs[0].Float32s()
		if err != nil {
			return nil, err
		}
		out := make([]float32, len(data))
		for i, v := range data {
			out[i] = f(v)
		}
		t, err := tensor.New(tensor.Float32, inputs[0].Shape(), out)
		if err != nil {
			return nil, err
		}
		return []*tensor.Tensor{t}, nil
	})
}
